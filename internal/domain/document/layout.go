package document

import (
	"errors"
	"fmt"
)

// BlockKind tipo de bloque colocado en una página.
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockMetadata
	BlockBusiness
	BlockBadges
	BlockItemsCaption
	BlockTableHeader
	BlockItemRow
	BlockTotals
	BlockFooter
)

func (k BlockKind) String() string {
	switch k {
	case BlockTitle:
		return "title"
	case BlockMetadata:
		return "metadata"
	case BlockBusiness:
		return "business"
	case BlockBadges:
		return "badges"
	case BlockItemsCaption:
		return "items_caption"
	case BlockTableHeader:
		return "table_header"
	case BlockItemRow:
		return "item_row"
	case BlockTotals:
		return "totals"
	case BlockFooter:
		return "footer"
	}
	return fmt.Sprintf("block(%d)", int(k))
}

// Metrics alturas en mm. PageHeight es el alto útil (sin márgenes).
type Metrics struct {
	PageHeight   float64
	Title        float64
	Metadata     float64
	Business     float64
	Badges       float64
	ItemsCaption float64
	TableHeader  float64
	ItemRow      float64
	TotalRow     float64
	Rule         float64
	Footer       float64
}

// DefaultMetrics A4 vertical con márgenes de 10 mm (277 mm útiles) y algo de holgura.
func DefaultMetrics() Metrics {
	return Metrics{
		PageHeight:   275,
		Title:        14,
		Metadata:     14,
		Business:     38,
		Badges:       24,
		ItemsCaption: 7,
		TableHeader:  8,
		ItemRow:      7,
		TotalRow:     6,
		Rule:         3,
		Footer:       8,
	}
}

var errInvalidMetrics = errors.New("document: métricas inválidas")

// Validate exige alturas no negativas, fila de tabla positiva y que cada bloque quepa en una página.
func (m Metrics) Validate() error {
	if m.PageHeight <= 0 || m.ItemRow <= 0 {
		return fmt.Errorf("%w: alto de página y de fila deben ser positivos", errInvalidMetrics)
	}
	for _, h := range []float64{m.Title, m.Metadata, m.Business, m.Badges, m.ItemsCaption, m.TableHeader, m.TotalRow, m.Rule, m.Footer} {
		if h < 0 || h > m.PageHeight {
			return fmt.Errorf("%w: altura %.2f fuera de rango", errInvalidMetrics, h)
		}
	}
	if m.ItemsCaption+m.TableHeader+m.ItemRow > m.PageHeight {
		return fmt.Errorf("%w: la cabecera de tabla y una fila no caben en una página", errInvalidMetrics)
	}
	return nil
}

func (m Metrics) totalsHeight(rows int) float64 {
	return float64(rows)*m.TotalRow + m.Rule
}

// Block unidad indivisible de maquetación. Row es el índice de la línea en BlockItemRow.
type Block struct {
	Kind   BlockKind
	Height float64
	Row    int
}

// Placed bloque con su posición vertical dentro de la página.
type Placed struct {
	Block
	Y float64
}

// Page bloques de una página en orden vertical.
type Page struct {
	Number int
	Blocks []Placed
}

// Bottom posición tras el último bloque.
func (p Page) Bottom() float64 {
	if len(p.Blocks) == 0 {
		return 0
	}
	last := p.Blocks[len(p.Blocks)-1]
	return last.Y + last.Height
}

// Layout resultado de paginar un Document.
type Layout struct {
	PageHeight float64
	Pages      []Page
}

// ContentHeight suma de las alturas de todos los bloques colocados, cabeceras repetidas incluidas.
func (l *Layout) ContentHeight() float64 {
	var h float64
	for _, p := range l.Pages {
		for _, b := range p.Blocks {
			h += b.Height
		}
	}
	return h
}

// Count número de bloques de un tipo.
func (l *Layout) Count(kind BlockKind) int {
	n := 0
	for _, p := range l.Pages {
		for _, b := range p.Blocks {
			if b.Kind == kind {
				n++
			}
		}
	}
	return n
}

// Paginate coloca las secciones del documento. Es el único sitio que decide saltos de página:
//   - la tabla fluye entre páginas y repite su cabecera en cada página con filas;
//   - la cabecera nunca queda sola al pie: viaja con la primera fila;
//   - los totales no se parten;
//   - el pie va al fondo de la última página.
func Paginate(doc *Document, m Metrics) (*Layout, error) {
	if doc == nil {
		return nil, errors.New("document: documento nulo")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	p := &paginator{m: m, layout: &Layout{PageHeight: m.PageHeight}}
	p.newPage()

	p.place(Block{Kind: BlockTitle, Height: m.Title})
	p.place(Block{Kind: BlockMetadata, Height: m.Metadata})
	p.place(Block{Kind: BlockBusiness, Height: m.Business})
	p.place(Block{Kind: BlockBadges, Height: m.Badges})

	head := m.ItemsCaption + m.TableHeader
	if len(doc.Items.Rows) > 0 {
		head += m.ItemRow
	}
	p.ensure(head)
	p.place(Block{Kind: BlockItemsCaption, Height: m.ItemsCaption})
	p.place(Block{Kind: BlockTableHeader, Height: m.TableHeader})
	for i := range doc.Items.Rows {
		if !p.fits(m.ItemRow) {
			p.newPage()
			p.place(Block{Kind: BlockTableHeader, Height: m.TableHeader})
		}
		p.place(Block{Kind: BlockItemRow, Height: m.ItemRow, Row: i})
	}

	totals := m.totalsHeight(len(doc.Totals.Rows))
	if totals > m.PageHeight {
		return nil, fmt.Errorf("%w: el bloque de totales no cabe en una página", errInvalidMetrics)
	}
	p.ensure(totals)
	p.place(Block{Kind: BlockTotals, Height: totals})

	p.ensure(m.Footer)
	p.placeAt(Block{Kind: BlockFooter, Height: m.Footer}, m.PageHeight-m.Footer)

	return p.layout, nil
}

type paginator struct {
	m      Metrics
	layout *Layout
	cursor float64
}

func (p *paginator) current() *Page {
	return &p.layout.Pages[len(p.layout.Pages)-1]
}

func (p *paginator) newPage() {
	p.layout.Pages = append(p.layout.Pages, Page{Number: len(p.layout.Pages) + 1})
	p.cursor = 0
}

func (p *paginator) fits(h float64) bool {
	return p.cursor+h <= p.m.PageHeight
}

// ensure abre página nueva si h no cabe en la actual.
func (p *paginator) ensure(h float64) {
	if !p.fits(h) {
		p.newPage()
	}
}

func (p *paginator) place(b Block) {
	p.placeAt(b, p.cursor)
}

func (p *paginator) placeAt(b Block, y float64) {
	pg := p.current()
	pg.Blocks = append(pg.Blocks, Placed{Block: b, Y: y})
	p.cursor = y + b.Height
}
