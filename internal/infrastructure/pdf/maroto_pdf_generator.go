// Package pdf dibuja con Maroto v2 la maquetación calculada por internal/domain/document.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                          FACTURA                            │
//	│  Nº Factura: n                               Fecha: d/m/a   │
//	│  Nº Presupuesto: ref                                        │
//	│  ┌ DATOS DE LA EMPRESA ──────────────────────────────────┐  │
//	│  │ Nombre / NIF / Dirección / CP Localidad, Prov / Tel   │  │
//	│  └───────────────────────────────────────────────────────┘  │
//	│  [ TIPO DE FACTURA  n% ]          [ TIPO DE IMPUESTO  n% ]  │
//	│  # | Nombre | Categoría | Unidades | Precio Ud. | Total     │
//	│                                      Subtotal / IVA / ...   │
//	│                                      ───────────────────    │
//	│                                      TOTAL                  │
//	│                 Factura generada el d/m/a                   │
//	└─────────────────────────────────────────────────────────────┘
//
// Los saltos de página los decide document.Paginate; aquí cada página del
// layout se convierte en una página Maroto.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/rs/zerolog"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/document"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 25, Green: 118, Blue: 210}
	colorGray      = &props.Color{Red: 128, Green: 128, Blue: 128}
	colorWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorBlack     = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorWarning   = &props.Color{Red: 211, Green: 47, Blue: 47}
	colorBoxFill   = &props.Color{Red: 245, Green: 245, Blue: 245}
	colorBoxBorder = &props.Color{Red: 200, Green: 200, Blue: 200}
	colorHeadFill  = &props.Color{Red: 51, Green: 51, Blue: 51}
	colorInvFill   = &props.Color{Red: 227, Green: 242, Blue: 253}
	colorInvBorder = &props.Color{Red: 144, Green: 202, Blue: 249}
	colorTaxFill   = &props.Color{Red: 232, Green: 245, Blue: 233}
	colorTaxBorder = &props.Color{Red: 129, Green: 199, Blue: 132}
)

const (
	captionHeight = 5.0
	boxGap        = 5.0
	nameMaxRunes  = 42
	catMaxRunes   = 18
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// Options configura el renderer. Campos vacíos usan los valores por defecto.
type Options struct {
	Formatter *money.Formatter
	Location  *time.Location
	Metrics   document.Metrics
	Author    string
}

// MarotoRenderer implementa billing.InvoiceRenderer. No guarda estado entre llamadas:
// renders concurrentes no comparten nada.
type MarotoRenderer struct {
	doc     document.Options
	metrics document.Metrics
	author  string
	log     zerolog.Logger
}

// NewMarotoRenderer construye el renderer.
func NewMarotoRenderer(opts Options, log zerolog.Logger) *MarotoRenderer {
	m := opts.Metrics
	if m == (document.Metrics{}) {
		m = document.DefaultMetrics()
	}
	return &MarotoRenderer{
		doc:     document.Options{Formatter: opts.Formatter, Location: opts.Location},
		metrics: m,
		author:  opts.Author,
		log:     log,
	}
}

// Render genera el PDF de la factura y su nombre de descarga.
// Cualquier fallo se registra con su causa y se devuelve como domain.ErrDocumentGeneration,
// sin bytes parciales.
func (r *MarotoRenderer) Render(ctx context.Context, inv *entity.Invoice) (pdfBytes []byte, filename string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pdfBytes, filename = nil, ""
			err = r.fail(inv, fmt.Errorf("panic: %v", rec))
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	// ── 1. Secciones ──────────────────────────────────────────────────────────
	doc, err := document.Build(inv, r.doc)
	if err != nil {
		return nil, "", r.fail(inv, err)
	}

	// ── 2. Paginación ─────────────────────────────────────────────────────────
	layout, err := document.Paginate(doc, r.metrics)
	if err != nil {
		return nil, "", r.fail(inv, err)
	}

	// ── 3. Dibujo ─────────────────────────────────────────────────────────────
	out, err := r.draw(inv, doc, layout)
	if err != nil {
		return nil, "", r.fail(inv, err)
	}
	if len(out) == 0 {
		return nil, "", r.fail(inv, fmt.Errorf("documento vacío"))
	}

	return out, doc.FileName, nil
}

func (r *MarotoRenderer) fail(inv *entity.Invoice, cause error) error {
	ev := r.log.Error().Err(cause)
	if inv != nil {
		ev = ev.Str("invoice_id", inv.ID).Int64("invoice_number", inv.InvoiceNumber)
	}
	ev.Msg("pdf: generación fallida")
	return domain.ErrDocumentGeneration
}

func (r *MarotoRenderer) draw(inv *entity.Invoice, doc *document.Document, layout *document.Layout) ([]byte, error) {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Factura %d", inv.InvoiceNumber), true)
	if r.author != "" {
		b = b.WithAuthor(r.author, true)
	} else if inv.Business.Name != "" {
		b = b.WithAuthor(inv.Business.Name, true)
	}
	if !inv.CreatedAt.IsZero() {
		b = b.WithCreationDate(inv.CreatedAt)
	}

	m := maroto.New(b.Build())
	for _, lp := range layout.Pages {
		pg := page.New()
		var cursor float64
		for _, placed := range lp.Blocks {
			if gap := placed.Y - cursor; gap > 0 {
				pg.Add(row.New(gap))
			}
			pg.Add(r.rows(doc, placed.Block)...)
			cursor = placed.Y + placed.Height
		}
		m.AddPages(pg)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// rows convierte un bloque en filas Maroto cuya altura total es la del bloque.
func (r *MarotoRenderer) rows(doc *document.Document, b document.Block) []core.Row {
	switch b.Kind {
	case document.BlockTitle:
		return []core.Row{titleRow(doc.Title, b.Height)}
	case document.BlockMetadata:
		return []core.Row{metadataRow(doc.Metadata, b.Height)}
	case document.BlockBusiness:
		return businessRows(doc.Business, b.Height)
	case document.BlockBadges:
		return badgeRows(doc.Badges, b.Height)
	case document.BlockItemsCaption:
		return []core.Row{captionRow(doc.Items.Caption, b.Height)}
	case document.BlockTableHeader:
		return []core.Row{tableHeaderRow(doc.Items.Header, b.Height)}
	case document.BlockItemRow:
		return []core.Row{tableDetailRow(doc.Items.Rows[b.Row], b.Height)}
	case document.BlockTotals:
		return totalsRows(doc.Totals, r.metrics)
	case document.BlockFooter:
		return []core.Row{footerRow(doc.Footer, b.Height)}
	}
	panic(fmt.Sprintf("bloque desconocido: %s", b.Kind))
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(t document.Title, h float64) core.Row {
	return row.New(h).Add(col.New(12).Add(
		text.New(t.Text, props.Text{
			Style: fontstyle.Bold, Size: 20, Align: align.Center, Color: colorPrimary, Top: 1,
		}),
	))
}

// metadataRow: Nº factura (izq.) y fecha (der.); debajo la referencia del presupuesto.
func metadataRow(md document.Metadata, h float64) core.Row {
	return row.New(h).Add(
		col.New(6).Add(
			text.New(md.InvoiceNumber, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
			text.New(md.BudgetReference, props.Text{Size: 10, Top: 7}),
		),
		col.New(6).Add(
			text.New(md.Date, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1}),
		),
	)
}

func captionRow(caption string, h float64) core.Row {
	return row.New(h).Add(col.New(12).Add(
		text.New(caption, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
	))
}

// businessRows: rótulo + caja con borde; el nombre en negrita.
func businessRows(bb document.BusinessBlock, h float64) []core.Row {
	box := col.New(12).WithStyle(&props.Cell{
		BackgroundColor: colorBoxFill,
		BorderType:      border.Full,
		BorderColor:     colorBoxBorder,
		BorderThickness: 0.3,
	})
	top := 2.0
	for i, l := range bb.Lines {
		p := props.Text{Size: 9, Top: top, Left: 3}
		if i == 0 {
			p.Style = fontstyle.Bold
		}
		box.Add(text.New(l, p))
		top += 5
	}
	return []core.Row{
		captionRow(bb.Caption, captionHeight),
		row.New(h - captionHeight - boxGap).Add(box),
		row.New(boxGap),
	}
}

// badgeRows: dos cajas lado a lado, tipo de factura y tipo de impuesto.
func badgeRows(tb document.TypeBadges, h float64) []core.Row {
	badge := func(b document.Badge, fill, stroke *props.Color) core.Col {
		return col.New(5).WithStyle(&props.Cell{
			BackgroundColor: fill,
			BorderType:      border.Full,
			BorderColor:     stroke,
			BorderThickness: 0.3,
		}).Add(
			text.New(b.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Left: 3}),
			text.New(b.Value, props.Text{Size: 9, Top: 7, Left: 3}),
		)
	}
	caption := func(s string) core.Col {
		return col.New(5).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}))
	}
	return []core.Row{
		row.New(captionHeight).Add(caption(tb.Invoice.Caption), col.New(2), caption(tb.Tax.Caption)),
		row.New(h - captionHeight - boxGap).Add(
			badge(tb.Invoice, colorInvFill, colorInvBorder),
			col.New(2),
			badge(tb.Tax, colorTaxFill, colorTaxBorder),
		),
		row.New(boxGap),
	}
}

var (
	columnSizes  = []int{1, 4, 2, 1, 2, 2}
	columnAligns = []align.Type{align.Center, align.Left, align.Left, align.Center, align.Right, align.Right}
)

// tableHeaderRow: cabecera de la tabla con fondo oscuro.
func tableHeaderRow(header []string, h float64) core.Row {
	cols := make([]core.Col, 0, len(header))
	for i, label := range header {
		cols = append(cols, col.New(columnSizes[i]).WithStyle(&props.Cell{
			BackgroundColor: colorHeadFill,
		}).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: columnAligns[i],
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(h).Add(cols...)
}

// tableDetailRow: una fila por línea, con rejilla.
func tableDetailRow(cells []string, h float64) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for i, v := range cells {
		switch i {
		case 1:
			v = truncate(v, nameMaxRunes)
		case 2:
			v = truncate(v, catMaxRunes)
		}
		cols = append(cols, col.New(columnSizes[i]).WithStyle(&props.Cell{
			BorderType:      border.Full,
			BorderColor:     colorBoxBorder,
			BorderThickness: 0.2,
		}).Add(text.New(v, props.Text{
			Size: 8, Align: columnAligns[i], Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(h).Add(cols...)
}

// totalsRows: bloque alineado a la derecha; regla antes del TOTAL.
func totalsRows(t document.Totals, m document.Metrics) []core.Row {
	rows := make([]core.Row, 0, len(t.Rows)+1)
	for _, tr := range t.Rows {
		p := props.Text{Size: 9, Align: align.Right, Right: 2, Top: 1}
		switch tr.Emphasis {
		case document.EmphasisWarning:
			p.Color = colorWarning
		case document.EmphasisGrand:
			p.Style = fontstyle.Bold
			p.Size = 11
			p.Top = 0.5
			rows = append(rows, row.New(m.Rule).Add(
				col.New(6),
				col.New(6).Add(line.New(props.Line{Color: colorBlack, Thickness: 0.3})),
			))
		}
		value := p
		value.Right = 1
		rows = append(rows, row.New(m.TotalRow).Add(
			col.New(6),
			col.New(3).Add(text.New(tr.Label, p)),
			col.New(3).Add(text.New(tr.Value, value)),
		))
	}
	return rows
}

func footerRow(f document.Footer, h float64) core.Row {
	return row.New(h).Add(col.New(12).Add(
		text.New(f.Text, props.Text{
			Style: fontstyle.Italic, Size: 8, Align: align.Center, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// truncate recorta a n runas con "..." para que el texto no invada la fila siguiente.
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-3]) + "..."
}
