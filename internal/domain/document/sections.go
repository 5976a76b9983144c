// Package document describe una factura como secuencia declarativa de secciones
// y las reparte en páginas. No depende de ninguna librería de PDF.
package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/money"
)

// DateLayout formato dd/mm/aaaa.
const DateLayout = "02/01/2006"

// Textos fijos del documento.
const (
	TitleText       = "FACTURA"
	BusinessCaption = "DATOS DE LA EMPRESA"
	InvoiceCaption  = "TIPO DE FACTURA"
	TaxCaption      = "TIPO DE IMPUESTO"
	ItemsCaption    = "LÍNEAS DE PRESUPUESTO"
	FooterPrefix    = "Factura generada el "
)

// ItemHeader columnas de la tabla de líneas.
var ItemHeader = []string{"#", "Nombre", "Categoría", "Unidades", "Precio Ud.", "Total"}

// Emphasis estilo de una fila de totales.
type Emphasis int

const (
	EmphasisNormal Emphasis = iota
	EmphasisWarning
	EmphasisGrand
)

// Title cabecera centrada.
type Title struct {
	Text string
}

// Metadata número de factura (izq.), fecha (der.) y referencia del presupuesto.
type Metadata struct {
	InvoiceNumber   string
	Date            string
	BudgetReference string
}

// BusinessBlock caja con los datos de la empresa. Lines[0] es el nombre (negrita).
type BusinessBlock struct {
	Caption string
	Lines   []string
}

// Badge caja con nombre y porcentaje.
type Badge struct {
	Caption string
	Name    string
	Value   string
}

// TypeBadges tipo de factura (izq.) y tipo de impuesto (der.).
type TypeBadges struct {
	Invoice Badge
	Tax     Badge
}

// ItemTable tabla de líneas; Header se repite en cada página con filas.
type ItemTable struct {
	Caption string
	Header  []string
	Rows    [][]string
}

// TotalRow fila del bloque de totales.
type TotalRow struct {
	Label    string
	Value    string
	Emphasis Emphasis
}

// Totals filas en orden fijo; la regla horizontal va justo antes de la fila EmphasisGrand.
type Totals struct {
	Rows []TotalRow
}

// Footer nota al pie de la última página.
type Footer struct {
	Text string
}

// Document secciones de una factura en orden de aparición.
type Document struct {
	FileName string
	Title    Title
	Metadata Metadata
	Business BusinessBlock
	Badges   TypeBadges
	Items    ItemTable
	Totals   Totals
	Footer   Footer
}

// Options parámetros de presentación.
type Options struct {
	Formatter *money.Formatter
	Location  *time.Location
}

// Build construye las secciones de la factura. Es pura: mismo Invoice, mismo Document.
// Solo falla con datos que no pueden representar una factura emitida.
func Build(inv *entity.Invoice, opts Options) (*Document, error) {
	if err := checkInvoice(inv); err != nil {
		return nil, err
	}
	f := opts.Formatter
	if f == nil {
		f = money.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	date := formatDate(inv.CreatedAt, loc)

	return &Document{
		FileName: inv.FileName(),
		Title:    Title{Text: TitleText},
		Metadata: Metadata{
			InvoiceNumber:   fmt.Sprintf("Nº Factura: %d", inv.InvoiceNumber),
			Date:            "Fecha: " + date,
			BudgetReference: fmt.Sprintf("Nº Presupuesto: %d", inv.BudgetReference),
		},
		Business: businessBlock(inv.Business),
		Badges: TypeBadges{
			Invoice: Badge{Caption: InvoiceCaption, Name: orDash(inv.InvoicesType.Invoices), Value: f.Percent(inv.InvoicesType.Percentage)},
			Tax:     Badge{Caption: TaxCaption, Name: orDash(inv.TaxesType.Name), Value: f.Percent(inv.TaxesType.Tax)},
		},
		Items:  itemTable(inv.BudgetLines, f),
		Totals: totals(inv.Price, f),
		Footer: Footer{Text: FooterPrefix + date},
	}, nil
}

func checkInvoice(inv *entity.Invoice) error {
	if inv == nil {
		return fmt.Errorf("document: factura nula")
	}
	if inv.InvoiceNumber <= 0 {
		return fmt.Errorf("document: número de factura inválido: %d", inv.InvoiceNumber)
	}
	if inv.Price.SubTotal.IsNegative() || inv.Price.Total.IsNegative() {
		return fmt.Errorf("document: precio mal formado (subtotal %s, total %s)", inv.Price.SubTotal, inv.Price.Total)
	}
	return nil
}

func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(DateLayout)
}

// businessBlock: un campo vacío es una línea vacía, nunca un marcador.
func businessBlock(b entity.BusinessSnapshot) BusinessBlock {
	return BusinessBlock{
		Caption: BusinessCaption,
		Lines: []string{
			clean(b.Name),
			"NIF: " + clean(b.NIF),
			clean(b.Address),
			postalLine(b.PostalCode, b.Locality, b.Province),
			"Teléfono: " + clean(b.Phone),
		},
	}
}

// postalLine "{cp} {localidad}, {provincia}" sin separadores colgando.
func postalLine(postalCode, locality, province string) string {
	head := strings.TrimSpace(strings.Join(nonEmpty(clean(postalCode), clean(locality)), " "))
	return strings.Join(nonEmpty(head, clean(province)), ", ")
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// clean descarta los literales que otros sistemas usan como ausencia.
func clean(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "undefined", "null", "<nil>", "nil":
		return ""
	}
	return s
}

func orDash(s string) string {
	if s = clean(s); s == "" {
		return "-"
	}
	return s
}

func itemTable(lines []entity.BudgetLine, f *money.Formatter) ItemTable {
	rows := make([][]string, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			orDash(l.DisplayName()),
			orDash(l.Categoria),
			units(l.Unidades),
			f.Format(l.PrecioUd),
			f.Format(l.TotalPrice),
		})
	}
	return ItemTable{Caption: ItemsCaption, Header: append([]string(nil), ItemHeader...), Rows: rows}
}

// units: ausente se muestra como "1"; cero se imprime tal cual.
func units(u decimal.NullDecimal) string {
	if !u.Valid {
		return "1"
	}
	return u.Decimal.String()
}

func totals(p entity.Price, f *money.Formatter) Totals {
	rows := []TotalRow{{Label: "Subtotal:", Value: f.Format(p.SubTotal)}}
	if p.HasVAT() {
		rows = append(rows, TotalRow{Label: "IVA:", Value: f.Format(p.VAT.Decimal)})
	}
	if p.Extras.IsPositive() {
		rows = append(rows, TotalRow{Label: "Extras:", Value: f.Format(p.Extras)})
	}
	if p.UserDiscount.IsPositive() {
		rows = append(rows, TotalRow{Label: "Descuento:", Value: "-" + f.Format(p.UserDiscount), Emphasis: EmphasisWarning})
	}
	rows = append(rows, TotalRow{Label: "TOTAL:", Value: f.Format(p.Total), Emphasis: EmphasisGrand})
	return Totals{Rows: rows}
}
