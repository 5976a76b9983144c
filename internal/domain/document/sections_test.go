package document_test

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/document"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/money"
)

func strPtr(s string) *string { return &s }

func madrid(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	return loc
}

// facturaDeEjemplo: presupuesto #12345, Acme S.L., dos líneas, IVA 5,36.
func facturaDeEjemplo() *entity.Invoice {
	return &entity.Invoice{
		ID:              "inv-1",
		InvoiceNumber:   7,
		BudgetReference: 12345,
		Business: entity.BusinessSnapshot{
			Name:       "Acme S.L.",
			NIF:        "B12345678",
			Address:    "Calle Mayor 1",
			PostalCode: "28001",
			Locality:   "Madrid",
			Province:   "Madrid",
			Phone:      "600111222",
		},
		InvoicesType: entity.InvoicesTypeSnapshot{Invoices: "Estándar", Percentage: decimal.NewFromInt(21)},
		TaxesType:    entity.TaxesTypeSnapshot{Name: "IVA General", Tax: decimal.NewFromInt(21)},
		BudgetLines: []entity.BudgetLine{
			{Nombre: strPtr("A"), Categoria: "Hinchables", Unidades: decimal.NewNullDecimal(decimal.NewFromInt(2)),
				PrecioUd: decimal.RequireFromString("10.00"), TotalPrice: decimal.RequireFromString("20.00")},
			{Nombre: strPtr("B"), Categoria: "Mobiliario",
				PrecioUd: decimal.RequireFromString("5.50"), TotalPrice: decimal.RequireFromString("5.50")},
		},
		Price: entity.Price{
			SubTotal: decimal.RequireFromString("25.50"),
			VAT:      decimal.NewNullDecimal(decimal.RequireFromString("5.36")),
			Total:    decimal.RequireFromString("30.86"),
		},
		CreatedAt: time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC),
	}
}

func build(t *testing.T, inv *entity.Invoice) *document.Document {
	t.Helper()
	doc, err := document.Build(inv, document.Options{Formatter: money.Default(), Location: madrid(t)})
	require.NoError(t, err)
	return doc
}

func labels(doc *document.Document) []string {
	out := make([]string, 0, len(doc.Totals.Rows))
	for _, r := range doc.Totals.Rows {
		out = append(out, r.Label)
	}
	return out
}

// ── Escenario de referencia ──────────────────────────────────────────────────

func TestBuild_EscenarioEjemplo(t *testing.T) {
	doc := build(t, facturaDeEjemplo())

	assert.Equal(t, "FACTURA", doc.Title.Text)
	assert.Equal(t, "factura_7.pdf", doc.FileName)
	assert.Equal(t, "Nº Factura: 7", doc.Metadata.InvoiceNumber)
	// 23:30 UTC del 5 de marzo ya es 6 de marzo en Madrid.
	assert.Equal(t, "Fecha: 06/03/2024", doc.Metadata.Date)
	assert.Equal(t, "Nº Presupuesto: 12345", doc.Metadata.BudgetReference)

	assert.Equal(t, []string{
		"Acme S.L.",
		"NIF: B12345678",
		"Calle Mayor 1",
		"28001 Madrid, Madrid",
		"Teléfono: 600111222",
	}, doc.Business.Lines)

	assert.Equal(t, "Estándar", doc.Badges.Invoice.Name)
	assert.Equal(t, "21%", doc.Badges.Invoice.Value)
	assert.Equal(t, "IVA General", doc.Badges.Tax.Name)
	assert.Equal(t, "21%", doc.Badges.Tax.Value)

	assert.Equal(t, document.ItemHeader, doc.Items.Header)
	assert.Equal(t, [][]string{
		{"1", "A", "Hinchables", "2", "10,00 €", "20,00 €"},
		{"2", "B", "Mobiliario", "1", "5,50 €", "5,50 €"},
	}, doc.Items.Rows)

	assert.Equal(t, []document.TotalRow{
		{Label: "Subtotal:", Value: "25,50 €"},
		{Label: "IVA:", Value: "5,36 €"},
		{Label: "TOTAL:", Value: "30,86 €", Emphasis: document.EmphasisGrand},
	}, doc.Totals.Rows)

	assert.Equal(t, "Factura generada el 06/03/2024", doc.Footer.Text)

	layout, err := document.Paginate(doc, document.DefaultMetrics())
	require.NoError(t, err)
	assert.Len(t, layout.Pages, 1)
}

// ── Filas de totales ─────────────────────────────────────────────────────────

func TestBuild_TotalesSinIVANiExtrasNiDescuento(t *testing.T) {
	for name, vat := range map[string]decimal.NullDecimal{
		"iva ausente": {},
		"iva cero":    decimal.NewNullDecimal(decimal.Zero),
	} {
		t.Run(name, func(t *testing.T) {
			inv := facturaDeEjemplo()
			inv.Price = entity.Price{SubTotal: decimal.NewFromInt(100), Total: decimal.NewFromInt(100), VAT: vat}

			doc := build(t, inv)
			assert.Equal(t, []string{"Subtotal:", "TOTAL:"}, labels(doc))
		})
	}
}

func TestBuild_TotalesCompletosEnOrdenFijo(t *testing.T) {
	inv := facturaDeEjemplo()
	inv.Price = entity.Price{
		SubTotal:     decimal.NewFromInt(1000),
		VAT:          decimal.NewNullDecimal(decimal.NewFromInt(210)),
		Extras:       decimal.NewFromInt(50),
		UserDiscount: decimal.RequireFromString("12.5"),
		Total:        decimal.RequireFromString("1247.5"),
	}

	doc := build(t, inv)
	assert.Equal(t, []string{"Subtotal:", "IVA:", "Extras:", "Descuento:", "TOTAL:"}, labels(doc))

	discount := doc.Totals.Rows[3]
	assert.Equal(t, "-12,50 €", discount.Value)
	assert.Equal(t, document.EmphasisWarning, discount.Emphasis)
	assert.Equal(t, "1247,50 €", doc.Totals.Rows[4].Value)
}

func TestBuild_ExtrasYDescuentoNegativosNoSeMuestran(t *testing.T) {
	inv := facturaDeEjemplo()
	inv.Price.Extras = decimal.NewFromInt(-5)
	inv.Price.UserDiscount = decimal.NewFromInt(-5)

	doc := build(t, inv)
	assert.Equal(t, []string{"Subtotal:", "IVA:", "TOTAL:"}, labels(doc))
}

// ── Campos ausentes ──────────────────────────────────────────────────────────

func TestBuild_EmpresaConCamposVacios(t *testing.T) {
	inv := facturaDeEjemplo()
	inv.Business = entity.BusinessSnapshot{Name: "Acme S.L.", NIF: "null", Locality: "Madrid", Phone: "undefined"}

	doc := build(t, inv)
	require.Len(t, doc.Business.Lines, 5)
	assert.Equal(t, []string{"Acme S.L.", "NIF: ", "", "Madrid", "Teléfono: "}, doc.Business.Lines)

	for _, line := range doc.Business.Lines {
		lower := strings.ToLower(line)
		for _, bad := range []string{"undefined", "null", "<nil>"} {
			assert.NotContains(t, lower, bad)
		}
	}
}

func TestBuild_LineaPostal(t *testing.T) {
	cases := []struct {
		cp, loc, prov string
		want          string
	}{
		{"28001", "Madrid", "Madrid", "28001 Madrid, Madrid"},
		{"", "Madrid", "Madrid", "Madrid, Madrid"},
		{"28001", "", "Madrid", "28001, Madrid"},
		{"28001", "Madrid", "", "28001 Madrid"},
		{"", "", "Madrid", "Madrid"},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		inv := facturaDeEjemplo()
		inv.Business.PostalCode, inv.Business.Locality, inv.Business.Province = tc.cp, tc.loc, tc.prov
		doc := build(t, inv)
		assert.Equal(t, tc.want, doc.Business.Lines[3])
	}
}

func TestBuild_LineasSinNombreUnidadesCeroOAusentes(t *testing.T) {
	inv := facturaDeEjemplo()
	inv.BudgetLines = []entity.BudgetLine{
		{Elemento: "Elemento X", Unidades: decimal.NewNullDecimal(decimal.Zero)},
		{},
	}
	inv.TaxesType.Name = ""

	doc := build(t, inv)
	assert.Equal(t, []string{"1", "Elemento X", "-", "0", "0,00 €", "0,00 €"}, doc.Items.Rows[0])
	assert.Equal(t, []string{"2", "-", "-", "1", "0,00 €", "0,00 €"}, doc.Items.Rows[1])
	assert.Equal(t, "-", doc.Badges.Tax.Name)
}

func TestBuild_FechaAusente(t *testing.T) {
	inv := facturaDeEjemplo()
	inv.CreatedAt = time.Time{}

	doc := build(t, inv)
	assert.Equal(t, "Fecha: ", doc.Metadata.Date)
	assert.NotContains(t, doc.Footer.Text, "0001")
}

// ── Datos mal formados ───────────────────────────────────────────────────────

func TestBuild_FacturaMalFormada(t *testing.T) {
	_, err := document.Build(nil, document.Options{})
	assert.Error(t, err)

	inv := facturaDeEjemplo()
	inv.InvoiceNumber = 0
	_, err = document.Build(inv, document.Options{})
	assert.Error(t, err)

	inv = facturaDeEjemplo()
	inv.Price.Total = decimal.NewFromInt(-1)
	_, err = document.Build(inv, document.Options{})
	assert.Error(t, err)
}

func TestBuild_Determinista(t *testing.T) {
	a := build(t, facturaDeEjemplo())
	b := build(t, facturaDeEjemplo())
	assert.Equal(t, a, b)
}
