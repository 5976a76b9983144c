package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/billing"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/invoice"
)

// ── render ──

type countingRenderer struct {
	calls atomic.Int32
	fail  int64 // número de factura que falla
}

func (r *countingRenderer) Render(_ context.Context, inv *entity.Invoice) ([]byte, string, error) {
	r.calls.Add(1)
	if inv.InvoiceNumber == r.fail {
		return nil, "", domain.ErrDocumentGeneration
	}
	return []byte("%PDF-" + inv.ID), inv.FileName(), nil
}

func writeInvoiceJSON(t *testing.T, dir string, inv entity.Invoice) string {
	t.Helper()
	raw, err := json.Marshal(inv)
	require.NoError(t, err)
	p := filepath.Join(dir, inv.ID+".json")
	require.NoError(t, os.WriteFile(p, raw, 0o644))
	return p
}

func TestRenderFiles_EscribeUnPDFPorFactura(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "pdf")
	files := []string{
		writeInvoiceJSON(t, in, entity.Invoice{ID: "a", InvoiceNumber: 1}),
		writeInvoiceJSON(t, in, entity.Invoice{ID: "b", InvoiceNumber: 2}),
		writeInvoiceJSON(t, in, entity.Invoice{ID: "c", InvoiceNumber: 3}),
	}
	r := &countingRenderer{}

	written, err := renderFiles(context.Background(), r, files, out, 2, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(out, "factura_1.pdf"),
		filepath.Join(out, "factura_2.pdf"),
		filepath.Join(out, "factura_3.pdf"),
	}, written)
	got, err := os.ReadFile(filepath.Join(out, "factura_2.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-b", string(got))
	assert.Equal(t, int32(3), r.calls.Load())
}

func TestRenderFiles_FalloDevuelveError(t *testing.T) {
	in := t.TempDir()
	files := []string{writeInvoiceJSON(t, in, entity.Invoice{ID: "a", InvoiceNumber: 9})}

	_, err := renderFiles(context.Background(), &countingRenderer{fail: 9}, files, t.TempDir(), 1, zerolog.Nop())
	assert.True(t, errors.Is(err, domain.ErrDocumentGeneration))
}

func TestRenderFiles_JSONInvalido(t *testing.T) {
	p := filepath.Join(t.TempDir(), "roto.json")
	require.NoError(t, os.WriteFile(p, []byte("{"), 0o644))

	_, err := renderFiles(context.Background(), &countingRenderer{}, []string{p}, t.TempDir(), 0, zerolog.Nop())
	assert.Error(t, err)
}

func TestRenderFiles_MismoNumeroDeFacturaSeRechaza(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	files := []string{
		writeInvoiceJSON(t, in, entity.Invoice{ID: "a", InvoiceNumber: 7}),
		writeInvoiceJSON(t, in, entity.Invoice{ID: "b", InvoiceNumber: 7}),
	}
	r := &countingRenderer{}

	written, err := renderFiles(context.Background(), r, files, out, 2, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "factura_7.pdf")
	assert.Empty(t, written)
	assert.Zero(t, r.calls.Load(), "no se renderiza nada si hay colisión")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// ── assemble ──

type oneBudget struct{ b *entity.Budget }

func (s oneBudget) List(context.Context, billing.BudgetQuery) (*billing.BudgetPage, error) { return nil, nil }

func (s oneBudget) GetByReference(_ context.Context, ref int64) (*entity.Budget, error) {
	if s.b == nil || s.b.BudgetReference != ref {
		return nil, domain.ErrNotFound
	}
	return s.b, nil
}

const budgetJSON = `{
  "budgetReference": 1042,
  "client": "Ana",
  "price": {"total": "121", "subTotal": "100", "vat": "21", "withIVA": true},
  "budgetLines": [{"id": "l1", "elemento": "Castillo hinchable", "unidades": "2", "precioUd": "50", "totalPrice": "100"}]
}`

func TestAssemble_DesdeFichero(t *testing.T) {
	p := filepath.Join(t.TempDir(), "presupuesto.json")
	require.NoError(t, os.WriteFile(p, []byte(budgetJSON), 0o644))

	sel := invoice.Selection{BusinessID: "b1", InvoicesTypeID: "it1", TaxesTypeID: "tt1"}
	data, err := assemble(context.Background(), nil, p, 0, sel)
	require.NoError(t, err)

	assert.Equal(t, int64(1042), data.BudgetReference)
	assert.Equal(t, "b1", data.BusinessID)
	require.Len(t, data.BudgetLines, 1)
	assert.Equal(t, "Castillo hinchable", data.BudgetLines[0].Elemento)
	assert.Equal(t, "121", data.Price.Total.String())
}

func TestAssemble_SeleccionIncompleta(t *testing.T) {
	_, err := assemble(context.Background(), nil, "no-se-lee.json", 0, invoice.Selection{BusinessID: "b1"})

	var verr *invoice.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{invoice.FieldInvoicesTypeID, invoice.FieldTaxesTypeID}, verr.Fields)
}

func TestAssemble_DesdeServicio(t *testing.T) {
	var b entity.Budget
	require.NoError(t, json.Unmarshal([]byte(budgetJSON), &b))
	sel := invoice.Selection{BusinessID: "b1", InvoicesTypeID: "it1", TaxesTypeID: "tt1"}

	data, err := assemble(context.Background(), oneBudget{b: &b}, "", 1042, sel)
	require.NoError(t, err)
	assert.Equal(t, int64(1042), data.BudgetReference)

	_, err = assemble(context.Background(), oneBudget{b: &b}, "", 7, sel)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
