package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Snapshots, líneas y precio se guardan como JSONB y no se vuelven a escribir.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, invoice_number, business_id, invoices_type_id, taxes_type_id, budget_reference,
	business_snapshot, invoices_type_snapshot, taxes_type_snapshot, budgetlines, price,
	pdf_url, created_at, updated_at`

// Create persiste la factura. invoice_number lo asigna la base de datos (IDENTITY).
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	business, err := json.Marshal(inv.Business)
	if err != nil {
		return fmt.Errorf("encode business snapshot: %w", err)
	}
	invoicesType, err := json.Marshal(inv.InvoicesType)
	if err != nil {
		return fmt.Errorf("encode invoices_type snapshot: %w", err)
	}
	taxesType, err := json.Marshal(inv.TaxesType)
	if err != nil {
		return fmt.Errorf("encode taxes_type snapshot: %w", err)
	}
	lines := inv.BudgetLines
	if lines == nil {
		lines = []entity.BudgetLine{}
	}
	budgetLines, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode budgetlines: %w", err)
	}
	price, err := json.Marshal(inv.Price)
	if err != nil {
		return fmt.Errorf("encode price: %w", err)
	}

	query := `
		INSERT INTO invoices (
			id, business_id, invoices_type_id, taxes_type_id, budget_reference,
			business_snapshot, invoices_type_snapshot, taxes_type_snapshot, budgetlines, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING invoice_number, created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		inv.ID, inv.BusinessID, inv.InvoicesTypeID, inv.TaxesTypeID, inv.BudgetReference,
		business, invoicesType, taxesType, budgetLines, price,
	).Scan(&inv.InvoiceNumber, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return storeError("insert invoice", err)
	}
	return nil
}

// GetByID obtiene una factura completa por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List devuelve facturas por número descendente, opcionalmente filtradas.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var (
		where []string
		args  []any
	)
	if f.BusinessID != "" {
		if !isUUID(f.BusinessID) {
			return []*entity.Invoice{}, nil
		}
		args = append(args, f.BusinessID)
		where = append(where, fmt.Sprintf("business_id = $%d", len(args)))
	}
	if f.BudgetReference > 0 {
		args = append(args, f.BudgetReference)
		where = append(where, fmt.Sprintf("budget_reference = $%d", len(args)))
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY invoice_number DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// AttachPDFURL única escritura posterior a la creación.
func (r *InvoiceRepo) AttachPDFURL(ctx context.Context, id, url string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `UPDATE invoices SET pdf_url = $2, updated_at = now() WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("attach pdf_url: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var (
		inv                                      entity.Invoice
		business, invoicesType, taxesType, lines []byte
		price                                    []byte
		pdfURL                                   *string
	)
	if err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.BusinessID, &inv.InvoicesTypeID, &inv.TaxesTypeID, &inv.BudgetReference,
		&business, &invoicesType, &taxesType, &lines, &price,
		&pdfURL, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	for _, c := range []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"business_snapshot", business, &inv.Business},
		{"invoices_type_snapshot", invoicesType, &inv.InvoicesType},
		{"taxes_type_snapshot", taxesType, &inv.TaxesType},
		{"budgetlines", lines, &inv.BudgetLines},
		{"price", price, &inv.Price},
	} {
		if len(c.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(c.raw, c.dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
	}
	inv.PDFURL = derefString(pdfURL)
	return &inv, nil
}
