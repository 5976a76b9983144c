package repository

import (
	"context"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// InvoiceFilter filtros opcionales del listado; valores cero no filtran.
type InvoiceFilter struct {
	BusinessID      string
	BudgetReference int64
	Limit           int
	Offset          int
}

// InvoiceRepository define el puerto de persistencia para Invoice.
// No hay Update de snapshots, líneas ni precio: la única escritura posterior es el pdf_url.
type InvoiceRepository interface {
	// Create persiste la factura y rellena ID, InvoiceNumber, CreatedAt y UpdatedAt.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	AttachPDFURL(ctx context.Context, id, url string) error
}
