package billing

import (
	"context"
	"time"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

// InvoiceTxRepos repositorios atados a una misma transacción.
type InvoiceTxRepos struct {
	Business     repository.BusinessRepository
	InvoicesType repository.InvoicesTypeRepository
	TaxesType    repository.TaxesTypeRepository
	Invoices     repository.InvoiceRepository
}

// InvoiceTxRunner ejecuta fn dentro de una transacción. Si fn devuelve error se hace rollback.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(repos InvoiceTxRepos) error) error
}

// BudgetQuery filtros del listado de presupuestos del servicio externo. Page empieza en 1.
type BudgetQuery struct {
	PageSize        int
	Page            int
	BudgetReference int64
	Client          string
}

// BudgetPage una página de presupuestos y el total sin paginar.
type BudgetPage struct {
	Budgets []entity.Budget `json:"budgets"`
	Total   int             `json:"total"`
}

// BudgetSource puerto hacia el servicio de presupuestos.
// GetByReference devuelve domain.ErrNotFound si no hay presupuesto con esa referencia.
type BudgetSource interface {
	List(ctx context.Context, q BudgetQuery) (*BudgetPage, error)
	GetByReference(ctx context.Context, reference int64) (*entity.Budget, error)
}

// InvoiceRenderer produce el PDF de una factura. Ante cualquier fallo devuelve
// domain.ErrDocumentGeneration (o el error del contexto) y bytes nil.
type InvoiceRenderer interface {
	Render(ctx context.Context, inv *entity.Invoice) (pdfBytes []byte, filename string, err error)
}

// DocumentStorage guarda un documento bajo key y devuelve su URL pública.
type DocumentStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
}

// Metrics observaciones del flujo de facturación.
type Metrics interface {
	InvoiceCreated()
	ObserveRender(d time.Duration, err error)
	ObserveUpload(err error)
}

// NopMetrics descarta las observaciones.
type NopMetrics struct{}

func (NopMetrics) InvoiceCreated()                   {}
func (NopMetrics) ObserveRender(time.Duration, error) {}
func (NopMetrics) ObserveUpload(error)                {}
