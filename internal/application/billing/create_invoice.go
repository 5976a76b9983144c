package billing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/invoice"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

// InvoiceUseCase crea facturas a partir de presupuestos y las consulta.
type InvoiceUseCase struct {
	budgets  BudgetSource
	txRunner InvoiceTxRunner
	invoices repository.InvoiceRepository
	metrics  Metrics
	log      zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso. metrics puede ser nil.
func NewInvoiceUseCase(
	budgets BudgetSource,
	txRunner InvoiceTxRunner,
	invoices repository.InvoiceRepository,
	metrics Metrics,
	log zerolog.Logger,
) *InvoiceUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &InvoiceUseCase{
		budgets:  budgets,
		txRunner: txRunner,
		invoices: invoices,
		metrics:  metrics,
		log:      log,
	}
}

// CreateFromBudget valida la selección, trae el presupuesto, ensambla la carga y
// persiste la factura con los snapshots de empresa, tipo de factura y tipo de impuesto.
// Los errores de persistencia se devuelven tal cual, sin reintentos.
func (uc *InvoiceUseCase) CreateFromBudget(ctx context.Context, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	sel := invoice.Selection{
		BusinessID:     in.BusinessID,
		InvoicesTypeID: in.InvoicesTypeID,
		TaxesTypeID:    in.TaxesTypeID,
	}.Normalize()

	// ── 1. Selección completa antes de llamar al servicio externo ─────────────
	missing := sel.Missing()
	if in.BudgetReference <= 0 {
		missing = append([]string{invoice.FieldBudget}, missing...)
	}
	if len(missing) > 0 {
		return nil, &invoice.ValidationError{Kind: domain.ErrMissingSelection, Fields: missing}
	}

	// ── 2. Presupuesto ───────────────────────────────────────────────────────
	budget, err := uc.budgets.GetByReference(ctx, in.BudgetReference)
	if err != nil {
		return nil, fmt.Errorf("obtener presupuesto %d: %w", in.BudgetReference, err)
	}
	if budget.BudgetReference != in.BudgetReference {
		return nil, fmt.Errorf("%w: presupuesto %d", domain.ErrNotFound, in.BudgetReference)
	}

	// ── 3. Ensamblado ────────────────────────────────────────────────────────
	data, err := invoice.Assemble(budget, sel)
	if err != nil {
		return nil, err
	}

	// ── 4. Persistencia con snapshots ────────────────────────────────────────
	inv := &entity.Invoice{
		BusinessID:      data.BusinessID,
		InvoicesTypeID:  data.InvoicesTypeID,
		TaxesTypeID:     data.TaxesTypeID,
		BudgetReference: data.BudgetReference,
		BudgetLines:     data.BudgetLines,
		Price:           data.Price,
	}
	err = uc.txRunner.RunInvoice(ctx, func(repos InvoiceTxRepos) error {
		business, err := repos.Business.GetByID(ctx, data.BusinessID)
		if err != nil {
			return err
		}
		if business == nil {
			return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, data.BusinessID)
		}
		invoicesType, err := repos.InvoicesType.GetByID(ctx, data.InvoicesTypeID)
		if err != nil {
			return err
		}
		if invoicesType == nil {
			return fmt.Errorf("%w: tipo de factura %s", domain.ErrNotFound, data.InvoicesTypeID)
		}
		taxesType, err := repos.TaxesType.GetByID(ctx, data.TaxesTypeID)
		if err != nil {
			return err
		}
		if taxesType == nil {
			return fmt.Errorf("%w: tipo de impuesto %s", domain.ErrNotFound, data.TaxesTypeID)
		}

		inv.Business = business.Snapshot()
		inv.InvoicesType = invoicesType.Snapshot()
		inv.TaxesType = taxesType.Snapshot()
		return repos.Invoices.Create(ctx, inv)
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Int64("budget_reference", in.BudgetReference).
			Str("business_id", data.BusinessID).
			Msg("factura rechazada por persistencia")
		return nil, err
	}

	uc.metrics.InvoiceCreated()
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Int64("invoice_number", inv.InvoiceNumber).
		Int64("budget_reference", inv.BudgetReference).
		Msg("factura creada")
	return inv, nil
}

// List devuelve las facturas ordenadas por número descendente.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.InvoiceListRequest) (*dto.InvoiceListResponse, error) {
	in.DefaultPage()
	items, err := uc.invoices.List(ctx, repository.InvoiceFilter{
		BusinessID:      in.BusinessID,
		BudgetReference: in.BudgetReference,
		Limit:           in.Limit,
		Offset:          in.Offset,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.Invoice{}
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Get devuelve la factura o domain.ErrNotFound.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}
