package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// Paginación del listado de presupuestos.
const (
	DefaultBudgetPageSize = 10
	MaxBudgetPageSize     = 100
)

// BudgetUseCase lista presupuestos del servicio externo con los campos de presentación resueltos.
type BudgetUseCase struct {
	source BudgetSource
	labels map[string]string
}

// NewBudgetUseCase labels traduce estado → etiqueta visible (claves en minúsculas).
func NewBudgetUseCase(source BudgetSource, labels map[string]string) *BudgetUseCase {
	return &BudgetUseCase{source: source, labels: labels}
}

// List aplica los filtros recortados y la paginación por defecto.
func (uc *BudgetUseCase) List(ctx context.Context, in dto.BudgetListRequest) (*dto.BudgetListResponse, error) {
	q := BudgetQuery{
		Page:     in.Page,
		PageSize: in.PageSize,
		Client:   strings.TrimSpace(in.Client),
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultBudgetPageSize
	}
	if q.PageSize > MaxBudgetPageSize {
		q.PageSize = MaxBudgetPageSize
	}
	if ref := strings.TrimSpace(in.BudgetReference); ref != "" {
		n, err := strconv.ParseInt(ref, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: budget_reference %q", domain.ErrInvalidInput, ref)
		}
		q.BudgetReference = n
	}

	page, err := uc.source.List(ctx, q)
	if err != nil {
		return nil, err
	}

	out := &dto.BudgetListResponse{
		Items:    make([]dto.BudgetItem, 0, len(page.Budgets)),
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    page.Total,
	}
	for i := range page.Budgets {
		out.Items = append(out.Items, uc.item(&page.Budgets[i]))
	}
	return out, nil
}

// Get presupuesto por referencia.
func (uc *BudgetUseCase) Get(ctx context.Context, reference int64) (*dto.BudgetItem, error) {
	if reference <= 0 {
		return nil, fmt.Errorf("%w: budget_reference", domain.ErrInvalidInput)
	}
	b, err := uc.source.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	item := uc.item(b)
	return &item, nil
}

// StatusLabel etiqueta visible del estado; sin entrada configurada se muestra el estado tal cual.
func (uc *BudgetUseCase) StatusLabel(status string) string {
	if label, ok := uc.labels[strings.ToLower(strings.TrimSpace(status))]; ok {
		return label
	}
	return status
}

func (uc *BudgetUseCase) item(b *entity.Budget) dto.BudgetItem {
	return dto.BudgetItem{
		Budget:      *b,
		ClientName:  b.ClientName(),
		StatusLabel: uc.StatusLabel(b.Status),
	}
}
