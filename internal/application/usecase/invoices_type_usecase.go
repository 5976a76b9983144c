package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

// InvoicesTypeUseCase tipos de factura (ordinaria, rectificativa...) con su porcentaje.
type InvoicesTypeUseCase struct {
	repo repository.InvoicesTypeRepository
}

func NewInvoicesTypeUseCase(repo repository.InvoicesTypeRepository) *InvoicesTypeUseCase {
	return &InvoicesTypeUseCase{repo: repo}
}

func (uc *InvoicesTypeUseCase) List(ctx context.Context) ([]*entity.InvoicesType, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.InvoicesType{}
	}
	return list, nil
}

func (uc *InvoicesTypeUseCase) GetByID(ctx context.Context, id string) (*entity.InvoicesType, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (uc *InvoicesTypeUseCase) Create(ctx context.Context, in dto.InvoicesTypeRequest) (*entity.InvoicesType, error) {
	errs := FieldErrors{}
	if in.Percentage == nil {
		errs["percentage"] = "El porcentaje es obligatorio"
	}
	now := time.Now()
	t := &entity.InvoicesType{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	applyInvoicesType(t, in)
	validateInvoicesType(t, errs)
	if err := errs.err(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *InvoicesTypeUseCase) Update(ctx context.Context, id string, in dto.InvoicesTypeRequest) (*entity.InvoicesType, error) {
	t, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInvoicesType(t, in)
	errs := FieldErrors{}
	validateInvoicesType(t, errs)
	if err := errs.err(); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *InvoicesTypeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyInvoicesType(t *entity.InvoicesType, in dto.InvoicesTypeRequest) {
	if in.Invoices != nil {
		t.Invoices = strings.TrimSpace(*in.Invoices)
	}
	if in.Percentage != nil {
		t.Percentage = *in.Percentage
	}
}

func validateInvoicesType(t *entity.InvoicesType, errs FieldErrors) {
	errs.required("invoices", t.Invoices, "El nombre es obligatorio")
	if _, ok := errs["percentage"]; !ok {
		errs.percentage("percentage", t.Percentage, "El porcentaje debe estar entre 0 y 100")
	}
}
