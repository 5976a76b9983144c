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

// TaxesTypeUseCase tipos de impuesto (IVA general, reducido...).
type TaxesTypeUseCase struct {
	repo repository.TaxesTypeRepository
}

func NewTaxesTypeUseCase(repo repository.TaxesTypeRepository) *TaxesTypeUseCase {
	return &TaxesTypeUseCase{repo: repo}
}

func (uc *TaxesTypeUseCase) List(ctx context.Context) ([]*entity.TaxesType, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.TaxesType{}
	}
	return list, nil
}

func (uc *TaxesTypeUseCase) GetByID(ctx context.Context, id string) (*entity.TaxesType, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// Create exige nombre y tax; tax en [0, 100].
func (uc *TaxesTypeUseCase) Create(ctx context.Context, in dto.TaxesTypeRequest) (*entity.TaxesType, error) {
	errs := FieldErrors{}
	if in.Tax == nil {
		errs["tax"] = "El impuesto es obligatorio"
	}
	now := time.Now()
	t := &entity.TaxesType{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	applyTaxesType(t, in)
	validateTaxesType(t, errs)
	if err := errs.err(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *TaxesTypeUseCase) Update(ctx context.Context, id string, in dto.TaxesTypeRequest) (*entity.TaxesType, error) {
	t, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTaxesType(t, in)
	errs := FieldErrors{}
	validateTaxesType(t, errs)
	if err := errs.err(); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *TaxesTypeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyTaxesType(t *entity.TaxesType, in dto.TaxesTypeRequest) {
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Tax != nil {
		t.Tax = *in.Tax
	}
}

func validateTaxesType(t *entity.TaxesType, errs FieldErrors) {
	errs.required("name", t.Name, "El nombre es obligatorio")
	if _, ok := errs["tax"]; !ok {
		errs.percentage("tax", t.Tax, "El impuesto debe estar entre 0 y 100")
	}
}
