package repository

import (
	"context"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// TaxesTypeRepository define el puerto de persistencia para TaxesType.
type TaxesTypeRepository interface {
	Create(ctx context.Context, t *entity.TaxesType) error
	GetByID(ctx context.Context, id string) (*entity.TaxesType, error)
	Update(ctx context.Context, t *entity.TaxesType) error
	List(ctx context.Context) ([]*entity.TaxesType, error)
	Delete(ctx context.Context, id string) error
}
