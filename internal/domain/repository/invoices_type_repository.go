package repository

import (
	"context"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// InvoicesTypeRepository define el puerto de persistencia para InvoicesType.
type InvoicesTypeRepository interface {
	Create(ctx context.Context, t *entity.InvoicesType) error
	GetByID(ctx context.Context, id string) (*entity.InvoicesType, error)
	Update(ctx context.Context, t *entity.InvoicesType) error
	List(ctx context.Context) ([]*entity.InvoicesType, error)
	Delete(ctx context.Context, id string) error
}
