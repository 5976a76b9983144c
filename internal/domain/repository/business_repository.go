package repository

import (
	"context"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// BusinessRepository define el puerto de persistencia para Business (DIP).
// La implementación vive en infrastructure. GetByID devuelve (nil, nil) si no existe.
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
	List(ctx context.Context) ([]*entity.Business, error)
	Delete(ctx context.Context, id string) error
}
