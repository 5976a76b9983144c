package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// ReferenceService forma común de los casos de uso de datos de referencia.
type ReferenceService[T any, R any] interface {
	List(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in R) (*T, error)
	Update(ctx context.Context, id string, in R) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ReferenceHandler CRUD HTTP de empresas, tipos de impuesto y tipos de factura.
type ReferenceHandler[T any, R any] struct {
	svc ReferenceService[T, R]
}

type (
	BusinessHandler     = ReferenceHandler[entity.Business, dto.BusinessRequest]
	TaxesTypeHandler    = ReferenceHandler[entity.TaxesType, dto.TaxesTypeRequest]
	InvoicesTypeHandler = ReferenceHandler[entity.InvoicesType, dto.InvoicesTypeRequest]
)

func NewReferenceHandler[T any, R any](svc ReferenceService[T, R]) *ReferenceHandler[T, R] {
	return &ReferenceHandler[T, R]{svc: svc}
}

// List GET /
func (h *ReferenceHandler[T, R]) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// GetByID GET /:id
func (h *ReferenceHandler[T, R]) GetByID(c *fiber.Ctx) error {
	item, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Create POST / (admin)
func (h *ReferenceHandler[T, R]) Create(c *fiber.Ctx) error {
	var in R
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update PUT /:id (admin); solo cambia los campos enviados.
func (h *ReferenceHandler[T, R]) Update(c *fiber.Ctx) error {
	var in R
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Delete DELETE /:id (admin)
func (h *ReferenceHandler[T, R]) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
