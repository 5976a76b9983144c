package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
)

// BudgetService listado de presupuestos del servicio externo.
type BudgetService interface {
	List(ctx context.Context, in dto.BudgetListRequest) (*dto.BudgetListResponse, error)
	Get(ctx context.Context, reference int64) (*dto.BudgetItem, error)
}

// BudgetHandler solo lectura; los presupuestos no se modifican desde aquí.
type BudgetHandler struct {
	svc BudgetService
}

func NewBudgetHandler(svc BudgetService) *BudgetHandler {
	return &BudgetHandler{svc: svc}
}

// List GET /api/budgets?page=&page_size=&budget_reference=&client=
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	var in dto.BudgetListRequest
	if err := c.QueryParser(&in); err != nil {
		return writeError(c, fmt.Errorf("%w: query", domain.ErrInvalidInput))
	}
	out, err := h.svc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByReference GET /api/budgets/:reference
func (h *BudgetHandler) GetByReference(c *fiber.Ctx) error {
	ref, err := strconv.ParseInt(c.Params("reference"), 10, 64)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: referencia %q", domain.ErrInvalidInput, c.Params("reference")))
	}
	out, err := h.svc.Get(c.UserContext(), ref)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
