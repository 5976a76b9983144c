package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// InvoiceService lo que el handler necesita del caso de uso de facturas.
type InvoiceService interface {
	CreateFromBudget(ctx context.Context, in dto.CreateInvoiceRequest) (*entity.Invoice, error)
	List(ctx context.Context, in dto.InvoiceListRequest) (*dto.InvoiceListResponse, error)
	Get(ctx context.Context, id string) (*entity.Invoice, error)
}

// DocumentService generación y publicación del PDF.
type DocumentService interface {
	Download(ctx context.Context, id string) ([]byte, string, error)
	Publish(ctx context.Context, id string) (*dto.PublishPDFResponse, error)
}

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	invoices  InvoiceService
	documents DocumentService
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices InvoiceService, documents DocumentService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, documents: documents}
}

// Create godoc
// @Summary      Crear factura desde un presupuesto
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "budget_reference, business_id, invoices_type_id, taxes_type_id"
// @Success      201   {object}  entity.Invoice
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.invoices.CreateFromBudget(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// List GET /api/invoices?business_id=&budget_reference=&limit=&offset=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.InvoiceListRequest
	if err := c.QueryParser(&in); err != nil {
		return writeError(c, fmt.Errorf("%w: query", domain.ErrInvalidInput))
	}
	out, err := h.invoices.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.invoices.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.documents.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(pdfBytes)))
	return c.Send(pdfBytes)
}

// PublishPDF POST /api/invoices/:id/pdf: genera, sube y guarda la URL.
func (h *InvoiceHandler) PublishPDF(c *fiber.Ctx) error {
	out, err := h.documents.Publish(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
