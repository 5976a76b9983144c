package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth          AuthService
	Business      ReferenceService[entity.Business, dto.BusinessRequest]
	TaxesTypes    ReferenceService[entity.TaxesType, dto.TaxesTypeRequest]
	InvoicesTypes ReferenceService[entity.InvoicesType, dto.InvoicesTypeRequest]
	Budgets       BudgetService
	Invoices      InvoiceService
	Documents     DocumentService
	Metrics       http.Handler // opcional: GET /metrics
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Datos de referencia: lectura para cualquier usuario, escritura solo admin
	registerReference(protected.Group("/business"), NewReferenceHandler[entity.Business, dto.BusinessRequest](deps.Business), adminOnly)
	registerReference(protected.Group("/taxes-types"), NewReferenceHandler[entity.TaxesType, dto.TaxesTypeRequest](deps.TaxesTypes), adminOnly)
	registerReference(protected.Group("/invoices-types"), NewReferenceHandler[entity.InvoicesType, dto.InvoicesTypeRequest](deps.InvoicesTypes), adminOnly)

	// Presupuestos (servicio externo, solo lectura)
	budgetHandler := NewBudgetHandler(deps.Budgets)
	protected.Get("/budgets", budgetHandler.List)
	protected.Get("/budgets/:reference", budgetHandler.GetByReference)

	// Facturas
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.Documents)
	invoices := protected.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/pdf", invoiceHandler.PublishPDF)
}

func registerReference[T any, R any](g fiber.Router, h *ReferenceHandler[T, R], write fiber.Handler) {
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Post("/", write, h.Create)
	g.Put("/:id", write, h.Update)
	g.Delete("/:id", write, h.Delete)
}
