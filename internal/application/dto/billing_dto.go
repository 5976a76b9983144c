package dto

import (
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// CreateInvoiceRequest body para POST /api/invoices.
// El presupuesto se obtiene en servidor a partir de budget_reference.
type CreateInvoiceRequest struct {
	BudgetReference int64  `json:"budget_reference"`
	BusinessID      string `json:"business_id"`
	InvoicesTypeID  string `json:"invoices_type_id"`
	TaxesTypeID     string `json:"taxes_type_id"`
}

// InvoiceListRequest query de GET /api/invoices.
type InvoiceListRequest struct {
	BusinessID      string `query:"business_id"`
	BudgetReference int64  `query:"budget_reference"`
	PageRequest
}

// InvoiceListResponse listado de facturas.
type InvoiceListResponse struct {
	Items []*entity.Invoice `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PublishPDFResponse respuesta de POST /api/invoices/:id/pdf.
type PublishPDFResponse struct {
	ID       string `json:"id"`
	PDFURL   string `json:"pdf_url"`
	FileName string `json:"file_name"`
}

// ValidationErrorResponse error con la lista de campos afectados.
type ValidationErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
}
