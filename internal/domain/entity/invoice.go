package entity

import (
	"strconv"
	"time"
)

// CreateInvoiceData es la carga lista para persistir que produce el ensamblador.
// Líneas y precio son copias profundas del presupuesto de origen.
type CreateInvoiceData struct {
	BusinessID      string       `json:"business_id"`
	InvoicesTypeID  string       `json:"invoices_type_id"`
	TaxesTypeID     string       `json:"taxes_type_id"`
	BudgetReference int64        `json:"budget_reference"`
	BudgetLines     []BudgetLine `json:"budgetlines"`
	Price           Price        `json:"price"`
}

// Invoice es un compuesto congelado: las referencias se guardan solo para consultar,
// lo que se muestra sale siempre de los snapshots.
type Invoice struct {
	ID              string               `json:"id"`
	InvoiceNumber   int64                `json:"invoice_number"`
	BusinessID      string               `json:"business_id"`
	InvoicesTypeID  string               `json:"invoices_type_id"`
	TaxesTypeID     string               `json:"taxes_type_id"`
	BudgetReference int64                `json:"budget_reference"`
	Business        BusinessSnapshot     `json:"business"`
	InvoicesType    InvoicesTypeSnapshot `json:"invoices_type"`
	TaxesType       TaxesTypeSnapshot    `json:"taxes_type"`
	BudgetLines     []BudgetLine         `json:"budgetlines"`
	Price           Price                `json:"price"`
	PDFURL          string               `json:"pdf_url,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// FileName nombre de descarga del documento.
func (i *Invoice) FileName() string {
	return "factura_" + strconv.FormatInt(i.InvoiceNumber, 10) + ".pdf"
}
