package dto

import "github.com/shopspring/decimal"

// BusinessRequest body para crear o actualizar una empresa.
// En PUT los punteros nil no modifican el campo.
type BusinessRequest struct {
	Name       *string `json:"name"`
	NIF        *string `json:"nif"`
	Address    *string `json:"address"`
	PostalCode *string `json:"postal_code"`
	Locality   *string `json:"locality"`
	Province   *string `json:"province"`
	Phone      *string `json:"phone"`
}

// TaxesTypeRequest body para crear o actualizar un tipo de impuesto.
type TaxesTypeRequest struct {
	Name *string          `json:"name"`
	Tax  *decimal.Decimal `json:"tax"`
}

// InvoicesTypeRequest body para crear o actualizar un tipo de factura.
type InvoicesTypeRequest struct {
	Invoices   *string          `json:"invoices"`
	Percentage *decimal.Decimal `json:"percentage"`
}
