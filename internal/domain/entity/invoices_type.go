package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoicesType tipo de factura (p. ej. "Estándar", 21).
type InvoicesType struct {
	ID         string          `json:"id"`
	Invoices   string          `json:"invoices"`
	Percentage decimal.Decimal `json:"percentage"` // porcentaje 0-100
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (t *InvoicesType) Snapshot() InvoicesTypeSnapshot {
	return InvoicesTypeSnapshot{Invoices: t.Invoices, Percentage: t.Percentage}
}

// InvoicesTypeSnapshot tipo de factura congelado dentro de una factura.
type InvoicesTypeSnapshot struct {
	Invoices   string          `json:"invoices"`
	Percentage decimal.Decimal `json:"percentage"`
}
