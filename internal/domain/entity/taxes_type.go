package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxesType tipo impositivo seleccionable al facturar (p. ej. "IVA General", 21).
type TaxesType struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Tax       decimal.Decimal `json:"tax"` // porcentaje 0-100
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (t *TaxesType) Snapshot() TaxesTypeSnapshot {
	return TaxesTypeSnapshot{Name: t.Name, Tax: t.Tax}
}

// TaxesTypeSnapshot tipo impositivo congelado dentro de una factura.
type TaxesTypeSnapshot struct {
	Name string          `json:"name"`
	Tax  decimal.Decimal `json:"tax"`
}
