// Package invoice contiene la validación y el ensamblado de facturas a partir de presupuestos.
// No lee estado global: todo llega por argumento.
package invoice

import (
	"fmt"
	"strings"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// Nombres de campo usados en los errores de validación.
const (
	FieldBudget          = "budget"
	FieldBusinessID      = "business_id"
	FieldInvoicesTypeID  = "invoices_type_id"
	FieldTaxesTypeID     = "taxes_type_id"
	FieldBudgetLines     = "budgetLines"
	FieldPrice           = "price"
	FieldBudgetReference = "budgetReference"
)

// Selection son las tres referencias que elige el usuario junto al presupuesto.
type Selection struct {
	BusinessID     string `json:"business_id"`
	InvoicesTypeID string `json:"invoices_type_id"`
	TaxesTypeID    string `json:"taxes_type_id"`
}

// Normalize devuelve la selección sin espacios alrededor de los ids.
func (s Selection) Normalize() Selection {
	return Selection{
		BusinessID:     strings.TrimSpace(s.BusinessID),
		InvoicesTypeID: strings.TrimSpace(s.InvoicesTypeID),
		TaxesTypeID:    strings.TrimSpace(s.TaxesTypeID),
	}
}

// Missing lista los ids vacíos (solo espacios cuenta como vacío), en orden fijo.
func (s Selection) Missing() []string {
	n := s.Normalize()
	var out []string
	if n.BusinessID == "" {
		out = append(out, FieldBusinessID)
	}
	if n.InvoicesTypeID == "" {
		out = append(out, FieldInvoicesTypeID)
	}
	if n.TaxesTypeID == "" {
		out = append(out, FieldTaxesTypeID)
	}
	return out
}

// Validate devuelve *ValidationError si falta alguna selección.
func (s Selection) Validate() error {
	if missing := s.Missing(); len(missing) > 0 {
		return &ValidationError{Kind: domain.ErrMissingSelection, Fields: missing}
	}
	return nil
}

// ValidationError rechazo del ensamblador. Kind es domain.ErrMissingSelection
// o domain.ErrInvalidInput; Fields nombra cada campo afectado.
type ValidationError struct {
	Kind   error
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Assemble valida presupuesto y selección y produce la carga de la factura.
// Líneas y precio se copian en profundidad: mutar el presupuesto después no altera el resultado.
func Assemble(budget *entity.Budget, sel Selection) (*entity.CreateInvoiceData, error) {
	sel = sel.Normalize()

	missing := sel.Missing()
	if budget == nil {
		missing = append([]string{FieldBudget}, missing...)
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Kind: domain.ErrMissingSelection, Fields: missing}
	}

	if err := ValidateBudget(budget); err != nil {
		return nil, err
	}

	return &entity.CreateInvoiceData{
		BusinessID:      sel.BusinessID,
		InvoicesTypeID:  sel.InvoicesTypeID,
		TaxesTypeID:     sel.TaxesTypeID,
		BudgetReference: budget.BudgetReference,
		BudgetLines:     entity.CloneBudgetLines(budget.BudgetLines),
		Price:           *budget.Price,
	}, nil
}

// ValidateBudget comprueba la forma mínima del presupuesto: referencia, líneas y precio.
func ValidateBudget(budget *entity.Budget) error {
	if budget == nil {
		return &ValidationError{Kind: domain.ErrMissingSelection, Fields: []string{FieldBudget}}
	}
	var invalid []string
	if budget.BudgetReference <= 0 {
		invalid = append(invalid, FieldBudgetReference)
	}
	if len(budget.BudgetLines) == 0 {
		invalid = append(invalid, FieldBudgetLines)
	}
	if budget.Price == nil {
		invalid = append(invalid, FieldPrice)
	}
	if len(invalid) > 0 {
		return &ValidationError{Kind: domain.ErrInvalidInput, Fields: invalid}
	}
	return nil
}
