package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
)

var (
	nifRegex        = regexp.MustCompile(`^[A-Z0-9]{9}$`)
	phoneRegex      = regexp.MustCompile(`^[0-9]{9}$`)
	postalCodeRegex = regexp.MustCompile(`^[0-9]{5}$`)
	hundred         = decimal.NewFromInt(100)
)

// FieldErrors campo → mensaje. Envuelve domain.ErrInvalidInput.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return domain.ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error { return domain.ErrInvalidInput }

// Fields nombres de campo ordenados.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (e FieldErrors) required(field, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		e[field] = msg
		return false
	}
	return true
}

func (e FieldErrors) percentage(field string, v decimal.Decimal, msg string) {
	if v.IsNegative() || v.GreaterThan(hundred) {
		e[field] = msg
	}
}

func (e FieldErrors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
