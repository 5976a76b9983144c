// Package money formatea importes con las convenciones del locale configurado.
// Es la única función de formato monetario usada en documentos y API.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Valores por defecto de la aplicación.
const (
	DefaultLocale   = "es-ES"
	DefaultCurrency = "EUR"
)

// convention separadores y posición del símbolo de un idioma.
type convention struct {
	decimalSep  string
	groupSep    string
	minGrouping int // dígitos mínimos en el grupo superior para agrupar (CLDR)
	symbolAfter bool
}

var (
	supported = []language.Tag{
		language.Spanish,
		language.English,
		language.German,
		language.French,
		language.Italian,
		language.Portuguese,
	}
	matcher = language.NewMatcher(supported)

	conventions = map[language.Base]convention{
		base(language.Spanish):    {decimalSep: ",", groupSep: ".", minGrouping: 2, symbolAfter: true},
		base(language.English):    {decimalSep: ".", groupSep: ",", minGrouping: 1, symbolAfter: false},
		base(language.German):     {decimalSep: ",", groupSep: ".", minGrouping: 1, symbolAfter: true},
		base(language.French):     {decimalSep: ",", groupSep: "\u202f", minGrouping: 1, symbolAfter: true},
		base(language.Italian):    {decimalSep: ",", groupSep: ".", minGrouping: 1, symbolAfter: true},
		base(language.Portuguese): {decimalSep: ",", groupSep: ".", minGrouping: 2, symbolAfter: true},
	}

	symbols = map[string]string{
		"EUR": "€",
		"USD": "$",
		"GBP": "£",
		"CHF": "CHF",
	}
)

func base(t language.Tag) language.Base {
	b, _ := t.Base()
	return b
}

// Formatter es inmutable y seguro para uso concurrente.
type Formatter struct {
	tag    language.Tag
	unit   currency.Unit
	symbol string
	scale  int32
	conv   convention
}

// New construye un formateador para un locale BCP 47 ("es-ES") y un código ISO 4217 ("EUR").
func New(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("money: locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("money: moneda %q: %w", code, err)
	}

	matched, _, _ := matcher.Match(tag)
	conv, ok := conventions[base(matched)]
	if !ok {
		conv = conventions[base(language.Spanish)]
	}

	scale, _ := currency.Standard.Rounding(unit)
	sym, ok := symbols[unit.String()]
	if !ok {
		sym = unit.String()
	}

	return &Formatter{tag: tag, unit: unit, symbol: sym, scale: int32(scale), conv: conv}, nil
}

// Default devuelve el formateador es-ES / EUR.
func Default() *Formatter {
	f, err := New(DefaultLocale, DefaultCurrency)
	if err != nil {
		panic(err)
	}
	return f
}

// Currency código ISO de la moneda.
func (f *Formatter) Currency() string { return f.unit.String() }

// Locale etiqueta BCP 47 configurada.
func (f *Formatter) Locale() string { return f.tag.String() }

// Format redondea a los decimales de la moneda (mitad lejos de cero) y aplica separadores y símbolo.
// Ej. es-ES: 1234.56 → "1234,56 €", 12345.678 → "12.345,68 €".
func (f *Formatter) Format(amount decimal.Decimal) string {
	num := f.number(amount)
	if f.conv.symbolAfter {
		return num + " " + f.symbol
	}
	if strings.HasPrefix(num, "-") {
		return "-" + f.symbol + num[1:]
	}
	return f.symbol + num
}

// FormatNull formatea un importe opcional; ausente se trata como cero.
func (f *Formatter) FormatNull(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return f.Format(decimal.Zero)
	}
	return f.Format(amount.Decimal)
}

// Percent formatea un porcentaje sin ceros sobrantes: 21 → "21%", 10.5 → "10,5%".
func (f *Formatter) Percent(p decimal.Decimal) string {
	s := p.Round(2).String()
	return strings.Replace(s, ".", f.conv.decimalSep, 1) + "%"
}

// Number formatea sin símbolo con la escala de la moneda.
func (f *Formatter) Number(amount decimal.Decimal) string { return f.number(amount) }

func (f *Formatter) number(amount decimal.Decimal) string {
	s := amount.Round(f.scale).StringFixed(f.scale)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	intPart = f.group(intPart)

	var b strings.Builder
	if neg && !isZero(intPart, frac) {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if frac != "" {
		b.WriteString(f.conv.decimalSep)
		b.WriteString(frac)
	}
	return b.String()
}

func (f *Formatter) group(digits string) string {
	n := len(digits)
	if n < 3+f.conv.minGrouping {
		return digits
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteString(f.conv.groupSep)
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

func isZero(intPart, frac string) bool {
	return strings.Trim(intPart, "0") == "" && strings.Trim(frac, "0") == ""
}

// Parse invierte Format: acepta la cadena mostrada (con o sin símbolo) y devuelve el importe.
func (f *Formatter) Parse(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, f.symbol, "")
	raw = strings.ReplaceAll(raw, f.unit.String(), "")
	raw = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, raw)
	raw = strings.ReplaceAll(raw, f.conv.groupSep, "")
	raw = strings.Replace(raw, f.conv.decimalSep, ".", 1)

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("money: importe %q: %w", s, err)
	}
	return d, nil
}
