package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/money"
)

func TestFormat_EsES(t *testing.T) {
	f := money.Default()

	cases := []struct {
		in   string
		want string
	}{
		{"0", "0,00 €"},
		{"5.5", "5,50 €"},
		{"25.50", "25,50 €"},
		{"30.86", "30,86 €"},
		{"999.999", "1000,00 €"},
		{"1234.56", "1234,56 €"},
		{"12345.67", "12.345,67 €"},
		{"1234567.891", "1.234.567,89 €"},
		{"-12.5", "-12,50 €"},
		{"2.675", "2,68 €"},
		{"-2.675", "-2,68 €"},
		{"-0.001", "0,00 €"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Format(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestFormat_EnUS(t *testing.T) {
	f, err := money.New("en-US", "USD")
	require.NoError(t, err)

	assert.Equal(t, "$1,234.56", f.Format(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "-$12.00", f.Format(decimal.NewFromInt(-12)))
	assert.Equal(t, "USD", f.Currency())
}

func TestFormat_Idempotente(t *testing.T) {
	f := money.Default()
	for _, s := range []string{"0", "0.01", "25.5", "1234.56", "98765.4321", "-300"} {
		d := decimal.RequireFromString(s)
		assert.Equal(t, f.Format(d), f.Format(d), "formatear dos veces debe dar el mismo texto (%s)", s)
	}
}

func TestParse_IdaYVuelta(t *testing.T) {
	locales := []struct{ locale, cur string }{
		{"es-ES", "EUR"},
		{"en-US", "USD"},
		{"fr-FR", "EUR"},
	}
	amounts := []string{"0", "0.01", "5.5", "1234.56", "12345.67", "1234567.891", "-42.1"}

	for _, l := range locales {
		f, err := money.New(l.locale, l.cur)
		require.NoError(t, err)
		for _, a := range amounts {
			shown := f.Format(decimal.RequireFromString(a))
			parsed, err := f.Parse(shown)
			require.NoError(t, err, "%s: parse %q", l.locale, shown)
			assert.Equal(t, shown, f.Format(parsed), "%s: reformatear %q", l.locale, shown)
		}
	}
}

func TestParse_SinSimbolo(t *testing.T) {
	d, err := money.Default().Parse("12.345,67")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12345.67")))
}

func TestParse_Invalido(t *testing.T) {
	_, err := money.Default().Parse("doce euros")
	assert.Error(t, err)
}

func TestFormatNull_AusenteEsCero(t *testing.T) {
	f := money.Default()
	assert.Equal(t, "0,00 €", f.FormatNull(decimal.NullDecimal{}))
	assert.Equal(t, "5,36 €", f.FormatNull(decimal.NewNullDecimal(decimal.RequireFromString("5.36"))))
}

func TestPercent(t *testing.T) {
	f := money.Default()
	assert.Equal(t, "21%", f.Percent(decimal.NewFromInt(21)))
	assert.Equal(t, "10,5%", f.Percent(decimal.RequireFromString("10.50")))
	assert.Equal(t, "0%", f.Percent(decimal.Zero))
}

func TestNew_Errores(t *testing.T) {
	_, err := money.New("??", "EUR")
	assert.Error(t, err)

	_, err = money.New("es-ES", "XXXX")
	assert.Error(t, err)
}

func TestNew_LocaleNoSoportadoUsaEspanol(t *testing.T) {
	f, err := money.New("ja-JP", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "1234,56 €", f.Format(decimal.RequireFromString("1234.56")))
}
