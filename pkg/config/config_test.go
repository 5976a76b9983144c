package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4lucen4/alquilandia-dashboard/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "es-ES", cfg.Locale.Locale)
	assert.Equal(t, "EUR", cfg.Locale.Currency)
	assert.Equal(t, "Europe/Madrid", cfg.Locale.Timezone)
	assert.Equal(t, config.StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, int64(4), cfg.Render.MaxConcurrent)
	assert.Equal(t, 15*time.Second, cfg.Budgets.Timeout)
	assert.Equal(t, "Pendiente", cfg.Budgets.StatusLabels["pending"])
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BUDGETS_API_URL", "https://api.example.com/")
	t.Setenv("BUDGETS_API_TIMEOUT_SECONDS", "3")
	t.Setenv("BUDGET_STATUS_LABELS", "pending=En espera, Confirmed = Confirmado")
	t.Setenv("RENDER_MAX_CONCURRENT", "0")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Budgets.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Budgets.Timeout)
	assert.Equal(t, map[string]string{"pending": "En espera", "confirmed": "Confirmado"}, cfg.Budgets.StatusLabels)
	assert.Equal(t, int64(1), cfg.Render.MaxConcurrent, "la concurrencia mínima es 1")
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_StorageSupabaseSinCredenciales(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "supabase")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_StorageDesconocido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "ftp")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestParseStatusLabels(t *testing.T) {
	labels, err := config.ParseStatusLabels("")
	require.NoError(t, err)
	assert.Empty(t, labels)

	_, err = config.ParseStatusLabels("pending")
	assert.Error(t, err)

	_, err = config.ParseStatusLabels("pending=")
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "alquilandia", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/alquilandia?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestDefaultStatusLabels_CubreLosEstadosDelPresupuesto(t *testing.T) {
	labels, err := config.ParseStatusLabels(config.DefaultStatusLabels)
	require.NoError(t, err)

	want := map[string]string{
		"pending":   "Pendiente",
		"confirmed": "Confirmado",
		"cancelled": "Cancelado",
		"completed": "Completado",
	}
	for status, label := range want {
		assert.Equal(t, label, labels[status], status)
	}
}

// chdir cambia el directorio de trabajo durante el test y lo restaura al terminar.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
