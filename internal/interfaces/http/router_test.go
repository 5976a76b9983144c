package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	apphttp "github.com/m4lucen4/alquilandia-dashboard/internal/interfaces/http"
)

type fakeAuth struct{}

func (fakeAuth) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Password != "secreto" {
		return nil, domain.ErrUnauthorized
	}
	return &dto.LoginResponse{Token: "tok"}, nil
}

func (fakeAuth) Me(_ context.Context, userID string) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID}, nil
}

func (fakeAuth) RegisterUser(_ context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: "u2", Email: in.Email}, nil
}

type fakeBudgets struct{}

func (fakeBudgets) List(context.Context, dto.BudgetListRequest) (*dto.BudgetListResponse, error) {
	return &dto.BudgetListResponse{Items: []dto.BudgetItem{}}, nil
}

func (fakeBudgets) Get(_ context.Context, ref int64) (*dto.BudgetItem, error) {
	return nil, domain.ErrNotFound
}

type noopTaxes struct{}

func (noopTaxes) List(context.Context) ([]*entity.TaxesType, error) { return nil, nil }
func (noopTaxes) GetByID(context.Context, string) (*entity.TaxesType, error) {
	return nil, domain.ErrNotFound
}
func (noopTaxes) Create(context.Context, dto.TaxesTypeRequest) (*entity.TaxesType, error) {
	return &entity.TaxesType{ID: "t1"}, nil
}
func (noopTaxes) Update(context.Context, string, dto.TaxesTypeRequest) (*entity.TaxesType, error) {
	return &entity.TaxesType{ID: "t1"}, nil
}
func (noopTaxes) Delete(context.Context, string) error { return nil }

type noopInvoicesTypes struct{}

func (noopInvoicesTypes) List(context.Context) ([]*entity.InvoicesType, error) { return nil, nil }
func (noopInvoicesTypes) GetByID(context.Context, string) (*entity.InvoicesType, error) {
	return nil, domain.ErrNotFound
}
func (noopInvoicesTypes) Create(context.Context, dto.InvoicesTypeRequest) (*entity.InvoicesType, error) {
	return &entity.InvoicesType{ID: "i1"}, nil
}
func (noopInvoicesTypes) Update(context.Context, string, dto.InvoicesTypeRequest) (*entity.InvoicesType, error) {
	return &entity.InvoicesType{ID: "i1"}, nil
}
func (noopInvoicesTypes) Delete(context.Context, string) error { return nil }

type recordingObserver struct {
	routes []string
}

func (r *recordingObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	r.routes = append(r.routes, method+" "+route)
}

func fullApp(obs apphttp.HTTPObserver, logOut *bytes.Buffer) *fiber.App {
	app := fiber.New()
	if logOut != nil {
		app.Use(apphttp.RequestLogger(zerolog.New(logOut), obs))
	}
	apphttp.Router(app, apphttp.RouterDeps{
		Auth:          fakeAuth{},
		Business:      &fakeBusinessService{},
		TaxesTypes:    noopTaxes{},
		InvoicesTypes: noopInvoicesTypes{},
		Budgets:       fakeBudgets{},
		Invoices:      &fakeInvoices{},
		Documents:     &fakeDocuments{},
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("alquilandia_invoices_created_total 0\n"))
		}),
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, auth, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ── Rutas y permisos ──

func TestRouter_LoginPublico(t *testing.T) {
	app := fullApp(nil, nil)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", `{"email":"a@b.es","password":"secreto"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", `{"email":"a@b.es","password":"otra"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RutasProtegidasSinToken401(t *testing.T) {
	app := fullApp(nil, nil)

	for _, path := range []string{"/api/business", "/api/budgets", "/api/invoices", "/api/auth/me"} {
		resp := call(t, app, http.MethodGet, path, "", "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRouter_PresupuestoInexistente404(t *testing.T) {
	app := fullApp(nil, nil)

	resp := call(t, app, http.MethodGet, "/api/budgets/99", tokenForRole(t, entity.RoleStaff), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_Metrics(t *testing.T) {
	app := fullApp(nil, nil)

	resp := call(t, app, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ── RequestLogger ──

func TestRequestLogger_RegistraRutaYObserva(t *testing.T) {
	var logs bytes.Buffer
	obs := &recordingObserver{}
	app := fullApp(obs, &logs)

	resp := call(t, app, http.MethodGet, "/api/invoices/inv-1", tokenForRole(t, entity.RoleStaff), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Contains(t, logs.String(), `"route":"/api/invoices/:id"`)
	assert.Contains(t, logs.String(), `"status":404`)
	assert.Contains(t, obs.routes, "GET /api/invoices/:id")
}
