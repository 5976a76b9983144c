package budgets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/billing"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa billing.BudgetSource.
var _ billing.BudgetSource = (*Client)(nil)

const (
	paginatedPath = "/budgets/paginated"
	maxBodyBytes  = 8 << 20
)

// Client adaptador del servicio de presupuestos (REST).
// El token va tal cual en Authorization, sin prefijo Bearer.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el adaptador. timeout <= 0 usa 15 s.
func NewClient(baseURL, token string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type paginatedResponse struct {
	Budgets []entity.Budget `json:"budgets"`
	Total   *int            `json:"total"`
	Message string          `json:"message"`
}

// List GET /budgets/paginated?pageSize=&pageToFetch=&budgetReference=&client=
func (c *Client) List(ctx context.Context, q billing.BudgetQuery) (*billing.BudgetPage, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: BUDGETS_API_URL no configurado", domain.ErrUpstream)
	}

	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	params.Set("pageToFetch", strconv.Itoa(q.Page))
	if q.BudgetReference > 0 {
		params.Set("budgetReference", strconv.FormatInt(q.BudgetReference, 10))
	}
	if q.Client != "" {
		params.Set("client", q.Client)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+paginatedPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("budgets: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("budgets: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: budgets: llamada HTTP fallida: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: budgets: leer respuesta: %v", domain.ErrUpstream, err)
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Int("page", q.Page).
		Msg("budgets: respuesta recibida")

	var body paginatedResponse
	decodeErr := json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && body.Message != "" {
			msg = body.Message
		}
		return nil, fmt.Errorf("%w: budgets: HTTP %d: %s", domain.ErrUpstream, resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: budgets: JSON inválido: %v", domain.ErrUpstream, decodeErr)
	}

	page := &billing.BudgetPage{Budgets: body.Budgets, Total: len(body.Budgets)}
	if body.Total != nil {
		page.Total = *body.Total
	}
	if page.Budgets == nil {
		page.Budgets = []entity.Budget{}
	}
	return page, nil
}

// GetByReference busca por referencia exacta. domain.ErrNotFound si el servicio no la devuelve.
func (c *Client) GetByReference(ctx context.Context, reference int64) (*entity.Budget, error) {
	page, err := c.List(ctx, billing.BudgetQuery{PageSize: 1, Page: 1, BudgetReference: reference})
	if err != nil {
		return nil, err
	}
	for i := range page.Budgets {
		if page.Budgets[i].BudgetReference == reference {
			b := page.Budgets[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("%w: presupuesto %d", domain.ErrNotFound, reference)
}
