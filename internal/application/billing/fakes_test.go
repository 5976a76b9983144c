package billing_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/billing"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

// ── Presupuestos ──

type budgetSourceMock struct {
	mock.Mock
}

func (m *budgetSourceMock) List(ctx context.Context, q billing.BudgetQuery) (*billing.BudgetPage, error) {
	args := m.Called(ctx, q)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.(*billing.BudgetPage), args.Error(1)
}

func (m *budgetSourceMock) GetByReference(ctx context.Context, reference int64) (*entity.Budget, error) {
	args := m.Called(ctx, reference)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.(*entity.Budget), args.Error(1)
}

// ── Almacén en memoria ──

// memStore guarda referencias y facturas. La transacción trabaja sobre una copia
// que solo se publica si fn no devuelve error.
type memStore struct {
	mu           sync.Mutex
	business     map[string]*entity.Business
	invoiceTypes map[string]*entity.InvoicesType
	taxTypes     map[string]*entity.TaxesType
	invoices     map[string]*entity.Invoice
	seq          int64
	createErr    error
	attached     map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		business:     map[string]*entity.Business{},
		invoiceTypes: map[string]*entity.InvoicesType{},
		taxTypes:     map[string]*entity.TaxesType{},
		invoices:     map[string]*entity.Invoice{},
		attached:     map[string]string{},
	}
}

func (s *memStore) RunInvoice(ctx context.Context, fn func(repos billing.InvoiceTxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &memInvoices{store: s, pending: map[string]*entity.Invoice{}, seq: s.seq}
	repos := billing.InvoiceTxRepos{
		Business:     memBusiness{s},
		InvoicesType: memInvoicesTypes{s},
		TaxesType:    memTaxesTypes{s},
		Invoices:     staged,
	}
	if err := fn(repos); err != nil {
		return err
	}
	for id, inv := range staged.pending {
		s.invoices[id] = inv
	}
	s.seq = staged.seq
	return nil
}

// Invoices repositorio fuera de transacción.
func (s *memStore) Invoices() repository.InvoiceRepository {
	return &memInvoices{store: s, direct: true}
}

type memBusiness struct{ s *memStore }

func (r memBusiness) Create(_ context.Context, b *entity.Business) error {
	r.s.business[b.ID] = b
	return nil
}
func (r memBusiness) GetByID(_ context.Context, id string) (*entity.Business, error) {
	return r.s.business[id], nil
}
func (r memBusiness) Update(_ context.Context, b *entity.Business) error {
	r.s.business[b.ID] = b
	return nil
}
func (r memBusiness) List(context.Context) ([]*entity.Business, error) { return nil, nil }
func (r memBusiness) Delete(_ context.Context, id string) error {
	delete(r.s.business, id)
	return nil
}

type memInvoicesTypes struct{ s *memStore }

func (r memInvoicesTypes) Create(_ context.Context, t *entity.InvoicesType) error {
	r.s.invoiceTypes[t.ID] = t
	return nil
}
func (r memInvoicesTypes) GetByID(_ context.Context, id string) (*entity.InvoicesType, error) {
	return r.s.invoiceTypes[id], nil
}
func (r memInvoicesTypes) Update(_ context.Context, t *entity.InvoicesType) error {
	r.s.invoiceTypes[t.ID] = t
	return nil
}
func (r memInvoicesTypes) List(context.Context) ([]*entity.InvoicesType, error) { return nil, nil }
func (r memInvoicesTypes) Delete(_ context.Context, id string) error {
	delete(r.s.invoiceTypes, id)
	return nil
}

type memTaxesTypes struct{ s *memStore }

func (r memTaxesTypes) Create(_ context.Context, t *entity.TaxesType) error {
	r.s.taxTypes[t.ID] = t
	return nil
}
func (r memTaxesTypes) GetByID(_ context.Context, id string) (*entity.TaxesType, error) {
	return r.s.taxTypes[id], nil
}
func (r memTaxesTypes) Update(_ context.Context, t *entity.TaxesType) error {
	r.s.taxTypes[t.ID] = t
	return nil
}
func (r memTaxesTypes) List(context.Context) ([]*entity.TaxesType, error) { return nil, nil }
func (r memTaxesTypes) Delete(_ context.Context, id string) error {
	delete(r.s.taxTypes, id)
	return nil
}

type memInvoices struct {
	store   *memStore
	direct  bool
	pending map[string]*entity.Invoice
	seq     int64
}

func (r *memInvoices) Create(_ context.Context, inv *entity.Invoice) error {
	if r.store.createErr != nil {
		return r.store.createErr
	}
	r.seq++
	inv.InvoiceNumber = r.seq
	if inv.ID == "" {
		inv.ID = fmt.Sprintf("inv-%d", r.seq)
	}
	inv.CreatedAt = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	inv.UpdatedAt = inv.CreatedAt
	r.pending[inv.ID] = inv
	return nil
}

func (r *memInvoices) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	if r.direct {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	inv, ok := r.store.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoices) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.store.invoices {
		if f.BusinessID != "" && inv.BusinessID != f.BusinessID {
			continue
		}
		if f.BudgetReference > 0 && inv.BudgetReference != f.BudgetReference {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber > out[j].InvoiceNumber })
	return out, nil
}

func (r *memInvoices) AttachPDFURL(_ context.Context, id, url string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inv, ok := r.store.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.PDFURL = url
	r.store.attached[id] = url
	return nil
}

// ── Métricas ──

type countingMetrics struct {
	mu             sync.Mutex
	created        int
	renders        int
	renderFailures int
	uploads        int
	uploadFailures int
}

func (m *countingMetrics) InvoiceCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *countingMetrics) ObserveRender(_ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders++
	if err != nil {
		m.renderFailures++
	}
}

func (m *countingMetrics) ObserveUpload(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads++
	if err != nil {
		m.uploadFailures++
	}
}
