// Package metrics expone contadores e histogramas Prometheus de facturación y HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/billing"
)

const namespace = "alquilandia"

// Resultados usados como etiqueta.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var _ billing.Metrics = (*Metrics)(nil)

// Metrics registro propio (no el global) para poder crear varios en tests.
type Metrics struct {
	registry       *prometheus.Registry
	invoices       prometheus.Counter
	renderDuration *prometheus.HistogramVec
	renderFailures prometheus.Counter
	uploads        *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registra los colectores de la aplicación más los de Go y proceso.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		invoices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Facturas creadas a partir de presupuestos.",
		}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pdf_render_duration_seconds",
			Help:      "Duración de la generación de PDF.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"result"}),
		renderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_render_failures_total",
			Help:      "Generaciones de PDF fallidas.",
		}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_uploads_total",
			Help:      "Subidas de PDF al almacenamiento.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.invoices, m.renderDuration, m.renderFailures, m.uploads, m.httpRequests, m.httpDuration,
	)
	return m
}

func (m *Metrics) InvoiceCreated() { m.invoices.Inc() }

func (m *Metrics) ObserveRender(d time.Duration, err error) {
	m.renderDuration.WithLabelValues(result(err)).Observe(d.Seconds())
	if err != nil {
		m.renderFailures.Inc()
	}
}

func (m *Metrics) ObserveUpload(err error) {
	m.uploads.WithLabelValues(result(err)).Inc()
}

// ObserveHTTP route es el patrón registrado (/api/invoices/:id), no la URL.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler exposición en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry para tests y para registrar colectores adicionales.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
