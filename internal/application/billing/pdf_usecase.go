package billing

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/repository"
)

// PDFContentType tipo MIME de los documentos generados.
const PDFContentType = "application/pdf"

// PDFUseCase genera el documento de una factura, para descarga o para publicarlo en el almacenamiento.
// Los renders simultáneos están acotados por un semáforo.
type PDFUseCase struct {
	invoices repository.InvoiceRepository
	renderer InvoiceRenderer
	storage  DocumentStorage
	sem      *semaphore.Weighted
	metrics  Metrics
	log      zerolog.Logger
}

// NewPDFUseCase construye el caso de uso. maxConcurrent < 1 se trata como 1.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	renderer InvoiceRenderer,
	storage DocumentStorage,
	maxConcurrent int64,
	metrics Metrics,
	log zerolog.Logger,
) *PDFUseCase {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &PDFUseCase{
		invoices: invoices,
		renderer: renderer,
		storage:  storage,
		sem:      semaphore.NewWeighted(maxConcurrent),
		metrics:  metrics,
		log:      log,
	}
}

// Download devuelve los bytes del PDF y el nombre de archivo.
//
// Retorna:
//   - domain.ErrNotFound            si la factura no existe.
//   - domain.ErrDocumentGeneration  si el render falla (la causa solo va al log).
//   - el error del contexto         si se cancela mientras espera turno o durante el render.
func (uc *PDFUseCase) Download(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return uc.Render(ctx, inv)
}

// Render genera el PDF de una factura ya cargada respetando el límite de concurrencia.
func (uc *PDFUseCase) Render(ctx context.Context, inv *entity.Invoice) ([]byte, string, error) {
	if err := uc.sem.Acquire(ctx, 1); err != nil {
		return nil, "", err
	}
	defer uc.sem.Release(1)

	start := time.Now()
	pdfBytes, filename, err := uc.renderer.Render(ctx, inv)
	uc.metrics.ObserveRender(time.Since(start), err)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, filename, nil
}

// Publish genera el PDF, lo sube al almacenamiento y guarda la URL en la factura.
func (uc *PDFUseCase) Publish(ctx context.Context, id string) (*dto.PublishPDFResponse, error) {
	if uc.storage == nil {
		return nil, fmt.Errorf("%w: almacenamiento no configurado", domain.ErrConflict)
	}
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	pdfBytes, filename, err := uc.Render(ctx, inv)
	if err != nil {
		return nil, err
	}

	key := StorageKey(inv)
	url, err := uc.storage.Put(ctx, key, pdfBytes, PDFContentType)
	uc.metrics.ObserveUpload(err)
	if err != nil {
		uc.log.Error().Err(err).Str("invoice_id", inv.ID).Str("key", key).Msg("subida de pdf fallida")
		return nil, fmt.Errorf("subir pdf: %w", err)
	}

	if err := uc.invoices.AttachPDFURL(ctx, inv.ID, url); err != nil {
		return nil, fmt.Errorf("guardar pdf_url: %w", err)
	}

	uc.log.Info().Str("invoice_id", inv.ID).Int64("invoice_number", inv.InvoiceNumber).Str("url", url).Msg("pdf publicado")
	return &dto.PublishPDFResponse{ID: inv.ID, PDFURL: url, FileName: filename}, nil
}

// StorageKey ruta del objeto: invoices/{empresa}/factura_{n}.pdf.
func StorageKey(inv *entity.Invoice) string {
	folder := slug.Make(inv.Business.Name)
	if folder == "" {
		folder = "sin-empresa"
	}
	return path.Join("invoices", folder, inv.FileName())
}

func (uc *PDFUseCase) load(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}
