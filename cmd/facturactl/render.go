package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/billing"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/money"
	infrapdf "github.com/m4lucen4/alquilandia-dashboard/internal/infrastructure/pdf"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		inputs  []string
		outDir  string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Genera el PDF de una o varias facturas guardadas como JSON",
		Example: `  facturactl render --in factura_7.json --out ./pdf
  facturactl render --in a.json --in b.json --out ./pdf --workers 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter, err := money.New(a.cfg.Locale.Locale, a.cfg.Locale.Currency)
			if err != nil {
				return err
			}
			loc, err := a.cfg.Locale.Location()
			if err != nil {
				return err
			}
			renderer := infrapdf.NewMarotoRenderer(infrapdf.Options{
				Formatter: formatter,
				Location:  loc,
				Author:    a.cfg.App.Name,
			}, a.log.Component("pdf"))

			written, err := renderFiles(cmd.Context(), renderer, inputs, outDir, workers, a.log.Component("render"))
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	cmd.Flags().StringSliceVar(&inputs, "in", nil, "fichero JSON de factura (repetible)")
	cmd.Flags().StringVar(&outDir, "out", ".", "directorio de salida")
	cmd.Flags().IntVar(&workers, "workers", 4, "renders simultáneos")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// renderFiles renderiza cada fichero con como mucho workers en paralelo.
// Devuelve las rutas escritas en el orden de inputs; el primer error cancela el resto.
// Dos facturas que acabarían en el mismo PDF se rechazan antes de renderizar nada.
func renderFiles(ctx context.Context, renderer billing.InvoiceRenderer, inputs []string, outDir string, workers int, log zerolog.Logger) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if workers < 1 {
		workers = 1
	}

	invoices := make([]*entity.Invoice, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, in := range inputs {
		inv, err := readInvoice(in)
		if err != nil {
			return nil, err
		}
		name := inv.FileName()
		if prev, dup := owner[name]; dup {
			return nil, fmt.Errorf("%s y %s generan el mismo fichero %s", prev, in, name)
		}
		owner[name] = in
		invoices[i] = inv
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de salida: %w", err)
	}

	paths := make([]string, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, inv := range invoices {
		i, inv := i, inv
		g.Go(func() error {
			pdfBytes, _, err := renderer.Render(gctx, inv)
			if err != nil {
				return fmt.Errorf("render %s: %w", inputs[i], err)
			}
			out := filepath.Join(outDir, inv.FileName())
			if err := os.WriteFile(out, pdfBytes, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			log.Debug().Str("in", inputs[i]).Str("out", out).Int("bytes", len(pdfBytes)).Msg("pdf generado")
			paths[i] = out
			return nil
		})
	}
	err := g.Wait()

	written := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	return written, err
}

func readInvoice(path string) (*entity.Invoice, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer factura: %w", err)
	}
	var inv entity.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("JSON de factura inválido en %s: %w", path, err)
	}
	return &inv, nil
}
