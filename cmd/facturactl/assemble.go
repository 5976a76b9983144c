package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/billing"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/invoice"
	"github.com/m4lucen4/alquilandia-dashboard/internal/infrastructure/budgets"
)

func newAssembleCmd(a *app) *cobra.Command {
	var (
		budgetFile string
		reference  int64
		sel        invoice.Selection
	)
	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Valida un presupuesto y la selección y muestra la factura resultante (sin guardar)",
		Example: `  facturactl assemble --budget presupuesto.json --business b1 --invoices-type it1 --taxes-type tt1
  facturactl assemble --reference 1042 --business b1 --invoices-type it1 --taxes-type tt1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (budgetFile == "") == (reference <= 0) {
				return fmt.Errorf("indica --budget o --reference")
			}
			var source billing.BudgetSource
			if reference > 0 {
				c := a.cfg.Budgets
				source = budgets.NewClient(c.BaseURL, c.Token, c.Timeout, a.log.Component("budgets"))
			}
			data, err := assemble(cmd.Context(), source, budgetFile, reference, sel)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().StringVar(&budgetFile, "budget", "", "presupuesto en JSON (formato del servicio de presupuestos)")
	cmd.Flags().Int64Var(&reference, "reference", 0, "referencia del presupuesto a consultar en BUDGETS_API_URL")
	cmd.Flags().StringVar(&sel.BusinessID, "business", "", "id de la empresa")
	cmd.Flags().StringVar(&sel.InvoicesTypeID, "invoices-type", "", "id del tipo de factura")
	cmd.Flags().StringVar(&sel.TaxesTypeID, "taxes-type", "", "id del tipo de impuesto")
	return cmd
}

// assemble carga el presupuesto (de fichero o del servicio) y aplica invoice.Assemble.
func assemble(ctx context.Context, source billing.BudgetSource, budgetFile string, reference int64, sel invoice.Selection) (*entity.CreateInvoiceData, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	var (
		budget *entity.Budget
		err    error
	)
	if budgetFile != "" {
		budget, err = readBudget(budgetFile)
	} else {
		if ctx == nil {
			ctx = context.Background()
		}
		budget, err = source.GetByReference(ctx, reference)
	}
	if err != nil {
		return nil, err
	}
	return invoice.Assemble(budget, sel)
}

func readBudget(path string) (*entity.Budget, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer presupuesto: %w", err)
	}
	var b entity.Budget
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("JSON de presupuesto inválido en %s: %w", path, err)
	}
	return &b, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
