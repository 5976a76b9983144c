package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m4lucen4/alquilandia-dashboard/internal/infrastructure/postgres"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL embebidas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := postgres.NewPool(cmd.Context(), a.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			version, err := postgres.Migrate(pool)
			if err != nil {
				return err
			}
			a.log.Info().Uint("version", version).Msg("migraciones aplicadas")
			fmt.Fprintf(cmd.OutOrStdout(), "versión %d\n", version)
			return nil
		},
	}
}
