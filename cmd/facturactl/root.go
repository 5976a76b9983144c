package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/m4lucen4/alquilandia-dashboard/pkg/config"
	"github.com/m4lucen4/alquilandia-dashboard/pkg/logger"
)

var version = "dev"

// app estado compartido por los subcomandos, cargado en PersistentPreRunE.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var verbose bool

	root := &cobra.Command{
		Use:           "facturactl",
		Short:         "Herramientas de facturación de Alquilandia",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.App.LogLevel
			if verbose {
				level = "debug"
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: level, Service: "facturactl", Output: os.Stderr})
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log en nivel debug")

	root.AddCommand(
		newRenderCmd(a),
		newAssembleCmd(a),
		newMigrateCmd(a),
	)
	return root
}
