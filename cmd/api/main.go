package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/auth"
	"github.com/m4lucen4/alquilandia-dashboard/internal/application/billing"
	"github.com/m4lucen4/alquilandia-dashboard/internal/application/usecase"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/money"
	"github.com/m4lucen4/alquilandia-dashboard/internal/infrastructure/budgets"
	"github.com/m4lucen4/alquilandia-dashboard/internal/infrastructure/metrics"
	infrapdf "github.com/m4lucen4/alquilandia-dashboard/internal/infrastructure/pdf"
	"github.com/m4lucen4/alquilandia-dashboard/internal/infrastructure/postgres"
	"github.com/m4lucen4/alquilandia-dashboard/internal/infrastructure/storage"
	httpRouter "github.com/m4lucen4/alquilandia-dashboard/internal/interfaces/http"
	"github.com/m4lucen4/alquilandia-dashboard/pkg/config"
	"github.com/m4lucen4/alquilandia-dashboard/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	if cfg.Budgets.BaseURL == "" {
		log.Warn().Msg("BUDGETS_API_URL vacío: el listado de presupuestos fallará")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		version, err := postgres.Migrate(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("version", version).Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	taxesTypeRepo := postgres.NewTaxesTypeRepository(pool)
	invoicesTypeRepo := postgres.NewInvoicesTypeRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	promMetrics := metrics.New()

	// Servicio externo de presupuestos
	budgetClient := budgets.NewClient(cfg.Budgets.BaseURL, cfg.Budgets.Token, cfg.Budgets.Timeout, log.Component("budgets"))

	// PDF: formato de importes y fechas según locale
	formatter, err := money.New(cfg.Locale.Locale, cfg.Locale.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("formato de moneda")
	}
	location, err := cfg.Locale.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	renderer := infrapdf.NewMarotoRenderer(infrapdf.Options{
		Formatter: formatter,
		Location:  location,
		Author:    cfg.App.Name,
	}, log.Component("pdf"))

	docStorage, localDir := newStorage(cfg.Storage, log)

	businessUC := usecase.NewBusinessUseCase(businessRepo)
	taxesTypeUC := usecase.NewTaxesTypeUseCase(taxesTypeRepo)
	invoicesTypeUC := usecase.NewInvoicesTypeUseCase(invoicesTypeRepo)
	budgetUC := billing.NewBudgetUseCase(budgetClient, cfg.Budgets.StatusLabels)
	invoiceUC := billing.NewInvoiceUseCase(budgetClient, txRunner, invoiceRepo, promMetrics, log.Component("invoices"))
	pdfUC := billing.NewPDFUseCase(invoiceRepo, renderer, docStorage, cfg.Render.MaxConcurrent, promMetrics, log.Component("documents"))
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.HTTP.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http"), promMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.Swagger {
		if _, err := os.Stat(swaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: swaggerFile,
				Path:     "docs",
				Title:    "Alquilandia Dashboard API",
			}))
		} else {
			log.Warn().Str("file", swaggerFile).Msg("swagger desactivado: no se encuentra el fichero")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// PDFs publicados en disco
	if localDir != "" {
		app.Static("/files", localDir)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:          authUC,
		Business:      businessUC,
		TaxesTypes:    taxesTypeUC,
		InvoicesTypes: invoicesTypeUC,
		Budgets:       budgetUC,
		Invoices:      invoiceUC,
		Documents:     pdfUC,
		Metrics:       promMetrics.Handler(),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newStorage devuelve el almacenamiento configurado y, si es local, el directorio a servir.
func newStorage(cfg config.StorageConfig, log *logger.Logger) (billing.DocumentStorage, string) {
	switch cfg.Driver {
	case config.StorageSupabase:
		log.Info().Str("bucket", cfg.Bucket).Msg("almacenamiento de documentos: supabase")
		return storage.NewSupabase(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.Bucket, cfg.Timeout), ""
	default:
		local, err := storage.NewLocal(cfg.LocalDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento local")
		}
		log.Info().Str("dir", local.Dir()).Msg("almacenamiento de documentos: local")
		return local, local.Dir()
	}
}

func corsOrigins(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "*"
	}
	return s
}
