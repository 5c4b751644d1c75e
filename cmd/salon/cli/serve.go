package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rushi-salon/salon/internal/app"
	"github.com/rushi-salon/salon/internal/auth"
	"github.com/rushi-salon/salon/internal/billing"
	"github.com/rushi-salon/salon/internal/catalog"
	"github.com/rushi-salon/salon/internal/customers"
	"github.com/rushi-salon/salon/internal/dashboard"
	"github.com/rushi-salon/salon/internal/invoice"
	"github.com/rushi-salon/salon/internal/observability"
	"github.com/rushi-salon/salon/internal/platform/cache"
	"github.com/rushi-salon/salon/internal/platform/db"
	"github.com/rushi-salon/salon/internal/shared"
	"github.com/rushi-salon/salon/report"
)

const sessionCookie = "salon_session"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.InTestMode() {
			slog.Default().Info("test mode detected, skipping runtime startup")
			return nil
		}
		cfg, err := app.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg *app.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, sessionCookie, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	metrics := observability.NewMetrics()

	authService := auth.NewService(auth.NewRepository(pool))

	catalogManager := catalog.NewManager(catalog.NewRepository(pool))
	customerService := customers.NewService(customers.NewRepository(pool))
	billRepo := billing.NewRepository(pool)
	calculator := billing.NewCalculator(
		billRepo,
		catalogManager,
		customerService,
		billing.WithMetrics(metrics),
	)

	reportClient := report.NewClient(cfg.GotenbergURL)
	renderer, err := newRenderer(cfg, reportClient)
	if err != nil {
		return err
	}
	invoiceService := invoice.NewService(billRepo, catalogManager, customerService, renderer,
		invoice.WithSalonName(cfg.SalonName),
		invoice.WithMetrics(metrics),
	)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AuthHandler:      auth.NewHandler(logger, authService, sessionManager, csrfManager),
		CatalogHandler:   catalog.NewHandler(logger, catalogManager),
		CustomersHandler: customers.NewHandler(logger, customerService),
		BillingHandler:   billing.NewHandler(logger, calculator),
		InvoiceHandler:   invoice.NewHandler(logger, invoiceService),
		DashboardHandler: dashboard.NewHandler(logger, dashboard.NewService(customerService, catalogManager, calculator)),
		ReportHandler:    report.NewHandler(reportClient, logger),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("renderer", cfg.InvoiceRenderer))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
	return nil
}

func newRenderer(cfg *app.Config, client *report.Client) (invoice.Renderer, error) {
	if cfg.InvoiceRenderer == app.RendererGotenberg {
		r, err := invoice.NewGotenbergRenderer(client)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return invoice.NewPDFRenderer(), nil
}
