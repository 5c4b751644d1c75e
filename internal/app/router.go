package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rushi-salon/salon/internal/auth"
	"github.com/rushi-salon/salon/internal/billing"
	"github.com/rushi-salon/salon/internal/catalog"
	"github.com/rushi-salon/salon/internal/customers"
	"github.com/rushi-salon/salon/internal/dashboard"
	"github.com/rushi-salon/salon/internal/invoice"
	"github.com/rushi-salon/salon/internal/observability"
	"github.com/rushi-salon/salon/internal/shared"
	"github.com/rushi-salon/salon/report"
)

// RouterParams groups dependencies for building the HTTP router. Nil
// handlers are left unmounted.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *shared.SessionManager
	CSRFManager      *shared.CSRFManager
	AuthHandler      *auth.Handler
	CatalogHandler   *catalog.Handler
	CustomersHandler *customers.Handler
	BillingHandler   *billing.Handler
	InvoiceHandler   *invoice.Handler
	DashboardHandler *dashboard.Handler
	ReportHandler    *report.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router. Everything except health, metrics
// and the auth endpoints requires a signed-in session.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.ReportHandler != nil {
		params.ReportHandler.MountRoutes(r)
	}

	if params.AuthHandler != nil {
		r.Route("/auth", params.AuthHandler.MountRoutes)
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireLogin)

		r.Route("/api", func(r chi.Router) {
			if params.CatalogHandler != nil {
				params.CatalogHandler.MountRoutes(r)
			}
			if params.CustomersHandler != nil {
				params.CustomersHandler.MountRoutes(r)
			}
			if params.BillingHandler != nil {
				params.BillingHandler.MountRoutes(r)
			}
			if params.DashboardHandler != nil {
				params.DashboardHandler.MountRoutes(r)
			}
		})

		if params.InvoiceHandler != nil {
			params.InvoiceHandler.MountRoutes(r)
		}
	})

	return r
}
