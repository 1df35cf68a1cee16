package api

import (
	"log/slog"
	"net/http"
	"time"

	"credit-application-system/internal/api/handler"
	mw "credit-application-system/internal/api/middleware"
	"credit-application-system/internal/config"
	"credit-application-system/internal/domain/credit"
	"credit-application-system/internal/domain/customer"

	_ "credit-application-system/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const requestTimeout = 60 * time.Second

// Services bundles the domain services exposed over HTTP.
type Services struct {
	Customers customer.CustomerService
	Credits   credit.CreditService
}

// SetupRouter assembles the HTTP surface. rateLimiter may be nil to serve
// without throttling.
func SetupRouter(rateLimiter *mw.RateLimiterMiddleware, services Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middlewareStack(rateLimiter, logger)...)

	mountOperational(router, cfg, logger)
	router.Post("/auth/token", handler.NewAuthHandler(cfg.Server.Auth, logger).GenerateBearerToken)

	router.Route("/api", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		mountCustomers(r, handler.NewCustomerHandler(services.Customers, logger))
		mountCredits(r, handler.NewCreditHandler(services.Credits, logger))
	})

	return router
}

// middlewareStack is ordered outermost first.
func middlewareStack(rateLimiter *mw.RateLimiterMiddleware, logger *slog.Logger) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		traceid.Middleware,
		mw.StructuredLogger(logger),
		middleware.Recoverer,
		middleware.Compress(5),
		middleware.Timeout(requestTimeout),
	}
	if rateLimiter != nil {
		stack = append(stack, rateLimiter.Middleware)
	}
	return append(stack, mw.MetricsMiddleware())
}

func mountOperational(router chi.Router, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	router.Handle(metricsPath, promhttp.Handler())
	router.Get("/health", health)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})

	logger.Info("Operational endpoints mounted", "metrics", metricsPath, "docs", "/swagger/index.html")
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func mountCustomers(r chi.Router, h *handler.CustomerHandler) {
	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.RegisterCustomer)
		r.Get("/{customerID}", h.GetCustomer)
		r.Patch("/{customerID}", h.UpdateCustomer)
		r.Delete("/{customerID}", h.DeleteCustomer)
	})
}

func mountCredits(r chi.Router, h *handler.CreditHandler) {
	r.Route("/credits", func(r chi.Router) {
		r.Post("/", h.IssueCredit)
		r.Get("/", h.ListCredits)
		r.Get("/{creditCode}", h.GetCredit)
	})
}
