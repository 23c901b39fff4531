package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/kasir/internal/cart"
	"github.com/noah-isme/kasir/internal/catalog"
	"github.com/noah-isme/kasir/internal/checkout"
	"github.com/noah-isme/kasir/internal/config"
	"github.com/noah-isme/kasir/internal/customer"
	"github.com/noah-isme/kasir/internal/obs"
	"github.com/noah-isme/kasir/internal/shipping"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()
	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)
	httpMetrics := obs.NewHTTPMetrics(cfg.MetricsNamespace, nil, nil)

	validate := validator.New()

	catalogStore := catalog.NewStore()
	cartStore := cart.NewStore()
	customerStore := customer.NewStore()

	engine := checkout.NewEngine(checkout.Config{
		FlatShippingFee: cfg.ShippingFlatFee,
		Logger:          logger.With().Str("component", "checkout").Logger(),
	})
	notifier := shipping.NewConsoleNotifier(os.Stdout, logger.With().Str("component", "shipping").Logger())

	catalogHandler := &catalog.Handler{Store: catalogStore, Validate: validate, Logger: logger}
	cartHandler := &cart.Handler{Store: cartStore, Catalog: catalogStore, Validate: validate, Logger: logger}
	customerHandler := &customer.Handler{Store: customerStore, Validate: validate, Logger: logger}
	checkoutHandler := &checkout.Handler{
		Engine:    engine,
		Carts:     cartStore,
		Customers: customerStore,
		Notifier:  notifier,
		Validate:  validate,
		Logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
		}))
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/products", catalogHandler.Create)
		r.Get("/products", catalogHandler.List)
		r.Get("/products/{name}", catalogHandler.Get)

		r.Post("/customers", customerHandler.Create)
		r.Get("/customers/{id}", customerHandler.Get)

		r.Post("/carts", cartHandler.Create)
		r.Get("/carts/{id}", cartHandler.Get)
		r.Post("/carts/{id}/items", cartHandler.AddItem)

		r.Post("/checkout", checkoutHandler.Create)
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
