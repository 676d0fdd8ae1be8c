package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rithysak/backoffice/internal"
	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/handler"
	"github.com/rithysak/backoffice/internal/middleware"
	"github.com/rithysak/backoffice/internal/refdata"
	"github.com/rithysak/backoffice/internal/service"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Upstream CRM API client
	client := crm.New(crm.Config{
		BaseURL:            cfg.APIBaseURL,
		Timeout:            cfg.APITimeout,
		Logger:             logger,
		UploadMaxDimension: cfg.UploadMaxDimension,
	})

	// Reference data cache (dropdown sources)
	refStore := refdata.New(client, logger, cfg.RefDataRefreshInterval)
	refStore.Start(context.Background())
	defer refStore.Stop()

	// Initialize template renderer
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		TemplatesDir: "web/templates",
		Logger:       logger,
		IsDev:        cfg.Env == "development",
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}

	// Initialize services
	leadService := service.NewLeadService(client, logger)
	propertyService := service.NewPropertyService(client, logger)
	staffService := service.NewStaffService(client, logger)
	callLogService := service.NewCallLogService(client, logger)
	siteVisitService := service.NewSiteVisitService(client, logger)

	// Initialize handlers
	isSecure := cfg.Env != "development"
	authHandler := handler.NewAuthHandler(client, renderer, logger, isSecure)
	leadHandler := handler.NewLeadHandler(leadService, refStore, renderer, logger, cfg.PageSize, cfg.SearchDebounce, isSecure)
	propertyHandler := handler.NewPropertyHandler(propertyService, refStore, renderer, logger, cfg.PageSize, cfg.SearchDebounce, isSecure)
	staffHandler := handler.NewStaffHandler(staffService, renderer, logger, cfg.PageSize, cfg.SearchDebounce)
	callLogHandler := handler.NewCallLogHandler(callLogService, refStore, renderer, logger, cfg.PageSize, cfg.SearchDebounce, isSecure)
	siteVisitHandler := handler.NewSiteVisitHandler(siteVisitService, callLogService, renderer, logger, cfg.PageSize, cfg.SearchDebounce, isSecure)
	pickerHandler := handler.NewPickerHandler(leadService, propertyService, staffService, renderer, logger, cfg.PageSize, cfg.SearchDebounce)

	// Initialize middleware
	sessionMw := middleware.NewSessionMiddleware()
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	metricsMw := middleware.NewMetricsMiddleware()
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	staticFS := http.FileServer(http.Dir("web/static"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticFS))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Auth routes (public)
	mux.HandleFunc("GET /login", authHandler.LoginPage)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /logout", authHandler.Logout)

	// App routes (require a signed-in operator)
	app := http.NewServeMux()

	app.HandleFunc("GET /leads", leadHandler.List)
	app.HandleFunc("GET /leads/new", leadHandler.NewPage)
	app.HandleFunc("POST /leads", leadHandler.Create)
	app.HandleFunc("GET /leads/{id}/edit", leadHandler.EditPage)
	app.HandleFunc("POST /leads/{id}", leadHandler.Update)

	app.HandleFunc("GET /properties", propertyHandler.List)
	app.HandleFunc("GET /properties/new", propertyHandler.NewPage)
	app.HandleFunc("POST /properties", propertyHandler.Create)
	app.HandleFunc("GET /properties/{id}/edit", propertyHandler.EditPage)
	app.HandleFunc("POST /properties/{id}", propertyHandler.Update)

	app.HandleFunc("GET /staff", staffHandler.List)

	app.HandleFunc("GET /call-logs", callLogHandler.List)
	app.HandleFunc("GET /call-logs/new", callLogHandler.NewPage)
	app.HandleFunc("POST /call-logs", callLogHandler.Create)
	app.HandleFunc("GET /call-logs/{id}/edit", callLogHandler.EditPage)
	app.HandleFunc("POST /call-logs/{id}", callLogHandler.Update)

	app.HandleFunc("GET /site-visits", siteVisitHandler.List)
	app.HandleFunc("GET /site-visits/new", siteVisitHandler.NewPage)
	app.HandleFunc("POST /site-visits", siteVisitHandler.Create)
	app.HandleFunc("GET /site-visits/{id}/edit", siteVisitHandler.EditPage)
	app.HandleFunc("POST /site-visits/{id}", siteVisitHandler.Update)

	// Selection modal fragments
	app.HandleFunc("GET /pickers/leads", pickerHandler.Leads)
	app.HandleFunc("GET /pickers/properties", pickerHandler.Properties)
	app.HandleFunc("GET /pickers/staff", pickerHandler.Staff)

	app.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/leads", http.StatusSeeOther)
	})

	mux.Handle("/", middleware.RequireUser(app))

	root := middleware.Chain(mux,
		middleware.SecurityHeaders,
		loggingMw.Handler,
		metricsMw.Handler,
		sessionMw.Handler,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
