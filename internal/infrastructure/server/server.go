package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/shopfront/core/internal/adapters/http"
	"github.com/shopfront/core/internal/adapters/repository"
	"github.com/shopfront/core/internal/application/services"
	"github.com/shopfront/core/internal/i18n"
	"github.com/shopfront/core/internal/infrastructure/config"
	"github.com/shopfront/core/internal/infrastructure/logger"
	"github.com/shopfront/core/internal/infrastructure/storage"
)

// Server represents the HTTP server
type Server struct {
	echo        *echo.Echo
	config      *config.Config
	logger      *logger.Logger
	store       *storage.Store
	syncService *services.SyncService
	startTime   time.Time

	janitorCancel context.CancelFunc
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, store *storage.Store, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize repositories
	productRepo, err := repository.NewProductRepository(store, cfg.Store, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize product repository: %w", err)
	}

	// Initialize services
	productService := services.NewProductService(productRepo, appLogger)
	syncService := services.NewSyncService(cfg.Sync, appLogger)
	resolver := i18n.NewResolver()

	// Initialize handlers
	productHandler := httpHandlers.NewProductHandler(productService, appLogger)
	syncHandler := httpHandlers.NewSyncHandler(syncService, appLogger)
	localeHandler := httpHandlers.NewLocaleHandler(resolver, appLogger)

	server := &Server{
		echo:        e,
		config:      cfg,
		logger:      appLogger,
		store:       store,
		syncService: syncService,
		startTime:   time.Now(),
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(productHandler, syncHandler, localeHandler)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics(productService)
	}

	// Static SPA shell for unmatched GETs
	if cfg.Server.StaticDir != "" {
		server.setupStatic()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(productHandler *httpHandlers.ProductHandler, syncHandler *httpHandlers.SyncHandler, localeHandler *httpHandlers.LocaleHandler) {
	api := s.echo.Group("/api")

	// Health check routes
	api.GET("/health", s.healthCheck)
	api.GET("/health/detailed", s.detailedHealthCheck)

	// Product routes
	api.GET("/products", productHandler.ListProducts)
	api.POST("/products", productHandler.UpsertProduct)
	api.POST("/products/sync", productHandler.SyncCatalog)
	api.GET("/products/search/:query", productHandler.SearchProducts)
	api.GET("/products/category/:category", productHandler.ListByCategory)
	api.GET("/products/:id", productHandler.GetProduct)
	api.DELETE("/products/:id", productHandler.DeleteProduct)
	api.POST("/products/:id/views", productHandler.IncrementViews)

	// Sync relay routes
	api.POST("/broadcast-sync", syncHandler.BroadcastEvent)
	api.GET("/sync-events", syncHandler.PollEvents)

	// Locale routes
	api.GET("/i18n/price", localeHandler.FormatPrice)
	api.GET("/i18n/:locale", localeHandler.GetMessages)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics(productService *services.ProductService) {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	catalogSize := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of live products in the catalog",
		},
		func() float64 {
			return float64(productService.Count(context.Background()))
		},
	)

	relaySize := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "sync_relay_events",
			Help: "Number of events currently held by the sync relay",
		},
		func() float64 {
			return float64(s.syncService.Size())
		},
	)

	registry.MustRegister(requestsTotal, requestDuration, catalogSize, relaySize)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// setupStatic serves the single-page storefront shell for any unmatched GET
func (s *Server) setupStatic() {
	s.echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  s.config.Server.StaticDir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/metrics")
		},
	}))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Store health check
	if err := s.store.HealthCheck(); err != nil {
		status = "error"
		checks["store"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["store"] = map[string]interface{}{
			"status": "ok",
			"path":   s.store.Path(),
		}
	}

	checks["sync_relay"] = map[string]interface{}{
		"status": "ok",
		"events": s.syncService.Size(),
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).Round(time.Second).String(),
		"checks":    checks,
		"version":   s.config.App.Version,
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

// Start starts the HTTP server and the relay janitor
func (s *Server) Start(address string) error {
	janitorCtx, cancel := context.WithCancel(context.Background())
	s.janitorCancel = cancel
	go s.syncService.Run(janitorCtx)

	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	if s.janitorCancel != nil {
		s.janitorCancel()
	}
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if str, ok := msg.(string); ok {
			msg = map[string]string{"message": str}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
