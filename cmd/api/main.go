package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/config"
	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/handler"
	"github.com/dafibh/mandataire/mandataire-backend/internal/middleware"
	"github.com/dafibh/mandataire/mandataire-backend/internal/repository/postgres"
	"github.com/dafibh/mandataire/mandataire-backend/internal/repository/storage"
	"github.com/dafibh/mandataire/mandataire-backend/internal/service"
	"github.com/dafibh/mandataire/mandataire-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Mandataire API
// @version 1.0
// @description CRM backend for independent agents: prospects, clients, service catalog, recorded sales and the revenue dashboard.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the Auth0 access token.
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Connect to database
	pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Connected to database")

	// Initialize repositories
	prospectRepo := postgres.NewProspectRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	snapshots := postgres.NewSnapshotReader(pool)

	// Change feed
	hub := websocket.NewHub()

	// Initialize services
	prospectService := service.NewProspectService(prospectRepo, cfg.PhoneDefaultRegion)
	clientService := service.NewClientService(clientRepo, cfg.PhoneDefaultRegion)
	catalogService := service.NewCatalogService(serviceRepo)
	saleService := service.NewSaleService(saleRepo, clientRepo, serviceRepo)
	dashboardService := service.NewDashboardService(snapshots, cfg.Location)

	prospectService.SetEventPublisher(hub)
	clientService.SetEventPublisher(hub)
	catalogService.SetEventPublisher(hub)
	saleService.SetEventPublisher(hub)

	// Optional S3 report archive
	var reportStore domain.ReportStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3ReportStore(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize report storage")
		}
		reportStore = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Report archive enabled")
	}
	exportService := service.NewExportService(dashboardService, reportStore, cfg.ReportURLTTL)

	// Optional Auth0 guard
	var (
		authMiddleware *middleware.AuthMiddleware
		wsValidator    websocket.TokenValidator
	)
	if cfg.AuthEnabled() {
		authMiddleware, err = middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth middleware")
		}
		jwtValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create websocket token validator")
		}
		wsValidator = jwtValidator
	} else {
		log.Warn().Msg("AUTH0_DOMAIN is not set: the API is served without authentication")
	}

	// Initialize handlers
	handlers := handler.Handlers{
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Export:    handler.NewExportHandler(exportService),
		Prospect:  handler.NewProspectHandler(prospectService),
		Client:    handler.NewClientHandler(clientService),
		Service:   handler.NewServiceHandler(catalogService),
		Sale:      handler.NewSaleHandler(saleService, cfg.Location),
		WebSocket: handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins),
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Per-client-IP rate limiting
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Register routes
	handler.RegisterRoutes(e, authMiddleware, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("timezone", cfg.Location.String()).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
