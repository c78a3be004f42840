package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/smartoffice/platform/docs"
	"github.com/smartoffice/platform/internal/api/handler"
	"github.com/smartoffice/platform/internal/api/middleware"
	"github.com/smartoffice/platform/internal/core/domain"
	"github.com/smartoffice/platform/internal/core/ports"
)

// Options carries what both services share.
type Options struct {
	// Service names the metrics subsystem and the health payload.
	Service        string
	Logger         zerolog.Logger
	AllowedOrigins []string
	// Checks feed GET /health/ready.
	Checks map[string]handler.Checker
	// Registerer receives the HTTP metrics. Nil means the default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewIdentityRouter builds the identity service: register and login.
func NewIdentityRouter(opts Options, auth ports.AuthService) *echo.Echo {
	e := newEcho(opts)

	authHandler := handler.NewAuthHandler(auth)
	g := e.Group("/api/auth")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)

	return e
}

// NewResourceRouter builds the resource service. Every asset route requires a
// valid bearer token; writes additionally require the Admin role.
func NewResourceRouter(opts Options, assets ports.AssetService, validator ports.TokenValidator) *echo.Echo {
	e := newEcho(opts)

	assetHandler := handler.NewAssetHandler(assets)
	g := e.Group("/api/assets", middleware.Auth(validator))

	g.GET("", assetHandler.List, middleware.RequireAuthenticated())
	g.GET("/:id", assetHandler.Get, middleware.RequireAuthenticated())

	admin := middleware.RequireRole(domain.RoleAdmin)
	g.POST("", assetHandler.Create, admin)
	g.PUT("/:id", assetHandler.Update, admin)
	g.DELETE("/:id", assetHandler.Delete, admin)

	return e
}

func newEcho(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, handler.HeaderIdempotencyKey},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 opts.Service,
		Registerer:                opts.Registerer,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(opts.Service, opts.Checks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
