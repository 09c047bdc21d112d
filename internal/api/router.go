package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/plantnet/plantnet-api/docs"
	"github.com/plantnet/plantnet-api/internal/api/handler"
	"github.com/plantnet/plantnet-api/internal/api/middleware"
	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Plants   ports.PlantService
	Orders   ports.OrderService
	Payments ports.PaymentService
	Sessions ports.SessionService
	Users    ports.UserService

	// Roles backs the admin guard.
	Roles ports.UserReader

	HealthChecks map[string]handler.HealthCheck
	Logger       zerolog.Logger

	// Registerer receives the HTTP request metrics and Gatherer is served on
	// /metrics. Either may be nil to disable the corresponding feature.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// Options are the transport settings taken from configuration.
type Options struct {
	CookieName     string
	Production     bool
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps, opts Options) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	if deps.Registerer != nil {
		mw, err := echoprometheus.MiddlewareConfig{
			Subsystem:  "http",
			Registerer: deps.Registerer,
			Skipper: func(c echo.Context) bool {
				p := c.Path()
				return p == "/metrics" || strings.HasPrefix(p, "/swagger")
			},
		}.ToMiddleware()
		if err != nil {
			return nil, err
		}
		e.Use(mw)
	}

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	plantHandler := handler.NewPlantHandler(deps.Plants)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	paymentHandler := handler.NewPaymentHandler(deps.Payments)
	sessionHandler := handler.NewSessionHandler(deps.Sessions, handler.CookieConfig{
		Name:       opts.CookieName,
		Production: opts.Production,
	}, deps.Logger)
	userHandler := handler.NewUserHandler(deps.Users)

	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = "token"
	}
	auth := middleware.Auth(deps.Sessions, cookieName)
	adminOnly := middleware.RequireRole(deps.Roles, domain.RoleAdmin)

	// --- Probes and tooling (no auth required) ---
	e.GET("/", healthHandler.Banner)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if deps.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// --- Sessions ---
	e.POST("/jwt", sessionHandler.Issue, middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	e.GET("/logout", sessionHandler.Logout)

	// --- Catalogue ---
	e.POST("/plants", plantHandler.Create)
	e.GET("/plants", plantHandler.List)
	e.GET("/plants/:id", plantHandler.Get)

	// --- Checkout ---
	e.POST("/create-payment-intent", paymentHandler.CreateIntent, middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	e.POST("/orders", orderHandler.Place, auth)

	// --- Users ---
	e.POST("/users", userHandler.Register)
	e.GET("/users", userHandler.List, auth, adminOnly)
	e.GET("/users/role/:email", userHandler.GetRole, auth)
	e.PATCH("/users/:email", userHandler.TouchLastLogin, auth)
	e.PATCH("/users/role/:id", userHandler.UpdateRole, auth, adminOnly)
	e.PATCH("/users/request-seller/:email", userHandler.RequestSeller, auth)

	return e, nil
}
