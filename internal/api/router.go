package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/contentdesk/cms/internal/api/handler"
	"github.com/contentdesk/cms/internal/api/middleware"
	"github.com/contentdesk/cms/internal/core/ports"
)

// Services groups the use cases the router exposes.
type Services struct {
	Auth  ports.AuthService
	Posts ports.PostService
	Users ports.UserService
	Media ports.MediaService
}

// Options configures NewRouter.
type Options struct {
	Logger       zerolog.Logger
	SecureCookie bool
	// Readiness lists the dependency probes served on /health/ready.
	Readiness []handler.DependencyCheck
	// Registry receives the HTTP metrics and backs /metrics. Nil selects
	// the default prometheus registry, where the custom metrics live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	promConf := echoprometheus.MiddlewareConfig{Subsystem: "cms"}
	handlerConf := echoprometheus.HandlerConfig{}
	if opts.Registry != nil {
		promConf.Registerer = opts.Registry
		handlerConf.Gatherer = opts.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConf))

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Readiness...)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerConf))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	authHandler := handler.NewAuthHandler(svc.Auth, opts.SecureCookie)
	postHandler := handler.NewPostHandler(svc.Posts)
	userHandler := handler.NewUserHandler(svc.Users)
	mediaHandler := handler.NewMediaHandler(svc.Media)

	apiGroup := e.Group("/api", middleware.Auth(svc.Auth))
	requireActor := middleware.RequireActor()

	users := apiGroup.Group("/users")
	users.POST("", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.POST("/logout", authHandler.Logout, requireActor)
	users.GET("/me", authHandler.Me, requireActor)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	posts := apiGroup.Group("/posts")
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", postHandler.Create)
	posts.PATCH("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)

	media := apiGroup.Group("/media")
	media.GET("", mediaHandler.List)
	media.GET("/:id", mediaHandler.Get)
	media.POST("", mediaHandler.Create)
	media.PATCH("/:id", mediaHandler.Update)
	media.DELETE("/:id", mediaHandler.Delete)

	return e
}

// requestLogger logs one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
