package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	libjwt "recipe_journal/internal/lib/jwt"
	appmiddleware "recipe_journal/internal/middleware"
	httprouters "recipe_journal/internal/transport/http"
	"recipe_journal/internal/transport/http/dto/response"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

type Options struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TokenSecret  string
	CookieSecret string
	// StaticDir раздается по StaticPrefix, пустой StaticDir отключает раздачу
	StaticDir    string
	StaticPrefix string
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	limiter *appmiddleware.IPRateLimiter
	opts    Options
	cancel  context.CancelFunc
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers, limiter *appmiddleware.IPRateLimiter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = NewValidator()

	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.WriteTimeout

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(opts.CookieSecret))))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		limiter: limiter,
		opts:    opts,
	}
}

// Handler нужен тестам, чтобы гонять запросы без сети
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("port", s.opts.Port))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.limiter.Run(ctx)

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if s.cancel != nil {
		s.cancel()
	}

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) adminAuth() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.opts.TokenSecret),
		ContextKey: httprouters.JWTContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(libjwt.Claims)
		},
		TokenLookup:      "header:Authorization:Bearer ",
		TokenLookupFuncs: []middleware.ValuesExtractor{httprouters.TokenFromSession},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
		},
	})
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if s.opts.StaticDir != "" {
		s.e.Static(s.opts.StaticPrefix, s.opts.StaticDir)
	}

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	limited := appmiddleware.RateLimit(s.limiter)

	api := s.e.Group("/api/v1")
	{
		api.GET("/home", s.routers.Home)
		api.GET("/recipes", s.routers.ListRecipes)
		api.GET("/recipes/categories", s.routers.Categories)
		api.GET("/recipes/:id", s.routers.GetRecipe)
		api.GET("/posts", s.routers.ListPosts)
		api.GET("/posts/:id", s.routers.GetPost)
		api.POST("/contact", s.routers.Contact, limited)

		api.POST("/admin/login", s.routers.AdminLogin, limited)

		admin := api.Group("/admin", s.adminAuth(), s.routers.RequireAdmin)
		{
			admin.POST("/logout", s.routers.AdminLogout)
			admin.GET("/session", s.routers.AdminSession)

			admin.POST("/upload", s.routers.UploadMedia)

			admin.GET("/content/:mode", s.routers.ListContent)
			admin.POST("/content/:mode", s.routers.CreateContent)
			admin.GET("/content/:mode/:id", s.routers.GetContent)
			admin.PUT("/content/:mode/:id", s.routers.UpdateContent)
			admin.DELETE("/content/:mode/:id", s.routers.DeleteContent)
			admin.PATCH("/content/:mode/:id/publish", s.routers.PublishContent)
			admin.POST("/content/:mode/:id/media", s.routers.AttachMedia)
		}
	}
}
