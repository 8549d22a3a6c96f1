// Package web serves the portal: server rendered pages on top of the portal
// sessions, each of which talks to the backend REST API.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/gate"
	accesslog "github.com/portal-prestadores/portal/internal/logger/adapter/fiber"
	"github.com/portal-prestadores/portal/internal/permission"
	"github.com/portal-prestadores/portal/internal/session"
	"github.com/portal-prestadores/portal/internal/web/handler/announcement"
	"github.com/portal-prestadores/portal/internal/web/handler/contract"
	"github.com/portal-prestadores/portal/internal/web/handler/dashboard"
	"github.com/portal-prestadores/portal/internal/web/handler/login"
	"github.com/portal-prestadores/portal/internal/web/handler/logout"
	"github.com/portal-prestadores/portal/internal/web/handler/recovery"
	"github.com/portal-prestadores/portal/internal/web/handler/user"
	"github.com/portal-prestadores/portal/internal/web/middleware/auth"
	"github.com/portal-prestadores/portal/internal/web/middleware/portal"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"

	// StaticPath serves the embedded static files.
	StaticPath = "/static"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	manager      *session.Manager
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a signal and shuts the portal down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Int("sessions", s.manager.Len()).Msg("http server was stopped ... good bye...")
}

// Option configures the web service.
type Option func(*Service)

// WithFastShutdown skips the graceful 503 phase on shutdown.
func WithFastShutdown() Option {
	return func(s *Service) {
		s.fastShutDown = true
	}
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, manager *session.Manager, opts ...Option) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if manager == nil {
		panic("session manager cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          newTemplateEngine(cfg),
		},
	)

	service := &Service{
		cfg:     cfg,
		App:     app,
		manager: manager,
	}

	for _, opt := range opts {
		opt(service)
	}

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(accesslog.New(accesslog.Config{
		Config:     cfg.Log,
		SkipPaths:  []string{CheckAlivePath, MetricsPath},
		SessionKey: portal.LocalsSID,
	}))

	if cfg.Webserver.CleanPath {
		app.Use(cleanPath)
	}

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use(StaticPath,
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	routes := session.Routes{Login: cfg.Session.LoginRoute, Recovery: cfg.Session.RecoveryRoute}

	app.Use(
		portal.New(portal.Config{
			Manager:      manager,
			CookieName:   cfg.Webserver.CookieName,
			CookieDomain: cfg.Webserver.Domain,
			CookieSecure: cfg.Webserver.CookieSecure,
			Expiry:       cfg.Session.ExpiryTime,
			Stay:         []string{logout.Path},
		}),
		auth.New(auth.Config{
			Routes:       routes,
			DefaultRoute: defaultRoute(cfg),
			Public:       []string{logout.Path},
		}),
	)

	// init handlers (they register their own routes with permission checks)
	for _, h := range []interface {
		Init(app *fiber.App, cfg *config.Config) error
	}{
		&login.Handler,
		&recovery.Handler,
		&dashboard.Handler,
		&user.Handler,
		&contract.Handler,
		&announcement.Handler,
	} {
		if err := h.Init(app, cfg); err != nil {
			log.Fatal().Err(err).Msg("can't init web handler")
		}
	}

	logout.Handler.Init(app, cfg, manager)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(defaultRoute(cfg))
	})

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("ok")
}

// cleanPath routes requests with repeated slashes or dot segments on their clean path.
func cleanPath(c *fiber.Ctx) error {
	if p := c.Path(); strings.Contains(p, "//") || strings.Contains(p, "/.") {
		c.Path(path.Clean(p))
	}

	return c.Next()
}

func defaultRoute(cfg *config.Config) string {
	if cfg.Session.DefaultRoute != "" {
		return cfg.Session.DefaultRoute
	}

	return api.DefaultRoute
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	engine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		engine = html.New("./internal/web/templates", ".gohtml")
		engine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	engine.AddFuncMap(gate.FuncMap())
	engine.AddFunc("permissionName", permission.Name)
	engine.AddFunc("lower", strings.ToLower)
	engine.AddFunc("brl", formatBRL)
	engine.AddFunc("date", func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}

		return t.Format("02/01/2006")
	})

	return engine
}
