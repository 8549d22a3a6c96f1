// Package daemon wires the configuration into the running services.
package daemon

import (
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/db"
	"github.com/portal-prestadores/portal/internal/devapi"
	"github.com/portal-prestadores/portal/internal/logger"
	gormlog "github.com/portal-prestadores/portal/internal/logger/adapter/gorm"
	"github.com/portal-prestadores/portal/internal/session"
	"github.com/portal-prestadores/portal/internal/web"
)

const slowQueryThreshold = 200 * time.Millisecond

// Daemon represents the portal web service.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the web service and blocks until it was shut down by a signal.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go func() {
		log.Info().Str("addr", addr).Str("api", d.cfg.API.BaseURL).Msg("portal listening")

		if err := d.webService.Start(addr); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	d.webService.WaitShutdown()

	return nil
}

// New creates the portal daemon: logger, durable session storage, session manager and web service.
func New(cfg *config.Config, opts ...web.Option) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "init logger")
	}

	storage, err := session.NewStorage(cfg.Session.Storage)
	if err != nil {
		return nil, errors.Wrap(err, "open session storage")
	}

	manager, err := session.NewManager(session.NewManagerConfig(cfg, storage))
	if err != nil {
		return nil, errors.Wrap(err, "create session manager")
	}

	log.Info().Str("storage", cfg.Session.Storage.Driver).Int("cache", cfg.Session.CacheSize).Msg("session manager ready")

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, manager, opts...),
	}, nil
}

// DevAPI is the development backend.
type DevAPI struct {
	cfg    *config.Config
	server *devapi.Server
}

// NewDevAPI opens the development database, seeds it on request and creates the backend.
func NewDevAPI(cfg *config.Config) (*DevAPI, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "init logger")
	}

	level := gormlogger.Warn
	if cfg.DevMode {
		level = gormlogger.Info
	}

	gdb, err := db.Open(cfg.DevAPI.DB, &gorm.Config{Logger: gormlog.New(level, slowQueryThreshold)})
	if err != nil {
		return nil, errors.Wrap(err, "open devapi database")
	}

	if cfg.DevAPI.Seed {
		if err := db.Seed(gdb); err != nil {
			return nil, errors.Wrap(err, "seed devapi database")
		}
	}

	return &DevAPI{
		cfg: cfg,
		server: devapi.New(devapi.Config{
			Prefix:        apiPrefix(cfg.API.BaseURL),
			JWTSecret:     cfg.DevAPI.JWTSecret,
			TokenTTL:      cfg.DevAPI.TokenTTL,
			DeniedMessage: cfg.API.DeniedMessage,
		}, gdb),
	}, nil
}

// Start serves the backend until SIGINT or SIGTERM.
func (d *DevAPI) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.DevAPI.Port)
	done := make(chan error, 1)

	go func() {
		log.Info().Str("addr", addr).Msg("devapi listening")
		done <- d.server.Listen(addr)
	}()

	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-done:
		return errors.Wrap(err, "devapi listen")
	case sig := <-irqSig:
		log.Info().Msgf("shutdown request (signal: %v)", sig)
	}

	return errors.Wrap(d.server.Shutdown(), "devapi shutdown")
}

// apiPrefix mounts the development backend below the path of the configured API base URL.
func apiPrefix(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	return u.Path
}
