package session

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gofiber/fiber/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/notify"
)

const (
	defaultCacheSize   = 1024
	defaultNoticeLimit = 8
)

var (
	mountedSessions = promauto.NewGauge(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "portal_sessions_mounted",
		Help: "Number of portal sessions currently held in memory.",
	})

	sessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "portal_session_transitions_total",
		Help: "Principal transitions of portal sessions.",
	}, []string{"to"})
)

// Session is one mounted portal session.
type Session struct {
	ID         string
	Store      *Store
	Notices    *notify.Queue
	Navigation *PendingNavigator
	API        *api.Client

	bootstrapper *Bootstrapper
	mount        sync.Once
	outcome      Outcome
	unsubscribe  func()
}

// Mount runs the bootstrapper the first time it is called and returns its outcome.
// Later calls wait for the first one and return the same outcome.
func (s *Session) Mount(ctx context.Context, path string) Outcome {
	s.mount.Do(func() {
		s.outcome = s.bootstrapper.Run(ctx, s.Store, path)

		log.Debug().Str("sid", s.ID).Str("path", path).Stringer("outcome", s.outcome).Msg("portal session mounted")
	})

	return s.outcome
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Storage        fiber.Storage
	Expiry         time.Duration
	CacheSize      int
	NoticeLimit    int
	APIBaseURL     string
	APITimeout     time.Duration
	Transport      http.RoundTripper // base transport below the interceptor, nil for the default
	Interceptor    api.InterceptorConfig
	Clock          clock.Clock
	NavigationTTL  time.Duration // lifetime of an unanswered pending navigation, zero for twice the redirect delay
	Routes         Routes
	ExpiredMessage string
}

// NewManagerConfig maps the portal configuration onto a ManagerConfig.
func NewManagerConfig(cfg *config.Config, storage fiber.Storage) ManagerConfig {
	return ManagerConfig{
		Storage:    storage,
		Expiry:     cfg.Session.ExpiryTime,
		CacheSize:  cfg.Session.CacheSize,
		APIBaseURL: cfg.API.BaseURL,
		APITimeout: cfg.API.Timeout,
		Interceptor: api.InterceptorConfig{
			DeniedMessage:   cfg.API.DeniedMessage,
			FallbackMessage: cfg.API.FallbackMessage,
			Cooldown:        cfg.API.NotifyCooldown,
			RedirectDelay:   cfg.API.RedirectDelay,
			DefaultRoute:    cfg.Session.DefaultRoute,
		},
		Routes:         Routes{Login: cfg.Session.LoginRoute, Recovery: cfg.Session.RecoveryRoute},
		ExpiredMessage: cfg.Session.ExpiredMessage,
	}
}

// Manager keeps the mounted portal sessions in a bounded LRU cache.
// An evicted session is mounted again from durable storage on its next request.
type Manager struct {
	cfg   ManagerConfig
	mu    sync.Mutex
	cache *lru.Cache[string, *Session]
}

// NewManager creates a session manager.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Storage == nil {
		return nil, ErrNoStorage
	}

	if cfg.APIBaseURL == "" {
		return nil, api.ErrEmptyBaseURL
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}

	if cfg.NoticeLimit <= 0 {
		cfg.NoticeLimit = defaultNoticeLimit
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	if cfg.Routes.Login == "" {
		cfg.Routes.Login = api.LoginPath
	}

	if cfg.NavigationTTL <= 0 {
		delay := cfg.Interceptor.RedirectDelay
		if delay <= 0 {
			delay = api.DefaultRedirectDelay
		}

		cfg.NavigationTTL = 2 * delay
	}

	cache, err := lru.NewWithEvict(cfg.CacheSize, func(id string, s *Session) {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}

		mountedSessions.Dec()
		log.Debug().Str("sid", id).Msg("portal session released")
	})
	if err != nil {
		return nil, errors.Wrap(err, "create session cache")
	}

	return &Manager{cfg: cfg, cache: cache}, nil
}

// Get returns the portal session of id, creating it if needed.
func (m *Manager) Get(id string) (*Session, error) {
	if id == "" {
		return nil, ErrEmptySessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.cache.Get(id); ok {
		return s, nil
	}

	s, err := m.newSession(id)
	if err != nil {
		return nil, err
	}

	m.cache.Add(id, s)
	mountedSessions.Inc()

	return s, nil
}

// Discard drops the portal session of id from memory.
func (m *Manager) Discard(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Remove(id)
}

// Len returns the number of mounted sessions.
func (m *Manager) Len() int {
	return m.cache.Len()
}

func (m *Manager) newSession(id string) (*Session, error) {
	nav := NewPendingNavigator(m.cfg.Clock, m.cfg.NavigationTTL)
	notices := notify.NewQueue(m.cfg.NoticeLimit)
	store := NewStore(NewKV(m.cfg.Storage, id, m.cfg.Expiry), nav, m.cfg.Routes.Login)

	interceptor := api.NewInterceptor(m.cfg.Transport, store, notices, nav, m.cfg.Clock, m.cfg.Interceptor)

	opts := []api.Option{api.WithTransport(interceptor)}
	if m.cfg.APITimeout > 0 {
		opts = append(opts, api.WithTimeout(m.cfg.APITimeout))
	}

	client, err := api.New(m.cfg.APIBaseURL, opts...)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	s := &Session{
		ID:           id,
		Store:        store,
		Notices:      notices,
		Navigation:   nav,
		API:          client,
		bootstrapper: NewBootstrapper(client, notices, nav, m.cfg.Routes, m.cfg.ExpiredMessage),
	}

	var signedIn atomic.Bool

	s.unsubscribe = store.Subscribe(func(snap Snapshot) {
		now := snap.Principal != nil
		if signedIn.Swap(now) == now {
			return
		}

		if now {
			sessionTransitions.WithLabelValues("signed_in").Inc()
			log.Info().Str("sid", id).Int64("user", snap.Principal.ID).Msg("principal set")

			return
		}

		sessionTransitions.WithLabelValues("signed_out").Inc()
		log.Info().Str("sid", id).Stringer("loading", snap.Loading).Msg("principal cleared")
	})

	return s, nil
}
