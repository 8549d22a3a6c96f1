package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/portal-prestadores/portal/internal/notify"
)

const (
	// DefaultDeniedMessage is the backend message for a request the principal has no permission for.
	DefaultDeniedMessage = "Acesso negado: sem permissão"

	// DefaultFallbackMessage is shown when a 403 carries no message.
	DefaultFallbackMessage = "Você não tem permissão para realizar esta ação."

	// DefaultCooldown is the window in which repeated 403 notifications are suppressed.
	DefaultCooldown = 3 * time.Second

	// DefaultRedirectDelay is the time given to read the denial before navigating away.
	DefaultRedirectDelay = 1500 * time.Millisecond

	// DefaultRoute is the safe route navigated to after a denial.
	DefaultRoute = "/dashboard"
)

var forbiddenTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "portal_api_forbidden_total",
		Help: "Number of 403 answers seen by the gateway interceptor, by outcome.",
	},
	[]string{"outcome"},
)

// Credentials yields the bearer token of the current session. An empty string means none.
type Credentials interface {
	Token() string
}

// Navigator requests a full navigation to path.
type Navigator interface {
	Navigate(path string)
}

// InterceptorConfig holds the tunables of the interceptor.
type InterceptorConfig struct {
	// LoginPath identifies the login call, which never carries credentials.
	LoginPath string
	// DeniedMessage is the sentinel message that triggers the delayed navigation.
	DeniedMessage string
	// FallbackMessage is shown when the backend sends no message.
	FallbackMessage string
	// Cooldown is the deduplication window of 403 notifications.
	Cooldown time.Duration
	// RedirectDelay is the delay before navigating to DefaultRoute.
	RedirectDelay time.Duration
	// DefaultRoute is the navigation target after a sentinel denial.
	DefaultRoute string
}

func (c InterceptorConfig) withDefaults() InterceptorConfig {
	if c.LoginPath == "" {
		c.LoginPath = LoginPath
	}

	if c.DeniedMessage == "" {
		c.DeniedMessage = DefaultDeniedMessage
	}

	if c.FallbackMessage == "" {
		c.FallbackMessage = DefaultFallbackMessage
	}

	if c.Cooldown == 0 {
		c.Cooldown = DefaultCooldown
	}

	if c.RedirectDelay == 0 {
		c.RedirectDelay = DefaultRedirectDelay
	}

	if c.DefaultRoute == "" {
		c.DefaultRoute = DefaultRoute
	}

	return c
}

// Interceptor is the gateway every backend request of a portal session passes.
// It attaches the session credential and turns 403 answers into one
// deduplicated notification, plus a delayed navigation for the denial sentinel.
// Responses are always handed back unchanged.
type Interceptor struct {
	base     http.RoundTripper
	creds    Credentials
	notifier notify.Notifier
	nav      Navigator
	clock    clock.Clock
	guard    *notify.Guard
	cfg      InterceptorConfig
}

// NewInterceptor wraps base. A nil base uses http.DefaultTransport and a nil clock the wall clock.
func NewInterceptor(
	base http.RoundTripper,
	creds Credentials,
	notifier notify.Notifier,
	nav Navigator,
	clk clock.Clock,
	cfg InterceptorConfig,
) *Interceptor {
	if base == nil {
		base = http.DefaultTransport
	}

	if clk == nil {
		clk = clock.New()
	}

	cfg = cfg.withDefaults()

	return &Interceptor{
		base:     base,
		creds:    creds,
		notifier: notifier,
		nav:      nav,
		clock:    clk,
		guard:    notify.NewGuard(clk, cfg.Cooldown),
		cfg:      cfg,
	}
}

// RoundTrip implements http.RoundTripper.
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	if !i.isLogin(req) && i.creds != nil {
		if token := i.creds.Token(); token != "" {
			req = req.Clone(req.Context())
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
		}
	}

	resp, err := i.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		return resp, err //nolint:wrapcheck
	}

	i.handleForbidden(req, resp)

	return resp, nil
}

func (i *Interceptor) isLogin(req *http.Request) bool {
	return req.Method == http.MethodPost && strings.HasSuffix(strings.TrimRight(req.URL.Path, "/"), i.cfg.LoginPath)
}

func (i *Interceptor) handleForbidden(req *http.Request, resp *http.Response) {
	message := peekMessage(resp)

	if !i.guard.Allow() {
		forbiddenTotal.WithLabelValues("suppressed").Inc()
		log.Debug().Str("path", req.URL.Path).Msg("403 notification suppressed")

		return
	}

	forbiddenTotal.WithLabelValues("notified").Inc()
	log.Warn().Str("path", req.URL.Path).Str("backend_message", message).Msg("access denied by backend")

	shown := message
	if shown == "" {
		shown = i.cfg.FallbackMessage
	}

	if i.notifier != nil {
		i.notifier.Notify(notify.Error(shown))
	}

	if message == i.cfg.DeniedMessage && i.nav != nil {
		target := i.cfg.DefaultRoute
		i.clock.AfterFunc(i.cfg.RedirectDelay, func() {
			i.nav.Navigate(target)
		})
	}
}

// peekMessage reads the {message} body and restores it for the caller.
func peekMessage(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))

	if err != nil {
		return ""
	}

	var body MessageBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}

	return body.Message
}
