// Package portal mounts the portal session of a browser session on every request.
//
// The browser session is identified by a random cookie id. The middleware gets
// or creates the portal session of that id, runs its bootstrap on the first
// request and turns a pending navigation into a redirect.
package portal

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/gate"
	"github.com/portal-prestadores/portal/internal/session"
)

const (
	// LocalsSID is the fiber local holding the browser session id.
	LocalsSID = "sid"

	// LocalsSession is the fiber local holding the *session.Session.
	LocalsSession = "portal_session"

	// DefaultCookieName is used when Config.CookieName is empty.
	DefaultCookieName = "portal_sid"
)

// Config configures the middleware.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Manager holds the mounted portal sessions. Required.
	Manager *session.Manager

	// CookieName of the browser session id.
	CookieName string

	// CookieDomain of the browser session cookie.
	CookieDomain string

	// CookieSecure marks the cookie as https only.
	CookieSecure bool

	// Expiry is the lifetime of the cookie. Zero makes it a browser session cookie.
	Expiry time.Duration

	// Stay lists paths that never follow a pending navigation, e.g. /logout.
	// Requests other than GET and HEAD never follow one either; it stays
	// pending for the next page load.
	Stay []string
}

// New creates the portal session middleware.
func New(cfg Config) fiber.Handler {
	if cfg.Manager == nil {
		log.Fatal().Msg("portal middleware without session manager")
	}

	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		sid := c.Cookies(cfg.CookieName)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(cookie(cfg, sid, int(cfg.Expiry.Seconds())))
		}

		s, err := cfg.Manager.Get(sid)
		if err != nil {
			log.Error().Err(err).Str("sid", sid).Msg("can't get portal session")

			return fiber.ErrInternalServerError
		}

		c.Locals(LocalsSID, sid)
		c.Locals(LocalsSession, s)

		s.Mount(c.UserContext(), c.Path())

		if !follows(cfg, c) {
			return c.Next()
		}

		if target, ok := s.Navigation.Take(); ok && !samePath(target, c.Path()) {
			log.Debug().Str("sid", sid).Str("from", c.Path()).Str("to", target).Msg("following pending navigation")

			return c.Redirect(target)
		}

		return c.Next()
	}
}

// ClearCookie expires the browser session cookie.
func ClearCookie(c *fiber.Ctx, cfg Config) {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}

	expired := cookie(cfg, "", -1)
	expired.Expires = time.Unix(0, 0)

	c.Cookie(expired)
}

func cookie(cfg Config, value string, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   maxAge,
		Secure:   cfg.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func follows(cfg Config, c *fiber.Ctx) bool {
	if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
		return false
	}

	for _, p := range cfg.Stay {
		if samePath(p, c.Path()) {
			return false
		}
	}

	return true
}

func samePath(a, b string) bool {
	return strings.EqualFold(strings.TrimRight(a, "/"), strings.TrimRight(b, "/"))
}

// From returns the portal session mounted for c, nil outside the middleware.
func From(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(LocalsSession).(*session.Session)

	return s
}

// SID returns the browser session id of c.
func SID(c *fiber.Ctx) string {
	sid, _ := c.Locals(LocalsSID).(string)

	return sid
}

// Subject returns the session store of c as gate subject, nil without a session.
func Subject(c *fiber.Ctx) gate.Subject {
	s := From(c)
	if s == nil {
		return nil
	}

	return s.Store
}
