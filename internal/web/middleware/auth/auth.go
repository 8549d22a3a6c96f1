package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/session"
	"github.com/portal-prestadores/portal/internal/web/middleware/portal"
)

// Config configures the middleware.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Routes are the unauthenticated entry points.
	Routes session.Routes

	// DefaultRoute receives signed in users visiting the login page.
	DefaultRoute string

	// Public paths pass without a principal, e.g. /logout.
	Public []string
}

// New creates the authentication middleware. It must run after the portal middleware.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		s := portal.From(c)
		if s == nil {
			log.Error().Str("path", c.Path()).Msg("auth middleware without portal session")

			return fiber.ErrInternalServerError
		}

		if isPublic(cfg, c.Path()) {
			return c.Next()
		}

		signedIn := s.Store.Principal() != nil
		entry := cfg.Routes.EntryPoint(c.Path())

		switch {
		case signedIn && IsLoginPage(cfg, c.Path()):
			return c.Redirect(cfg.DefaultRoute)
		case signedIn, entry:
			return c.Next()
		default:
			return c.Redirect(cfg.Routes.Login)
		}
	}
}

// IsLoginPage checks if path is the login page.
func IsLoginPage(cfg Config, path string) bool {
	login := session.Routes{Login: cfg.Routes.Login}

	return login.EntryPoint(path)
}

func isPublic(cfg Config, path string) bool {
	for _, p := range cfg.Public {
		public := session.Routes{Login: p}
		if public.EntryPoint(path) {
			return true
		}
	}

	return false
}
