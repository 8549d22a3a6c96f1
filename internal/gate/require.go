package gate

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// SubjectFunc resolves the subject of a request, nil when there is none.
type SubjectFunc func(c *fiber.Ctx) Subject

// Config configures the route guard.
type Config struct {
	// Subject resolves the subject of a request. Required.
	Subject SubjectFunc

	// Denied handles a request the gate does not allow.
	//
	// Optional. Default: 403 with a short text.
	Denied fiber.Handler
}

func defaultDenied(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).SendString("Forbidden: you don't have permission to access this resource")
}

// Require creates Fiber middleware letting a request pass only when g allows its subject.
// The guard is a convenience for the user; the backend stays the authority.
func Require(cfg Config, g Gate) fiber.Handler {
	denied := cfg.Denied
	if denied == nil {
		denied = defaultDenied
	}

	return func(c *fiber.Ctx) error {
		var s Subject
		if cfg.Subject != nil {
			s = cfg.Subject(c)
		}

		if g.Allows(s) {
			return c.Next()
		}

		log.Debug().Str("path", c.Path()).Str("permission", g.Permission).Strs("permissions", g.Permissions).
			Msg("route gate denied")

		return denied(c)
	}
}

// RequirePermission guards a route on a single permission.
func RequirePermission(cfg Config, code string) fiber.Handler {
	return Require(cfg, One(code))
}

// RequireAnyPermission guards a route on at least one of codes.
func RequireAnyPermission(cfg Config, codes ...string) fiber.Handler {
	return Require(cfg, Any(codes...))
}

// RequireAllPermissions guards a route on every one of codes.
func RequireAllPermissions(cfg Config, codes ...string) fiber.Handler {
	return Require(cfg, All(codes...))
}
