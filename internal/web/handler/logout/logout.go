// Package logout ends the portal session of a browser.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/session"
	"github.com/portal-prestadores/portal/internal/web/handler"
	"github.com/portal-prestadores/portal/internal/web/middleware/portal"
)

// Path is the logout path.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	manager *session.Manager
	cookie  portal.Config
}

// Handler is the logout handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, manager *session.Manager) {
	if app == nil || cfg == nil || manager == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.manager = manager
	s.cookie = portal.Config{
		CookieName:   cfg.Webserver.CookieName,
		CookieDomain: cfg.Webserver.Domain,
		CookieSecure: cfg.Webserver.CookieSecure,
	}

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout clears the principal and its durable keys, drops the mounted portal
// session and follows the navigation the store requested.
func (s *Service) Logout(c *fiber.Ctx) error {
	target := s.cfg.Session.LoginRoute
	if target == "" {
		target = api.LoginPath
	}

	if sess := portal.From(c); sess != nil {
		sess.Store.Logout()

		if t, ok := sess.Navigation.Take(); ok {
			target = t
		}

		s.manager.Discard(sess.ID)
		log.Info().Str("sid", sess.ID).Msg("logged out")
	}

	portal.ClearCookie(c, s.cookie)

	return c.Redirect(target)
}
