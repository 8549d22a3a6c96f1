package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/gate"
	"github.com/portal-prestadores/portal/internal/notify"
	"github.com/portal-prestadores/portal/internal/session"
	"github.com/portal-prestadores/portal/internal/web/middleware/portal"
	"github.com/portal-prestadores/portal/internal/web/navigation"
)

// LocalsRefresh is the fiber local holding the *Refresh of a page.
const LocalsRefresh = "refresh"

// Refresh is a client side navigation scheduled by a rendered page.
type Refresh struct {
	Seconds int
	URL     string
}

// Content returns the value of a meta refresh tag.
func (r *Refresh) Content() string {
	return strconv.Itoa(r.Seconds) + ";url=" + r.URL
}

// View builds the template data every page gets: the app title, the gate subject, the principal,
// pending notifications, the visible menu and the navigation context. extra is merged on top.
func View(c *fiber.Ctx, nav *navigation.Context, extra fiber.Map) fiber.Map {
	data := fiber.Map{
		"Title":      c.App().Config().AppName,
		"Navigation": nav,
		"Session":    portal.Subject(c),
	}

	if s := portal.From(c); s != nil {
		data["User"] = s.Store.Principal()
		data["Notices"] = s.Notices.Drain()
		data["Menu"] = navigation.Visible(s.Store, navigation.DefaultMenu())
	}

	if r, ok := c.Locals(LocalsRefresh).(*Refresh); ok {
		data["Refresh"] = r
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

// Render renders name within the base layout.
func Render(c *fiber.Ctx, name string, nav *navigation.Context, extra fiber.Map) error {
	return c.Render(name, View(c, nav, extra), BaseLayout)
}

// Session returns the portal session of c. Handlers are only reachable behind
// the portal middleware, so a missing session is an internal error.
func Session(c *fiber.Ctx) (*session.Session, error) {
	s := portal.From(c)
	if s == nil {
		log.Error().Str("path", c.Path()).Msg("request without portal session")

		return nil, fiber.ErrInternalServerError
	}

	return s, nil
}

// Denied returns the refresh a page shows after the backend denied a call with
// the sentinel message, nil for any other error. The interceptor has already
// notified the user and scheduled the same navigation on the session.
func Denied(cfg *config.Config, err error) *Refresh {
	if !api.IsForbidden(err) {
		return nil
	}

	sentinel := cfg.API.DeniedMessage
	if sentinel == "" {
		sentinel = api.DefaultDeniedMessage
	}

	if api.MessageOf(err) != sentinel {
		return nil
	}

	delay := cfg.API.RedirectDelay
	if delay <= 0 {
		delay = api.DefaultRedirectDelay
	}

	route := cfg.Session.DefaultRoute
	if route == "" {
		route = api.DefaultRoute
	}

	return &Refresh{Seconds: int((delay + time.Second - 1) / time.Second), URL: route}
}

// Deny schedules the refresh of Denied on the page rendered for c.
func Deny(c *fiber.Ctx, cfg *config.Config, err error) {
	if r := Denied(cfg, err); r != nil {
		c.Locals(LocalsRefresh, r)
	}
}

// Failure notifies err on the session unless the interceptor already did for a 403.
func Failure(s *session.Session, err error, fallback string) {
	if api.IsForbidden(err) {
		return
	}

	msg := api.MessageOf(err)
	if msg == "" {
		msg = fallback
	}

	s.Notices.Notify(notify.Error(msg))
}

// Guard returns the gate configuration of the portal routes. Denied requests
// get the forbidden page.
func Guard() gate.Config {
	return gate.Config{
		Subject: portal.Subject,
		Denied: func(c *fiber.Ctx) error {
			nav := navigation.NewContext("Acesso negado", "", "").
				AddBreadcrumb("Início", RootPath, false).
				AddBreadcrumb("Acesso negado", c.Path(), true)

			return Render(c.Status(fiber.StatusForbidden), ForbiddenTemplate, nav, nil)
		},
	}
}
