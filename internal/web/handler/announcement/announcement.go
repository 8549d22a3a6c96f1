// Package announcement renders the announcement feed.
package announcement

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/gate"
	"github.com/portal-prestadores/portal/internal/permission"
	"github.com/portal-prestadores/portal/internal/web/handler"
	"github.com/portal-prestadores/portal/internal/web/handler/dashboard"
	"github.com/portal-prestadores/portal/internal/web/navigation"
)

const (
	// Path is the path of the feed.
	Path = handler.RootPath + "avisos"

	// TemplateName is the feed template.
	TemplateName = "avisos"
)

// Service renders the feed.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the exported instance.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config) error {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.cfg = cfg

	app.Get(Path, gate.RequirePermission(handler.Guard(), permission.ViewAnnouncements), s.Get)

	return nil
}

// Get renders the feed.
func (s *Service) Get(c *fiber.Ctx) error {
	sess, err := handler.Session(c)
	if err != nil {
		return err
	}

	nav := navigation.NewContext("Avisos", navigation.SectionAnnouncements, "feed").
		AddBreadcrumb("Início", dashboard.Path, false).
		AddBreadcrumb("Avisos", Path, true)

	feed, err := sess.API.ListAnnouncements(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Str("sid", sess.ID).Msg("can't load announcements")
		handler.Deny(c, s.cfg, err)
		handler.Failure(sess, err, "Não foi possível carregar os avisos.")
	}

	if feed == nil {
		feed = []api.Announcement{}
	}

	return handler.Render(c, TemplateName, nav, fiber.Map{
		"Feed": feed,
	})
}
