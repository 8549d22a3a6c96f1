// Package dashboard provides the landing page of a signed in user.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/gate"
	"github.com/portal-prestadores/portal/internal/permission"
	"github.com/portal-prestadores/portal/internal/web/handler"
	"github.com/portal-prestadores/portal/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard"

	// FeedSize is the number of announcements shown on the dashboard.
	FeedSize = 3
)

// PermissionView is a permission of the principal for template rendering.
type PermissionView struct {
	Code string
	Name string
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the dashboard handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) error {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return nil
	}

	s.cfg = cfg

	app.Get(Path, gate.Require(handler.Guard(), gate.Gate{}), s.Get)

	return nil
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	sess, err := handler.Session(c)
	if err != nil {
		return err
	}

	nav := navigation.NewContext("Início", navigation.SectionDashboard, "dashboard").
		AddBreadcrumb("Início", Path, true)

	var perms []PermissionView

	if p := sess.Store.Principal(); p != nil {
		for _, code := range p.Permissions.Codes() {
			perms = append(perms, PermissionView{Code: code, Name: permission.Name(code)})
		}
	}

	var feed []api.Announcement

	// the feed is only requested when the principal may read it
	if sess.Store.HasPermission(permission.ViewAnnouncements) {
		feed, err = sess.API.ListAnnouncements(c.UserContext())
		if err != nil {
			log.Warn().Err(err).Str("sid", sess.ID).Msg("can't load announcement feed")
			handler.Failure(sess, err, "Não foi possível carregar os avisos.")
		}

		if len(feed) > FeedSize {
			feed = feed[:FeedSize]
		}
	}

	return handler.Render(c, TemplateName, nav, fiber.Map{
		"Permissions": perms,
		"Feed":        feed,
	})
}
