// Package user lists the portal users.
package user

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
	// Path is the base path for the user list.
	Path = handler.RootPath + "usuarios"

	// TemplateList is the template for listing users.
	TemplateList = "usuarios"
)

// Service lists users.
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

	app.Get(Path, gate.RequirePermission(handler.Guard(), permission.ViewUsers), s.List)

	return nil
}

// List renders the users known to the backend.
func (s *Service) List(c *fiber.Ctx) error {
	sess, err := handler.Session(c)
	if err != nil {
		return err
	}

	nav := navigation.NewContext("Usuários", navigation.SectionUsers, "lista").
		AddBreadcrumb("Início", dashboard.Path, false).
		AddBreadcrumb("Usuários", Path, true)

	users, err := sess.API.ListUsers(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Str("sid", sess.ID).Msg("can't list users")
		handler.Deny(c, s.cfg, err)
		handler.Failure(sess, err, "Não foi possível carregar os usuários.")
	}

	if users == nil {
		users = []api.User{}
	}

	return handler.Render(c, TemplateList, nav, fiber.Map{
		"Users": users,
	})
}
