// Package contract lists provider contracts and deletes them.
package contract

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/gate"
	"github.com/portal-prestadores/portal/internal/notify"
	"github.com/portal-prestadores/portal/internal/permission"
	"github.com/portal-prestadores/portal/internal/web/handler"
	"github.com/portal-prestadores/portal/internal/web/handler/dashboard"
	"github.com/portal-prestadores/portal/internal/web/navigation"
)

const (
	// Path is the base path for contracts.
	Path = handler.RootPath + "contratos"

	// TemplateList is the template for listing contracts.
	TemplateList = "contratos"

	msgDeleted = "Contrato excluído."
)

// Service lists and deletes contracts.
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
	guard := handler.Guard()

	app.Get(Path,
		gate.RequireAnyPermission(guard, permission.ViewContracts, permission.DeleteContract),
		s.List,
	)
	app.Post(Path+"/:id<int>/excluir",
		gate.RequirePermission(guard, permission.DeleteContract),
		s.Delete,
	)

	return nil
}

// List renders the contracts visible to the principal.
func (s *Service) List(c *fiber.Ctx) error {
	sess, err := handler.Session(c)
	if err != nil {
		return err
	}

	nav := navigation.NewContext("Contratos", navigation.SectionContracts, "lista").
		AddBreadcrumb("Início", dashboard.Path, false).
		AddBreadcrumb("Contratos", Path, true)

	contracts, err := sess.API.ListContracts(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Str("sid", sess.ID).Msg("can't list contracts")
		handler.Deny(c, s.cfg, err)
		handler.Failure(sess, err, "Não foi possível carregar os contratos.")
	}

	if contracts == nil {
		contracts = []api.Contract{}
	}

	return handler.Render(c, TemplateList, nav, fiber.Map{
		"Contracts": contracts,
	})
}

// Delete removes a contract and returns to the list.
func (s *Service) Delete(c *fiber.Ctx) error {
	sess, err := handler.Session(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	message, err := sess.API.DeleteContract(c.UserContext(), id)
	if err != nil {
		log.Warn().Err(err).Str("sid", sess.ID).Int64("contract", id).Msg("can't delete contract")
		handler.Failure(sess, err, "Não foi possível excluir o contrato.")

		if handler.Denied(s.cfg, err) != nil {
			handler.Deny(c, s.cfg, err)

			return s.List(c.Status(fiber.StatusForbidden))
		}

		return c.Redirect(Path)
	}

	if message == "" {
		message = msgDeleted
	}

	sess.Notices.Notify(notify.Success(message))
	log.Info().Str("sid", sess.ID).Int64("contract", id).Msg("contract deleted")

	return c.Redirect(Path)
}
