// Package recovery provides the password recovery page.
package recovery

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/web/handler"
)

const (
	// Path is the path of the password recovery page.
	Path = "/recuperar-senha"

	// TemplateName is the name of the recovery template.
	TemplateName = "recuperar-senha"

	msgInvalidEmail = "Informe um e-mail válido."
	msgSent         = "Se o e-mail estiver cadastrado, você receberá as instruções de recuperação."
	msgFailed       = "Não foi possível solicitar a recuperação. Tente novamente."
)

// ErrNilDependency is returned when Init gets a nil app or config.
var ErrNilDependency = errors.New("app or cfg is nil")

// Form is the submitted recovery form.
type Form struct {
	Email string `form:"email" validate:"required,email"`
}

// Service is the password recovery handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	validator *validator.Validate
}

// Handler is the recovery handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the recovery handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) error {
	if app == nil || cfg == nil {
		return ErrNilDependency
	}

	s.cfg = cfg
	s.validator = validator.New()

	path := cfg.Session.RecoveryRoute
	if path == "" {
		path = Path
	}

	app.Get(path, s.Get)
	app.Post(path, s.Post)

	return nil
}

// Get renders the recovery form.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.Map{})
}

// Post asks the backend to send the recovery instructions.
func (s *Service) Post(c *fiber.Ctx) error {
	sess, err := handler.Session(c)
	if err != nil {
		return err
	}

	form := new(Form)
	if err := c.BodyParser(form); err != nil || s.validator.Struct(form) != nil {
		return s.render(c.Status(fiber.StatusBadRequest), fiber.Map{"Email": form.Email, "error": msgInvalidEmail})
	}

	message, err := sess.API.RecoverPassword(c.UserContext(), form.Email)
	if err != nil {
		log.Warn().Err(err).Msg("password recovery request failed")

		msg := api.MessageOf(err)
		if msg == "" {
			msg = msgFailed
		}

		return s.render(c.Status(fiber.StatusBadGateway), fiber.Map{"Email": form.Email, "error": msg})
	}

	if message == "" {
		message = msgSent
	}

	return s.render(c, fiber.Map{"success": message})
}

func (s *Service) render(c *fiber.Ctx, extra fiber.Map) error {
	login := s.cfg.Session.LoginRoute
	if login == "" {
		login = api.LoginPath
	}

	extra["Login"] = login

	return c.Render(TemplateName, handler.View(c, nil, extra))
}
