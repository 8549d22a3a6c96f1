// Package login provides the login page of the portal.
package login

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/notify"
	"github.com/portal-prestadores/portal/internal/web/handler"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"

	msgInvalidForm   = "Informe e-mail e senha válidos."
	msgLoginFailed   = "E-mail ou senha inválidos."
	msgInternalError = "Não foi possível entrar. Tente novamente."
	msgWelcome       = "Bem-vindo(a), %s!"
)

// Form is the submitted login form.
type Form struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"senha" validate:"required"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	validator *validator.Validate
}

// Handler is the login handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) error {
	if app == nil || cfg == nil {
		return ErrNilDependency
	}

	s.cfg = cfg
	s.validator = validator.New()

	app.Route(s.path(), func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

func (s *Service) path() string {
	if s.cfg.Session.LoginRoute != "" {
		return s.cfg.Session.LoginRoute
	}

	return Path
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, "", "")
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	sess, err := handler.Session(c)
	if err != nil {
		return err
	}

	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg("can't parse login form")

		return s.render(c.Status(fiber.StatusBadRequest), form.Email, msgInvalidForm)
	}

	if err := s.validator.Struct(form); err != nil {
		return s.render(c.Status(fiber.StatusBadRequest), form.Email, msgInvalidForm)
	}

	res, message, err := sess.API.Login(c.UserContext(), form.Email, form.Password)
	if err != nil {
		status := api.StatusOf(err)

		switch {
		case status >= fiber.StatusBadRequest && status < fiber.StatusInternalServerError:
			msg := api.MessageOf(err)
			if msg == "" {
				msg = msgLoginFailed
			}

			log.Info().Str("email", form.Email).Int("status", status).Msg("login rejected")

			return s.render(c.Status(fiber.StatusUnauthorized), form.Email, msg)
		default:
			log.Error().Err(err).Str("email", form.Email).Msg("login failed")

			return s.render(c.Status(fiber.StatusBadGateway), form.Email, msgInternalError)
		}
	}

	sess.Store.SetPrincipalFromLoginResult(res)

	if message == "" {
		message = fmt.Sprintf(msgWelcome, res.User.Name)
	}

	sess.Notices.Notify(notify.Success(message))

	route := s.cfg.Session.DefaultRoute
	if route == "" {
		route = api.DefaultRoute
	}

	return c.Redirect(route)
}

func (s *Service) render(c *fiber.Ctx, email, msg string) error {
	data := handler.View(c, nil, fiber.Map{
		"Email":    email,
		"Recovery": s.cfg.Session.RecoveryRoute,
	})

	if msg != "" {
		data["error"] = msg
	}

	return c.Render(TemplateName, data)
}
