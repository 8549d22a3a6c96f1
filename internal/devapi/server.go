// Package devapi is a development fake of the Portal de Prestadores REST API.
// It speaks the same JSON contract as the real backend so the portal can be run
// and tested end to end without it.
package devapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/db/controller/announcement"
	"github.com/portal-prestadores/portal/internal/db/controller/contract"
	"github.com/portal-prestadores/portal/internal/db/controller/user"
	"github.com/portal-prestadores/portal/internal/permission"
)

// Messages of the backend contract.
const (
	MsgLoginOK         = "Login realizado com sucesso"
	MsgInvalidLogin    = "E-mail ou senha inválidos"
	MsgInactive        = "Usuário inativo"
	MsgInvalidToken    = "Token inválido ou expirado"
	MsgNotFound        = "Registro não encontrado"
	MsgContractDeleted = "Contrato excluído com sucesso"
	MsgRecoverySent    = "Se o e-mail estiver cadastrado, você receberá as instruções de recuperação."
	MsgInvalidRequest  = "Requisição inválida"
	MsgInternal        = "Erro interno"
)

const (
	defaultTokenTTL     = 8 * time.Hour
	localUserID         = "devapi_user"
	localPermissionsKey = "devapi_permissions"
)

// Config configures the development backend.
type Config struct {
	// Prefix is the path all routes are mounted below, e.g. "/api".
	Prefix string
	// JWTSecret signs the bearer tokens.
	JWTSecret string
	// TokenTTL is the lifetime of a token.
	TokenTTL time.Duration
	// DeniedMessage is sent with every 403.
	DeniedMessage string
}

// Server is the development backend.
type Server struct {
	app      *fiber.App
	db       *gorm.DB
	tokens   *Tokens
	validate *validator.Validate
	denied   string
}

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

type recoveryBody struct {
	Email string `json:"email" validate:"required,email"`
}

// New creates the backend on db.
func New(cfg Config, db *gorm.DB) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.DeniedMessage == "" {
		cfg.DeniedMessage = api.DefaultDeniedMessage
	}

	s := &Server{
		db:       db,
		tokens:   NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		denied:   cfg.DeniedMessage,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "portal-devapi",
		ErrorHandler: errorHandler,
	})
	s.app.Use(recover.New())

	r := s.app.Group(strings.TrimRight(cfg.Prefix, "/"))
	r.Post(api.LoginPath, s.login)
	r.Post(api.RecoverPasswordPath, s.recoverPassword)

	r.Get(api.UserPath+"/:id<int>", s.authenticate, s.getUser)
	r.Get(api.UserPath, s.authenticate, s.require(permission.ViewUsers), s.listUsers)
	r.Get(api.ContractPath, s.authenticate, s.require(permission.ViewContracts), s.listContracts)
	r.Delete(api.ContractPath+"/:id<int>", s.authenticate, s.require(permission.DeleteContract), s.deleteContract)
	r.Get(api.AnnouncementPath, s.authenticate, s.require(permission.ViewAnnouncements), s.listAnnouncements)

	return s
}

// App returns the fiber app of the backend.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the backend on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr) //nolint:wrapcheck
}

// Shutdown stops the backend.
func (s *Server) Shutdown() error {
	return s.app.Shutdown() //nolint:wrapcheck
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(api.MessageBody{Message: msg})
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return message(c, fe.Code, fe.Message)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("devapi request failed")

	return message(c, fiber.StatusInternalServerError, MsgInternal)
}

func (s *Server) login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	if err := s.validate.Struct(body); err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	u, err := user.Authenticate(s.db, body.Email, body.Password)

	switch {
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, user.ErrInvalidPassword):
		return message(c, fiber.StatusUnauthorized, MsgInvalidLogin)
	case errors.Is(err, user.ErrUserAccountDisabled):
		return message(c, fiber.StatusForbidden, MsgInactive)
	case err != nil:
		return err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return err
	}

	log.Info().Int64("user", u.ID).Msg("devapi login")

	return c.JSON(api.Envelope[api.LoginResult]{
		Message: MsgLoginOK,
		Data: api.LoginResult{
			User:   toUser(u),
			Token:  token,
			Origin: "portal",
			ID:     u.ID,
		},
	})
}

func (s *Server) recoverPassword(c *fiber.Ctx) error {
	var body recoveryBody
	if err := c.BodyParser(&body); err != nil || s.validate.Struct(body) != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	if _, err := user.GetByEmail(s.db, body.Email); err == nil {
		log.Info().Str("email", body.Email).Msg("devapi password recovery requested")
	}

	return c.JSON(api.Envelope[any]{Message: MsgRecoverySent})
}

// authenticate verifies the bearer token and loads the caller's permissions.
func (s *Server) authenticate(c *fiber.Ctx) error {
	raw := c.Get(fiber.HeaderAuthorization)

	token, ok := strings.CutPrefix(raw, "Bearer ")
	if !ok || token == "" {
		return message(c, fiber.StatusUnauthorized, MsgInvalidToken)
	}

	id, err := s.tokens.Verify(token)
	if err != nil {
		return message(c, fiber.StatusUnauthorized, MsgInvalidToken)
	}

	u, err := user.GetByID(s.db, id)
	if err != nil || !u.Active {
		return message(c, fiber.StatusUnauthorized, MsgInvalidToken)
	}

	c.Locals(localUserID, u.ID)
	c.Locals(localPermissionsKey, permission.NewSet(u.Group.PermissionCodes()...))

	return c.Next()
}

func (s *Server) holds(c *fiber.Ctx, code string) bool {
	perms, _ := c.Locals(localPermissionsKey).(permission.Set)

	return permission.Has(perms, code)
}

func (s *Server) require(code string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.holds(c, code) {
			return message(c, fiber.StatusForbidden, s.denied)
		}

		return c.Next()
	}
}

func (s *Server) getUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	if self, _ := c.Locals(localUserID).(int64); self != id && !s.holds(c, permission.ViewUsers) {
		return message(c, fiber.StatusForbidden, s.denied)
	}

	u, err := user.GetByID(s.db, id)
	if errors.Is(err, user.ErrUserNotFound) {
		return message(c, fiber.StatusNotFound, MsgNotFound)
	}

	if err != nil {
		return err
	}

	return c.JSON(api.Envelope[api.User]{Data: toUser(u)})
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	users, err := user.GetAll(s.db)
	if err != nil {
		return err
	}

	out := make([]api.User, 0, len(users))
	for i := range users {
		out = append(out, toUser(&users[i]))
	}

	return c.JSON(api.Envelope[[]api.User]{Data: out})
}

func (s *Server) listContracts(c *fiber.Ctx) error {
	contracts, err := contract.GetAll(s.db)
	if err != nil {
		return err
	}

	out := make([]api.Contract, 0, len(contracts))
	for i := range contracts {
		out = append(out, toContract(&contracts[i]))
	}

	return c.JSON(api.Envelope[[]api.Contract]{Data: out})
}

func (s *Server) deleteContract(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return message(c, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	err = contract.Delete(s.db, id)
	if errors.Is(err, contract.ErrContractNotFound) {
		return message(c, fiber.StatusNotFound, MsgNotFound)
	}

	if err != nil {
		return err
	}

	return c.JSON(api.Envelope[any]{Message: MsgContractDeleted})
}

func (s *Server) listAnnouncements(c *fiber.Ctx) error {
	feed, err := announcement.Feed(s.db, 0)
	if err != nil {
		return err
	}

	out := make([]api.Announcement, 0, len(feed))
	for i := range feed {
		out = append(out, toAnnouncement(&feed[i]))
	}

	return c.JSON(api.Envelope[[]api.Announcement]{Data: out})
}
