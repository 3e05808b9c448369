package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/session"
)

const (
	// Path is the path of the login endpoint.
	Path = "/login"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	provider *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// credentials is the login request body.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the bearer token and the signed-in user profile.
type loginResponse struct {
	Token string      `json:"token"`
	User  userProfile `json:"user"`
}

type userProfile struct {
	ID         uint64 `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Role       string `json:"role"`
	BranchCode string `json:"branchCode,omitempty"`
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)

	app.Post(Path, s.Post)

	return nil
}

// Post handles the login request. A successful login answers with a bearer
// token and sets the session cookie.
func (s *Service) Post(c *fiber.Ctx) error {
	creds := new(credentials)
	if err := c.BodyParser(creds); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu đăng nhập không hợp lệ")
	}

	user, err := s.provider.Authenticate(creds.Username, creds.Password)
	if err != nil {
		log.Debug().Err(err).Str("username", creds.Username).Msg("login rejected")
		return handler.Fail(c, fiber.StatusUnauthorized, "Tên đăng nhập hoặc mật khẩu không đúng")
	}

	role, err := auth.ParseRole(user.Role.Name)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Str("role", user.Role.Name).
			Msg("user carries an unknown role")

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	ttl := s.cfg.Webserver.Session.ExpiryTime

	token, err := auth.IssueToken(s.cfg.Webserver.JWTSecret, user.ID, role, user.BranchCode, ttl)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue bearer token")
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	userSession := &session.Data{User: *user}
	if err = userSession.Write(sessionID, ttl); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	cookieSettings := &fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		MaxAge:   int(ttl.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return handler.OK(c, loginResponse{
		Token: token,
		User: userProfile{
			ID:         user.ID,
			Username:   user.Username,
			FullName:   user.FullName,
			Role:       role.String(),
			BranchCode: user.BranchCode,
		},
	})
}
