// Package user provides staff account management for administrators.
package user

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/branch"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler"
)

const (
	// Path is the base path for user management.
	Path = handler.RootPath + "admin/users"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25
)

// Service provides CRUD operations for staff accounts.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	provider  *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.db = db
	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)
	s.validator = validator.New()

	guard := auth.RequirePermission(authService, auth.PermManageUsers)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, guard, s.List)
		router.Post(handler.RouterRootPath, guard, s.Create)
		router.Get("/:id", guard, s.Get)
		router.Post("/:id/activate", guard, s.Activate)
		router.Post("/:id/deactivate", guard, s.Deactivate)
		router.Post("/:id/reset-password", guard, s.ResetPassword)
	})

	return nil
}

// userView is the account shape returned to clients; it never carries the
// password hash.
type userView struct {
	ID         uint64 `json:"id"`
	Active     bool   `json:"active"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Role       string `json:"role"`
	BranchCode string `json:"branchCode,omitempty"`
}

func viewOf(u *models.User) userView {
	return userView{
		ID:         u.ID,
		Active:     u.Active,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role.Name,
		BranchCode: u.BranchCode,
	}
}

// List pages through staff accounts with an optional search term.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}

	tx := s.db.WithContext(c.Context()).Model(&models.User{}).Preload("Role")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		tx = tx.Where("username LIKE ? OR email LIKE ? OR full_name LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	var users []models.User
	if err := tx.Order("username").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, viewOf(&users[i]))
	}

	return handler.OK(c, fiber.Map{
		"users":    views,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// createRequest is the body of a new staff account.
type createRequest struct {
	Username   string `json:"username"   validate:"required,min=3,max=100"`
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=8"`
	FullName   string `json:"fullName"   validate:"required"`
	Role       string `json:"role"       validate:"required"`
	BranchCode string `json:"branchCode"`
}

// Create adds a staff account. Branch-scoped roles must name a valid
// branch; manufacturer roles must not.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	if err := s.validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)

		messages := make([]string, 0, len(validationErrors))
		for _, ve := range validationErrors {
			messages = append(messages, "Trường '"+ve.Field()+"' không đạt ràng buộc '"+ve.Tag()+"'")
		}

		return handler.FailValidation(c, messages)
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Vai trò không tồn tại")
	}

	needsBranch := role != auth.RoleAdmin && role != auth.RoleEVMStaff

	if needsBranch && !branch.Valid(req.BranchCode) {
		return handler.Fail(c, fiber.StatusBadRequest, "Chi nhánh không hợp lệ")
	}

	if !needsBranch && req.BranchCode != "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Nhân viên hãng không thuộc chi nhánh")
	}

	var dbRole models.Role
	if err := s.db.WithContext(c.Context()).Where("name = ?", role.String()).First(&dbRole).Error; err != nil {
		log.Error().Err(err).Str("role", role.String()).Msg("role row missing")
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	user, err := s.provider.CreateUser(req.Username, req.Email, req.Password, req.FullName, dbRole.ID, req.BranchCode)
	if err != nil {
		if errors.Is(err, auth.ErrUserNameOrEmailExists) {
			return handler.Fail(c, fiber.StatusConflict, "Tên đăng nhập hoặc email đã tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	user.Role = dbRole

	return handler.OK(c, viewOf(user))
}

// Get returns one staff account.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã người dùng không hợp lệ")
	}

	user, err := s.provider.GetUserByID(uint64(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Người dùng không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, viewOf(user))
}

// Activate re-enables a staff account.
func (s *Service) Activate(c *fiber.Ctx) error {
	return s.setActive(c, true, "Đã kích hoạt tài khoản")
}

// Deactivate disables a staff account without deleting it.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	return s.setActive(c, false, "Đã vô hiệu hóa tài khoản")
}

func (s *Service) setActive(c *fiber.Ctx, active bool, message string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã người dùng không hợp lệ")
	}

	if active {
		err = s.provider.ActivateUser(uint64(id))
	} else {
		err = s.provider.DeactivateUser(uint64(id))
	}

	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OKMessage(c, message)
}

// resetRequest carries the replacement password.
type resetRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// ResetPassword sets a new password for a staff account.
func (s *Service) ResetPassword(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã người dùng không hợp lệ")
	}

	req := new(resetRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Mật khẩu phải có ít nhất 8 ký tự")
	}

	if err := s.provider.ResetPassword(uint64(id), req.Password); err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OKMessage(c, "Đã đặt lại mật khẩu")
}
