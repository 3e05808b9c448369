// Package audit exposes the audit trail: writing entries for sensitive
// actions and reading them back for administrators.
package audit

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler"
)

const (
	// Path is the base path of the audit routes.
	Path = "/audit"

	// DefaultPageSize for the audit log listing.
	DefaultPageSize = 50
)

// Service is the audit handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the audit handler.
var Handler = Service{}

// Init initializes the audit handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService

	app.Post(Path+"/log", s.Log)
	app.Get("/audit-logs",
		auth.RequirePermission(authService, auth.PermViewAuditLogs),
		s.List,
	)

	return nil
}

// logRequest is the body of one audit entry.
type logRequest struct {
	Action     string         `json:"action"`
	ResourceID string         `json:"resourceId"`
	Details    map[string]any `json:"details"`
}

// Log records one audit entry for the authenticated caller. The entry is
// always returned, even if the database insert failed.
func (s *Service) Log(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	req := new(logRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	if req.Action == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Thiếu hành động cần ghi nhật ký")
	}

	role, _ := auth.RoleFromContext(c)

	entry := s.authService.LogAction(c.Context(), role, claims.UserID, req.Action, req.ResourceID, req.Details)

	return handler.OK(c, entry)
}

// List pages through the audit trail, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > 200 {
		pageSize = DefaultPageSize
	}

	tx := s.db.WithContext(c.Context()).Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		tx = tx.Where("action = ?", action)
	}

	if userID := c.Query("userId"); userID != "" {
		id, err := strconv.ParseUint(userID, 10, 64)
		if err != nil {
			return handler.Fail(c, fiber.StatusBadRequest, "Mã người dùng không hợp lệ")
		}

		tx = tx.Where("user_id = ?", id)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	var entries []models.AuditLog
	err := tx.Order("timestamp DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, fiber.Map{
		"entries":  entries,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
