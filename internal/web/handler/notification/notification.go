// Package notification exposes campaign notices: pushing them to centers
// and recording center acknowledgements.
package notification

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	campaignctl "github.com/EVCare-Admin/EVCare-Admin/internal/db/controller/campaign"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler"
	"github.com/EVCare-Admin/EVCare-Admin/internal/workflow"
)

const (
	// Path is the base path of the notification routes.
	Path = "/notifications"
)

// Service is the notification handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	notifier *workflow.NotifyService
}

// Handler is the notification handler.
var Handler = Service{}

// Init initializes the notification handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.notifier = workflow.NewNotifyService(db)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath,
			auth.RequireAnyPermission(authService, auth.PermSendNotifications, auth.PermConfirmNotifications),
			s.List,
		)
		router.Post("/campaign",
			auth.RequirePermission(authService, auth.PermSendNotifications),
			s.SendCampaign,
		)
		router.Post("/urgent",
			auth.RequirePermission(authService, auth.PermSendNotifications),
			s.SendUrgent,
		)
		router.Post("/confirm",
			auth.RequirePermission(authService, auth.PermConfirmNotifications),
			s.Confirm,
		)
	})

	return nil
}

// sendRequest pushes one campaign notice.
type sendRequest struct {
	CampaignCode string   `json:"campaignCode"`
	Targets      []string `json:"targets"`
	Message      string   `json:"message"`
}

// SendCampaign pushes a campaign notice to the requested centers, or all
// centers when none are named.
func (s *Service) SendCampaign(c *fiber.Ctx) error {
	return s.send(c, false)
}

// SendUrgent pushes an urgent recall notice. Urgent notices always go to
// every center and only apply to recalls.
func (s *Service) SendUrgent(c *fiber.Ctx) error {
	return s.send(c, true)
}

func (s *Service) send(c *fiber.Ctx, urgent bool) error {
	req := new(sendRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	if req.Message == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Thiếu nội dung thông báo")
	}

	campaign, err := campaignctl.Get(s.db.WithContext(c.Context()), req.CampaignCode)
	if err != nil {
		if errors.Is(err, campaignctl.ErrCampaignNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Chiến dịch không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	var out *workflow.Notification

	if urgent {
		if campaign.Kind != models.KindRecall {
			return handler.Fail(c, fiber.StatusUnprocessableEntity, "Chỉ chiến dịch thu hồi mới có thông báo khẩn cấp")
		}

		out, err = s.notifier.NotifyUrgentRecall(c.Context(), campaign, req.Message)
	} else {
		out, err = s.notifier.NotifyCampaign(c.Context(), campaign, req.Targets, req.Message)
	}

	if err != nil {
		log.Error().Err(err).Str("campaign", campaign.Code).Msg("notification push failed")
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, out)
}

// confirmRequest acknowledges one notice.
type confirmRequest struct {
	ID uint `json:"id"`
}

// Confirm records a center's acknowledgement of a notice.
func (s *Service) Confirm(c *fiber.Ctx) error {
	req := new(confirmRequest)
	if err := c.BodyParser(req); err != nil || req.ID == 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã thông báo không hợp lệ")
	}

	result := s.db.WithContext(c.Context()).
		Model(&models.NotificationRecord{}).
		Where("id = ?", req.ID).
		Update("confirmed", true)
	if result.Error != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	if result.RowsAffected == 0 {
		return handler.Fail(c, fiber.StatusNotFound, "Thông báo không tồn tại")
	}

	return handler.OKMessage(c, "Đã xác nhận thông báo")
}

// List returns the notices of one campaign, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	code := c.Query("campaignCode")
	if code == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Thiếu mã chiến dịch")
	}

	campaign, err := campaignctl.Get(s.db.WithContext(c.Context()), code)
	if err != nil {
		if errors.Is(err, campaignctl.ErrCampaignNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Chiến dịch không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	var records []models.NotificationRecord

	err = s.db.WithContext(c.Context()).
		Where("campaign_id = ?", campaign.ID).
		Order("sent_at DESC").
		Find(&records).Error
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, records)
}
