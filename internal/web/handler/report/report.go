// Package report exposes confirmation reports: centers submit them,
// manufacturer staff respond, centers revise after a rejection.
package report

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	campaignctl "github.com/EVCare-Admin/EVCare-Admin/internal/db/controller/campaign"
	reportctl "github.com/EVCare-Admin/EVCare-Admin/internal/db/controller/report"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler"
	"github.com/EVCare-Admin/EVCare-Admin/internal/workflow"
)

const (
	// Path is the base path of the confirmation report routes.
	Path = "/reports/confirmation"
)

// Service is the confirmation report handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the confirmation report handler.
var Handler = Service{}

// Init initializes the confirmation report handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Post(handler.RouterRootPath,
			auth.RequirePermission(authService, auth.PermSubmitReports),
			s.Submit,
		)
		router.Get("/pending",
			auth.RequirePermission(authService, auth.PermRespondReports),
			s.Pending,
		)
		router.Get("/statistics",
			auth.RequirePermission(authService, auth.PermViewReports),
			s.Statistics,
		)
		router.Post("/reminders",
			auth.RequirePermission(authService, auth.PermSendNotifications),
			s.Reminders,
		)
		router.Get("/:id",
			auth.RequirePermission(authService, auth.PermViewReports),
			s.Get,
		)
		router.Put("/:id/response",
			auth.RequirePermission(authService, auth.PermRespondReports),
			s.Respond,
		)
		router.Put("/:id/revise",
			auth.RequirePermission(authService, auth.PermSubmitReports),
			s.Revise,
		)
	})

	return nil
}

// submitRequest is the body of a new confirmation report.
type submitRequest struct {
	CampaignCode    string `json:"campaignCode"`
	ServiceCenterID uint   `json:"serviceCenterId"`
	Summary         string `json:"summary"`
}

// Submit files a new confirmation report in pending state.
func (s *Service) Submit(c *fiber.Ctx) error {
	req := new(submitRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	if req.ServiceCenterID == 0 || req.Summary == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Thiếu trung tâm hoặc nội dung báo cáo")
	}

	campaign, err := campaignctl.Get(s.db.WithContext(c.Context()), req.CampaignCode)
	if err != nil {
		if errors.Is(err, campaignctl.ErrCampaignNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Chiến dịch không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	report, err := reportctl.Create(s.db.WithContext(c.Context()), campaign.ID, req.ServiceCenterID, req.Summary)
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, report)
}

// Get returns one confirmation report.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã báo cáo không hợp lệ")
	}

	report, err := reportctl.Get(s.db.WithContext(c.Context()), uint(id))
	if err != nil {
		if errors.Is(err, reportctl.ErrReportNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Báo cáo không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, report)
}

// respondRequest is the manufacturer's verdict on a report.
type respondRequest struct {
	Accepted bool   `json:"accepted"`
	Response string `json:"response"`
}

// Respond records the manufacturer's accept or reject verdict.
func (s *Service) Respond(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã báo cáo không hợp lệ")
	}

	req := new(respondRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	report, err := reportctl.Get(s.db.WithContext(c.Context()), uint(id))
	if err != nil {
		if errors.Is(err, reportctl.ErrReportNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Báo cáo không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	if report.Status == models.ReportAccepted {
		return handler.Fail(c, fiber.StatusUnprocessableEntity, "Báo cáo đã được chấp nhận")
	}

	report, err = reportctl.Respond(s.db.WithContext(c.Context()), uint(id), req.Accepted, req.Response)
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, report)
}

// reviseRequest replaces a rejected report's summary.
type reviseRequest struct {
	Summary string `json:"summary"`
}

// Revise resubmits a rejected report with a new summary.
func (s *Service) Revise(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã báo cáo không hợp lệ")
	}

	req := new(reviseRequest)
	if err := c.BodyParser(req); err != nil || req.Summary == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Thiếu nội dung báo cáo")
	}

	report, err := reportctl.Get(s.db.WithContext(c.Context()), uint(id))
	if err != nil {
		if errors.Is(err, reportctl.ErrReportNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Báo cáo không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	if report.Status != models.ReportRejected {
		return handler.Fail(c, fiber.StatusUnprocessableEntity, "Chỉ báo cáo bị từ chối mới được chỉnh sửa")
	}

	report, err = reportctl.Revise(s.db.WithContext(c.Context()), uint(id), req.Summary)
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, report)
}

// Reminders nudges every center whose report was rejected and still awaits
// a revision. One targeted notification per open report.
func (s *Service) Reminders(c *fiber.Ctx) error {
	db := s.db.WithContext(c.Context())

	reports, err := reportctl.Rejected(db)
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	notify := workflow.NewNotifyService(db)
	reminded := 0

	for _, report := range reports {
		var campaign models.Campaign
		if err := db.First(&campaign, report.CampaignID).Error; err != nil {
			continue
		}

		var center models.ServiceCenter
		if err := db.First(&center, report.ServiceCenterID).Error; err != nil {
			continue
		}

		message := "Nhắc nhở: vui lòng chỉnh sửa báo cáo xác nhận chiến dịch " + campaign.Code
		if _, err := notify.NotifyCampaign(c.Context(), &campaign, []string{center.Code}, message); err != nil {
			continue
		}

		reminded++
	}

	return handler.OK(c, fiber.Map{
		"reminded": reminded,
		"open":     len(reports),
	})
}

// Pending lists reports awaiting a manufacturer response.
func (s *Service) Pending(c *fiber.Ctx) error {
	reports, err := reportctl.Pending(s.db.WithContext(c.Context()))
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, reports)
}

// Statistics aggregates report counts by status.
func (s *Service) Statistics(c *fiber.Ctx) error {
	stats, err := reportctl.Statistics(s.db.WithContext(c.Context()))
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, stats)
}
