// Package assignment exposes technician assignment and work order progress:
// binding technicians to campaigns, updating results and the workload and
// quality views derived from them.
package assignment

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
	// Path is the base path of the assignment routes.
	Path = "/work-assignments"
)

// validStatus is the closed work order status set accepted on updates.
var validStatus = map[string]bool{ //nolint:gochecknoglobals
	models.WorkOrderPending:    true,
	models.WorkOrderInProgress: true,
	models.WorkOrderCompleted:  true,
	models.WorkOrderFailed:     true,
}

// Service is the assignment handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the assignment handler.
var Handler = Service{}

// Init initializes the assignment handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db

	app.Post(Path+"/campaigns",
		auth.RequirePermission(authService, auth.PermAssignTechnicians),
		s.AssignToCampaign,
	)
	app.Get(Path+"/:code/report",
		auth.RequireAnyPermission(authService, auth.PermViewReports, auth.PermTrackProgress),
		s.QualityReport,
	)
	app.Put("/work-orders/:id/progress",
		auth.RequirePermission(authService, auth.PermUpdateWorkResults),
		s.UpdateProgress,
	)
	app.Put("/work-orders/:id/reassign",
		auth.RequirePermission(authService, auth.PermAssignTechnicians),
		s.Reassign,
	)
	app.Get("/technicians/workload",
		auth.RequirePermission(authService, auth.PermViewWorkload),
		s.Workload,
	)

	return nil
}

// assignRequest binds technicians to a campaign.
type assignRequest struct {
	CampaignCode  string `json:"campaignCode"`
	TechnicianIDs []uint `json:"technicianIds"`
}

// AssignToCampaign adds technicians to a campaign's pool. Already assigned
// technicians are skipped, and SC_Admin callers only reach technicians of
// their own branch.
func (s *Service) AssignToCampaign(c *fiber.Ctx) error {
	req := new(assignRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	if len(req.TechnicianIDs) == 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "Chưa chọn kỹ thuật viên")
	}

	campaign, err := campaignctl.Get(s.db.WithContext(c.Context()), req.CampaignCode)
	if err != nil {
		if errors.Is(err, campaignctl.ErrCampaignNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Chiến dịch không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	branchCode := scopedBranch(c)

	added, err := campaignctl.AssignTechnicians(s.db.WithContext(c.Context()), campaign.ID, req.TechnicianIDs, branchCode)
	if err != nil {
		log.Error().Err(err).Str("campaign", campaign.Code).Msg("technician assignment failed")
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, fiber.Map{
		"campaignCode": campaign.Code,
		"added":        added,
		"requested":    len(req.TechnicianIDs),
	})
}

// progressRequest updates one work order's status and result.
type progressRequest struct {
	Status string `json:"status"`
	Result string `json:"result"`
	Rework bool   `json:"rework"`
	Rating int    `json:"rating"`
}

// UpdateProgress moves a work order to a new status with an optional result
// payload. Ratings are only accepted alongside a completion.
func (s *Service) UpdateProgress(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã lệnh công việc không hợp lệ")
	}

	req := new(progressRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	if !validStatus[req.Status] {
		return handler.Fail(c, fiber.StatusBadRequest, "Trạng thái không hợp lệ")
	}

	if req.Rating != 0 && (req.Rating < 1 || req.Rating > 5) {
		return handler.Fail(c, fiber.StatusBadRequest, "Đánh giá phải từ 1 đến 5")
	}

	if req.Rating != 0 && req.Status != models.WorkOrderCompleted {
		return handler.Fail(c, fiber.StatusBadRequest, "Chỉ đánh giá khi hoàn thành công việc")
	}

	updates := map[string]any{
		"status": req.Status,
		"result": req.Result,
		"rework": req.Rework,
	}
	if req.Rating != 0 {
		updates["rating"] = req.Rating
	}

	result := s.db.WithContext(c.Context()).
		Model(&models.WorkOrder{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	if result.RowsAffected == 0 {
		return handler.Fail(c, fiber.StatusNotFound, "Lệnh công việc không tồn tại")
	}

	return handler.OKMessage(c, "Đã cập nhật kết quả công việc")
}

// reassignRequest moves a work order to another technician.
type reassignRequest struct {
	TechnicianID uint `json:"technicianId"`
}

// Reassign hands a work order to another technician of the same center.
func (s *Service) Reassign(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã lệnh công việc không hợp lệ")
	}

	req := new(reassignRequest)
	if err := c.BodyParser(req); err != nil || req.TechnicianID == 0 {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	var order models.WorkOrder
	if err := s.db.WithContext(c.Context()).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Lệnh công việc không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	if order.Status == models.WorkOrderCompleted {
		return handler.Fail(c, fiber.StatusUnprocessableEntity, "Không thể chuyển lệnh đã hoàn thành")
	}

	var tech models.Technician
	if err := s.db.WithContext(c.Context()).First(&tech, req.TechnicianID).Error; err != nil {
		return handler.Fail(c, fiber.StatusNotFound, "Kỹ thuật viên không tồn tại")
	}

	if tech.ServiceCenterID != order.ServiceCenterID {
		return handler.Fail(c, fiber.StatusUnprocessableEntity, "Kỹ thuật viên thuộc trung tâm khác")
	}

	err = s.db.WithContext(c.Context()).
		Model(&order).
		Update("technician_id", tech.ID).Error
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OKMessage(c, "Đã chuyển lệnh công việc")
}

// QualityReport summarizes a campaign's work order outcomes.
func (s *Service) QualityReport(c *fiber.Ctx) error {
	campaign, err := campaignctl.Get(s.db.WithContext(c.Context()), c.Params("code"))
	if err != nil {
		if errors.Is(err, campaignctl.ErrCampaignNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Chiến dịch không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	var orders []models.WorkOrder
	if err := s.db.WithContext(c.Context()).Where("campaign_id = ?", campaign.ID).Find(&orders).Error; err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, fiber.Map{
		"campaignCode": campaign.Code,
		"quality":      workflow.Summarize(orders),
	})
}

// Workload returns the open order count per technician of a campaign.
func (s *Service) Workload(c *fiber.Ctx) error {
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

	workload, err := campaignctl.TechnicianWorkload(s.db.WithContext(c.Context()), campaign.ID)
	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	return handler.OK(c, workload)
}

// scopedBranch returns the branch code the caller is confined to, empty for
// manufacturer staff.
func scopedBranch(c *fiber.Ctx) string {
	role, ok := auth.RoleFromContext(c)
	if !ok || !role.BranchScoped() {
		return ""
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return ""
	}

	return claims.BranchCode
}
