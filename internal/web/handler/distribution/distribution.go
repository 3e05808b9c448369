// Package distribution exposes vehicle distribution: running the distribute
// step standalone, confirming a proposal and reading its report.
package distribution

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
	// Path is the base path of the distribution routes.
	Path = "/vehicle-distributions"
)

// Service is the distribution handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	distributor workflow.Distributor
}

// Handler is the distribution handler.
var Handler = Service{}

// Init initializes the distribution handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.distributor = workflow.NewDistributeService(db)

	app.Route(Path, func(router fiber.Router) {
		router.Post(handler.RouterRootPath,
			auth.RequirePermission(authService, auth.PermDistributeVehicles),
			s.Create,
		)
		router.Post("/:id/confirm",
			auth.RequirePermission(authService, auth.PermDistributeVehicles),
			s.Confirm,
		)
		router.Get("/:id/report",
			auth.RequireAnyPermission(authService, auth.PermDistributeVehicles, auth.PermTrackProgress),
			s.Report,
		)
	})

	return nil
}

// createRequest asks for one distribution run.
type createRequest struct {
	CampaignCode string `json:"campaignCode"`
	Method       string `json:"method"`
}

// Create runs the distribute step for a campaign outside a full workflow
// run. The proposal is persisted unconfirmed.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	campaign, err := campaignctl.Get(s.db.WithContext(c.Context()), req.CampaignCode)
	if err != nil {
		if errors.Is(err, campaignctl.ErrCampaignNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Chiến dịch không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	dist, err := s.distributor.Distribute(c.Context(), campaign, req.Method)
	if err != nil {
		log.Error().Err(err).Str("campaign", campaign.Code).Msg("distribution failed")
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	if !dist.Success {
		return handler.Fail(c, fiber.StatusUnprocessableEntity, dist.Error)
	}

	return handler.OK(c, dist)
}

// Confirm marks a distribution proposal as accepted.
func (s *Service) Confirm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã phân bổ không hợp lệ")
	}

	result := s.db.WithContext(c.Context()).
		Model(&models.VehicleDistribution{}).
		Where("id = ?", id).
		Update("confirmed", true)
	if result.Error != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	if result.RowsAffected == 0 {
		return handler.Fail(c, fiber.StatusNotFound, "Phân bổ không tồn tại")
	}

	return handler.OKMessage(c, "Đã xác nhận phân bổ xe")
}

// Report returns one stored distribution with its per-center entries.
func (s *Service) Report(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Mã phân bổ không hợp lệ")
	}

	var record models.VehicleDistribution

	err = s.db.WithContext(c.Context()).Preload("Entries").First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return handler.Fail(c, fiber.StatusNotFound, "Phân bổ không tồn tại")
	}

	if err != nil {
		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	total := 0
	for _, entry := range record.Entries {
		total += entry.VehicleCount
	}

	return handler.OK(c, fiber.Map{
		"distribution":  record,
		"totalVehicles": total,
	})
}
