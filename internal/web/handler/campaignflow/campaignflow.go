// Package campaignflow triggers the campaign workflow run and reports its
// outcome log.
package campaignflow

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	campaignctl "github.com/EVCare-Admin/EVCare-Admin/internal/db/controller/campaign"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler"
	"github.com/EVCare-Admin/EVCare-Admin/internal/workflow"
)

// Service is the workflow trigger handler service.
type Service struct {
	handler.Service
	cfg          *config.Config
	db           *gorm.DB
	orchestrator *workflow.Orchestrator
}

// Handler is the workflow trigger handler.
var Handler = Service{}

// Init initializes the workflow trigger handler. The full run needs the
// caller to hold every step permission; a role that may only distribute
// cannot fire the whole chain.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.orchestrator = workflow.NewWithDB(db)

	app.Post("/campaigns/:code/workflow",
		auth.RequireAllPermissions(authService,
			auth.PermDistributeVehicles,
			auth.PermScheduleAppointments,
			auth.PermAssignTechnicians,
			auth.PermTrackProgress,
		),
		s.Execute,
	)

	return nil
}

// executeRequest selects the distribution method of the run.
type executeRequest struct {
	Method string `json:"method"`
}

// Execute runs the distribute, schedule, assign, track chain for one
// campaign and returns the run log. A failed run is still a 200: the run
// itself is the result, its status carries the verdict.
func (s *Service) Execute(c *fiber.Ctx) error {
	campaign, err := campaignctl.Get(s.db.WithContext(c.Context()), c.Params("code"))
	if err != nil {
		if errors.Is(err, campaignctl.ErrCampaignNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Chiến dịch không tồn tại")
		}

		return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
	}

	req := &executeRequest{Method: workflow.MethodEven}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
		}
	}

	run, tracking := s.orchestrator.Execute(c.Context(), campaign, req.Method)

	return handler.OK(c, fiber.Map{
		"run":      run,
		"tracking": tracking,
	})
}
