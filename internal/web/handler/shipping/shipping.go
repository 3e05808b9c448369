// Package shipping exposes parts shipments booked with the external
// carrier.
package shipping

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/carrier"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	campaignctl "github.com/EVCare-Admin/EVCare-Admin/internal/db/controller/campaign"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler"
)

const (
	// Path is the base path of the shipping routes.
	Path = "/shipping-orders"
)

// Service is the shipping handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	client *carrier.Client
}

// Handler is the shipping handler.
var Handler = Service{}

// Init initializes the shipping handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.client = carrier.New(&cfg.Carrier, db)

	app.Route(Path, func(router fiber.Router) {
		router.Post(handler.RouterRootPath,
			auth.RequirePermission(authService, auth.PermManageShipping),
			s.Create,
		)
		router.Get("/:orderCode",
			auth.RequirePermission(authService, auth.PermManageShipping),
			s.Status,
		)
	})

	return nil
}

// createRequest books one parts shipment.
type createRequest struct {
	CampaignCode string `json:"campaignCode"`
	CenterCode   string `json:"centerCode"`
	PartNumber   string `json:"partNumber"`
	Quantity     int    `json:"quantity"`
	Urgent       bool   `json:"urgent"`
}

// Create books a parts shipment with the carrier.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	if req.PartNumber == "" || req.Quantity < 1 {
		return handler.Fail(c, fiber.StatusBadRequest, "Thiếu linh kiện hoặc số lượng")
	}

	var campaignID uint

	if req.CampaignCode != "" {
		campaign, err := campaignctl.Get(s.db.WithContext(c.Context()), req.CampaignCode)
		if err != nil {
			if errors.Is(err, campaignctl.ErrCampaignNotFound) {
				return handler.Fail(c, fiber.StatusNotFound, "Chiến dịch không tồn tại")
			}

			return handler.Fail(c, fiber.StatusInternalServerError, "Lỗi hệ thống")
		}

		campaignID = campaign.ID
	}

	order, err := s.client.CreateOrder(c.Context(), campaignID, &carrier.OrderRequest{
		CampaignCode: req.CampaignCode,
		CenterCode:   req.CenterCode,
		PartNumber:   req.PartNumber,
		Quantity:     req.Quantity,
		Urgent:       req.Urgent,
	})
	if err != nil {
		if errors.Is(err, carrier.ErrCarrierRejected) {
			return handler.Fail(c, fiber.StatusUnprocessableEntity, err.Error())
		}

		log.Error().Err(err).Msg("carrier order failed")

		return handler.Fail(c, fiber.StatusBadGateway, "Không thể kết nối đơn vị vận chuyển")
	}

	return handler.OK(c, order)
}

// Status returns the current carrier status of an order, served from the
// cache when the carrier is unreachable.
func (s *Service) Status(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")
	if orderCode == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Thiếu mã vận đơn")
	}

	order, err := s.client.OrderStatus(c.Context(), orderCode)
	if err != nil {
		if errors.Is(err, carrier.ErrOrderNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Vận đơn không tồn tại")
		}

		log.Error().Err(err).Str("order", orderCode).Msg("carrier status lookup failed")

		return handler.Fail(c, fiber.StatusBadGateway, "Không thể kết nối đơn vị vận chuyển")
	}

	return handler.OK(c, order)
}
