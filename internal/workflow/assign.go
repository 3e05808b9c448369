package workflow

import (
	"context"
	"encoding/json"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/controller/campaign"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// Assignment is the assign step output: one work order per vehicle.
type Assignment struct {
	StepResult
	Orders []models.WorkOrder `json:"orders"`
}

// AssignService is the gorm-backed Assigner.
type AssignService struct {
	db *gorm.DB
}

// NewAssignService creates a new assignment step service.
func NewAssignService(db *gorm.DB) *AssignService {
	return &AssignService{db: db}
}

// VehiclesPerTechnician computes ceil(totalVehicles / technicianCount).
func VehiclesPerTechnician(totalVehicles, technicianCount int) int {
	if technicianCount <= 0 {
		return 0
	}

	return int(math.Ceil(float64(totalVehicles) / float64(technicianCount)))
}

// checklistFor returns the instruction checklist for a campaign kind.
func checklistFor(kind models.CampaignKind) []string {
	if kind == models.KindRecall {
		return []string{
			"Kiểm tra số VIN",
			"Thay thế linh kiện thu hồi",
			"Kiểm tra an toàn sau thay thế",
			"Cập nhật phần mềm điều khiển",
		}
	}

	return []string{
		"Kiểm tra tổng quát xe",
		"Thực hiện hạng mục chiến dịch",
		"Xác nhận với khách hàng",
	}
}

// Assign round-robins each center's scheduled vehicles across the campaign
// technicians of that center: the technician advances every
// vehiclesPerTechnician vehicles. One work order per vehicle is created
// with a checklist keyed by campaign kind.
func (s *AssignService) Assign(
	ctx context.Context,
	c *models.Campaign,
	sched *Schedule,
) (*Assignment, error) {
	techs, err := campaign.Technicians(s.db.WithContext(ctx), c.ID)
	if err != nil {
		return nil, err
	}

	byCenter := make(map[uint][]models.Technician)
	for _, tech := range techs {
		byCenter[tech.ServiceCenterID] = append(byCenter[tech.ServiceCenterID], tech)
	}

	checklist, err := json.Marshal(checklistFor(c.Kind))
	if err != nil {
		return nil, err
	}

	out := &Assignment{StepResult: StepResult{Success: true}}

	for _, center := range sched.Centers {
		if len(center.Slots) == 0 {
			continue
		}

		pool := byCenter[center.CenterID]
		if len(pool) == 0 {
			return &Assignment{
				StepResult: StepResult{
					Success: false,
					Error:   "trung tâm " + center.CenterCode + " chưa có kỹ thuật viên được phân công",
				},
			}, nil
		}

		orders := assignRoundRobin(c, center, pool, string(checklist))
		out.Orders = append(out.Orders, orders...)
	}

	if len(out.Orders) > 0 {
		if err := s.db.WithContext(ctx).Create(&out.Orders).Error; err != nil {
			return nil, err
		}
	}

	return out, nil
}

// assignRoundRobin builds the work orders for one center.
func assignRoundRobin(
	c *models.Campaign,
	center CenterSchedule,
	pool []models.Technician,
	checklist string,
) []models.WorkOrder {
	perTech := VehiclesPerTechnician(len(center.Slots), len(pool))
	orders := make([]models.WorkOrder, 0, len(center.Slots))

	for i, slot := range center.Slots {
		tech := pool[(i/perTech)%len(pool)]

		orders = append(orders, models.WorkOrder{
			Code:              uuid.NewString(),
			CampaignID:        c.ID,
			CampaignVehicleID: slot.VehicleID,
			ServiceCenterID:   center.CenterID,
			TechnicianID:      tech.ID,
			Status:            models.WorkOrderPending,
			Checklist:         checklist,
			ScheduledAt:       slot.Start,
		})
	}

	return orders
}
