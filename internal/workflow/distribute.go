package workflow

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/controller/campaign"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// DistributeService is the gorm-backed Distributor.
type DistributeService struct {
	db *gorm.DB
}

// NewDistributeService creates a new distribution step service.
func NewDistributeService(db *gorm.DB) *DistributeService {
	return &DistributeService{db: db}
}

// Distribute splits the campaign's vehicles across the active centers by the
// chosen method and persists the result. An empty vehicle set is a valid,
// successful distribution; having no candidate centers is a step failure.
func (s *DistributeService) Distribute(
	ctx context.Context,
	c *models.Campaign,
	method string,
) (*Distribution, error) {
	switch method {
	case MethodGeographic, MethodCapacity, MethodEven:
	default:
		return &Distribution{
			StepResult: StepResult{Success: false, Error: "phương thức phân bổ không hợp lệ: " + method},
		}, nil
	}

	var centers []models.ServiceCenter
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&centers).Error; err != nil {
		return nil, err
	}

	if len(centers) == 0 {
		return &Distribution{
			StepResult: StepResult{Success: false, Error: "không có trung tâm dịch vụ khả dụng"},
		}, nil
	}

	vehicles, err := campaign.Vehicles(s.db.WithContext(ctx), c.ID)
	if err != nil {
		return nil, err
	}

	dist := &Distribution{
		StepResult: StepResult{Success: true},
		Method:     method,
		Entries:    split(vehicles, centers, method),
	}

	if err := s.persist(ctx, c, dist); err != nil {
		return nil, err
	}

	return dist, nil
}

// split spreads vehicles over centers. Geographic ordering groups centers by
// branch code so neighbouring districts fill together; capacity weights the
// assignment by each center's daily throughput; even is a plain round robin.
func split(vehicles []models.CampaignVehicle, centers []models.ServiceCenter, method string) []CenterAssignment {
	ordered := append([]models.ServiceCenter(nil), centers...)

	switch method {
	case MethodGeographic:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].BranchCode < ordered[j].BranchCode
		})
	case MethodCapacity:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].CapacityPerDay > ordered[j].CapacityPerDay
		})
	case MethodEven:
		// keep id order
	}

	entries := make([]CenterAssignment, len(ordered))
	for i, center := range ordered {
		entries[i] = CenterAssignment{
			CenterID:   center.ID,
			CenterCode: center.Code,
			Vehicles:   make([]models.CampaignVehicle, 0),
		}
	}

	if method == MethodCapacity {
		assignByCapacity(vehicles, ordered, entries)
	} else {
		for i, v := range vehicles {
			idx := i % len(entries)
			entries[idx].Vehicles = append(entries[idx].Vehicles, v)
		}
	}

	return entries
}

// assignByCapacity fills centers proportionally to CapacityPerDay using a
// largest-remaining-capacity greedy pass per vehicle.
func assignByCapacity(vehicles []models.CampaignVehicle, centers []models.ServiceCenter, entries []CenterAssignment) {
	remaining := make([]int, len(centers))
	for i, c := range centers {
		remaining[i] = c.CapacityPerDay
		if remaining[i] <= 0 {
			remaining[i] = 1
		}
	}

	for _, v := range vehicles {
		best := 0
		for i := range entries {
			if remaining[i] > remaining[best] {
				best = i
			}
		}

		entries[best].Vehicles = append(entries[best].Vehicles, v)
		remaining[best]--
	}
}

// persist stores the distribution and stamps each vehicle with its center.
func (s *DistributeService) persist(ctx context.Context, c *models.Campaign, dist *Distribution) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := models.VehicleDistribution{
			CampaignID: c.ID,
			Method:     dist.Method,
		}

		for _, entry := range dist.Entries {
			record.Entries = append(record.Entries, models.VehicleDistributionEntry{
				ServiceCenterID: entry.CenterID,
				VehicleCount:    len(entry.Vehicles),
			})
		}

		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		for _, entry := range dist.Entries {
			for _, v := range entry.Vehicles {
				if err := tx.Model(&models.CampaignVehicle{}).
					Where("id = ?", v.ID).
					Update("service_center_id", entry.CenterID).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}
