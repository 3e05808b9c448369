// Package campaign provides CRUD operations for campaigns and their
// technician assignments.
package campaign

import (
	"errors"

	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

const (
	codeQueryPattern     = "code = ?"
	campaignQueryPattern = "campaign_id = ?"
)

var (
	// ErrCampaignNotFound is returned when a campaign is not found.
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrCampaignCodeEmpty is returned when a campaign code is empty.
	ErrCampaignCodeEmpty = errors.New("campaign code cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a campaign by its code.
func Get(db *gorm.DB, code string) (*models.Campaign, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if code == "" {
		return nil, ErrCampaignCodeEmpty
	}

	var c models.Campaign
	result := db.Where(codeQueryPattern, code).First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, result.Error
	}

	return &c, nil
}

// Vehicles retrieves all vehicles registered for a campaign.
func Vehicles(db *gorm.DB, campaignID uint) ([]models.CampaignVehicle, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var vehicles []models.CampaignVehicle
	result := db.Where(campaignQueryPattern, campaignID).Order("id").Find(&vehicles)
	if result.Error != nil {
		return nil, result.Error
	}

	return vehicles, nil
}

// Technicians retrieves the technicians assigned to a campaign, in
// assignment order.
func Technicians(db *gorm.DB, campaignID uint) ([]models.Technician, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var techs []models.Technician
	result := db.
		Joins("JOIN campaign_technicians ON campaign_technicians.technician_id = technicians.id").
		Where("campaign_technicians.campaign_id = ?", campaignID).
		Order("technicians.id").
		Find(&techs)
	if result.Error != nil {
		return nil, result.Error
	}

	return techs, nil
}

// AssignTechnicians binds the given technicians to a campaign. Technicians
// already bound are skipped, so the assignment set never holds duplicates.
// branchCode, when non-empty, restricts the assignment to technicians whose
// center belongs to that branch (SC_Admin scoping).
// It returns the number of technicians actually added.
func AssignTechnicians(db *gorm.DB, campaignID uint, technicianIDs []uint, branchCode string) (int, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	added := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, techID := range technicianIDs {
			if branchCode != "" {
				var tech models.Technician

				err := tx.Preload("ServiceCenter").First(&tech, techID).Error
				if err != nil {
					return err
				}

				// branch-scoped roles only touch their own branch
				if tech.ServiceCenter.BranchCode != branchCode {
					continue
				}
			}

			var count int64
			if err := tx.Model(&models.CampaignTechnician{}).
				Where("campaign_id = ? AND technician_id = ?", campaignID, techID).
				Count(&count).Error; err != nil {
				return err
			}

			if count > 0 {
				continue // already assigned
			}

			if err := tx.Create(&models.CampaignTechnician{
				CampaignID:   campaignID,
				TechnicianID: techID,
			}).Error; err != nil {
				return err
			}

			added++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return added, nil
}

// TechnicianWorkload returns the count of open work orders per technician
// for a campaign.
func TechnicianWorkload(db *gorm.DB, campaignID uint) (map[uint]int64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	type row struct {
		TechnicianID uint
		Count        int64
	}

	var rows []row

	result := db.Model(&models.WorkOrder{}).
		Select("technician_id, count(*) as count").
		Where("campaign_id = ? AND status IN ?", campaignID,
			[]string{models.WorkOrderPending, models.WorkOrderInProgress}).
		Group("technician_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	workload := make(map[uint]int64, len(rows))
	for _, r := range rows {
		workload[r.TechnicianID] = r.Count
	}

	return workload, nil
}
