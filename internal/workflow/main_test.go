package workflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.ServiceCenter{},
		&models.Technician{},
		&models.Campaign{},
		&models.CampaignVehicle{},
		&models.CampaignTechnician{},
		&models.WorkOrder{},
		&models.VehicleDistribution{},
		&models.VehicleDistributionEntry{},
		&models.NotificationRecord{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedCampaign(t *testing.T, db *gorm.DB, code string, kind models.CampaignKind, urgent bool) *models.Campaign {
	t.Helper()

	c := models.Campaign{
		Code:   code,
		Kind:   kind,
		Title:  "Chiến dịch " + code,
		Urgent: urgent,
		Status: "active",
	}
	require.NoError(t, db.Create(&c).Error)

	return &c
}

func seedVehicles(t *testing.T, db *gorm.DB, campaignID uint, count int) []models.CampaignVehicle {
	t.Helper()

	vehicles := make([]models.CampaignVehicle, 0, count)

	for i := 0; i < count; i++ {
		v := models.CampaignVehicle{
			CampaignID: campaignID,
			VIN:        fmt.Sprintf("VF8TEST%07d", i+1),
			Model:      "VF 8",
			OwnerName:  fmt.Sprintf("Chủ xe %d", i+1),
		}
		require.NoError(t, db.Create(&v).Error)
		vehicles = append(vehicles, v)
	}

	return vehicles
}

func seedCenter(t *testing.T, db *gorm.DB, code, branchCode string, capacity int) *models.ServiceCenter {
	t.Helper()

	center := models.ServiceCenter{
		Code:           code,
		Name:           "Trung tâm " + code,
		BranchCode:     branchCode,
		CapacityPerDay: capacity,
		Active:         true,
	}
	require.NoError(t, db.Create(&center).Error)

	return &center
}

func seedTechnicians(t *testing.T, db *gorm.DB, campaignID, centerID uint, count int) []models.Technician {
	t.Helper()

	techs := make([]models.Technician, 0, count)

	for i := 0; i < count; i++ {
		tech := models.Technician{
			EmployeeCode:    fmt.Sprintf("KTV-%d-%d", centerID, i+1),
			Name:            fmt.Sprintf("KTV %d", i+1),
			ServiceCenterID: centerID,
			Active:          true,
		}
		require.NoError(t, db.Create(&tech).Error)
		require.NoError(t, db.Create(&models.CampaignTechnician{
			CampaignID:   campaignID,
			TechnicianID: tech.ID,
		}).Error)
		techs = append(techs, tech)
	}

	return techs
}
