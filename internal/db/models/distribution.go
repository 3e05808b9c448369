package models

import "time"

// VehicleDistribution records one distribution of campaign vehicles across
// service centers.
type VehicleDistribution struct {
	// ID is the unique identifier for the distribution.
	ID uint `gorm:"primaryKey"`
	// CampaignID is the distributed campaign.
	CampaignID uint `gorm:"not null;index"`
	// Method is the distribution method: geographic, capacity or even.
	Method string `gorm:"size:50;not null"`
	// Confirmed indicates the distribution was accepted by EVM staff.
	Confirmed bool `gorm:"default:false"`
	// Entries are the per-center assignments.
	Entries []VehicleDistributionEntry `gorm:"foreignKey:DistributionID"`
	// CreatedAt is the timestamp when the distribution was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the distribution was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the VehicleDistribution model.
func (VehicleDistribution) TableName() string {
	return "vehicle_distributions"
}

// VehicleDistributionEntry is one center's share of a distribution.
type VehicleDistributionEntry struct {
	// ID is the unique identifier for the entry.
	ID uint `gorm:"primaryKey"`
	// DistributionID is the owning distribution.
	DistributionID uint `gorm:"not null;index"`
	// ServiceCenterID is the receiving center.
	ServiceCenterID uint `gorm:"not null"`
	// VehicleCount is how many vehicles the center received.
	VehicleCount int `gorm:"not null"`
}

// TableName specifies the database table name for the VehicleDistributionEntry model.
func (VehicleDistributionEntry) TableName() string {
	return "vehicle_distribution_entries"
}
