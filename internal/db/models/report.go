package models

import "time"

// Confirmation report statuses.
const (
	ReportPending  = "pending"
	ReportAccepted = "accepted"
	ReportRejected = "rejected"
	ReportRevised  = "revised"
)

// ConfirmationReport represents a center's post-workflow completion report
// awaiting manufacturer confirmation.
type ConfirmationReport struct {
	// ID is the unique identifier for the report.
	ID uint `gorm:"primaryKey"`
	// CampaignID is the reported campaign.
	CampaignID uint `gorm:"not null;index"`
	// ServiceCenterID is the reporting center.
	ServiceCenterID uint `gorm:"not null;index"`
	// Status is one of pending, accepted, rejected, revised.
	Status string `gorm:"size:50;default:'pending'"`
	// Summary holds the report body serialized as JSON.
	Summary string `gorm:"type:text"`
	// Response holds the manufacturer's response text.
	Response string `gorm:"type:text"`
	// Revision counts how often the report was revised.
	Revision int `gorm:"default:0"`
	// CreatedAt is the timestamp when the report was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the report was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ConfirmationReport model.
func (ConfirmationReport) TableName() string {
	return "confirmation_reports"
}
