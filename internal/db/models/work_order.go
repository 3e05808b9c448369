package models

import "time"

// Work order statuses. Transitions only move counters between these four
// buckets; their per-center sums always equal the tracked vehicle total.
const (
	WorkOrderPending    = "pending"
	WorkOrderInProgress = "in_progress"
	WorkOrderCompleted  = "completed"
	WorkOrderFailed     = "failed"
)

// WorkOrder represents one unit of campaign work: one vehicle at one center,
// handled by one technician.
type WorkOrder struct {
	// ID is the unique identifier for the work order.
	ID uint `gorm:"primaryKey"`
	// Code is the unique work order code (uuid).
	Code string `gorm:"unique;size:64;not null"`
	// CampaignID is the owning campaign.
	CampaignID uint `gorm:"not null;index"`
	// CampaignVehicleID is the vehicle being serviced.
	CampaignVehicleID uint `gorm:"not null;index"`
	// ServiceCenterID is the center executing the order.
	ServiceCenterID uint `gorm:"not null;index"`
	// TechnicianID is the assigned technician.
	TechnicianID uint `gorm:"index"`
	// Status is one of pending, in_progress, completed, failed.
	Status string `gorm:"size:50;default:'pending'"`
	// Checklist is the instruction checklist, keyed by campaign kind,
	// serialized as JSON.
	Checklist string `gorm:"type:text"`
	// ScheduledAt is the proposed appointment slot for the vehicle.
	ScheduledAt time.Time
	// Result holds the work-completed payload serialized as JSON.
	Result string `gorm:"type:text"`
	// Rework marks completed work that had to be redone.
	Rework bool `gorm:"default:false"`
	// Rating is the customer satisfaction rating 1-5; 0 means no feedback.
	Rating int `gorm:"default:0"`
	// CreatedAt is the timestamp when the order was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the order was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the WorkOrder model.
func (WorkOrder) TableName() string {
	return "work_orders"
}
