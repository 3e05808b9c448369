package models

import "time"

// Notification priorities.
const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgent"
)

// NotificationRecord represents one campaign notice pushed to centers.
// Urgent recall notices always target all centers with priority "urgent".
type NotificationRecord struct {
	// ID is the unique identifier for the notification.
	ID uint `gorm:"primaryKey"`
	// CampaignID is the campaign the notice belongs to.
	CampaignID uint `gorm:"not null;index"`
	// Audience is "all" or a comma separated list of center codes.
	Audience string `gorm:"size:255;not null"`
	// Priority is "normal" or "urgent".
	Priority string `gorm:"size:20;default:'normal'"`
	// Message is the Vietnamese notice text.
	Message string `gorm:"type:text"`
	// Confirmed indicates a center acknowledged the notice.
	Confirmed bool `gorm:"default:false"`
	// SentAt is when the notice was pushed.
	SentAt time.Time
	// CreatedAt is the timestamp when the record was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the NotificationRecord model.
func (NotificationRecord) TableName() string {
	return "notifications"
}
