package models

import "time"

// AuditLog is one audit trail entry. Entries are constructed locally and
// inserted best-effort: a failed insert never fails the audited action.
type AuditLog struct {
	// ID is the unique identifier for the entry.
	ID uint64 `gorm:"primaryKey"`
	// Timestamp is when the audited action happened.
	Timestamp time.Time `gorm:"not null;index"`
	// Role is the acting role name.
	Role string `gorm:"size:100;not null"`
	// UserID is the acting user.
	UserID uint64 `gorm:"index"`
	// Action is the audited action token.
	Action string `gorm:"size:100;not null"`
	// ResourceID identifies the touched resource, if any.
	ResourceID string `gorm:"size:100"`
	// Details holds extra context serialized as JSON.
	Details string `gorm:"type:text"`
}

// TableName specifies the database table name for the AuditLog model.
func (AuditLog) TableName() string {
	return "audit_logs"
}
