package models

import "time"

// Permission represents a specific permission token in the authorization
// system. Permissions are flat string tokens (e.g. "create_recall"); they are
// never combined or hierarchical. Each carries a Vietnamese description used
// verbatim in user-facing denial messages.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// Name is the unique permission token (e.g., "distribute_vehicles_to_centers").
	Name string `gorm:"unique;size:100;not null"`
	// Resource is the resource this permission applies to (e.g., "campaign", "work_order").
	Resource string `gorm:"size:100;not null"`
	// Action is the action allowed on the resource (e.g., "create", "update").
	Action string `gorm:"size:50;not null"`
	// Description is the Vietnamese human-readable description of the action.
	// When empty the raw token is shown instead.
	Description string `gorm:"size:255"`
	// SortOrder preserves the display order of permissions within a role.
	SortOrder int `gorm:"default:0"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
