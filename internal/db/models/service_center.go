package models

import "time"

// ServiceCenter represents one service center in the network.
type ServiceCenter struct {
	// ID is the unique identifier for the service center.
	ID uint `gorm:"primaryKey"`
	// Code is the unique short code of the center (e.g. "SC-BT-01").
	Code string `gorm:"unique;size:50;not null"`
	// Name is the display name of the center.
	Name string `gorm:"size:255;not null"`
	// BranchCode is the branch enum code of the district the center serves.
	BranchCode string `gorm:"size:50;not null"`
	// CapacityPerDay is how many vehicles the center can process per working day.
	CapacityPerDay int `gorm:"default:10"`
	// Latitude and Longitude locate the center for geographic distribution.
	Latitude  float64
	Longitude float64
	// Active indicates whether the center currently accepts work.
	Active bool `gorm:"default:true"`
	// CreatedAt is the timestamp when the center was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the center was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ServiceCenter model.
func (ServiceCenter) TableName() string {
	return "service_centers"
}

// Technician represents a technician employed by one service center.
type Technician struct {
	// ID is the unique identifier for the technician.
	ID uint `gorm:"primaryKey"`
	// EmployeeCode is the unique employee code (e.g. "KTV-0042").
	EmployeeCode string `gorm:"unique;size:50;not null"`
	// Name is the technician's display name.
	Name string `gorm:"size:255;not null"`
	// ServiceCenterID is the center the technician works at.
	ServiceCenterID uint `gorm:"not null"`
	// ServiceCenter is the associated center (loaded via foreign key).
	ServiceCenter ServiceCenter `gorm:"foreignKey:ServiceCenterID"`
	// Active indicates whether the technician can take work orders.
	Active bool `gorm:"default:true"`
	// CreatedAt is the timestamp when the technician was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the technician was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Technician model.
func (Technician) TableName() string {
	return "technicians"
}
