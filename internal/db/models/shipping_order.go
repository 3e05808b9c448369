package models

import "time"

// ShippingOrder caches one parts shipment booked with the external carrier,
// keyed by the carrier's order code.
type ShippingOrder struct {
	// ID is the unique identifier for the cached order.
	ID uint `gorm:"primaryKey"`
	// OrderCode is the carrier's unique order code.
	OrderCode string `gorm:"unique;size:100;not null"`
	// CampaignID is the campaign the parts belong to, if any.
	CampaignID uint `gorm:"index"`
	// Status is the last known carrier status.
	Status string `gorm:"size:50"`
	// Payload is the carrier response serialized as JSON.
	Payload string `gorm:"type:text"`
	// CreatedAt is the timestamp when the cache row was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the cache row was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ShippingOrder model.
func (ShippingOrder) TableName() string {
	return "shipping_orders"
}
