package models

import "time"

// CampaignKind distinguishes safety recalls from service campaigns.
type CampaignKind string

const (
	// KindRecall marks a safety recall.
	KindRecall CampaignKind = "recall"
	// KindCampaign marks a regular service campaign.
	KindCampaign CampaignKind = "campaign"
)

// Campaign represents one recall or service campaign.
type Campaign struct {
	// ID is the unique identifier for the campaign.
	ID uint `gorm:"primaryKey"`
	// Code is the unique campaign code (e.g. "RCL006").
	Code string `gorm:"unique;size:50;not null"`
	// Kind is either "recall" or "campaign".
	Kind CampaignKind `gorm:"type:varchar(20);not null"`
	// Title is the campaign headline shown to staff and owners.
	Title string `gorm:"size:255;not null"`
	// Description holds the detailed campaign text.
	Description string `gorm:"type:text"`
	// Urgent marks recalls that require shortened service slots.
	Urgent bool `gorm:"default:false"`
	// Status is the campaign lifecycle status (draft, active, closed).
	Status string `gorm:"size:50;default:'draft'"`
	// StartDate and EndDate bound the campaign window.
	StartDate time.Time
	EndDate   time.Time
	// CreatedAt is the timestamp when the campaign was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the campaign was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Campaign model.
func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignVehicle represents one affected vehicle within a campaign.
type CampaignVehicle struct {
	// ID is the unique identifier for the campaign vehicle.
	ID uint `gorm:"primaryKey"`
	// CampaignID is the owning campaign.
	CampaignID uint `gorm:"not null;index"`
	// VIN is the vehicle identification number.
	VIN string `gorm:"size:50;not null;index"`
	// Model is the vehicle model name.
	Model string `gorm:"size:100"`
	// OwnerName and OwnerPhone identify the vehicle owner for notification.
	OwnerName  string `gorm:"size:255"`
	OwnerPhone string `gorm:"size:50"`
	// ServiceCenterID is the center the vehicle was distributed to (0 until distributed).
	ServiceCenterID uint `gorm:"index"`
	// CreatedAt is the timestamp when the row was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the CampaignVehicle model.
func (CampaignVehicle) TableName() string {
	return "campaign_vehicles"
}

// CampaignTechnician binds a technician to a campaign. The pair is unique:
// a technician never appears twice in the same campaign.
type CampaignTechnician struct {
	// CampaignID is the campaign in this binding.
	CampaignID uint `gorm:"primaryKey;column:campaign_id"`
	// TechnicianID is the technician in this binding.
	TechnicianID uint `gorm:"primaryKey;column:technician_id"`
	// Campaign is the associated campaign (loaded via foreign key).
	Campaign Campaign `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
	// Technician is the associated technician (loaded via foreign key).
	Technician Technician `gorm:"foreignKey:TechnicianID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the CampaignTechnician model.
func (CampaignTechnician) TableName() string {
	return "campaign_technicians"
}
