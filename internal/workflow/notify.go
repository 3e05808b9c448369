package workflow

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// Notification is the outcome of pushing one campaign notice.
type Notification struct {
	StepResult
	RecordID uint   `json:"recordId"`
	Audience string `json:"audience"`
	Priority string `json:"priority"`
}

// NotifyService pushes campaign notices to centers. Notification is an
// independently triggerable action, not part of the orchestration chain.
type NotifyService struct {
	db *gorm.DB
}

// NewNotifyService creates a new notification service.
func NewNotifyService(db *gorm.DB) *NotifyService {
	return &NotifyService{db: db}
}

// NotifyCampaign pushes a campaign notice to the target centers, or to all
// centers when no target is given.
func (s *NotifyService) NotifyCampaign(
	ctx context.Context,
	c *models.Campaign,
	targetCenterCodes []string,
	message string,
) (*Notification, error) {
	audience := "all"
	if len(targetCenterCodes) > 0 {
		audience = strings.Join(targetCenterCodes, ",")
	}

	return s.push(ctx, c, audience, models.PriorityNormal, message)
}

// NotifyUrgentRecall pushes an urgent recall notice. The urgent variant
// always targets all centers and tags priority urgent.
func (s *NotifyService) NotifyUrgentRecall(
	ctx context.Context,
	c *models.Campaign,
	message string,
) (*Notification, error) {
	return s.push(ctx, c, "all", models.PriorityUrgent, message)
}

func (s *NotifyService) push(
	ctx context.Context,
	c *models.Campaign,
	audience, priority, message string,
) (*Notification, error) {
	record := models.NotificationRecord{
		CampaignID: c.ID,
		Audience:   audience,
		Priority:   priority,
		Message:    message,
		SentAt:     time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}

	return &Notification{
		StepResult: StepResult{Success: true},
		RecordID:   record.ID,
		Audience:   audience,
		Priority:   priority,
	}, nil
}
