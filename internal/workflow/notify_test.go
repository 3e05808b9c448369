package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

func TestNotifyCampaign_TargetedCenters(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "CMP040", models.KindCampaign, false)

	svc := NewNotifyService(db)
	out, err := svc.NotifyCampaign(context.Background(), c, []string{"SC-Q1-01", "SC-Q3-01"}, "Lịch bảo dưỡng tháng 9")
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "SC-Q1-01,SC-Q3-01", out.Audience)
	assert.Equal(t, models.PriorityNormal, out.Priority)

	var record models.NotificationRecord
	require.NoError(t, db.First(&record, out.RecordID).Error)
	assert.Equal(t, "Lịch bảo dưỡng tháng 9", record.Message)
	assert.False(t, record.Confirmed)
}

func TestNotifyCampaign_DefaultsToAll(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "CMP041", models.KindCampaign, false)

	out, err := NewNotifyService(db).NotifyCampaign(context.Background(), c, nil, "Thông báo chung")
	require.NoError(t, err)

	assert.Equal(t, "all", out.Audience)
}

func TestNotifyUrgentRecall(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "RCL042", models.KindRecall, true)

	out, err := NewNotifyService(db).NotifyUrgentRecall(context.Background(), c, "Thu hồi khẩn cấp: dừng sử dụng xe")
	require.NoError(t, err)

	assert.Equal(t, "all", out.Audience, "urgent recalls always notify every center")
	assert.Equal(t, models.PriorityUrgent, out.Priority)
}
