package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

func TestDistribute_InvalidMethod(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "RCL030", models.KindRecall, false)

	out, err := NewDistributeService(db).Distribute(context.Background(), c, "random")
	require.NoError(t, err)

	assert.False(t, out.Success)
	assert.Equal(t, "phương thức phân bổ không hợp lệ: random", out.Error)
}

func TestDistribute_NoActiveCenters(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "RCL031", models.KindRecall, false)

	inactive := seedCenter(t, db, "SC-Q4-01", "QUAN_4", 8)
	require.NoError(t, db.Model(inactive).Update("active", false).Error)

	out, err := NewDistributeService(db).Distribute(context.Background(), c, MethodEven)
	require.NoError(t, err)

	assert.False(t, out.Success)
	assert.Equal(t, "không có trung tâm dịch vụ khả dụng", out.Error)
}

func TestDistribute_EvenSplit(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "CMP032", models.KindCampaign, false)
	seedVehicles(t, db, c.ID, 7)
	seedCenter(t, db, "SC-Q1-01", "QUAN_1", 8)
	seedCenter(t, db, "SC-Q3-01", "QUAN_3", 8)
	seedCenter(t, db, "SC-Q5-01", "QUAN_5", 8)

	out, err := NewDistributeService(db).Distribute(context.Background(), c, MethodEven)
	require.NoError(t, err)
	require.True(t, out.Success)

	require.Len(t, out.Entries, 3)
	assert.Equal(t, 7, out.TotalVehicles())
	assert.Len(t, out.Entries[0].Vehicles, 3)
	assert.Len(t, out.Entries[1].Vehicles, 2)
	assert.Len(t, out.Entries[2].Vehicles, 2)

	// every vehicle is stamped with its center
	var unassigned int64
	require.NoError(t, db.Model(&models.CampaignVehicle{}).
		Where("campaign_id = ? AND service_center_id = 0", c.ID).
		Count(&unassigned).Error)
	assert.Zero(t, unassigned)

	var record models.VehicleDistribution
	require.NoError(t, db.Preload("Entries").Where("campaign_id = ?", c.ID).First(&record).Error)
	assert.Equal(t, MethodEven, record.Method)
	assert.Len(t, record.Entries, 3)
}

func TestDistribute_CapacityWeighted(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "RCL033", models.KindRecall, true)
	seedVehicles(t, db, c.ID, 9)
	small := seedCenter(t, db, "SC-Q8-01", "QUAN_8", 2)
	big := seedCenter(t, db, "SC-Q10-01", "QUAN_10", 20)

	out, err := NewDistributeService(db).Distribute(context.Background(), c, MethodCapacity)
	require.NoError(t, err)
	require.True(t, out.Success)

	byCenter := make(map[uint]int)
	for _, entry := range out.Entries {
		byCenter[entry.CenterID] = len(entry.Vehicles)
	}

	assert.Greater(t, byCenter[big.ID], byCenter[small.ID],
		"the high-capacity center takes the larger share")
	assert.Equal(t, 9, out.TotalVehicles())
}

func TestDistribute_GeographicOrdersByBranch(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "CMP034", models.KindCampaign, false)
	seedVehicles(t, db, c.ID, 4)

	// created out of branch order on purpose
	seedCenter(t, db, "SC-TD-01", "THU_DUC", 8)
	seedCenter(t, db, "SC-BT-01", "BINH_TAN", 8)

	out, err := NewDistributeService(db).Distribute(context.Background(), c, MethodGeographic)
	require.NoError(t, err)
	require.True(t, out.Success)

	require.Len(t, out.Entries, 2)
	assert.Equal(t, "SC-BT-01", out.Entries[0].CenterCode, "centers fill in branch code order")
	assert.Equal(t, "SC-TD-01", out.Entries[1].CenterCode)
}

func TestDistribute_EmptyVehicleSet(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "CMP035", models.KindCampaign, false)
	seedCenter(t, db, "SC-NB-01", "NHA_BE", 8)

	out, err := NewDistributeService(db).Distribute(context.Background(), c, MethodEven)
	require.NoError(t, err)

	assert.True(t, out.Success, "an empty vehicle set is a valid distribution")
	assert.Zero(t, out.TotalVehicles())
}
