package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

func TestTimePerVehicle(t *testing.T) {
	urgentRecall := &models.Campaign{Kind: models.KindRecall, Urgent: true}
	assert.Equal(t, 90*time.Minute, TimePerVehicle(urgentRecall))

	regularRecall := &models.Campaign{Kind: models.KindRecall}
	assert.Equal(t, 2*time.Hour, TimePerVehicle(regularRecall))

	urgentCampaign := &models.Campaign{Kind: models.KindCampaign, Urgent: true}
	assert.Equal(t, 2*time.Hour, TimePerVehicle(urgentCampaign), "urgency only shortens recall slots")
}

func TestDaysNeeded(t *testing.T) {
	assert.Equal(t, 0, DaysNeeded(0, 2*time.Hour))
	assert.Equal(t, 1, DaysNeeded(4, 2*time.Hour), "4 vehicles x 2h fill one 8h day")
	assert.Equal(t, 2, DaysNeeded(5, 2*time.Hour), "the fifth vehicle spills into a second day")
	assert.Equal(t, 2, DaysNeeded(10, 90*time.Minute), "10 x 1.5h = 15h -> 2 days")
	assert.Equal(t, 1, DaysNeeded(1, 90*time.Minute))
}

func TestPackSlots_RollsOverDayBoundary(t *testing.T) {
	dayStart := time.Date(2026, time.September, 1, dayStartHour, 0, 0, 0, time.UTC)

	vehicles := make([]models.CampaignVehicle, 5)
	for i := range vehicles {
		vehicles[i] = models.CampaignVehicle{ID: uint(i + 1)}
	}

	slots := packSlots(vehicles, dayStart, 2*time.Hour)
	require.Len(t, slots, 5)

	// 08:00, 10:00, 12:00, 14:00 fill day one
	for i := 0; i < 4; i++ {
		want := dayStart.Add(time.Duration(i) * 2 * time.Hour)
		assert.Equal(t, want, slots[i].Start, "slot %d", i)
	}

	// the fifth slot would end at 18:00, past the window, so it opens day two
	assert.Equal(t, dayStart.AddDate(0, 0, 1), slots[4].Start)
}

func TestPackSlots_ExactFit(t *testing.T) {
	dayStart := time.Date(2026, time.September, 1, dayStartHour, 0, 0, 0, time.UTC)

	vehicles := make([]models.CampaignVehicle, 4)
	slots := packSlots(vehicles, dayStart, 2*time.Hour)

	require.Len(t, slots, 4)
	assert.Equal(t, dayStart.Add(6*time.Hour), slots[3].Start, "a slot ending exactly at 16:00 stays on day one")
}

func TestSchedule_StartsNextMorning(t *testing.T) {
	db := setupTestDB(t)
	c := seedCampaign(t, db, "RCL010", models.KindRecall, true)

	svc := NewScheduleService(db)
	svc.now = func() time.Time {
		return time.Date(2026, time.September, 1, 15, 42, 0, 0, time.UTC)
	}

	dist := &Distribution{
		StepResult: StepResult{Success: true},
		Method:     MethodEven,
		Entries: []CenterAssignment{{
			CenterID:   1,
			CenterCode: "SC-01",
			Vehicles: []models.CampaignVehicle{
				{ID: 1, VIN: "VF8TEST0000001"},
				{ID: 2, VIN: "VF8TEST0000002"},
			},
		}},
	}

	sched, err := svc.Schedule(context.Background(), c, dist)
	require.NoError(t, err)
	require.True(t, sched.Success)

	assert.Equal(t, 90*time.Minute, sched.TimePerVehicle)
	require.Len(t, sched.Centers, 1)

	center := sched.Centers[0]
	assert.Equal(t, 1, center.DaysNeeded)
	require.Len(t, center.Slots, 2)

	wantFirst := time.Date(2026, time.September, 2, dayStartHour, 0, 0, 0, time.UTC)
	assert.Equal(t, wantFirst, center.Slots[0].Start)
	assert.Equal(t, wantFirst.Add(90*time.Minute), center.Slots[1].Start)
}
