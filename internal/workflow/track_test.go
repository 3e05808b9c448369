package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

func trackingFor(t *testing.T, counts map[uint]int) *Tracking {
	t.Helper()

	dist := &Distribution{StepResult: StepResult{Success: true}}

	var nextID uint = 1
	for centerID, n := range counts {
		vehicles := make([]models.CampaignVehicle, 0, n)
		for i := 0; i < n; i++ {
			vehicles = append(vehicles, models.CampaignVehicle{ID: nextID, VIN: "VIN"})
			nextID++
		}

		dist.Entries = append(dist.Entries, CenterAssignment{CenterID: centerID, Vehicles: vehicles})
	}

	out, err := NewTrackService(nil).Track(context.Background(), &models.Campaign{}, dist)
	require.NoError(t, err)

	return out
}

func TestTrack_InitializesPendingCounters(t *testing.T) {
	tracking := trackingFor(t, map[uint]int{1: 3, 2: 5})

	assert.Equal(t, 8, tracking.Overall.Pending, "overall pending equals the distributed total")
	assert.Equal(t, 8, tracking.Overall.Total())
	assert.Equal(t, 3, tracking.Centers[1].Pending)
	assert.Equal(t, 5, tracking.Centers[2].Pending)

	require.Len(t, tracking.Records[2], 5)
	for _, record := range tracking.Records[2] {
		assert.Equal(t, models.WorkOrderPending, record.Status)
	}
}

func TestTransition_PreservesCounterSum(t *testing.T) {
	tracking := trackingFor(t, map[uint]int{1: 4, 2: 2})

	moves := []struct{ from, to string }{
		{models.WorkOrderPending, models.WorkOrderInProgress},
		{models.WorkOrderPending, models.WorkOrderInProgress},
		{models.WorkOrderInProgress, models.WorkOrderCompleted},
		{models.WorkOrderPending, models.WorkOrderInProgress},
		{models.WorkOrderInProgress, models.WorkOrderFailed},
	}

	for i, move := range moves {
		require.NoError(t, tracking.Transition(1, move.from, move.to), "move %d", i)

		assert.Equal(t, 4, tracking.Centers[1].Total(), "center sum after move %d", i)
		assert.Equal(t, 6, tracking.Overall.Total(), "overall sum after move %d", i)
	}

	assert.Equal(t, Progress{Completed: 1, InProgress: 1, Pending: 1, Failed: 1}, *tracking.Centers[1])
	assert.Equal(t, 2, tracking.Centers[2].Pending, "the untouched center keeps its counters")
}

func TestTransition_RejectsNegativeCounter(t *testing.T) {
	tracking := trackingFor(t, map[uint]int{1: 1})

	err := tracking.Transition(1, models.WorkOrderCompleted, models.WorkOrderPending)
	assert.ErrorIs(t, err, ErrNegativeCounter)

	// a rejected move leaves everything untouched
	assert.Equal(t, Progress{Pending: 1}, *tracking.Centers[1])
	assert.Equal(t, Progress{Pending: 1}, tracking.Overall)
}

func TestTransition_UnknownCenterAndStatus(t *testing.T) {
	tracking := trackingFor(t, map[uint]int{1: 1})

	err := tracking.Transition(99, models.WorkOrderPending, models.WorkOrderCompleted)
	assert.ErrorIs(t, err, ErrUnknownCenter)

	err = tracking.Transition(1, "paused", models.WorkOrderCompleted)
	assert.ErrorIs(t, err, ErrUnknownStatus)

	err = tracking.Transition(1, models.WorkOrderPending, "paused")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
