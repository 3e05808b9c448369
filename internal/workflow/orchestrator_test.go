package workflow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

type fakeDistributor struct {
	calls int
	out   *Distribution
	err   error
}

func (f *fakeDistributor) Distribute(_ context.Context, _ *models.Campaign, _ string) (*Distribution, error) {
	f.calls++
	return f.out, f.err
}

type fakeScheduler struct {
	calls int
	out   *Schedule
	err   error
}

func (f *fakeScheduler) Schedule(_ context.Context, _ *models.Campaign, _ *Distribution) (*Schedule, error) {
	f.calls++
	return f.out, f.err
}

type fakeAssigner struct {
	calls int
	out   *Assignment
	err   error
}

func (f *fakeAssigner) Assign(_ context.Context, _ *models.Campaign, _ *Schedule) (*Assignment, error) {
	f.calls++
	return f.out, f.err
}

type fakeTracker struct {
	calls int
	out   *Tracking
	err   error
}

func (f *fakeTracker) Track(_ context.Context, _ *models.Campaign, _ *Distribution) (*Tracking, error) {
	f.calls++
	return f.out, f.err
}

func okDistribution(vehicles int) *Distribution {
	vs := make([]models.CampaignVehicle, vehicles)
	for i := range vs {
		vs[i] = models.CampaignVehicle{ID: uint(i + 1)}
	}

	return &Distribution{
		StepResult: StepResult{Success: true},
		Method:     MethodEven,
		Entries:    []CenterAssignment{{CenterID: 1, CenterCode: "SC-01", Vehicles: vs}},
	}
}

func TestExecute_HaltsOnDistributeFailure(t *testing.T) {
	distributor := &fakeDistributor{out: &Distribution{
		StepResult: StepResult{Success: false, Error: "không có trung tâm dịch vụ khả dụng"},
	}}
	scheduler := &fakeScheduler{}
	assigner := &fakeAssigner{}
	tracker := &fakeTracker{}

	o := New(distributor, scheduler, assigner, tracker)
	c := &models.Campaign{Code: "RCL006", Kind: models.KindRecall}

	run, tracking := o.Execute(context.Background(), c, MethodEven)

	assert.Nil(t, tracking)
	assert.Equal(t, StatusFailed, run.Status)

	assert.Equal(t, 1, distributor.calls)
	assert.Zero(t, scheduler.calls, "scheduling must not run after a failed distribution")
	assert.Zero(t, assigner.calls)
	assert.Zero(t, tracker.calls)

	var failures []string
	for _, entry := range run.Log {
		if !entry.Success {
			failures = append(failures, entry.Message)
		}
	}

	require.Len(t, failures, 1, "exactly one failure entry is logged")
	assert.Equal(t, "❌ Lỗi trong quy trình: không có trung tâm dịch vụ khả dụng", failures[0])
}

func TestExecute_HaltsOnStepError(t *testing.T) {
	distributor := &fakeDistributor{out: okDistribution(3)}
	scheduler := &fakeScheduler{err: context.DeadlineExceeded}
	assigner := &fakeAssigner{}
	tracker := &fakeTracker{}

	o := New(distributor, scheduler, assigner, tracker)
	c := &models.Campaign{Code: "CMP010", Kind: models.KindCampaign}

	run, tracking := o.Execute(context.Background(), c, MethodEven)

	assert.Nil(t, tracking)
	assert.Equal(t, StatusFailed, run.Status)
	assert.Equal(t, 1, scheduler.calls)
	assert.Zero(t, assigner.calls)
	assert.Zero(t, tracker.calls)
}

func TestExecute_Success(t *testing.T) {
	distributor := &fakeDistributor{out: okDistribution(4)}
	scheduler := &fakeScheduler{out: &Schedule{
		StepResult: StepResult{Success: true},
		Centers:    []CenterSchedule{{CenterID: 1, CenterCode: "SC-01"}},
	}}
	assigner := &fakeAssigner{out: &Assignment{
		StepResult: StepResult{Success: true},
		Orders:     make([]models.WorkOrder, 4),
	}}
	tracker := &fakeTracker{out: &Tracking{
		StepResult: StepResult{Success: true},
		Overall:    Progress{Pending: 4},
	}}

	o := New(distributor, scheduler, assigner, tracker)
	c := &models.Campaign{Code: "RCL001", Kind: models.KindRecall, Urgent: true}

	run, tracking := o.Execute(context.Background(), c, MethodCapacity)

	require.NotNil(t, tracking)
	assert.Equal(t, StatusSucceeded, run.Status)
	assert.Equal(t, 4, tracking.Overall.Pending)

	assert.Equal(t, 1, distributor.calls)
	assert.Equal(t, 1, scheduler.calls)
	assert.Equal(t, 1, assigner.calls)
	assert.Equal(t, 1, tracker.calls)

	messages := make([]string, 0, len(run.Log))
	for _, entry := range run.Log {
		require.True(t, entry.Success, "no failure entry on a successful run: %s", entry.Message)
		messages = append(messages, entry.Message)
	}

	require.Len(t, messages, 6)
	assert.Equal(t, "Bắt đầu quy trình chiến dịch RCL001", messages[0])
	assert.Equal(t, "✅ Đã phân bổ 4 xe cho 1 trung tâm", messages[1])
	assert.Equal(t, "✅ Đã lập lịch hẹn cho 1 trung tâm", messages[2])
	assert.Equal(t, "✅ Đã tạo 4 lệnh công việc", messages[3])
	assert.Equal(t, "✅ Đã khởi tạo theo dõi 4 xe", messages[4])
	assert.Equal(t, "✅ Hoàn tất quy trình chiến dịch RCL001", messages[5])
}

func TestExecute_WithDB_FullRun(t *testing.T) {
	db := setupTestDB(t)

	c := seedCampaign(t, db, "RCL006", models.KindRecall, true)
	seedVehicles(t, db, c.ID, 6)
	center := seedCenter(t, db, "SC-Q1-01", "QUAN_1", 10)
	seedTechnicians(t, db, c.ID, center.ID, 2)

	run, tracking := NewWithDB(db).Execute(context.Background(), c, MethodGeographic)

	require.NotNil(t, tracking, "run log: %+v", run.Log)
	assert.Equal(t, StatusSucceeded, run.Status)
	assert.Equal(t, 6, tracking.Overall.Pending)

	var orders int64
	require.NoError(t, db.Model(&models.WorkOrder{}).Where("campaign_id = ?", c.ID).Count(&orders).Error)
	assert.Equal(t, int64(6), orders, "one work order per distributed vehicle")
}

func TestExecute_WithDB_NoCenters(t *testing.T) {
	db := setupTestDB(t)

	c := seedCampaign(t, db, "RCL007", models.KindRecall, false)
	seedVehicles(t, db, c.ID, 2)

	run, tracking := NewWithDB(db).Execute(context.Background(), c, MethodEven)

	assert.Nil(t, tracking)
	require.Equal(t, StatusFailed, run.Status)

	last := run.Log[len(run.Log)-1]
	assert.False(t, last.Success)
	assert.True(t, strings.HasPrefix(last.Message, "❌ Lỗi trong quy trình: "), "got %q", last.Message)
}

func TestNewRun_StartsNotStarted(t *testing.T) {
	run := NewRun("RCL001", models.KindRecall)

	assert.Equal(t, StatusNotStarted, run.Status)
	assert.NotEmpty(t, run.ID)
	assert.Empty(t, run.Log)
}
