package workflow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// Orchestrator runs the fixed distribute, schedule, assign, track sequence
// for one campaign. Steps execute strictly in order: step N is issued only
// after step N-1 resolved successfully, and the first failure halts the
// run. Earlier step effects are not rolled back.
//
// The step services are injected; an Orchestrator is constructed once at
// application start and shared by reference.
type Orchestrator struct {
	distributor Distributor
	scheduler   Scheduler
	assigner    Assigner
	tracker     Tracker
}

// New creates an orchestrator from its step services.
func New(distributor Distributor, scheduler Scheduler, assigner Assigner, tracker Tracker) *Orchestrator {
	return &Orchestrator{
		distributor: distributor,
		scheduler:   scheduler,
		assigner:    assigner,
		tracker:     tracker,
	}
}

// NewWithDB wires an orchestrator with the gorm-backed step services.
func NewWithDB(db *gorm.DB) *Orchestrator {
	return New(
		NewDistributeService(db),
		NewScheduleService(db),
		NewAssignService(db),
		NewTrackService(db),
	)
}

// Execute performs one orchestration run and returns its log together with
// the tracking output of a successful run. The returned run is always
// terminal: succeeded or failed.
func (o *Orchestrator) Execute(
	ctx context.Context,
	c *models.Campaign,
	method string,
) (*Run, *Tracking) {
	run := NewRun(c.Code, c.Kind)
	run.Status = StatusRunning
	run.append("Bắt đầu quy trình chiến dịch "+c.Code, true)

	dist, err := o.distributor.Distribute(ctx, c, method)
	if err != nil {
		run.fail(err.Error())
		return run, nil
	}

	if !dist.Success {
		run.fail(dist.Error)
		return run, nil
	}

	run.append(fmt.Sprintf("✅ Đã phân bổ %d xe cho %d trung tâm", dist.TotalVehicles(), len(dist.Entries)), true)

	sched, err := o.scheduler.Schedule(ctx, c, dist)
	if err != nil {
		run.fail(err.Error())
		return run, nil
	}

	if !sched.Success {
		run.fail(sched.Error)
		return run, nil
	}

	run.append(fmt.Sprintf("✅ Đã lập lịch hẹn cho %d trung tâm", len(sched.Centers)), true)

	assignment, err := o.assigner.Assign(ctx, c, sched)
	if err != nil {
		run.fail(err.Error())
		return run, nil
	}

	if !assignment.Success {
		run.fail(assignment.Error)
		return run, nil
	}

	run.append(fmt.Sprintf("✅ Đã tạo %d lệnh công việc", len(assignment.Orders)), true)

	tracking, err := o.tracker.Track(ctx, c, dist)
	if err != nil {
		run.fail(err.Error())
		return run, nil
	}

	if !tracking.Success {
		run.fail(tracking.Error)
		return run, nil
	}

	run.append(fmt.Sprintf("✅ Đã khởi tạo theo dõi %d xe", tracking.Overall.Pending), true)
	run.append("✅ Hoàn tất quy trình chiến dịch "+c.Code, true)
	run.Status = StatusSucceeded

	log.Info().Str("campaign", c.Code).Str("run", run.ID).Msg("campaign workflow completed")

	return run, tracking
}
