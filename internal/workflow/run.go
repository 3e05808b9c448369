package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// Status is the terminal state machine of a run:
//
//	not_started --start--> running --(all steps succeed)--> succeeded
//	running --(any step fails)--> failed
//
// There is no paused, cancel or resume state.
type Status string

const (
	// StatusNotStarted is the initial state of a run.
	StatusNotStarted Status = "not_started"
	// StatusRunning means steps are executing.
	StatusRunning Status = "running"
	// StatusSucceeded means every step completed.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means a step failed; later steps never ran.
	StatusFailed Status = "failed"
)

// LogEntry is one human-readable line of a run's progress log.
type LogEntry struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
}

// Run represents one orchestration attempt for one campaign. It is held in
// memory only and discarded when a new run starts.
type Run struct {
	ID           string              `json:"id"`
	CampaignCode string              `json:"campaignCode"`
	Kind         models.CampaignKind `json:"kind"`
	Status       Status              `json:"status"`
	Log          []LogEntry          `json:"log"`
}

// NewRun creates a run in not_started state.
func NewRun(campaignCode string, kind models.CampaignKind) *Run {
	return &Run{
		ID:           uuid.NewString(),
		CampaignCode: campaignCode,
		Kind:         kind,
		Status:       StatusNotStarted,
		Log:          make([]LogEntry, 0),
	}
}

// append adds one log entry.
func (r *Run) append(message string, success bool) {
	r.Log = append(r.Log, LogEntry{
		Message:   message,
		Timestamp: time.Now(),
		Success:   success,
	})
}

// fail records the failure entry and moves the run to failed.
func (r *Run) fail(message string) {
	r.append("❌ Lỗi trong quy trình: "+message, false)
	r.Status = StatusFailed
}
