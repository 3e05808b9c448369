package workflow

import (
	"context"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// StepResult is the uniform step outcome. A step reports a domain-level
// failure through Success/Error; transport and database problems surface as
// a returned error. Either halts the run.
type StepResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Distribution methods.
const (
	MethodGeographic = "geographic"
	MethodCapacity   = "capacity"
	MethodEven       = "even"
)

// CenterAssignment is one center's share of a distribution.
type CenterAssignment struct {
	CenterID   uint                     `json:"centerId"`
	CenterCode string                   `json:"centerCode"`
	Vehicles   []models.CampaignVehicle `json:"vehicles"`
}

// Distribution is the distribute step output.
type Distribution struct {
	StepResult
	Method  string             `json:"method"`
	Entries []CenterAssignment `json:"entries"`
}

// TotalVehicles sums the vehicles over all centers.
func (d *Distribution) TotalVehicles() int {
	total := 0
	for _, e := range d.Entries {
		total += len(e.Vehicles)
	}

	return total
}

// Distributor assigns the campaign's vehicle set to candidate centers.
type Distributor interface {
	Distribute(ctx context.Context, campaign *models.Campaign, method string) (*Distribution, error)
}

// Scheduler computes proposed appointment windows from a distribution.
type Scheduler interface {
	Schedule(ctx context.Context, campaign *models.Campaign, dist *Distribution) (*Schedule, error)
}

// Assigner spreads scheduled vehicles over each center's technician pool.
type Assigner interface {
	Assign(ctx context.Context, campaign *models.Campaign, sched *Schedule) (*Assignment, error)
}

// Tracker initializes the per-center result records for completion reporting.
type Tracker interface {
	Track(ctx context.Context, campaign *models.Campaign, dist *Distribution) (*Tracking, error)
}
