package workflow

import (
	"context"

	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// Progress holds the four status counters for one center (or the overall
// aggregate). The counters always sum to the tracked vehicle total and
// never go negative.
type Progress struct {
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Pending    int `json:"pending"`
	Failed     int `json:"failed"`
}

// Total sums the four counters.
func (p Progress) Total() int {
	return p.Completed + p.InProgress + p.Pending + p.Failed
}

// counter returns a pointer to the bucket for a status.
func (p *Progress) counter(status string) (*int, error) {
	switch status {
	case models.WorkOrderCompleted:
		return &p.Completed, nil
	case models.WorkOrderInProgress:
		return &p.InProgress, nil
	case models.WorkOrderPending:
		return &p.Pending, nil
	case models.WorkOrderFailed:
		return &p.Failed, nil
	default:
		return nil, ErrUnknownStatus
	}
}

// transition moves one vehicle between buckets, rejecting any decrement
// that would go negative.
func (p *Progress) transition(from, to string) error {
	src, err := p.counter(from)
	if err != nil {
		return err
	}

	dst, err := p.counter(to)
	if err != nil {
		return err
	}

	if *src == 0 {
		return ErrNegativeCounter
	}

	*src--
	*dst++

	return nil
}

// VehicleRecord is one tracked vehicle's result record.
type VehicleRecord struct {
	VehicleID uint           `json:"vehicleId"`
	VIN       string         `json:"vin"`
	Status    string         `json:"status"`
	Results   map[string]any `json:"results"`
}

// Tracking is the track step output: per-center result records plus the
// counter aggregates used for completion reporting.
type Tracking struct {
	StepResult
	Centers map[uint]*Progress       `json:"centers"`
	Records map[uint][]VehicleRecord `json:"records"`
	Overall Progress                 `json:"overall"`
}

// Transition moves a tracked vehicle of one center from status A to status
// B, updating the center's counters and the overall aggregate. The
// non-negative invariant holds under arbitrary transition sequences: an
// invalid move is rejected wholesale.
func (t *Tracking) Transition(centerID uint, from, to string) error {
	center, ok := t.Centers[centerID]
	if !ok {
		return ErrUnknownCenter
	}

	if err := center.transition(from, to); err != nil {
		return err
	}

	// the center accepted the move, the aggregate mirrors it
	return t.Overall.transition(from, to)
}

// TrackService is the gorm-backed Tracker.
type TrackService struct {
	db *gorm.DB
}

// NewTrackService creates a new tracking step service.
func NewTrackService(db *gorm.DB) *TrackService {
	return &TrackService{db: db}
}

// Track initializes a pending result record per distributed vehicle. The
// overall pending counter equals the distributed vehicle total immediately
// after initialization.
func (s *TrackService) Track(
	ctx context.Context,
	_ *models.Campaign,
	dist *Distribution,
) (*Tracking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &Tracking{
		StepResult: StepResult{Success: true},
		Centers:    make(map[uint]*Progress, len(dist.Entries)),
		Records:    make(map[uint][]VehicleRecord, len(dist.Entries)),
	}

	for _, entry := range dist.Entries {
		progress := &Progress{Pending: len(entry.Vehicles)}
		out.Centers[entry.CenterID] = progress
		out.Overall.Pending += len(entry.Vehicles)

		records := make([]VehicleRecord, 0, len(entry.Vehicles))
		for _, v := range entry.Vehicles {
			records = append(records, VehicleRecord{
				VehicleID: v.ID,
				VIN:       v.VIN,
				Status:    models.WorkOrderPending,
				Results:   map[string]any{},
			})
		}

		out.Records[entry.CenterID] = records
	}

	return out, nil
}
