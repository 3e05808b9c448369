package workflow

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

const (
	// workingHoursPerDay is the service window length of one working day.
	workingHoursPerDay = 8.0
	// dayStartHour is when the service window opens.
	dayStartHour = 8
)

// AppointmentSlot is one vehicle's proposed service slot.
type AppointmentSlot struct {
	VehicleID uint      `json:"vehicleId"`
	VIN       string    `json:"vin"`
	Start     time.Time `json:"start"`
}

// CenterSchedule is one center's proposed appointment window.
type CenterSchedule struct {
	CenterID   uint              `json:"centerId"`
	CenterCode string            `json:"centerCode"`
	DaysNeeded int               `json:"daysNeeded"`
	Slots      []AppointmentSlot `json:"slots"`
}

// Schedule is the schedule step output.
type Schedule struct {
	StepResult
	TimePerVehicle time.Duration    `json:"timePerVehicle"`
	Centers        []CenterSchedule `json:"centers"`
}

// ScheduleService is the gorm-backed Scheduler.
type ScheduleService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewScheduleService creates a new scheduling step service.
func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db, now: time.Now}
}

// TimePerVehicle is 1.5h for urgent recalls and 2h otherwise.
func TimePerVehicle(c *models.Campaign) time.Duration {
	if c.Kind == models.KindRecall && c.Urgent {
		return 90 * time.Minute
	}

	return 2 * time.Hour
}

// DaysNeeded computes ceil(vehicleCount * timePerVehicle / workingHoursPerDay).
func DaysNeeded(vehicleCount int, timePerVehicle time.Duration) int {
	if vehicleCount == 0 {
		return 0
	}

	return int(math.Ceil(float64(vehicleCount) * timePerVehicle.Hours() / workingHoursPerDay))
}

// Schedule computes a proposed appointment window per center from the
// distribution output. Slots are packed greedily into 8-hour days starting
// at 08:00, beginning the next day.
func (s *ScheduleService) Schedule(
	ctx context.Context,
	c *models.Campaign,
	dist *Distribution,
) (*Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tpv := TimePerVehicle(c)

	firstDay := s.now().AddDate(0, 0, 1)
	firstDay = time.Date(firstDay.Year(), firstDay.Month(), firstDay.Day(), dayStartHour, 0, 0, 0, firstDay.Location())

	out := &Schedule{
		StepResult:     StepResult{Success: true},
		TimePerVehicle: tpv,
		Centers:        make([]CenterSchedule, 0, len(dist.Entries)),
	}

	for _, entry := range dist.Entries {
		out.Centers = append(out.Centers, CenterSchedule{
			CenterID:   entry.CenterID,
			CenterCode: entry.CenterCode,
			DaysNeeded: DaysNeeded(len(entry.Vehicles), tpv),
			Slots:      packSlots(entry.Vehicles, firstDay, tpv),
		})
	}

	return out, nil
}

// packSlots packs vehicles sequentially into working days. A slot that
// would end after the 8-hour window rolls over to 08:00 the next day.
func packSlots(vehicles []models.CampaignVehicle, dayStart time.Time, tpv time.Duration) []AppointmentSlot {
	slots := make([]AppointmentSlot, 0, len(vehicles))
	dayEnd := dayStart.Add(workingHoursPerDay * time.Hour)
	cursor := dayStart

	for _, v := range vehicles {
		if cursor.Add(tpv).After(dayEnd) {
			dayStart = dayStart.AddDate(0, 0, 1)
			dayEnd = dayStart.Add(workingHoursPerDay * time.Hour)
			cursor = dayStart
		}

		slots = append(slots, AppointmentSlot{
			VehicleID: v.ID,
			VIN:       v.VIN,
			Start:     cursor,
		})

		cursor = cursor.Add(tpv)
	}

	return slots
}
