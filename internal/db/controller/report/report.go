// Package report provides CRUD operations for confirmation reports.
package report

import (
	"errors"

	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

var (
	// ErrReportNotFound is returned when a confirmation report is not found.
	ErrReportNotFound = errors.New("confirmation report not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a confirmation report by its ID.
func Get(db *gorm.DB, id uint) (*models.ConfirmationReport, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.ConfirmationReport
	result := db.First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, result.Error
	}

	return &r, nil
}

// Create stores a new confirmation report in pending state.
func Create(db *gorm.DB, campaignID, centerID uint, summary string) (*models.ConfirmationReport, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	r := &models.ConfirmationReport{
		CampaignID:      campaignID,
		ServiceCenterID: centerID,
		Status:          models.ReportPending,
		Summary:         summary,
	}

	result := db.Create(r)
	if result.Error != nil {
		return nil, result.Error
	}

	return r, nil
}

// Respond records the manufacturer's response on a pending report.
func Respond(db *gorm.DB, id uint, accepted bool, response string) (*models.ConfirmationReport, error) {
	r, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	r.Response = response
	if accepted {
		r.Status = models.ReportAccepted
	} else {
		r.Status = models.ReportRejected
	}

	if err := db.Save(r).Error; err != nil {
		return nil, err
	}

	return r, nil
}

// Revise replaces a rejected report's summary and bumps its revision.
func Revise(db *gorm.DB, id uint, summary string) (*models.ConfirmationReport, error) {
	r, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	r.Summary = summary
	r.Status = models.ReportRevised
	r.Revision++

	if err := db.Save(r).Error; err != nil {
		return nil, err
	}

	return r, nil
}

// Pending lists all reports still awaiting a manufacturer response.
func Pending(db *gorm.DB) ([]models.ConfirmationReport, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var reports []models.ConfirmationReport
	result := db.Where("status IN ?", []string{models.ReportPending, models.ReportRevised}).
		Order("created_at").
		Find(&reports)
	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

// Rejected lists reports awaiting revision by their centers.
func Rejected(db *gorm.DB) ([]models.ConfirmationReport, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var reports []models.ConfirmationReport
	result := db.Where("status = ?", models.ReportRejected).
		Order("created_at").
		Find(&reports)
	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

// Statistics aggregates report counts by status.
func Statistics(db *gorm.DB) (map[string]int64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	type row struct {
		Status string
		Count  int64
	}

	var rows []row

	result := db.Model(&models.ConfirmationReport{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	stats := make(map[string]int64, len(rows))
	for _, r := range rows {
		stats[r.Status] = r.Count
	}

	return stats, nil
}
