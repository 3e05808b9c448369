package workflow

import (
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// QualitySummary is the post-hoc quality derivation over a campaign's work
// orders; it is computed from stored results, not during a live run.
type QualitySummary struct {
	// SuccessRate is completed work orders divided by the total.
	SuccessRate float64 `json:"successRate"`
	// ReworkRate is rework-flagged completions divided by completions.
	ReworkRate float64 `json:"reworkRate"`
	// Satisfaction is the mean 1-5 rating across completed vehicles with feedback.
	Satisfaction float64 `json:"satisfaction"`
	// Total is the number of work orders considered.
	Total int `json:"total"`
}

// Summarize derives the quality figures from work orders.
func Summarize(orders []models.WorkOrder) QualitySummary {
	out := QualitySummary{Total: len(orders)}
	if len(orders) == 0 {
		return out
	}

	var (
		completed   int
		rework      int
		ratingSum   int
		ratingCount int
	)

	for _, o := range orders {
		if o.Status != models.WorkOrderCompleted {
			continue
		}

		completed++

		if o.Rework {
			rework++
		}

		if o.Rating > 0 {
			ratingSum += o.Rating
			ratingCount++
		}
	}

	out.SuccessRate = float64(completed) / float64(len(orders))

	if completed > 0 {
		out.ReworkRate = float64(rework) / float64(completed)
	}

	if ratingCount > 0 {
		out.Satisfaction = float64(ratingSum) / float64(ratingCount)
	}

	return out
}
