package services

import (
	"sort"
	"time"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

// Summarize aggregates per-document outcomes into a report. Pure
// function: inputs are not mutated, outcomes are copied and sorted by
// location so reports are deterministic regardless of traversal order.
func Summarize(runID string, started time.Time, outcomes []domain.ValidationOutcome, complete bool) *domain.Report {
	sorted := make([]domain.ValidationOutcome, len(outcomes))
	copy(sorted, outcomes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Location < sorted[j].Location
	})

	report := &domain.Report{
		RunID:     runID,
		StartedAt: started,
		Duration:  time.Since(started),
		Total:     len(sorted),
		Complete:  complete,
		Outcomes:  sorted,
	}
	for i := range sorted {
		if sorted[i].Valid {
			report.Valid++
		} else {
			report.Invalid++
		}
	}
	return report
}
