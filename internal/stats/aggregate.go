// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/longcast/internal/model"
)

// OverallStats summarizes every cast across the full session history.
type OverallStats struct {
	MeanDistance   float64
	RecordDistance float64
	TotalCasts     int
}

// Overall flattens all casts across all sessions. ok is false when no
// casts exist anywhere; callers render a placeholder instead of zeros.
func Overall(sessions []model.Session) (OverallStats, bool) {
	var out OverallStats
	var sum float64
	for _, s := range sessions {
		for _, c := range s.Casts {
			if out.TotalCasts == 0 || c.Distance > out.RecordDistance {
				out.RecordDistance = c.Distance
			}
			sum += c.Distance
			out.TotalCasts++
		}
	}
	if out.TotalCasts == 0 {
		return OverallStats{}, false
	}
	out.MeanDistance = sum / float64(out.TotalCasts)
	return out, true
}

// Improvement compares the two most recent sessions that contain at least
// one cast, in chronological order, and returns the percentage change of
// the last session's average over the previous one. Returns nil when
// fewer than two sessions qualify. Cast distances are validated positive
// at entry, so the previous average is never zero here.
func Improvement(sessions []model.Session) *float64 {
	ordered := SortByStart(sessions)
	eligible := ordered[:0:0]
	for _, s := range ordered {
		if len(s.Casts) > 0 {
			eligible = append(eligible, s)
		}
	}
	if len(eligible) < 2 {
		return nil
	}
	lastAvg, _ := eligible[len(eligible)-1].MeanDistance()
	prevAvg, _ := eligible[len(eligible)-2].MeanDistance()
	value := (lastAvg - prevAvg) / prevAvg * 100
	return &value
}

// SortByStart returns the sessions ordered by start time ascending. The
// sort is stable so ties keep their stored order.
func SortByStart(sessions []model.Session) []model.Session {
	ordered := make([]model.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartedAt.Before(ordered[j].StartedAt)
	})
	return ordered
}
