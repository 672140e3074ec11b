package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/longcast/internal/model"
)

// Sort keys for session history listings.
const (
	SortDateDesc     = "date-desc"
	SortDateAsc      = "date-asc"
	SortDistanceDesc = "distance-desc"
	SortDistanceAsc  = "distance-asc"
)

// FilterOptions narrows a session history listing.
type FilterOptions struct {
	Technique string
	// Days keeps only sessions started within the last N days; 0 keeps all.
	Days int
	Now  time.Time
}

// Filter returns the sessions matching the options, preserving input order.
func Filter(sessions []model.Session, opts FilterOptions) []model.Session {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	cutoff := now.AddDate(0, 0, -opts.Days)
	out := make([]model.Session, 0, len(sessions))
	for _, s := range sessions {
		if opts.Technique != "" && s.Technique != opts.Technique {
			continue
		}
		if opts.Days > 0 && s.StartedAt.Before(cutoff) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Sort orders sessions by the given key. Unknown keys fall back to
// date-desc, matching the history view default.
func Sort(sessions []model.Session, key string) []model.Session {
	out := make([]model.Session, len(sessions))
	copy(out, sessions)
	var less func(i, j int) bool
	switch key {
	case SortDateAsc:
		less = func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) }
	case SortDistanceDesc:
		less = func(i, j int) bool { return sessionMean(out[i]) > sessionMean(out[j]) }
	case SortDistanceAsc:
		less = func(i, j int) bool { return sessionMean(out[i]) < sessionMean(out[j]) }
	default:
		less = func(i, j int) bool { return out[j].StartedAt.Before(out[i].StartedAt) }
	}
	sort.SliceStable(out, less)
	return out
}

func sessionMean(s model.Session) float64 {
	mean, _ := s.MeanDistance()
	return mean
}
