package stats

import (
	"sort"

	"github.com/verte-zerg/longcast/internal/model"
)

// RecentCast pairs a cast with context from its owning session.
type RecentCast struct {
	Cast      model.Cast
	Technique string
	Location  string
	SessionID int64
}

// Recent returns the latest n casts across all sessions, newest first.
func Recent(sessions []model.Session, n int) []RecentCast {
	if n <= 0 {
		return nil
	}
	all := []RecentCast{}
	for _, s := range sessions {
		for _, c := range s.Casts {
			all = append(all, RecentCast{
				Cast:      c,
				Technique: s.Technique,
				Location:  s.Location,
				SessionID: s.ID,
			})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[j].Cast.Timestamp.Before(all[i].Cast.Timestamp)
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
