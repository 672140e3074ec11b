package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/longcast/internal/model"
)

func TestFilterByTechniqueAndPeriod(t *testing.T) {
	old := sessionAt(t, 1, 100)
	old.Technique = "Pendulum"
	recent := sessionAt(t, 20, 110)
	recent.Technique = "OTG"
	sessions := []model.Session{old, recent}

	now := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)

	byTechnique := Filter(sessions, FilterOptions{Technique: "Pendulum", Now: now})
	if len(byTechnique) != 1 || byTechnique[0].Technique != "Pendulum" {
		t.Fatalf("unexpected technique filter result: %+v", byTechnique)
	}

	byPeriod := Filter(sessions, FilterOptions{Days: 7, Now: now})
	if len(byPeriod) != 1 || byPeriod[0].Technique != "OTG" {
		t.Fatalf("unexpected period filter result: %+v", byPeriod)
	}

	all := Filter(sessions, FilterOptions{Now: now})
	if len(all) != 2 {
		t.Fatalf("expected no filtering by default, got %d", len(all))
	}
}

func TestSortKeys(t *testing.T) {
	short := sessionAt(t, 2, 100)
	long := sessionAt(t, 1, 150)
	sessions := []model.Session{short, long}

	byDateDesc := Sort(sessions, SortDateDesc)
	if !byDateDesc[0].StartedAt.After(byDateDesc[1].StartedAt) {
		t.Fatalf("date-desc: unexpected order")
	}
	byDateAsc := Sort(sessions, SortDateAsc)
	if !byDateAsc[0].StartedAt.Before(byDateAsc[1].StartedAt) {
		t.Fatalf("date-asc: unexpected order")
	}
	byDistDesc := Sort(sessions, SortDistanceDesc)
	if byDistDesc[0].Casts[0].Distance != 150 {
		t.Fatalf("distance-desc: unexpected order")
	}
	byDistAsc := Sort(sessions, SortDistanceAsc)
	if byDistAsc[0].Casts[0].Distance != 100 {
		t.Fatalf("distance-asc: unexpected order")
	}
	// Unknown keys fall back to date-desc.
	fallback := Sort(sessions, "bogus")
	if !fallback[0].StartedAt.After(fallback[1].StartedAt) {
		t.Fatalf("fallback: unexpected order")
	}
}

func TestRecentNewestFirst(t *testing.T) {
	sessions := []model.Session{
		sessionAt(t, 1, 100, 101, 102),
		sessionAt(t, 2, 110, 111),
	}
	recent := Recent(sessions, 3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 casts, got %d", len(recent))
	}
	if recent[0].Cast.Distance != 111 || recent[1].Cast.Distance != 110 || recent[2].Cast.Distance != 102 {
		t.Fatalf("unexpected order: %+v", recent)
	}
	if Recent(sessions, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}
