package stats

import (
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/longcast/internal/model"
)

func sessionAt(t *testing.T, day int, distances ...float64) model.Session {
	t.Helper()
	start := time.Date(2024, 1, day, 10, 0, 0, 0, time.UTC)
	casts := make([]model.Cast, len(distances))
	for i, d := range distances {
		casts[i] = model.Cast{Distance: d, Timestamp: start.Add(time.Duration(i) * time.Minute)}
	}
	end := start.Add(time.Hour)
	return model.Session{
		ID:        start.UnixMilli(),
		StartedAt: start,
		EndedAt:   &end,
		Casts:     casts,
	}
}

func TestOverallEmpty(t *testing.T) {
	if _, ok := Overall(nil); ok {
		t.Fatalf("expected no stats for empty history")
	}
	// A session with zero casts contributes nothing.
	if _, ok := Overall([]model.Session{sessionAt(t, 1)}); ok {
		t.Fatalf("expected no stats when no casts exist")
	}
}

func TestOverallBounds(t *testing.T) {
	sessions := []model.Session{
		sessionAt(t, 1, 120.5, 131.2),
		sessionAt(t, 2),
		sessionAt(t, 3, 140.0),
	}
	overall, ok := Overall(sessions)
	if !ok {
		t.Fatalf("expected stats")
	}
	if overall.TotalCasts != 3 {
		t.Fatalf("expected 3 casts, got %d", overall.TotalCasts)
	}
	if overall.RecordDistance != 140.0 {
		t.Fatalf("expected record 140.0, got %v", overall.RecordDistance)
	}
	if overall.MeanDistance < 120.5 || overall.MeanDistance > 140.0 {
		t.Fatalf("mean %v outside [min, max]", overall.MeanDistance)
	}
}

func TestImprovementNeedsTwoQualifyingSessions(t *testing.T) {
	if Improvement(nil) != nil {
		t.Fatalf("expected nil for empty history")
	}
	single := []model.Session{sessionAt(t, 1, 100)}
	if Improvement(single) != nil {
		t.Fatalf("expected nil for single session")
	}
	// Zero-cast sessions are not eligible.
	padded := []model.Session{sessionAt(t, 1, 100), sessionAt(t, 2)}
	if Improvement(padded) != nil {
		t.Fatalf("expected nil when only one session has casts")
	}
}

func TestImprovementComparesLastTwo(t *testing.T) {
	sessions := []model.Session{
		sessionAt(t, 1, 20.0),
		sessionAt(t, 2, 22.0),
		sessionAt(t, 3, 25.0),
	}
	improvement := Improvement(sessions)
	if improvement == nil {
		t.Fatalf("expected a value")
	}
	if math.Abs(*improvement-13.636363) > 0.001 {
		t.Fatalf("expected ~13.64%%, got %v", *improvement)
	}
}

func TestImprovementSign(t *testing.T) {
	regressed := []model.Session{
		sessionAt(t, 1, 150),
		sessionAt(t, 2, 120),
	}
	improvement := Improvement(regressed)
	if improvement == nil || *improvement >= 0 {
		t.Fatalf("expected negative improvement, got %v", improvement)
	}
}

func TestImprovementPrefersCachedMean(t *testing.T) {
	first := sessionAt(t, 1, 100)
	second := sessionAt(t, 2, 100)
	second.Stats = &model.SessionSummary{Mean: 110, Max: 110, Min: 110}
	improvement := Improvement([]model.Session{first, second})
	if improvement == nil {
		t.Fatalf("expected a value")
	}
	if math.Abs(*improvement-10) > 1e-9 {
		t.Fatalf("expected cached mean to win, got %v", *improvement)
	}
}

func TestImprovementOrdersByStartTime(t *testing.T) {
	// History stored out of order: the chronologically last pair decides.
	sessions := []model.Session{
		sessionAt(t, 3, 25.0),
		sessionAt(t, 1, 20.0),
		sessionAt(t, 2, 22.0),
	}
	improvement := Improvement(sessions)
	if improvement == nil {
		t.Fatalf("expected a value")
	}
	if math.Abs(*improvement-13.636363) > 0.001 {
		t.Fatalf("expected ~13.64%%, got %v", *improvement)
	}
}
