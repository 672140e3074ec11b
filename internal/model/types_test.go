package model

import (
	"math"
	"testing"
	"time"
)

func TestSuggestionsAdd(t *testing.T) {
	s := Suggestions{}
	if !s.Add(SuggestTechnique, "  Pendulum ") {
		t.Fatalf("expected first add to change the index")
	}
	if s.Add(SuggestTechnique, "Pendulum") {
		t.Fatalf("expected duplicate to be skipped")
	}
	if s.Add(SuggestTechnique, "   ") {
		t.Fatalf("expected blank value to be skipped")
	}
	if !s.Add(SuggestTechnique, "OTG") {
		t.Fatalf("expected new value to be added")
	}
	got := s[SuggestTechnique]
	if len(got) != 2 || got[0] != "Pendulum" || got[1] != "OTG" {
		t.Fatalf("unexpected insertion order: %v", got)
	}
}

func TestMeanDistance(t *testing.T) {
	empty := Session{}
	if _, ok := empty.MeanDistance(); ok {
		t.Fatalf("expected no mean for a session without casts")
	}

	now := time.Now()
	recomputed := Session{Casts: []Cast{
		{Distance: 100, Timestamp: now},
		{Distance: 110, Timestamp: now},
	}}
	mean, ok := recomputed.MeanDistance()
	if !ok || math.Abs(mean-105) > 1e-9 {
		t.Fatalf("unexpected recomputed mean %v", mean)
	}

	cached := recomputed
	cached.Stats = &SessionSummary{Mean: 999}
	mean, ok = cached.MeanDistance()
	if !ok || mean != 999 {
		t.Fatalf("cached mean must win, got %v", mean)
	}
}
