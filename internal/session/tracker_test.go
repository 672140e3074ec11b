package session

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/longcast/internal/model"
	"github.com/verte-zerg/longcast/internal/store"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "longcast.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	tracker := New(st)
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	step := 0
	tracker.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}
	return tracker
}

func TestStartWhileActiveFails(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	if _, err := tracker.Start(ctx, model.SessionParams{Technique: "Pendulum"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := tracker.RecordCast(ctx, 150, "", model.WeatherOverride{}); err != nil {
		t.Fatalf("record cast: %v", err)
	}

	_, err := tracker.Start(ctx, model.SessionParams{Technique: "OTG"})
	if !errors.Is(err, ErrSessionAlreadyActive) {
		t.Fatalf("expected ErrSessionAlreadyActive, got %v", err)
	}

	active, err := tracker.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active == nil || len(active.Casts) != 1 {
		t.Fatalf("expected active session with 1 cast, got %+v", active)
	}
	if active.Technique != "Pendulum" {
		t.Fatalf("failed start must not replace the active session, got %q", active.Technique)
	}
}

func TestRecordCastValidatesDistance(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	if _, err := tracker.RecordCast(ctx, 100, "", model.WeatherOverride{}); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}

	if _, err := tracker.Start(ctx, model.SessionParams{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, distance := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		if _, err := tracker.RecordCast(ctx, distance, "", model.WeatherOverride{}); !errors.Is(err, ErrInvalidCastInput) {
			t.Fatalf("distance %v: expected ErrInvalidCastInput, got %v", distance, err)
		}
	}
}

func TestWeatherOverrideUpdatesSnapshot(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	if _, err := tracker.Start(ctx, model.SessionParams{Wind: "calm"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	wind := "gusty 20km/h"
	if _, err := tracker.RecordCast(ctx, 120, "", model.WeatherOverride{Wind: &wind}); err != nil {
		t.Fatalf("record cast: %v", err)
	}
	// Later casts inherit the updated snapshot without repeating the override.
	cast, err := tracker.RecordCast(ctx, 125, "", model.WeatherOverride{})
	if err != nil {
		t.Fatalf("record cast: %v", err)
	}
	if cast.Wind != "gusty 20km/h" {
		t.Fatalf("expected inherited wind override, got %q", cast.Wind)
	}
	active, err := tracker.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.Wind != "gusty 20km/h" {
		t.Fatalf("expected session snapshot updated, got %q", active.Wind)
	}
}

func TestDeleteCastKeepsOrder(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	if _, err := tracker.Start(ctx, model.SessionParams{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, distance := range []float64{100, 110, 120} {
		if _, err := tracker.RecordCast(ctx, distance, "", model.WeatherOverride{}); err != nil {
			t.Fatalf("record cast: %v", err)
		}
	}
	if err := tracker.DeleteCast(ctx, 1); err != nil {
		t.Fatalf("delete cast: %v", err)
	}
	active, err := tracker.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active.Casts) != 2 {
		t.Fatalf("expected 2 casts, got %d", len(active.Casts))
	}
	if active.Casts[0].Distance != 100 || active.Casts[1].Distance != 120 {
		t.Fatalf("unexpected cast order: %+v", active.Casts)
	}
	if err := tracker.DeleteCast(ctx, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestEndCachesSummary(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	if _, err := tracker.Start(ctx, model.SessionParams{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, distance := range []float64{18.2, 21.5, 19.9} {
		if _, err := tracker.RecordCast(ctx, distance, "", model.WeatherOverride{}); err != nil {
			t.Fatalf("record cast: %v", err)
		}
	}
	ended, err := tracker.End(ctx, false)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if ended.EndedAt == nil {
		t.Fatalf("expected end timestamp")
	}
	if ended.Stats == nil {
		t.Fatalf("expected cached stats")
	}
	if math.Abs(ended.Stats.Mean-19.866666) > 0.001 {
		t.Fatalf("unexpected mean %v", ended.Stats.Mean)
	}
	if ended.Stats.Max != 21.5 || ended.Stats.Min != 18.2 {
		t.Fatalf("unexpected max/min: %+v", ended.Stats)
	}

	active, err := tracker.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active != nil {
		t.Fatalf("expected active session cleared after end")
	}
}

func TestEndEmptyRequiresForce(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	if _, err := tracker.End(ctx, false); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}

	if _, err := tracker.Start(ctx, model.SessionParams{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := tracker.End(ctx, false); !errors.Is(err, ErrEmptySession) {
		t.Fatalf("expected ErrEmptySession, got %v", err)
	}
	ended, err := tracker.End(ctx, true)
	if err != nil {
		t.Fatalf("forced end: %v", err)
	}
	if ended.Stats != nil {
		t.Fatalf("empty session must not cache stats, got %+v", ended.Stats)
	}
}

func TestAbandonDiscardsActiveSession(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	if err := tracker.Abandon(ctx); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}

	started, err := tracker.Start(ctx, model.SessionParams{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := tracker.RecordCast(ctx, 130, "", model.WeatherOverride{}); err != nil {
		t.Fatalf("record cast: %v", err)
	}
	if err := tracker.Abandon(ctx); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	active, err := tracker.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active session after abandon")
	}

	// Unlike End, nothing is promoted into history.
	sessions, err := tracker.store.LoadSessions(ctx)
	if err != nil {
		t.Fatalf("load sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("abandon must not write to history, got %d sessions", len(sessions))
	}

	replaced, err := tracker.Start(ctx, model.SessionParams{})
	if err != nil {
		t.Fatalf("restart after abandon: %v", err)
	}
	if replaced.ID == started.ID {
		t.Fatalf("expected a fresh session id after abandon")
	}
}

func TestDeleteSession(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 2; i++ {
		started, err := tracker.Start(ctx, model.SessionParams{})
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		ids = append(ids, started.ID)
		if _, err := tracker.RecordCast(ctx, 100+float64(i), "", model.WeatherOverride{}); err != nil {
			t.Fatalf("record cast: %v", err)
		}
		if _, err := tracker.End(ctx, false); err != nil {
			t.Fatalf("end: %v", err)
		}
	}

	if err := tracker.DeleteSession(ctx, ids[0]); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if err := tracker.DeleteSession(ctx, ids[0]); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStartRecordsSuggestions(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "longcast.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	tracker := New(st)
	ctx := context.Background()

	if _, err := tracker.Start(ctx, model.SessionParams{
		Technique:  "  Pendulum ",
		LeadWeight: "150g",
		Location:   "North pier",
	}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := tracker.End(ctx, true); err != nil {
		t.Fatalf("end: %v", err)
	}
	// Same values again must not duplicate.
	if _, err := tracker.Start(ctx, model.SessionParams{
		Technique:  "Pendulum",
		LeadWeight: "150g",
	}); err != nil {
		t.Fatalf("second start: %v", err)
	}

	suggestions, err := st.LoadSuggestions(ctx)
	if err != nil {
		t.Fatalf("load suggestions: %v", err)
	}
	if got := suggestions[model.SuggestTechnique]; len(got) != 1 || got[0] != "Pendulum" {
		t.Fatalf("unexpected technique suggestions: %v", got)
	}
	if got := suggestions[model.SuggestLeadWeight]; len(got) != 1 || got[0] != "150g" {
		t.Fatalf("unexpected lead weight suggestions: %v", got)
	}
	if got := suggestions[model.SuggestLocation]; len(got) != 1 || got[0] != "North pier" {
		t.Fatalf("unexpected location suggestions: %v", got)
	}
}
