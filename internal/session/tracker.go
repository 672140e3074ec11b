// Package session manages the lifecycle of the active training session.
package session

import (
	"context"
	"math"
	"time"

	"github.com/verte-zerg/longcast/internal/model"
	"github.com/verte-zerg/longcast/internal/store"
)

// Tracker drives session state transitions against the store. At most one
// session is active at any time; the active session lives in scratch
// storage until it is ended and promoted into history.
type Tracker struct {
	store *store.Store
	now   func() time.Time
}

// New constructs a Tracker over the given store.
func New(st *store.Store) *Tracker {
	return &Tracker{store: st, now: time.Now}
}

// Active returns the in-progress session, or nil when none exists.
func (t *Tracker) Active(ctx context.Context) (*model.Session, error) {
	return t.store.LoadActiveSession(ctx)
}

// Start begins a new session. Fails with ErrSessionAlreadyActive when one
// is in progress. Newly seen free-text parameter values are appended to
// the suggestion index.
func (t *Tracker) Start(ctx context.Context, params model.SessionParams) (model.Session, error) {
	active, err := t.store.LoadActiveSession(ctx)
	if err != nil {
		return model.Session{}, err
	}
	if active != nil {
		return model.Session{}, ErrSessionAlreadyActive
	}

	startedAt := params.StartedAt
	if startedAt.IsZero() {
		startedAt = t.now()
	}
	session := model.Session{
		ID:            startedAt.UnixMilli(),
		StartedAt:     startedAt,
		Location:      params.Location,
		Technique:     params.Technique,
		LeadWeight:    params.LeadWeight,
		RodModel:      params.RodModel,
		RodLength:     params.RodLength,
		RodRating:     params.RodRating,
		Reel:          params.Reel,
		Line:          params.Line,
		Wind:          params.Wind,
		WindDirection: params.WindDirection,
		Temperature:   params.Temperature,
		Humidity:      params.Humidity,
		Notes:         params.Notes,
		Casts:         []model.Cast{},
	}

	if err := t.recordSuggestions(ctx, map[string]string{
		model.SuggestTechnique:     params.Technique,
		model.SuggestLeadWeight:    params.LeadWeight,
		model.SuggestRodModel:      params.RodModel,
		model.SuggestWind:          params.Wind,
		model.SuggestWindDirection: params.WindDirection,
		model.SuggestLocation:      params.Location,
		model.SuggestRodRating:     params.RodRating,
		model.SuggestReel:          params.Reel,
		model.SuggestLine:          params.Line,
	}); err != nil {
		return model.Session{}, err
	}

	if err := t.store.SaveActiveSession(ctx, session); err != nil {
		return model.Session{}, err
	}
	return session, nil
}

// RecordCast appends a throw to the active session. Weather overrides
// replace the session snapshot so later casts inherit the updated
// conditions.
func (t *Tracker) RecordCast(ctx context.Context, distance float64, note string, override model.WeatherOverride) (model.Cast, error) {
	active, err := t.store.LoadActiveSession(ctx)
	if err != nil {
		return model.Cast{}, err
	}
	if active == nil {
		return model.Cast{}, ErrNoActiveSession
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance <= 0 {
		return model.Cast{}, ErrInvalidCastInput
	}

	applyOverride(active, override)
	if err := t.recordSuggestions(ctx, map[string]string{
		model.SuggestWind:          active.Wind,
		model.SuggestWindDirection: active.WindDirection,
	}); err != nil {
		return model.Cast{}, err
	}

	cast := model.Cast{
		Distance:      distance,
		Timestamp:     t.now(),
		Note:          note,
		Wind:          active.Wind,
		WindDirection: active.WindDirection,
		Temperature:   active.Temperature,
		Humidity:      active.Humidity,
	}
	active.Casts = append(active.Casts, cast)

	if err := t.store.SaveActiveSession(ctx, *active); err != nil {
		return model.Cast{}, err
	}
	return cast, nil
}

// DeleteCast removes the cast at index from the active session, keeping
// the order of the remaining casts.
func (t *Tracker) DeleteCast(ctx context.Context, index int) error {
	active, err := t.store.LoadActiveSession(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return ErrNoActiveSession
	}
	if index < 0 || index >= len(active.Casts) {
		return ErrIndexOutOfRange
	}
	active.Casts = append(active.Casts[:index], active.Casts[index+1:]...)
	return t.store.SaveActiveSession(ctx, *active)
}

// End finalizes the active session: stamps the end time, caches summary
// statistics, moves the session into history, and clears scratch storage.
// An empty session is only ended when force is set; obtaining that
// confirmation is the caller's job.
func (t *Tracker) End(ctx context.Context, force bool) (model.Session, error) {
	active, err := t.store.LoadActiveSession(ctx)
	if err != nil {
		return model.Session{}, err
	}
	if active == nil {
		return model.Session{}, ErrNoActiveSession
	}
	if len(active.Casts) == 0 && !force {
		return model.Session{}, ErrEmptySession
	}

	endedAt := t.now()
	active.EndedAt = &endedAt
	active.Stats = summarize(active.Casts)

	sessions, err := t.store.LoadSessions(ctx)
	if err != nil {
		return model.Session{}, err
	}
	sessions = append(sessions, *active)
	if err := t.store.SaveSessions(ctx, sessions); err != nil {
		return model.Session{}, err
	}
	if err := t.store.ClearActiveSession(ctx); err != nil {
		return model.Session{}, err
	}
	return *active, nil
}

// Abandon discards the active session without saving it to history. The
// recorded casts are lost; history and suggestions are untouched.
func (t *Tracker) Abandon(ctx context.Context) error {
	active, err := t.store.LoadActiveSession(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return ErrNoActiveSession
	}
	return t.store.ClearActiveSession(ctx)
}

// DeleteSession removes a completed session from history by identity.
func (t *Tracker) DeleteSession(ctx context.Context, id int64) error {
	sessions, err := t.store.LoadSessions(ctx)
	if err != nil {
		return err
	}
	for i, s := range sessions {
		if s.ID == id {
			sessions = append(sessions[:i], sessions[i+1:]...)
			return t.store.SaveSessions(ctx, sessions)
		}
	}
	return ErrSessionNotFound
}

func (t *Tracker) recordSuggestions(ctx context.Context, values map[string]string) error {
	suggestions, err := t.store.LoadSuggestions(ctx)
	if err != nil {
		return err
	}
	changed := false
	for category, value := range values {
		if suggestions.Add(category, value) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return t.store.SaveSuggestions(ctx, suggestions)
}

func applyOverride(s *model.Session, o model.WeatherOverride) {
	if o.Wind != nil {
		s.Wind = *o.Wind
	}
	if o.WindDirection != nil {
		s.WindDirection = *o.WindDirection
	}
	if o.Temperature != nil {
		s.Temperature = o.Temperature
	}
	if o.Humidity != nil {
		s.Humidity = o.Humidity
	}
}

func summarize(casts []model.Cast) *model.SessionSummary {
	if len(casts) == 0 {
		return nil
	}
	summary := model.SessionSummary{
		Max: casts[0].Distance,
		Min: casts[0].Distance,
	}
	var sum float64
	for _, c := range casts {
		sum += c.Distance
		if c.Distance > summary.Max {
			summary.Max = c.Distance
		}
		if c.Distance < summary.Min {
			summary.Min = c.Distance
		}
	}
	summary.Mean = sum / float64(len(casts))
	return &summary
}
