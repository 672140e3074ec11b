// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// Cast is a single recorded throw.
type Cast struct {
	Distance  float64   `json:"distance"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`

	// Conditions captured at recording time; inherited from the owning
	// session unless overridden for this cast.
	Wind          string   `json:"wind,omitempty"`
	WindDirection string   `json:"windDirection,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	Humidity      *int     `json:"humidity,omitempty"`
}

// SessionSummary holds statistics cached when a session ends.
type SessionSummary struct {
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
}

// Session is one training outing. EndedAt is nil while the session is
// active; Stats is set exactly once, when the session ends with at least
// one cast.
type Session struct {
	ID        int64      `json:"id"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`

	Location   string `json:"location,omitempty"`
	Technique  string `json:"technique,omitempty"`
	LeadWeight string `json:"leadWeight,omitempty"`

	RodModel  string   `json:"rodModel,omitempty"`
	RodLength *float64 `json:"rodLength,omitempty"`
	RodRating string   `json:"rodRating,omitempty"`
	Reel      string   `json:"reel,omitempty"`
	Line      string   `json:"line,omitempty"`

	Wind          string   `json:"wind,omitempty"`
	WindDirection string   `json:"windDirection,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	Humidity      *int     `json:"humidity,omitempty"`

	Notes string `json:"notes,omitempty"`
	Casts []Cast `json:"casts"`

	Stats *SessionSummary `json:"stats,omitempty"`
}

// Active reports whether the session has not yet ended.
func (s Session) Active() bool {
	return s.EndedAt == nil
}

// MeanDistance returns the cached mean when present, otherwise recomputes
// it from the casts. ok is false for a session without casts.
func (s Session) MeanDistance() (float64, bool) {
	if s.Stats != nil {
		return s.Stats.Mean, true
	}
	if len(s.Casts) == 0 {
		return 0, false
	}
	var sum float64
	for _, c := range s.Casts {
		sum += c.Distance
	}
	return sum / float64(len(s.Casts)), true
}

// Profile is the singleton user record.
type Profile struct {
	Name           string   `json:"name,omitempty"`
	Surname        string   `json:"surname,omitempty"`
	Age            int      `json:"age,omitempty"`
	Sex            string   `json:"sex,omitempty"`
	HeightCm       float64  `json:"heightCm,omitempty"`
	WeightKg       float64  `json:"weightKg,omitempty"`
	Level          string   `json:"level,omitempty"`
	GoalDistance   *float64 `json:"goalDistance,omitempty"`
	TrainingGround string   `json:"trainingGround,omitempty"`
}

// Suggestion categories. Each maps to an insertion-ordered, deduplicated
// history of previously entered values.
const (
	SuggestTechnique     = "technique"
	SuggestLeadWeight    = "lead-weight"
	SuggestWind          = "wind"
	SuggestWindDirection = "wind-direction"
	SuggestRodModel      = "rod-model"
	SuggestLocation      = "location"
	SuggestRodRating     = "rod-rating"
	SuggestReel          = "reel"
	SuggestLine          = "line"
)

// Suggestions maps a field category to previously seen values.
type Suggestions map[string][]string

// Add appends a trimmed value to a category unless it is blank or already
// present. Reports whether the index changed.
func (s Suggestions) Add(category, value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	for _, existing := range s[category] {
		if existing == trimmed {
			return false
		}
	}
	s[category] = append(s[category], trimmed)
	return true
}

// SessionParams carries the field values collected when starting a session.
type SessionParams struct {
	StartedAt  time.Time
	Location   string
	Technique  string
	LeadWeight string

	RodModel  string
	RodLength *float64
	RodRating string
	Reel      string
	Line      string

	Wind          string
	WindDirection string
	Temperature   *float64
	Humidity      *int

	Notes string
}

// WeatherOverride carries updated conditions supplied while recording a
// cast. Nil pointers leave the session snapshot untouched.
type WeatherOverride struct {
	Wind          *string
	WindDirection *string
	Temperature   *float64
	Humidity      *int
}
