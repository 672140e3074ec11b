// Package backup serializes tracker data to a portable JSON snapshot and
// restores it, including migration from the legacy flat cast-list format.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/longcast/internal/model"
)

// Version tags the session-grouped snapshot schema.
const Version = "2.0"

// ErrMalformedImport is returned for unparseable or structurally invalid
// payloads. A failed import leaves existing state untouched.
var ErrMalformedImport = errors.New("malformed import payload")

// Backup is the exported snapshot. Round-trippable through Import.
type Backup struct {
	Sessions    []model.Session   `json:"sessions"`
	Profile     *model.Profile    `json:"profile,omitempty"`
	Suggestions model.Suggestions `json:"suggestions,omitempty"`
	ExportDate  string            `json:"exportDate"`
	Version     string            `json:"version"`
}

// State is the full data set an import replaces.
type State struct {
	Sessions    []model.Session
	Profile     *model.Profile
	Suggestions model.Suggestions
}

// Export builds a snapshot of the full data set.
func Export(state State, now time.Time) Backup {
	sessions := state.Sessions
	if sessions == nil {
		sessions = []model.Session{}
	}
	return Backup{
		Sessions:    sessions,
		Profile:     state.Profile,
		Suggestions: state.Suggestions,
		ExportDate:  now.UTC().Format(time.RFC3339),
		Version:     Version,
	}
}

// Marshal encodes a snapshot as indented UTF-8 JSON.
func Marshal(b Backup) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Filename returns the conventional export file name for a given date.
func Filename(now time.Time) string {
	return fmt.Sprintf("longcast-backup-%s.json", now.Format("2006-01-02"))
}

// Import decodes a snapshot in either the native session-grouped shape or
// the legacy flat cast-list shape. The returned state fully replaces the
// current one; merging is not supported.
func Import(raw []byte) (State, error) {
	var probe struct {
		Sessions *json.RawMessage `json:"sessions"`
		Casts    *json.RawMessage `json:"casts"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if probe.Casts != nil && probe.Sessions == nil {
		return importLegacy(raw)
	}
	if probe.Sessions == nil {
		return State{}, fmt.Errorf("%w: neither sessions nor casts present", ErrMalformedImport)
	}

	var b Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	sessions := b.Sessions
	if sessions == nil {
		sessions = []model.Session{}
	}
	suggestions := b.Suggestions
	if suggestions == nil {
		suggestions = model.Suggestions{}
	}
	return State{
		Sessions:    sessions,
		Profile:     b.Profile,
		Suggestions: suggestions,
	}, nil
}
