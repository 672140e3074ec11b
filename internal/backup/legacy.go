package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/verte-zerg/longcast/internal/model"
)

// The legacy export predates session grouping: a flat cast list where each
// cast carries its own equipment, weather, and location fields, with the
// original Italian field names.
type legacyBackup struct {
	Casts   []legacyCast   `json:"casts"`
	Profile *legacyProfile `json:"profile"`
}

type legacyCast struct {
	Distanza        float64  `json:"distanza"`
	Data            string   `json:"data"`
	PesoPiombo      string   `json:"pesoPiombo"`
	Tecnica         string   `json:"tecnica"`
	CannaModello    string   `json:"cannaModello"`
	CannaLunghezza  *float64 `json:"cannaLunghezza"`
	CannaGrammatura string   `json:"cannaGrammatura"`
	Mulinello       string   `json:"mulinello"`
	Filo            string   `json:"filo"`
	Vento           string   `json:"vento"`
	DirezioneVento  string   `json:"direzioneVento"`
	Temperatura     *float64 `json:"temperatura"`
	Umidita         *int     `json:"umidita"`
	Luogo           string   `json:"luogo"`
	Note            string   `json:"note"`
}

type legacyProfile struct {
	Nome             string   `json:"nome"`
	Cognome          string   `json:"cognome"`
	Eta              int      `json:"eta"`
	Sesso            string   `json:"sesso"`
	Altezza          float64  `json:"altezza"`
	Peso             float64  `json:"peso"`
	Livello          string   `json:"livello"`
	Obiettivo        *float64 `json:"obiettivo"`
	CampoAllenamento string   `json:"campoAllenamento"`
}

var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// importLegacy groups flat casts by the calendar-day prefix of their
// timestamp string; each distinct day becomes one synthesized completed
// session whose metadata is copied from that day's first cast.
func importLegacy(raw []byte) (State, error) {
	var legacy legacyBackup
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	type dayGroup struct {
		first legacyCast
		casts []model.Cast
		start time.Time
		end   time.Time
	}
	groups := map[string]*dayGroup{}
	order := []string{}

	for _, lc := range legacy.Casts {
		ts, err := parseLegacyTime(lc.Data)
		if err != nil {
			return State{}, fmt.Errorf("%w: cast timestamp %q: %v", ErrMalformedImport, lc.Data, err)
		}
		day := lc.Data
		if len(day) >= 10 {
			day = day[:10]
		}
		group, ok := groups[day]
		if !ok {
			group = &dayGroup{first: lc, start: ts, end: ts}
			groups[day] = group
			order = append(order, day)
		}
		if ts.Before(group.start) {
			group.start = ts
		}
		if group.end.Before(ts) {
			group.end = ts
		}
		group.casts = append(group.casts, model.Cast{
			Distance:      lc.Distanza,
			Timestamp:     ts,
			Note:          lc.Note,
			Wind:          lc.Vento,
			WindDirection: lc.DirezioneVento,
			Temperature:   lc.Temperatura,
			Humidity:      lc.Umidita,
		})
	}

	sessions := make([]model.Session, 0, len(order))
	for _, day := range order {
		group := groups[day]
		endedAt := group.end
		session := model.Session{
			ID:            group.start.UnixMilli(),
			StartedAt:     group.start,
			EndedAt:       &endedAt,
			Location:      group.first.Luogo,
			Technique:     group.first.Tecnica,
			LeadWeight:    group.first.PesoPiombo,
			RodModel:      group.first.CannaModello,
			RodLength:     group.first.CannaLunghezza,
			RodRating:     group.first.CannaGrammatura,
			Reel:          group.first.Mulinello,
			Line:          group.first.Filo,
			Wind:          group.first.Vento,
			WindDirection: group.first.DirezioneVento,
			Temperature:   group.first.Temperatura,
			Humidity:      group.first.Umidita,
			Casts:         group.casts,
		}
		session.Stats = summarize(group.casts)
		sessions = append(sessions, session)
	}

	return State{
		Sessions:    sessions,
		Profile:     convertLegacyProfile(legacy.Profile),
		Suggestions: model.Suggestions{},
	}, nil
}

func parseLegacyTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range legacyTimeLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func convertLegacyProfile(p *legacyProfile) *model.Profile {
	if p == nil {
		return nil
	}
	return &model.Profile{
		Name:           p.Nome,
		Surname:        p.Cognome,
		Age:            p.Eta,
		Sex:            p.Sesso,
		HeightCm:       p.Altezza,
		WeightKg:       p.Peso,
		Level:          p.Livello,
		GoalDistance:   p.Obiettivo,
		TrainingGround: p.CampoAllenamento,
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
