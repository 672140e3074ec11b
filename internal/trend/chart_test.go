package trend

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/longcast/internal/model"
)

func chartSession(day int, distances ...float64) model.Session {
	start := time.Date(2024, 2, day, 9, 0, 0, 0, time.UTC)
	casts := make([]model.Cast, len(distances))
	for i, d := range distances {
		casts[i] = model.Cast{Distance: d, Timestamp: start}
	}
	end := start.Add(time.Hour)
	return model.Session{ID: start.UnixMilli(), StartedAt: start, EndedAt: &end, Casts: casts}
}

func TestBuildEmpty(t *testing.T) {
	chart := Build(nil, 40, 10)
	if !chart.Empty {
		t.Fatalf("expected empty chart for no sessions")
	}
	if len(chart.Points) != 0 {
		t.Fatalf("expected no points, got %d", len(chart.Points))
	}
}

func TestBuildSinglePoint(t *testing.T) {
	chart := Build([]model.Session{chartSession(1, 120)}, 40, 10)
	if chart.Empty {
		t.Fatalf("expected a drawable chart")
	}
	if len(chart.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(chart.Points))
	}
	p := chart.Points[0]
	if p.X != 0 {
		t.Fatalf("single point must sit at the left edge, got x=%d", p.X)
	}
	if p.Label == "" {
		t.Fatalf("single point must carry a date label")
	}
}

func TestBuildFlatSeries(t *testing.T) {
	sessions := []model.Session{
		chartSession(1, 100),
		chartSession(2, 100),
		chartSession(3, 100),
	}
	chart := Build(sessions, 40, 10)
	for _, p := range chart.Points {
		if p.Y < 0 || p.Y >= 10*4 {
			t.Fatalf("point y out of surface: %d", p.Y)
		}
	}
	// Flat series: the collapsed range is widened to one unit, so the top
	// gridline reads one unit above the bottom one.
	if chart.Grid[0].Label != "100.0m" {
		t.Fatalf("unexpected top gridline label %q", chart.Grid[0].Label)
	}
	if chart.Grid[len(chart.Grid)-1].Label != "99.0m" {
		t.Fatalf("unexpected bottom gridline label %q", chart.Grid[len(chart.Grid)-1].Label)
	}
}

func TestBuildOrdersAndScales(t *testing.T) {
	sessions := []model.Session{
		chartSession(3, 130),
		chartSession(1, 100),
		chartSession(2, 110),
	}
	chart := Build(sessions, 40, 10)
	if len(chart.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(chart.Points))
	}
	if !chart.Points[0].Date.Before(chart.Points[1].Date) || !chart.Points[1].Date.Before(chart.Points[2].Date) {
		t.Fatalf("points not in chronological order")
	}
	// Longer distance sits higher on the chart, which means a smaller y.
	if chart.Points[2].Y >= chart.Points[0].Y {
		t.Fatalf("expected inverted y axis: %d vs %d", chart.Points[2].Y, chart.Points[0].Y)
	}
	if chart.Points[0].X != 0 || chart.Points[2].X != 40*2-1 {
		t.Fatalf("expected first/last points at the edges: %d, %d", chart.Points[0].X, chart.Points[2].X)
	}
	if len(chart.Grid) != 6 {
		t.Fatalf("expected 6 gridlines, got %d", len(chart.Grid))
	}
	if chart.Grid[0].Label != "130.0m" || chart.Grid[5].Label != "100.0m" {
		t.Fatalf("unexpected gridline labels: %q, %q", chart.Grid[0].Label, chart.Grid[5].Label)
	}
}

func TestBuildZeroCastSessionIsFlatPoint(t *testing.T) {
	sessions := []model.Session{
		chartSession(1, 100),
		chartSession(2), // no casts, still occupies an x position
		chartSession(3, 120),
	}
	chart := Build(sessions, 40, 10)
	if len(chart.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(chart.Points))
	}
	if chart.Points[1].Value != 0 {
		t.Fatalf("zero-cast session must contribute a zero point, got %v", chart.Points[1].Value)
	}
	if chart.Points[1].Y != 10*4-1 {
		t.Fatalf("zero point must sit at the bottom, got y=%d", chart.Points[1].Y)
	}
}

func TestBuildGridRowsMatchPointRows(t *testing.T) {
	// 150..100 splits into 10m gridline steps; the middle session's mean
	// lands exactly on the second gridline value.
	sessions := []model.Session{
		chartSession(1, 150),
		chartSession(2, 140),
		chartSession(3, 100),
	}
	chart := Build(sessions, 40, 10)
	if chart.Grid[0].Label != "150.0m" || chart.Grid[1].Label != "140.0m" {
		t.Fatalf("unexpected gridline labels: %q, %q", chart.Grid[0].Label, chart.Grid[1].Label)
	}
	if got := chart.Points[1].Y / 4; got != chart.Grid[1].Row {
		t.Fatalf("gridline row %d must match the row of a point with its value, got %d", chart.Grid[1].Row, got)
	}
	if chart.Grid[0].Row != 0 {
		t.Fatalf("top gridline must sit on the first row, got %d", chart.Grid[0].Row)
	}
	if chart.Grid[len(chart.Grid)-1].Row != 9 {
		t.Fatalf("bottom gridline must sit on the last row, got %d", chart.Grid[len(chart.Grid)-1].Row)
	}
}

func TestBuildLabelDensity(t *testing.T) {
	sessions := make([]model.Session, 25)
	for i := range sessions {
		sessions[i] = chartSession(1, 100+float64(i))
		sessions[i].StartedAt = sessions[i].StartedAt.Add(time.Duration(i) * 24 * time.Hour)
	}
	chart := Build(sessions, 60, 10)
	// k = ceil(25/10) = 3: indices 0, 3, 6, ..., 24 plus the last point.
	labeled := 0
	for _, p := range chart.Points {
		if p.Label != "" {
			labeled++
		}
	}
	if labeled != 9 {
		t.Fatalf("expected 9 labeled points, got %d", labeled)
	}
	if chart.Points[0].Label == "" || chart.Points[len(chart.Points)-1].Label == "" {
		t.Fatalf("first and last points must be labeled")
	}
}

func TestRenderCompletes(t *testing.T) {
	sessions := []model.Session{
		chartSession(1, 100),
		chartSession(2, 115),
		chartSession(3, 108),
	}
	chart := Build(sessions, 30, 8)
	var buf bytes.Buffer
	if err := Render(&buf, chart); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Height rows plus the date label row.
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "115.0m") {
		t.Fatalf("expected top gridline label, got %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "01/02") {
		t.Fatalf("expected date label row, got %q", lines[len(lines)-1])
	}
}

func TestRenderSinglePointNoPanic(t *testing.T) {
	chart := Build([]model.Session{chartSession(1, 100)}, 30, 8)
	var buf bytes.Buffer
	if err := Render(&buf, chart); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output")
	}
}

func TestRenderEmptyWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Build(nil, 30, 8)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for an empty chart, got %q", buf.String())
	}
}

func TestWidthFor(t *testing.T) {
	if got := WidthFor(80, 6); got != 80-6-3 {
		t.Fatalf("unexpected width %d", got)
	}
	if got := WidthFor(0, 6); got != minWidth {
		t.Fatalf("expected min width %d, got %d", minWidth, got)
	}
	if got := WidthFor(12, 6); got != minWidth {
		t.Fatalf("expected min width %d, got %d", minWidth, got)
	}
}
