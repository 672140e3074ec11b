// Package trend projects session history onto a 2D line chart.
package trend

import (
	"fmt"
	"math"
	"time"

	"github.com/verte-zerg/longcast/internal/model"
	"github.com/verte-zerg/longcast/internal/stats"
)

const gridIntervals = 5

// Point is one session placed on the drawing surface. X and Y are dot
// coordinates (the renderer draws at twice the horizontal and four times
// the vertical cell resolution); Y grows downward, so a longer distance
// ends up higher on the chart.
type Point struct {
	X     int
	Y     int
	Value float64
	Date  time.Time
	// Label is the x-axis date label, empty for unlabeled points.
	Label string
}

// GridLine is a horizontal reference line with its numeric label.
type GridLine struct {
	Row   int
	Label string
}

// Chart is a drawable point/line/label set. Empty is set when there are
// no sessions; the caller shows a placeholder instead of the surface.
type Chart struct {
	Width  int
	Height int
	Points []Point
	Grid   []GridLine
	Empty  bool
}

// Build projects the session history onto a surface of width x height
// cells. Sessions are ordered by start time ascending; each contributes
// its cached mean when present, a recomputed mean otherwise, or a flat
// zero point when it has no casts. Recomputed from scratch on every
// refresh; there is no incremental state.
func Build(sessions []model.Session, width, height int) Chart {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if len(sessions) == 0 {
		return Chart{Width: width, Height: height, Empty: true}
	}

	ordered := stats.SortByStart(sessions)
	values := make([]float64, len(ordered))
	for i, s := range ordered {
		mean, _ := s.MeanDistance()
		values[i] = mean
	}

	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	valueRange := maxVal - minVal
	if valueRange == 0 {
		// Flat series or single point: pretend the range is one unit so
		// vertical scaling never divides by zero.
		valueRange = 1
	}

	dotsW := width * 2
	dotsH := height * 4
	labelEvery := int(math.Ceil(float64(len(ordered)) / 10))

	points := make([]Point, len(ordered))
	for i, s := range ordered {
		x := 0
		if len(ordered) > 1 {
			x = i * (dotsW - 1) / (len(ordered) - 1)
		}
		y := int(math.Round((maxVal - values[i]) / valueRange * float64(dotsH-1)))
		label := ""
		if i == 0 || i == len(ordered)-1 || i%labelEvery == 0 {
			label = s.StartedAt.Format("02/01")
		}
		points[i] = Point{
			X:     x,
			Y:     y,
			Value: values[i],
			Date:  s.StartedAt,
			Label: label,
		}
	}

	grid := make([]GridLine, 0, gridIntervals+1)
	for i := 0; i <= gridIntervals; i++ {
		// Same dot-space mapping as the points, so a gridline's label sits
		// on the row a point with that value would occupy.
		row := int(math.Round(float64(i)/gridIntervals*float64(dotsH-1))) / 4
		value := maxVal - valueRange/gridIntervals*float64(i)
		grid = append(grid, GridLine{
			Row:   row,
			Label: fmt.Sprintf("%.1fm", value),
		})
	}

	return Chart{
		Width:  width,
		Height: height,
		Points: points,
		Grid:   grid,
	}
}
