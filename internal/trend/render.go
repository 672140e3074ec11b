package trend

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultHeight       = 10
	minWidth            = 10
	axisSeparator       = " │ "
	terminalWidthBackup = 80
)

// Render paints the chart to w: gridline rows with right-aligned numeric
// labels, a connected polyline through all points drawn on a braille
// canvas, a marker at each point, and a final row of date labels.
func Render(w io.Writer, c Chart) error {
	if c.Empty {
		return nil
	}

	cells := makeCells(c.Height, c.Width)
	grid := makeCells(c.Height, c.Width)

	for _, g := range c.Grid {
		if g.Row < 0 || g.Row >= c.Height {
			continue
		}
		for x := 0; x < c.Width*2; x++ {
			// Sparse dots read as a faint reference line.
			if x%4 == 0 {
				setDot(grid, x, g.Row*4+1)
			}
		}
	}

	prevX, prevY := -1, -1
	for _, p := range c.Points {
		if prevX >= 0 {
			drawLine(prevX, prevY, p.X, p.Y, func(x, y int) {
				setDot(cells, x, y)
			})
		}
		prevX, prevY = p.X, p.Y
	}
	for _, p := range c.Points {
		setMarker(cells, p.X, p.Y)
	}

	axisWidth := 0
	for _, g := range c.Grid {
		if labelWidth := runewidth.StringWidth(g.Label); labelWidth > axisWidth {
			axisWidth = labelWidth
		}
	}
	rowLabels := make([]string, c.Height)
	for _, g := range c.Grid {
		if g.Row >= 0 && g.Row < c.Height {
			rowLabels[g.Row] = g.Label
		}
	}

	for y := 0; y < c.Height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", axisWidth, rowLabels[y], axisSeparator))
		for x := 0; x < c.Width; x++ {
			mask := cells[y][x]
			if mask == 0 {
				mask = grid[y][x]
			}
			row.WriteRune(brailleFromMask(mask))
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}

	labels := dateLabelRow(c, axisWidth)
	if _, err := fmt.Fprintln(w, labels); err != nil {
		return err
	}
	return nil
}

// WidthFor computes a chart width in cells that fits within the total
// terminal width, leaving room for the value axis.
func WidthFor(totalWidth, axisWidth int) int {
	if totalWidth <= 0 {
		return minWidth
	}
	width := totalWidth - axisWidth - runewidth.StringWidth(axisSeparator)
	if width < minWidth {
		width = minWidth
	}
	return width
}

// AutoSize picks chart dimensions from the terminal, falling back to a
// conservative default when size detection fails.
func AutoSize() (width, height int) {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		cols = terminalWidthBackup
	}
	// Longest plausible axis label: "123.4m".
	return WidthFor(cols, 6), defaultHeight
}

func dateLabelRow(c Chart, axisWidth int) string {
	var row strings.Builder
	row.WriteString(strings.Repeat(" ", axisWidth+runewidth.StringWidth(axisSeparator)))
	cursor := 0
	for _, p := range c.Points {
		if p.Label == "" {
			continue
		}
		col := p.X / 2
		if col < cursor {
			continue
		}
		row.WriteString(strings.Repeat(" ", col-cursor))
		row.WriteString(p.Label)
		cursor = col + runewidth.StringWidth(p.Label)
	}
	return row.String()
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

// setMarker plots a dense dot cluster so points stand out from the line.
func setMarker(cells [][]uint8, x, y int) {
	setDot(cells, x, y)
	setDot(cells, x+1, y)
	setDot(cells, x, y+1)
	setDot(cells, x+1, y+1)
}

func setDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) {
		return
	}
	if cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
