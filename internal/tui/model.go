// Package tui provides the Bubble Tea interface for an active session.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/longcast/internal/model"
	"github.com/verte-zerg/longcast/internal/session"
)

const (
	focusDistance = iota
	focusNote
	focusWind
	focusWindDirection
	focusTemperature
	focusHumidity
	focusCount
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	castStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	panelStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the Bubble Tea active-session UI.
type Model struct {
	tracker *session.Tracker
	active  *model.Session

	inputs []textinput.Model
	focus  int

	confirmEnd bool
	errMsg     string
	statusMsg  string
	ended      bool

	width  int
	height int
}

// NewModel constructs an active-session model. The session must already
// have been started.
func NewModel(tracker *session.Tracker, active *model.Session) *Model {
	m := &Model{
		tracker: tracker,
		active:  active,
	}
	m.initInputs()
	return m
}

func (m *Model) initInputs() {
	prompts := []string{"Distance (m): ", "Note: ", "Wind: ", "Wind dir: ", "Temp (°C): ", "Humidity (%): "}
	m.inputs = make([]textinput.Model, focusCount)
	for i, prompt := range prompts {
		input := textinput.New()
		input.Prompt = prompt
		input.CharLimit = 0
		input.Cursor.SetMode(cursor.CursorBlink)
		m.inputs[i] = input
	}
	m.inputs[focusWind].SetValue(m.active.Wind)
	m.inputs[focusWindDirection].SetValue(m.active.WindDirection)
	if m.active.Temperature != nil {
		m.inputs[focusTemperature].SetValue(strconv.FormatFloat(*m.active.Temperature, 'f', -1, 64))
	}
	if m.active.Humidity != nil {
		m.inputs[focusHumidity].SetValue(strconv.Itoa(*m.active.Humidity))
	}
	m.inputs[focusDistance].Focus()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.confirmEnd {
			return m.updateConfirm(msg)
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			// Leave the session active; it survives in scratch storage.
			return m, tea.Quit
		case tea.KeyTab:
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case tea.KeyShiftTab:
			m.setFocus((m.focus + focusCount - 1) % focusCount)
			return m, nil
		case tea.KeyEnter:
			m.recordCast()
			return m, nil
		case tea.KeyCtrlD:
			m.deleteLastCast()
			return m, nil
		case tea.KeyCtrlE:
			m.confirmEnd = true
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		ended, err := m.tracker.End(context.Background(), true)
		if err != nil {
			m.errMsg = err.Error()
			m.confirmEnd = false
			return m, nil
		}
		m.ended = true
		m.active = &ended
		return m, tea.Quit
	case "n", "N", "esc":
		m.confirmEnd = false
		return m, nil
	}
	return m, nil
}

func (m *Model) setFocus(focus int) {
	m.inputs[m.focus].Blur()
	m.focus = focus
	m.inputs[m.focus].Focus()
}

func (m *Model) recordCast() {
	distanceText := strings.TrimSpace(m.inputs[focusDistance].Value())
	distance, err := strconv.ParseFloat(distanceText, 64)
	if err != nil {
		m.errMsg = "distance must be a number"
		return
	}

	override := model.WeatherOverride{}
	wind := strings.TrimSpace(m.inputs[focusWind].Value())
	if wind != m.active.Wind {
		override.Wind = &wind
	}
	windDir := strings.TrimSpace(m.inputs[focusWindDirection].Value())
	if windDir != m.active.WindDirection {
		override.WindDirection = &windDir
	}
	if text := strings.TrimSpace(m.inputs[focusTemperature].Value()); text != "" {
		if temp, err := strconv.ParseFloat(text, 64); err == nil {
			override.Temperature = &temp
		}
	}
	if text := strings.TrimSpace(m.inputs[focusHumidity].Value()); text != "" {
		if humidity, err := strconv.Atoi(text); err == nil {
			override.Humidity = &humidity
		}
	}

	cast, err := m.tracker.RecordCast(context.Background(), distance, strings.TrimSpace(m.inputs[focusNote].Value()), override)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.statusMsg = fmt.Sprintf("recorded %.1fm", cast.Distance)
	m.reloadActive()
	m.inputs[focusDistance].SetValue("")
	m.inputs[focusNote].SetValue("")
	m.setFocus(focusDistance)
}

func (m *Model) deleteLastCast() {
	if len(m.active.Casts) == 0 {
		m.errMsg = "no casts to delete"
		return
	}
	if err := m.tracker.DeleteCast(context.Background(), len(m.active.Casts)-1); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.statusMsg = "deleted last cast"
	m.reloadActive()
}

func (m *Model) reloadActive() {
	active, err := m.tracker.Active(context.Background())
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if active != nil {
		m.active = active
	}
}

// Ended reports whether the session was finalized before the UI quit.
func (m *Model) Ended() bool {
	return m.ended
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.confirmEnd {
		return m.viewConfirm()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Active session"))
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.renderCasts()))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.statusMsg != "" {
		b.WriteString(accentStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("enter record · tab next field · ctrl+d delete last · ctrl+e end session · esc leave"))
	return b.String()
}

func (m *Model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("End session?"))
	b.WriteString("\n\n")
	if len(m.active.Casts) == 0 {
		b.WriteString(errorStyle.Render("This session has no casts."))
		b.WriteString("\n")
	}
	b.WriteString(valueStyle.Render(fmt.Sprintf("Casts recorded: %d", len(m.active.Casts))))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("All casts will be saved to history."))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("y end · n keep going"))
	return b.String()
}

func (m *Model) renderHeader() string {
	parts := []string{
		labelStyle.Render("Started ") + valueStyle.Render(m.active.StartedAt.Format("15:04")),
		labelStyle.Render("Casts ") + valueStyle.Render(strconv.Itoa(len(m.active.Casts))),
	}
	if m.active.Location != "" {
		parts = append(parts, labelStyle.Render("At ")+valueStyle.Render(m.active.Location))
	}
	if m.active.Technique != "" {
		parts = append(parts, labelStyle.Render("Technique ")+valueStyle.Render(m.active.Technique))
	}
	if m.active.LeadWeight != "" {
		parts = append(parts, labelStyle.Render("Lead ")+valueStyle.Render(m.active.LeadWeight))
	}
	return strings.Join(parts, labelStyle.Render("  ·  "))
}

func (m *Model) renderCasts() string {
	if len(m.active.Casts) == 0 {
		return labelStyle.Render("No casts recorded yet in this session")
	}
	lines := make([]string, 0, len(m.active.Casts))
	for i, c := range m.active.Casts {
		line := fmt.Sprintf("#%d  %s  %s", i+1,
			accentStyle.Render(fmt.Sprintf("%5.1fm", c.Distance)),
			castStyle.Render(c.Timestamp.Format("15:04:05")))
		if c.Note != "" {
			line += "  " + castStyle.Render(c.Note)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
