// Package dashui provides the Bubble Tea dashboard interface.
package dashui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/longcast/internal/model"
	"github.com/verte-zerg/longcast/internal/session"
	"github.com/verte-zerg/longcast/internal/stats"
	"github.com/verte-zerg/longcast/internal/store"
	"github.com/verte-zerg/longcast/internal/trend"
)

const (
	tabOverview = iota
	tabTrend
	tabHistory
)

const (
	chartHeight = 10
	recentCasts = 5
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Filters holds the history tab's listing options.
type Filters struct {
	Technique string
	Days      int
	SortKey   string
}

// Model implements the Bubble Tea dashboard UI.
type Model struct {
	store   *store.Store
	tracker *session.Tracker

	sessions []model.Session
	filters  Filters
	errMsg   string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	histTable table.Model
	histRows  []model.Session

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	confirmDelete bool
	deleteID      int64

	width  int
	height int
}

// NewModel constructs a dashboard model.
func NewModel(st *store.Store, filters Filters) *Model {
	m := &Model{
		store:   st,
		tracker: session.New(st),
		filters: filters,
		tabs:    []string{"Overview", "Trend", "History"},
	}
	if m.filters.SortKey == "" {
		m.filters.SortKey = stats.SortDateDesc
	}
	m.initInputs()
	m.initViewports()
	m.initHistTable()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (msg.String() == "q" && !m.filterMode) {
			return m, tea.Quit
		}
		if m.confirmDelete {
			return m.updateConfirmDelete(msg)
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refresh()
			return m, nil
		case "/":
			if m.activeTab == tabHistory {
				return m.startFilter()
			}
			return m, nil
		case "d":
			if m.activeTab == tabHistory {
				return m.startDelete()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabHistory {
				m.histTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabHistory {
				m.histTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabHistory {
				var cmd tea.Cmd
				m.histTable, cmd = m.histTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.confirmDelete {
		return m.renderDeleteModal()
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) refresh() {
	sessions, err := m.store.LoadSessions(context.Background())
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.sessions = sessions
	m.renderTabContents()
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, 2)
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Technique: "),
		newFilterInput("Days: "),
		newFilterInput("Sort (date-desc|date-asc|distance-desc|distance-asc): "),
	}
	m.setInputsFromFilters()
}

func (m *Model) initHistTable() {
	m.histTable = table.New(
		table.WithColumns(histColumns(0)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#4A4A4A"))
	m.histTable.SetStyles(styles)
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromFilters() {
	m.filterInputs[0].SetValue(m.filters.Technique)
	if m.filters.Days > 0 {
		m.filterInputs[1].SetValue(strconv.Itoa(m.filters.Days))
	} else {
		m.filterInputs[1].SetValue("")
	}
	m.filterInputs[2].SetValue(m.filters.SortKey)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.histTable.SetColumns(histColumns(m.width))
	m.histTable.SetHeight(maxInt(1, vpHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func histColumns(totalWidth int) []table.Column {
	flexible := maxInt(12, totalWidth-52)
	return []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Location", Width: flexible / 2},
		{Title: "Technique", Width: flexible / 2},
		{Title: "Casts", Width: 5},
		{Title: "Mean", Width: 8},
		{Title: "Max", Width: 8},
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabHistory {
		m.histTable.Focus()
	} else {
		m.histTable.Blur()
	}
}

func (m *Model) renderTabContents() {
	m.viewports[tabOverview].SetContent(m.renderOverview())
	m.viewports[tabTrend].SetContent(m.renderTrend())
	m.renderHistoryRows()
}

func (m *Model) renderOverview() string {
	overall, ok := stats.Overall(m.sessions)
	meanText, recordText, totalText := "-- m", "-- m", "0"
	if ok {
		meanText = fmt.Sprintf("%.1f m", overall.MeanDistance)
		recordText = fmt.Sprintf("%.1f m", overall.RecordDistance)
		totalText = strconv.Itoa(overall.TotalCasts)
	}
	improvementText := "-- %"
	if improvement := stats.Improvement(m.sessions); improvement != nil {
		sign := ""
		if *improvement > 0 {
			sign = "+"
		}
		improvementText = fmt.Sprintf("%s%.1f%%", sign, *improvement)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Average", meanText),
		renderCard("Record", recordText),
		renderCard("Total casts", totalText),
		renderCard("Improvement", improvementText),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(cardTitleStyle.Render("Recent casts"))
	b.WriteString("\n")
	recent := stats.Recent(m.sessions, recentCasts)
	if len(recent) == 0 {
		b.WriteString(mutedStyle.Render("No casts recorded"))
		return b.String()
	}
	rows := make([][]string, 0, len(recent))
	for _, r := range recent {
		technique := r.Technique
		if technique == "" {
			technique = "n/a"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%.1fm", r.Cast.Distance),
			technique,
			r.Location,
			r.Cast.Timestamp.Format("02/01/2006 15:04"),
		})
	}
	lines := stats.FormatTable([]string{"Distance", "Technique", "Location", "When"}, rows, map[int]bool{0: true})
	for _, line := range lines {
		b.WriteString(mutedStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCard(title, value string) string {
	content := cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}

func (m *Model) renderTrend() string {
	if len(m.sessions) == 0 {
		return mutedStyle.Render("No sessions yet. The trend chart appears after your first outing.")
	}
	axisWidth := 6
	width := trend.WidthFor(m.width, axisWidth)
	chart := trend.Build(m.sessions, width, chartHeight)
	var buf bytes.Buffer
	if err := trend.Render(&buf, chart); err != nil {
		return errorStyle.Render(err.Error())
	}
	title := cardTitleStyle.Render("Average distance per session")
	return title + "\n" + buf.String()
}

func (m *Model) renderHistoryRows() {
	listed := stats.Sort(stats.Filter(m.sessions, stats.FilterOptions{
		Technique: m.filters.Technique,
		Days:      m.filters.Days,
	}), m.filters.SortKey)
	m.histRows = listed
	rows := make([]table.Row, 0, len(listed))
	for _, s := range listed {
		meanText, maxText := "--", "--"
		if s.Stats != nil {
			meanText = fmt.Sprintf("%.1fm", s.Stats.Mean)
			maxText = fmt.Sprintf("%.1fm", s.Stats.Max)
		} else if mean, ok := s.MeanDistance(); ok {
			meanText = fmt.Sprintf("%.1fm", mean)
		}
		rows = append(rows, table.Row{
			s.StartedAt.Format("02/01/2006 15:04"),
			s.Location,
			s.Technique,
			strconv.Itoa(len(s.Casts)),
			meanText,
			maxText,
		})
	}
	m.histTable.SetRows(rows)
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterIndex = 0
	m.filterError = ""
	m.setInputsFromFilters()
	m.filterInputs[0].Focus()
	for i := 1; i < len(m.filterInputs); i++ {
		m.filterInputs[i].Blur()
	}
	return m, textinput.Blink
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.moveFilterFocus(1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.moveFilterFocus(-1)
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilters(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.renderHistoryRows()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) moveFilterFocus(delta int) {
	m.filterInputs[m.filterIndex].Blur()
	m.filterIndex = (m.filterIndex + delta + len(m.filterInputs)) % len(m.filterInputs)
	m.filterInputs[m.filterIndex].Focus()
}

func (m *Model) applyFilters() error {
	m.filters.Technique = strings.TrimSpace(m.filterInputs[0].Value())
	daysText := strings.TrimSpace(m.filterInputs[1].Value())
	if daysText == "" {
		m.filters.Days = 0
	} else {
		days, err := strconv.Atoi(daysText)
		if err != nil || days < 0 {
			return fmt.Errorf("days must be a non-negative integer")
		}
		m.filters.Days = days
	}
	sortKey := strings.TrimSpace(m.filterInputs[2].Value())
	if sortKey == "" {
		sortKey = stats.SortDateDesc
	}
	m.filters.SortKey = sortKey
	return nil
}

func (m *Model) startDelete() (tea.Model, tea.Cmd) {
	row := m.histTable.Cursor()
	if row < 0 || row >= len(m.histRows) {
		return m, nil
	}
	m.confirmDelete = true
	m.deleteID = m.histRows[row].ID
	return m, nil
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if err := m.tracker.DeleteSession(context.Background(), m.deleteID); err != nil {
			m.errMsg = err.Error()
		}
		m.confirmDelete = false
		m.refresh()
		return m, tea.ClearScreen
	case "n", "N", "esc":
		m.confirmDelete = false
		return m, nil
	}
	return m, nil
}

func (m *Model) renderDeleteModal() string {
	content := cardValueStyle.Render("Delete this session?") + "\n\n" +
		mutedStyle.Render("All of its casts are removed from history. This cannot be undone.") + "\n\n" +
		headerStyle.Render("y delete · n cancel")
	modal := modalStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	summary := fmt.Sprintf("Sessions: %d", len(m.sessions))
	if m.filters.Technique != "" {
		summary += "  technique=" + m.filters.Technique
	}
	if m.filters.Days > 0 {
		summary += fmt.Sprintf("  last %dd", m.filters.Days)
	}
	return padLines(tabs, m.width) + "\n" + headerStyle.Render(summary)
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		lines := make([]string, 0, len(m.filterInputs)+2)
		for i := range m.filterInputs {
			lines = append(lines, m.filterInputs[i].View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		lines = append(lines, headerStyle.Render("enter apply · esc cancel"))
		return strings.Join(lines, "\n")
	}
	if m.activeTab == tabHistory {
		if len(m.histRows) == 0 {
			return mutedStyle.Render("No sessions found.")
		}
		return m.histTable.View()
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	var b strings.Builder
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	help := "←/→ tabs · r refresh · q quit"
	if m.activeTab == tabHistory {
		help = "←/→ tabs · / filter · d delete · r refresh · q quit"
	}
	b.WriteString(headerStyle.Render(help))
	return b.String()
}

func fitLines(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = truncateLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func padLines(content string, width int) string {
	lines := strings.Split(content, "\n")
	for i := range lines {
		if pad := width - lipgloss.Width(lines[i]); pad > 0 {
			lines[i] += strings.Repeat(" ", pad)
		}
	}
	return strings.Join(lines, "\n")
}

func truncateLine(line string, width int) string {
	if lipgloss.Width(line) <= width {
		return line
	}
	runes := []rune(line)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
