package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/aluqhof/stridelab/internal/analysis"
	"github.com/aluqhof/stridelab/internal/service"
)

var zoneNames = [5]string{"Z1 <60%", "Z2 60-70%", "Z3 70-80%", "Z4 80-90%", "Z5 >90%"}

// TrendsModel is the volume trends and training habits screen
type TrendsModel struct {
	reports  *service.ReportService
	units    Units
	trends   *service.TrendsReport
	premium  *service.PremiumReport
	viewport viewport.Model
	loading  bool
	err      error
	ready    bool
}

// NewTrendsModel creates a new trends model
func NewTrendsModel(reports *service.ReportService, units Units, width, height int) TrendsModel {
	m := TrendsModel{
		reports: reports,
		units:   units,
		loading: true,
	}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}
	return m
}

// Init initializes the trends screen
func (m TrendsModel) Init() tea.Cmd {
	return m.loadTrends
}

type trendsLoadedMsg struct {
	trends  *service.TrendsReport
	premium *service.PremiumReport
	err     error
}

func (m TrendsModel) loadTrends() tea.Msg {
	trends, err := m.reports.Trends()
	if err != nil {
		return trendsLoadedMsg{err: err}
	}
	premium, err := m.reports.Premium()
	return trendsLoadedMsg{trends: trends, premium: premium, err: err}
}

// Update handles messages
func (m TrendsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.trends = msg.trends
		m.premium = msg.premium
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.trends != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			m.reports.Invalidate()
			return m, m.loadTrends
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the trends screen
func (m TrendsModel) View() string {
	if m.loading {
		return "\n  Loading trends..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m TrendsModel) renderContent() string {
	if m.trends == nil {
		return ""
	}

	sections := []string{
		"",
		cardTitleStyle.Render("Trends"),
		m.renderWeeklyChart(),
	}
	if m.premium != nil {
		sections = append(sections, m.renderMonthComparison())
	}
	sections = append(sections,
		m.renderMonthlyTable(),
		m.renderZones(),
		m.renderGoals(),
		m.renderHabits(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TrendsModel) renderWeeklyChart() string {
	weeks := m.trends.Weekly
	values := make([]float64, len(weeks))
	for i, w := range weeks {
		values[i] = m.units.DistanceValue(w.Distance)
	}

	lines := []string{renderSectionHeader(fmt.Sprintf("Weekly Distance (%s)", m.units.DistanceLabel()), sectionWidth)}
	if len(values) < 2 {
		lines = append(lines, mutedStyle.Render("  Not enough weeks yet"), "")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, asciigraph.Plot(values,
		asciigraph.Height(8),
		asciigraph.Width(sectionWidth-8),
		asciigraph.Precision(0),
		asciigraph.Offset(4),
	))
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %s ... %s", weeks[0].Label, weeks[len(weeks)-1].Label)), "")
	return strings.Join(lines, "\n")
}

func (m TrendsModel) renderMonthComparison() string {
	c := m.premium.MonthComparison
	lines := []string{
		renderSectionHeader("This Month vs Last Month", sectionWidth),
		RenderMetric("  Distance", m.units.FormatDistance(c.Current.Distance), formatPercentChange(c.DistanceChange)),
		RenderMetric("  Time", formatDuration(c.Current.Time), formatPercentChange(c.TimeChange)),
		RenderMetric("  Activities", fmt.Sprintf("%d", c.Current.Activities), formatPercentChange(c.ActivitiesChange)),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m TrendsModel) renderMonthlyTable() string {
	lines := []string{
		renderSectionHeader("Monthly", sectionWidth),
		tableHeaderStyle.Render(fmt.Sprintf(" %-8s %12s %10s %6s %10s", "Month", "Distance", "Time", "Runs", "Pace")),
	}
	for _, mo := range m.trends.Monthly {
		if mo.Activities == 0 {
			continue
		}
		lines = append(lines, tableRowStyle.Render(fmt.Sprintf("%-8s %12s %10s %6d %10s",
			mo.Label,
			m.units.FormatDistance(mo.Distance),
			formatDuration(mo.Time),
			mo.Activities,
			m.units.FormatPace(mo.AvgPace),
		)))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m TrendsModel) renderZones() string {
	var totals [5]int
	var all int
	for _, w := range m.trends.ZoneWeeks {
		for i, secs := range w.Zones {
			totals[i] += secs
			all += secs
		}
	}

	lines := []string{renderSectionHeader(fmt.Sprintf("Heart Rate Zones (max %.0f bpm)", m.trends.EstimatedMaxHR), sectionWidth)}
	if all == 0 {
		lines = append(lines, mutedStyle.Render("  No heart rate data"), "")
		return strings.Join(lines, "\n")
	}
	for i, secs := range totals {
		pct := float64(secs) / float64(all)
		lines = append(lines, fmt.Sprintf("  %-10s %s %3.0f%%  %s",
			zoneNames[i], RenderProgressBar(pct, 24), pct*100, mutedStyle.Render(formatDuration(secs))))
	}

	b := m.trends.Balance
	style := warningStyle
	if b.IsPolarized {
		style = successStyle
	}
	lines = append(lines, "", "  "+style.Width(sectionWidth-2).Render(b.Recommendation), "")
	return strings.Join(lines, "\n")
}

func (m TrendsModel) renderGoals() string {
	lines := []string{renderSectionHeader("Suggested Goals", sectionWidth)}
	for _, g := range m.trends.Goals {
		lines = append(lines, fmt.Sprintf("  %-26s %s %3.0f%%  %s",
			goalLabel(g),
			RenderProgressBar(g.Progress()/100, 16),
			g.Progress(),
			mutedStyle.Render(m.goalAmounts(g)),
		))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func goalLabel(g analysis.Goal) string {
	switch g.Type {
	case analysis.GoalWeeklyTime:
		return g.Period + ": time"
	case analysis.GoalWeeklyActivities:
		return g.Period + ": activities"
	default:
		return g.Period + ": distance"
	}
}

func (m TrendsModel) goalAmounts(g analysis.Goal) string {
	switch g.Type {
	case analysis.GoalWeeklyTime:
		return formatDuration(int(g.Current)) + " / " + formatDuration(int(g.Target))
	case analysis.GoalWeeklyActivities:
		return fmt.Sprintf("%.0f / %.0f", g.Current, g.Target)
	default:
		return m.units.FormatDistance(g.Current) + " / " + m.units.FormatDistance(g.Target)
	}
}

func (m TrendsModel) renderHabits() string {
	lines := []string{
		renderSectionHeader("When You Run", sectionWidth),
		tableHeaderStyle.Render(fmt.Sprintf(" %-10s %6s %12s %10s", "Day", "Count", "Distance", "Pace")),
	}
	for _, d := range m.trends.DayOfWeek {
		lines = append(lines, tableRowStyle.Render(fmt.Sprintf("%-10s %6d %12s %10s",
			d.DayName, d.Count, m.units.FormatDistance(d.Distance), m.units.FormatPace(d.AvgPace))))
	}

	if busiest, ok := busiestHour(m.trends.TimeOfDay); ok {
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("  Most runs start around %02d:00 (%d activities)", busiest.Hour, busiest.Count)))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func busiestHour(hours []analysis.HourStat) (analysis.HourStat, bool) {
	var best analysis.HourStat
	found := false
	for _, h := range hours {
		if h.Count > best.Count {
			best = h
			found = true
		}
	}
	return best, found
}
