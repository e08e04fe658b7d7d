package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/aluqhof/stridelab/internal/analysis"
	"github.com/aluqhof/stridelab/internal/service"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	reports     *service.ReportService
	units       Units
	performance *service.PerformanceReport
	premium     *service.PremiumReport
	loading     bool
	err         error
	width       int
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(reports *service.ReportService, units Units, width int) DashboardModel {
	return DashboardModel{
		reports: reports,
		units:   units,
		loading: true,
		width:   width,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

type dashboardDataMsg struct {
	performance *service.PerformanceReport
	premium     *service.PremiumReport
	err         error
}

func (m DashboardModel) loadData() tea.Msg {
	perf, err := m.reports.Performance()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	premium, err := m.reports.Premium()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{performance: perf, premium: premium}
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.performance = msg.performance
		m.premium = msg.premium
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			m.reports.Invalidate()
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if m.performance == nil || m.premium == nil {
		return "\n  No data available. Press 's' to sync with Strava."
	}

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderFitnessCard(), "  ", m.renderRiskCard(), "  ", m.renderStreaksCard())

	sections := []string{topRow}
	if len(m.performance.FitnessHistory) > 2 {
		sections = append(sections, m.renderChart())
	}
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderDistributionCard(), "  ", m.renderEfficiencyCard()),
		statusStyle.Render("Press 'r' to refresh, 's' to sync, '2' for predictions"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderFitnessCard() string {
	f := m.performance.CurrentFitness

	lines := []string{
		cardTitleStyle.Render("Training Load"),
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.1f", f.CTL), ""),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.1f", f.ATL), ""),
		RenderMetric("Form (TSB)", fmt.Sprintf("%+.1f", f.TSB), ""),
		"",
		mutedStyle.Render(m.performance.Form),
	}
	return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m DashboardModel) renderRiskCard() string {
	risk := m.premium.InjuryRisk

	lines := []string{
		cardTitleStyle.Render("Injury Risk"),
		RenderMetric("ACWR", fmt.Sprintf("%.2f", risk.ACWR), ""),
		RenderMetric("Risk", riskStyle(risk.RiskLevel).Render(string(risk.RiskLevel)), ""),
		RenderMetric("7-day load", fmt.Sprintf("%.0f", risk.WeeklyLoad), ""),
		RenderMetric("28-day avg", fmt.Sprintf("%.0f", risk.ChronicLoad), ""),
		"",
		mutedStyle.Width(32).Render(risk.Recommendation),
	}
	return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m DashboardModel) renderStreaksCard() string {
	s := m.premium.Streaks

	lines := []string{
		cardTitleStyle.Render("Consistency"),
		RenderMetric("Current streak", fmt.Sprintf("%d days", s.CurrentStreak), ""),
		RenderMetric("Longest streak", fmt.Sprintf("%d days", s.LongestStreak), ""),
		RenderMetric("Last 7 days", fmt.Sprintf("%d", s.ThisWeekActivities), ""),
		RenderMetric("Last 30 days", fmt.Sprintf("%d", s.ThisMonthActivities), ""),
		"",
		RenderProgressBar(float64(s.ConsistencyScore)/100, 20) + fmt.Sprintf(" %d%%", s.ConsistencyScore),
	}
	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m DashboardModel) renderChart() string {
	history := m.performance.FitnessHistory
	ctl := make([]float64, len(history))
	atl := make([]float64, len(history))
	for i, p := range history {
		ctl[i] = p.CTL
		atl[i] = p.ATL
	}

	width := 70
	if m.width > 20 && m.width-20 < width {
		width = m.width - 20
	}

	graph := asciigraph.PlotMany([][]float64{ctl, atl},
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
	)

	title := cardTitleStyle.Render(fmt.Sprintf("Fitness vs Fatigue - last %d days", len(history)-1))
	legend := mutedStyle.Render("blue: CTL  red: ATL")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, legend))
}

func (m DashboardModel) renderDistributionCard() string {
	d := m.premium.TrainingDistribution

	lines := []string{cardTitleStyle.Render("Intensity Distribution")}
	bars := []struct {
		label string
		pct   int
	}{
		{"Easy (Z1-2)", d.Easy},
		{"Moderate (Z3)", d.Moderate},
		{"Hard (Z4-5)", d.Hard},
	}
	for _, b := range bars {
		lines = append(lines, fmt.Sprintf("%-14s %s %3d%%", b.label, RenderProgressBar(float64(b.pct)/100, 16), b.pct))
	}
	lines = append(lines, "", mutedStyle.Width(38).Render(d.Recommendation))

	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m DashboardModel) renderEfficiencyCard() string {
	lines := []string{cardTitleStyle.Render("Aerobic Efficiency")}

	points := m.premium.EfficiencyData
	if len(points) == 0 {
		lines = append(lines, mutedStyle.Render("No runs with heart rate yet"))
		return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	latest := points[len(points)-1]
	lines = append(lines,
		RenderMetric("Latest", fmt.Sprintf("%.2f m/beat", latest.Efficiency), ""),
		RenderMetric("Pace", m.units.FormatPaceWithUnit(latest.Pace), ""),
	)
	lines = append(lines, m.renderEfficiencyTrend(m.premium.EfficiencyTrend))

	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m DashboardModel) renderEfficiencyTrend(trend *analysis.EfficiencyTrend) string {
	if trend == nil {
		return RenderMetric("Trend", "-", fmt.Sprintf("needs %d runs", analysis.MinTrendPoints))
	}
	return RenderMetric("Trend", fmt.Sprintf("%.2f", trend.Current), fmt.Sprintf("%+.1f%%", trend.Change))
}
