package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aluqhof/stridelab/internal/analysis"
	"github.com/aluqhof/stridelab/internal/service"
)

const sectionWidth = 64

// PredictionsModel is the race predictions screen model
type PredictionsModel struct {
	reports     *service.ReportService
	units       Units
	performance *service.PerformanceReport
	premium     *service.PremiumReport
	viewport    viewport.Model
	loading     bool
	err         error
	ready       bool
}

// NewPredictionsModel creates a new predictions model
func NewPredictionsModel(reports *service.ReportService, units Units, width, height int) PredictionsModel {
	m := PredictionsModel{
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

// Init initializes the predictions screen
func (m PredictionsModel) Init() tea.Cmd {
	return m.loadPredictions
}

type predictionsLoadedMsg struct {
	performance *service.PerformanceReport
	premium     *service.PremiumReport
	err         error
}

func (m PredictionsModel) loadPredictions() tea.Msg {
	perf, err := m.reports.Performance()
	if err != nil {
		return predictionsLoadedMsg{err: err}
	}
	premium, err := m.reports.Premium()
	return predictionsLoadedMsg{performance: perf, premium: premium, err: err}
}

// Update handles messages
func (m PredictionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.performance = msg.performance
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
		if m.performance != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			m.reports.Invalidate()
			return m, m.loadPredictions
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the predictions screen
func (m PredictionsModel) View() string {
	if m.loading {
		return "\n  Loading race predictions..."
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

func (m PredictionsModel) renderContent() string {
	if m.performance == nil || m.performance.VDOT == 0 {
		return m.renderEmptyState()
	}

	sections := []string{
		"",
		cardTitleStyle.Render("Race Time Predictions"),
		m.renderVDOTInfo(),
		m.renderPredictionsTable(),
		m.renderTrainingPaces(),
		m.renderBestEfforts(),
	}
	if m.premium != nil {
		sections = append(sections, m.renderPersonalRecords())
	}
	sections = append(sections, m.renderAboutSection())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PredictionsModel) renderEmptyState() string {
	lines := []string{
		"",
		cardTitleStyle.Render("Race Time Predictions"),
		mutedStyle.Render("  No race predictions available yet."),
		"",
		mutedStyle.Render(fmt.Sprintf("  Predictions need a run between 4 and 44 km in the last %d days.", m.reports.FitnessDays())),
		mutedStyle.Render("  Run a sync to analyze your activities and generate predictions."),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m PredictionsModel) renderVDOTInfo() string {
	p := m.performance
	vdotStyle := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)

	lines := []string{
		fmt.Sprintf("  VDOT: %s (%s)",
			vdotStyle.Render(fmt.Sprintf("%.1f", p.VDOT)),
			successStyle.Render(p.VDOTLabel)),
		mutedStyle.Render(fmt.Sprintf("  Confidence %d%% from %d distance band(s)", p.VDOTConfidence, p.EffortsUsed)),
		mutedStyle.Render(fmt.Sprintf("  Zones: rest %.0f  threshold %.0f  max %.0f bpm",
			p.Zones.RestingHR, p.Zones.ThresholdHR, p.Zones.MaxHR)),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m PredictionsModel) renderPredictionsTable() string {
	lines := []string{
		renderSectionHeader("Predicted Times", sectionWidth),
		tableHeaderStyle.Render(fmt.Sprintf(" %-15s  %10s  %10s  %s", "Distance", "Predicted", "Pace", "Adjustment")),
	}

	for _, rd := range analysis.RaceDistances() {
		secs, ok := m.performance.RacePredictions[rd.Name]
		if !ok {
			continue
		}
		adj := m.performance.Adjustments[rd.Name]
		lines = append(lines, fmt.Sprintf("  %-15s  %10s  %10s  %s",
			rd.Name,
			formatRaceTime(secs),
			m.units.FormatPaceWithUnit(analysis.PredictionPace(secs, rd.Meters)),
			renderAdjustment(adj),
		))
		for _, reason := range adj.Reasons {
			lines = append(lines, mutedStyle.Render("      "+reason))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func renderAdjustment(adj analysis.Adjustment) string {
	if adj.Factor == 0 || adj.Factor == 1 {
		return mutedStyle.Render("none")
	}
	pct := (adj.Factor - 1) * 100
	if pct < 0 {
		return successStyle.Render(fmt.Sprintf("%.1f%% faster", -pct))
	}
	return warningStyle.Render(fmt.Sprintf("%.1f%% slower", pct))
}

func (m PredictionsModel) renderTrainingPaces() string {
	paces := m.performance.TrainingPaces
	if paces == nil {
		return ""
	}

	lines := []string{
		renderSectionHeader("Training Paces (min/km)", sectionWidth),
		fmt.Sprintf("  %-12s %s - %s", "Easy", paces.Easy.Min, paces.Easy.Max),
		fmt.Sprintf("  %-12s %s", "Marathon", paces.Marathon),
		fmt.Sprintf("  %-12s %s", "Threshold", paces.Threshold),
		fmt.Sprintf("  %-12s %s", "Interval", paces.Interval),
		fmt.Sprintf("  %-12s %s", "Repetition", paces.Repetition),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m PredictionsModel) renderBestEfforts() string {
	lines := []string{renderSectionHeader("Efforts Used", sectionWidth)}
	for _, e := range m.performance.BestEfforts {
		lines = append(lines, fmt.Sprintf("  %-5s %-24s %10s  %8s  %s",
			e.RangeName,
			truncateName(e.ActivityName, 24),
			m.units.FormatDistance(e.Distance),
			formatRaceTime(e.Time),
			mutedStyle.Render(e.Date.Format("Jan 02")),
		))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m PredictionsModel) renderPersonalRecords() string {
	lines := []string{renderSectionHeader("Personal Records", sectionWidth)}
	if len(m.premium.PersonalRecords) == 0 {
		lines = append(lines, mutedStyle.Render("  None yet"))
	}
	for _, pr := range m.premium.PersonalRecords {
		lines = append(lines, fmt.Sprintf("  %-14s %9s  %10s  %s",
			pr.Distance,
			formatRaceTime(pr.Time),
			m.units.FormatPaceWithUnit(pr.Pace),
			mutedStyle.Render(pr.Date.Format("Jan 02, 2006")),
		))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m PredictionsModel) renderAboutSection() string {
	lines := []string{
		renderSectionHeader("About These Predictions", sectionWidth),
		mutedStyle.Render("  Times blend Jack Daniels' VDOT tables (60%) with Riegel's formula (40%)."),
		mutedStyle.Render("  Adjustments reflect current form, weekly volume, long runs and frequency."),
		"",
	}
	return strings.Join(lines, "\n")
}
