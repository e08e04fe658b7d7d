package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	sections = append(sections,
		m.renderSection("Navigation", []keyHelp{
			{"1", "Dashboard"},
			{"2", "Race predictions and records"},
			{"3", "Trends and goals"},
			{"4 or s", "Sync screen"},
			{"?", "Help (this screen)"},
			{"q", "Quit"},
			{"esc", "Back / close help"},
		}),
		m.renderSection("Dashboard, Predictions, Trends", []keyHelp{
			{"r", "Recompute from local data"},
			{"j / k", "Scroll (predictions, trends)"},
		}),
		m.renderSection("Sync Screen", []keyHelp{
			{"s / enter", "Start sync"},
		}),
	)

	// Metrics explanation
	sections = append(sections, m.renderMetricsHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderMetricsHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Metrics Explained"))
	lines = append(lines, "")

	metrics := []struct {
		name string
		desc string
	}{
		{"VDOT", "Aerobic capacity estimated from your best recent efforts."},
		{"hrTSS", "Training stress of a run from duration and heart rate above rest."},
		{"CTL (Fitness)", "Chronic training load: 42 day weighted average of hrTSS."},
		{"ATL (Fatigue)", "Acute training load: 7 day weighted average of hrTSS."},
		{"TSB (Form)", "Training stress balance = CTL - ATL. Positive = fresh."},
		{"ACWR", "7 day load over the weekly average of the last 28 days. 0.8-1.3 is safe."},
		{"Efficiency", "Meters covered per heartbeat on runs over 3km. Higher is fitter."},
		{"Polarized", "At least 75% easy time and no more than 15% in the moderate zone."},
	}

	for _, metric := range metrics {
		lines = append(lines, "  "+helpKeyStyle.Render(metric.name))
		lines = append(lines, "  "+mutedStyle.Render(metric.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
