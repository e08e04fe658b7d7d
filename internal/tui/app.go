package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aluqhof/stridelab/internal/service"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenPredictions
	ScreenTrends
	ScreenSync
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard   DashboardModel
	predictions PredictionsModel
	trends      TrendsModel
	syncScreen  SyncModel
	help        HelpModel

	// Services
	reports     *service.ReportService
	syncService *service.SyncService
	units       Units

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(reports *service.ReportService, syncService *service.SyncService, units Units) *App {
	return &App{
		screen:      ScreenDashboard,
		reports:     reports,
		syncService: syncService,
		units:       units,
		dashboard:   NewDashboardModel(reports, units, 0),
		predictions: NewPredictionsModel(reports, units, 0, 0),
		trends:      NewTrendsModel(reports, units, 0, 0),
		syncScreen:  NewSyncModel(syncService),
		help:        NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings are disabled while a sync is running
		if a.screen != ScreenSync || !a.syncScreen.syncing {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenDashboard
				a.dashboard = NewDashboardModel(a.reports, a.units, a.width)
				return a, a.dashboard.Init()
			case "2":
				a.screen = ScreenPredictions
				a.predictions = NewPredictionsModel(a.reports, a.units, a.width, a.height)
				return a, a.predictions.Init()
			case "3":
				a.screen = ScreenTrends
				a.trends = NewTrendsModel(a.reports, a.units, a.width, a.height)
				return a, a.trends.Init()
			case "4", "s":
				if a.screen != ScreenSync {
					a.screen = ScreenSync
					return a, a.syncScreen.Init()
				}
			case "?":
				a.prevScreen = a.screen
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case SyncCompleteMsg:
		// Screens are rebuilt on navigation, so only the visible one needs a reload
		if a.screen == ScreenSync || a.screen == ScreenHelp {
			return a, nil
		}
		a.dashboard = NewDashboardModel(a.reports, a.units, a.width)
		a.screen = ScreenDashboard
		return a, a.dashboard.Init()
	}

	// Sync messages reach the sync screen even after navigating away
	switch msg.(type) {
	case syncProgressMsg, SyncDoneMsg:
		m, cmd := a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenPredictions:
		var m tea.Model
		m, cmd = a.predictions.Update(msg)
		a.predictions = m.(PredictionsModel)
	case ScreenTrends:
		var m tea.Model
		m, cmd = a.trends.Update(msg)
		a.trends = m.(TrendsModel)
	case ScreenSync:
		var m tea.Model
		m, cmd = a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenPredictions:
		content = a.predictions.View()
	case ScreenTrends:
		content = a.trends.View()
	case ScreenSync:
		content = a.syncScreen.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), a.renderNav(), content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("StrideLab")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Predictions", ScreenPredictions},
		{"3", "Trends", ScreenTrends},
		{"4", "Sync", ScreenSync},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}
