package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aluqhof/stridelab/internal/service"
)

// SyncModel is the sync screen model
type SyncModel struct {
	syncService *service.SyncService
	spinner     spinner.Model
	syncing     bool
	progress    service.SyncProgress
	updates     <-chan service.SyncProgress
	done        <-chan SyncDoneMsg
	result      *service.SyncResult
	err         error
	finished    bool
	lastSync    time.Time
}

// NewSyncModel creates a new sync model
func NewSyncModel(ss *service.SyncService) SyncModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)
	return SyncModel{
		syncService: ss,
		spinner:     s,
	}
}

// Init initializes the sync screen
func (m SyncModel) Init() tea.Cmd {
	return m.loadLastSync
}

// SyncDoneMsg is sent when sync finishes
type SyncDoneMsg struct {
	Result *service.SyncResult
	Err    error
}

// SyncCompleteMsg is sent to the app after a sync so other screens can reload
type SyncCompleteMsg struct{}

type syncProgressMsg service.SyncProgress

type lastSyncMsg time.Time

func (m SyncModel) loadLastSync() tea.Msg {
	t, err := m.syncService.LastSync()
	if err != nil {
		return lastSyncMsg(time.Time{})
	}
	return lastSyncMsg(t)
}

// Update handles messages
func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case lastSyncMsg:
		m.lastSync = time.Time(msg)

	case syncProgressMsg:
		m.progress = service.SyncProgress(msg)
		return m, waitForProgress(m.updates, m.done)

	case SyncDoneMsg:
		m.syncing = false
		m.finished = true
		m.result = msg.Result
		m.err = msg.Err
		m.updates = nil
		m.done = nil
		return m, tea.Batch(m.loadLastSync, func() tea.Msg { return SyncCompleteMsg{} })

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.syncing {
			switch msg.String() {
			case "enter", "s":
				return m.start()
			}
		}
	}
	return m, nil
}

func (m SyncModel) start() (SyncModel, tea.Cmd) {
	updates := make(chan service.SyncProgress)
	done := make(chan SyncDoneMsg, 1)
	go func() {
		result, err := m.syncService.SyncAll(context.Background(), updates)
		done <- SyncDoneMsg{Result: result, Err: err}
	}()

	m.syncing = true
	m.finished = false
	m.err = nil
	m.result = nil
	m.progress = service.SyncProgress{Phase: service.PhaseActivities}
	m.updates = updates
	m.done = done
	return m, tea.Batch(m.spinner.Tick, waitForProgress(updates, done))
}

// waitForProgress relays the next progress update, or the final result once
// the sync has closed its progress channel
func waitForProgress(updates <-chan service.SyncProgress, done <-chan SyncDoneMsg) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-updates
		if !ok {
			return <-done
		}
		return syncProgressMsg(p)
	}
}

// View renders the sync screen
func (m SyncModel) View() string {
	sections := []string{cardTitleStyle.Render("Strava Sync")}

	switch {
	case m.syncing:
		sections = append(sections, m.renderProgress())
	case m.err != nil:
		sections = append(sections,
			errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)),
			m.renderSummary(),
			"\n"+statusStyle.Render("  Press 's' or Enter to retry"))
	case m.finished:
		sections = append(sections,
			successStyle.Render("\n  Sync complete!"),
			m.renderSummary(),
			"\n"+statusStyle.Render("  Press '1' to go to dashboard"))
	default:
		sections = append(sections, m.renderStartPrompt())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SyncModel) renderStartPrompt() string {
	short, daily := m.syncService.RateLimitStatus()
	lines := []string{
		"",
		"  This will sync your Strava data:",
		"",
		"  1. Fetch activities newer than your latest cached one",
		"  2. Refresh your heart rate zones",
		"",
		mutedStyle.Render("  Last sync: " + formatAgo(m.lastSync, time.Now())),
		statusStyle.Render(fmt.Sprintf("  API requests left: %d (15min), %d (daily)", short, daily)),
		"",
		statusStyle.Render("  Press 's' or Enter to start sync"),
	}
	return strings.Join(lines, "\n")
}

func (m SyncModel) renderProgress() string {
	phase := "Fetching activities"
	if m.progress.Phase == service.PhaseZones {
		phase = "Fetching heart rate zones"
	}
	lines := []string{
		"",
		fmt.Sprintf("  %s %s...", m.spinner.View(), phase),
		"",
		fmt.Sprintf("  %d fetched, %d stored", m.progress.Fetched, m.progress.Stored),
	}
	return strings.Join(lines, "\n")
}

func (m SyncModel) renderSummary() string {
	if m.result == nil {
		return ""
	}

	r := m.result
	lines := []string{""}

	if r.ActivitiesStored > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d activities synced", r.ActivitiesStored)))
	} else {
		lines = append(lines, statusStyle.Render("  No new activities"))
	}
	if r.ZonesStored > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d heart rate zones updated", r.ZonesStored)))
	}
	if r.Duration > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  Took %s", r.Duration.Round(time.Second))))
	}

	if errs := r.ErrorList(); len(errs) > 0 {
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("  %d errors occurred", len(errs))))
		for _, err := range errs {
			lines = append(lines, mutedStyle.Render("    "+err.Error()))
		}
	}

	return strings.Join(lines, "\n")
}
