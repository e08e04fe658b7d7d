package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/aluqhof/stridelab/internal/auth"
	"github.com/aluqhof/stridelab/internal/config"
	"github.com/aluqhof/stridelab/internal/logging"
	"github.com/aluqhof/stridelab/internal/service"
	"github.com/aluqhof/stridelab/internal/store"
	"github.com/aluqhof/stridelab/internal/strava"
	"github.com/aluqhof/stridelab/internal/tui"
)

func main() {
	jsonOut := flag.Bool("json", false, "print the full report as JSON and exit")
	days := flag.Int("days", 0, "fitness history window in days (overrides config)")
	flag.Parse()

	if err := run(*jsonOut, *days); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(jsonOut bool, days int) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("You need to add your Strava API credentials.")
		fmt.Println("Get them from: https://www.strava.com/settings/api")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if days > 0 {
		cfg.Analysis.FitnessDays = days
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return fmt.Errorf("resolving log path: %w", err)
	}
	logCloser := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   logPath,
		LogLevel:      cfg.Logging.Level,
		LogFormatJSON: cfg.Logging.JSON,
	})
	defer logCloser.Close()

	dbPath, err := store.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolving database path: %w", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	reports := service.NewReportService(db, cfg.Athlete, cfg.Analysis)

	if jsonOut {
		report, err := reports.Full()
		if err != nil {
			return fmt.Errorf("building report: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	oauthCfg := auth.NewOAuthConfig(auth.Config{
		ClientID:     cfg.Strava.ClientID,
		ClientSecret: cfg.Strava.ClientSecret,
	})

	tokenSource, err := auth.EnsureToken(ctx, oauthCfg, db, os.Stdout)
	if err != nil {
		return fmt.Errorf("authentication: %w", err)
	}

	// A revoked or unrefreshable token means the saved credentials are useless
	if _, err := tokenSource.Token(); err != nil {
		fmt.Println("Stored token is invalid or expired. Re-authenticating...")
		log.WithError(err).Warn("discarding saved token")
		if err := db.ClearAuth(); err != nil {
			return fmt.Errorf("clearing auth: %w", err)
		}
		tokenSource, err = auth.EnsureToken(ctx, oauthCfg, db, os.Stdout)
		if err != nil {
			return fmt.Errorf("re-authentication: %w", err)
		}
	}

	stravaClient := strava.NewClient(tokenSource)
	syncSvc := service.NewSyncService(stravaClient, db)
	syncSvc.OnComplete(reports.Invalidate)

	app := tui.NewApp(reports, syncSvc, tui.NewUnits(cfg.Display))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
