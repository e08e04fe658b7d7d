package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the application configuration
type Config struct {
	Strava   StravaConfig   `json:"strava"`
	Athlete  AthleteConfig  `json:"athlete"`
	Display  DisplayConfig  `json:"display"`
	Analysis AnalysisConfig `json:"analysis"`
	Logging  LoggingConfig  `json:"logging"`
}

// StravaConfig holds Strava API credentials
type StravaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// AthleteConfig holds the heart rate settings used when Strava zones are
// unavailable
type AthleteConfig struct {
	RestingHR   float64 `json:"resting_hr"`
	MaxHR       float64 `json:"max_hr"`
	ThresholdHR float64 `json:"threshold_hr"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
	PaceUnit     string `json:"pace_unit"`
}

// AnalysisConfig tunes report generation
type AnalysisConfig struct {
	FitnessDays     int `json:"fitness_days"`
	CacheTTLSeconds int `json:"cache_ttl_seconds"`
}

// CacheTTL returns the report cache lifetime
func (a AnalysisConfig) CacheTTL() time.Duration {
	return time.Duration(a.CacheTTLSeconds) * time.Second
}

// LoggingConfig controls the log file
type LoggingConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
	JSON  bool   `json:"json"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			RestingHR:   60,
			MaxHR:       190,
			ThresholdHR: 165,
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
			PaceUnit:     "min/km",
		},
		Analysis: AnalysisConfig{
			FitnessDays:     90,
			CacheTTLSeconds: 300,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "stridelab.log",
		},
	}
}

// Load reads the configuration from ~/.stridelab/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path and fills in defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Athlete.RestingHR == 0 {
		c.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if c.Athlete.MaxHR == 0 {
		c.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if c.Athlete.ThresholdHR == 0 {
		c.Athlete.ThresholdHR = defaults.Athlete.ThresholdHR
	}
	if c.Display.DistanceUnit == "" {
		c.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
	if c.Display.PaceUnit == "" {
		c.Display.PaceUnit = defaults.Display.PaceUnit
	}
	if c.Analysis.FitnessDays == 0 {
		c.Analysis.FitnessDays = defaults.Analysis.FitnessDays
	}
	if c.Analysis.CacheTTLSeconds == 0 {
		c.Analysis.CacheTTLSeconds = defaults.Analysis.CacheTTLSeconds
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = defaults.Logging.File
	}
}

// Save writes the configuration to ~/.stridelab/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes the configuration to path, creating its directory
func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Strava = StravaConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}

	return SaveFile(path, &example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Strava.ClientID == "" || c.Strava.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("strava.client_id is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.ClientSecret == "" || c.Strava.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("strava.client_secret is required - get it from https://www.strava.com/settings/api")
	}

	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}
	if c.Display.PaceUnit != "" && c.Display.PaceUnit != "min/km" && c.Display.PaceUnit != "min/mi" {
		return fmt.Errorf("display.pace_unit must be \"min/km\" or \"min/mi\", got %q", c.Display.PaceUnit)
	}

	if c.Athlete.RestingHR > 0 && c.Athlete.ThresholdHR > 0 && c.Athlete.RestingHR >= c.Athlete.ThresholdHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.threshold_hr (%v)", c.Athlete.RestingHR, c.Athlete.ThresholdHR)
	}
	if c.Athlete.ThresholdHR > 0 && c.Athlete.MaxHR > 0 && c.Athlete.ThresholdHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.threshold_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.ThresholdHR, c.Athlete.MaxHR)
	}

	if c.Analysis.FitnessDays < 0 {
		return fmt.Errorf("analysis.fitness_days must not be negative, got %d", c.Analysis.FitnessDays)
	}
	if c.Analysis.CacheTTLSeconds < 0 {
		return fmt.Errorf("analysis.cache_ttl_seconds must not be negative, got %d", c.Analysis.CacheTTLSeconds)
	}

	return nil
}

// LogPath returns the absolute log file path
func (c *Config) LogPath() (string, error) {
	if filepath.IsAbs(c.Logging.File) {
		return c.Logging.File, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Logging.File), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".stridelab"), nil
}
