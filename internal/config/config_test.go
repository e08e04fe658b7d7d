package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 60.0, cfg.Athlete.RestingHR)
	assert.Equal(t, 190.0, cfg.Athlete.MaxHR)
	assert.Equal(t, 165.0, cfg.Athlete.ThresholdHR)
	assert.Equal(t, "km", cfg.Display.DistanceUnit)
	assert.Equal(t, "min/km", cfg.Display.PaceUnit)
	assert.Equal(t, 90, cfg.Analysis.FitnessDays)
	assert.Equal(t, 5*time.Minute, cfg.Analysis.CacheTTL())
	assert.Equal(t, "info", cfg.Logging.Level)

	// Strava config should be empty by default
	assert.Empty(t, cfg.Strava.ClientID)
	assert.Empty(t, cfg.Strava.ClientSecret)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Strava = StravaConfig{ClientID: "12345", ClientSecret: "abc123secret"}
		return cfg
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "empty client ID", mutate: func(c *Config) { c.Strava.ClientID = "" }, errContains: "client_id"},
		{name: "placeholder client ID", mutate: func(c *Config) { c.Strava.ClientID = "YOUR_CLIENT_ID" }, errContains: "client_id"},
		{name: "empty client secret", mutate: func(c *Config) { c.Strava.ClientSecret = "" }, errContains: "client_secret"},
		{name: "placeholder client secret", mutate: func(c *Config) { c.Strava.ClientSecret = "YOUR_CLIENT_SECRET" }, errContains: "client_secret"},
		{
			name: "both placeholders",
			mutate: func(c *Config) {
				c.Strava = StravaConfig{ClientID: "YOUR_CLIENT_ID", ClientSecret: "YOUR_CLIENT_SECRET"}
			},
			errContains: "client_id", // first error wins
		},
		{name: "bad distance unit", mutate: func(c *Config) { c.Display.DistanceUnit = "furlong" }, errContains: "distance_unit"},
		{name: "bad pace unit", mutate: func(c *Config) { c.Display.PaceUnit = "min/furlong" }, errContains: "pace_unit"},
		{name: "threshold above max", mutate: func(c *Config) { c.Athlete.ThresholdHR = 195 }, errContains: "threshold_hr"},
		{name: "resting above threshold", mutate: func(c *Config) { c.Athlete.RestingHR = 170 }, errContains: "resting_hr"},
		{name: "negative fitness window", mutate: func(c *Config) { c.Analysis.FitnessDays = -1 }, errContains: "fitness_days"},
		{name: "negative cache ttl", mutate: func(c *Config) { c.Analysis.CacheTTLSeconds = -5 }, errContains: "cache_ttl_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "config.json"))
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"strava": {"client_id": "1", "client_secret": "s"}, "athlete": {"max_hr": 201}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 201.0, cfg.Athlete.MaxHR)
	assert.Equal(t, 60.0, cfg.Athlete.RestingHR)
	assert.Equal(t, 165.0, cfg.Athlete.ThresholdHR)
	assert.Equal(t, "km", cfg.Display.DistanceUnit)
	assert.Equal(t, 90, cfg.Analysis.FitnessDays)
	assert.Equal(t, "stridelab.log", cfg.Logging.File)
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestSaveFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Display.DistanceUnit = "mi"

	require.NoError(t, SaveFile(path, &cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mi", loaded.Display.DistanceUnit)
}

func TestLogPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.File = "/var/log/stridelab.log"

	path, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/stridelab.log", path)

	cfg.Logging.File = "app.log"
	path, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, ".stridelab", filepath.Base(filepath.Dir(path)))
}
