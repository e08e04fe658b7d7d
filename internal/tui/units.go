package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/aluqhof/stridelab/internal/config"
)

const (
	metersPerMile = 1609.34
	metersPerKm   = 1000.0
)

// Units provides unit conversion and formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// IsMiles returns true if distance unit is miles
func (u Units) IsMiles() bool {
	return u.cfg.DistanceUnit == "mi"
}

// DistanceValue converts meters to the preferred unit
func (u Units) DistanceValue(meters float64) float64 {
	if u.IsMiles() {
		return meters / metersPerMile
	}
	return meters / metersPerKm
}

// FormatDistance formats meters in the preferred unit with thousands separators
func (u Units) FormatDistance(meters float64) string {
	return humanize.FormatFloat("#,###.#", u.DistanceValue(meters)) + " " + u.DistanceLabel()
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// PaceLabel returns the pace unit label ("min/mi" or "min/km")
func (u Units) PaceLabel() string {
	if u.cfg.PaceUnit == "min/mi" {
		return "min/mi"
	}
	return "min/km"
}

// FormatPace formats a pace given in seconds per km in the preferred unit
func (u Units) FormatPace(secondsPerKm float64) string {
	if secondsPerKm <= 0 || math.IsInf(secondsPerKm, 0) || math.IsNaN(secondsPerKm) {
		return "-"
	}
	pace := secondsPerKm
	if u.cfg.PaceUnit == "min/mi" {
		pace = secondsPerKm * metersPerMile / metersPerKm
	}
	total := int(math.Round(pace))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatPaceWithUnit formats pace with the unit label
func (u Units) FormatPaceWithUnit(secondsPerKm float64) string {
	pace := u.FormatPace(secondsPerKm)
	if pace == "-" {
		return pace
	}
	return pace + "/" + u.DistanceLabel()
}

// formatRaceTime renders seconds as h:mm:ss, or m:ss under an hour
func formatRaceTime(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatDuration renders seconds as "3h 20m"
func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// formatAgo renders t relative to now, or "never" for the zero time
func formatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// formatPercentChange renders a signed percent change
func formatPercentChange(pct int) string {
	switch {
	case pct > 0:
		return fmt.Sprintf("+%d%%", pct)
	case pct < 0:
		return fmt.Sprintf("%d%%", pct)
	default:
		return "0%"
	}
}

func truncateName(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
