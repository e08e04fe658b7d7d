package service

import (
	"github.com/aluqhof/stridelab/internal/analysis"
	"github.com/aluqhof/stridelab/internal/config"
	"github.com/aluqhof/stridelab/internal/store"
	"github.com/aluqhof/stridelab/internal/strava"
)

// ZonesFromBoundaries derives the athlete heart rate settings. Strava zone
// boundaries win when present: the top zone's min plus TopZoneHeadroom
// approximates max HR and zone 4's min approximates threshold HR.
// Anything still missing comes from athlete, then analysis.DefaultZones.
func ZonesFromBoundaries(bounds []store.HRZone, athlete config.AthleteConfig) analysis.HRZones {
	zones := analysis.HRZones{
		RestingHR:   athlete.RestingHR,
		MaxHR:       athlete.MaxHR,
		ThresholdHR: athlete.ThresholdHR,
	}

	if len(bounds) > 0 {
		if last := bounds[len(bounds)-1]; last.MinBPM > 0 {
			zones.MaxHR = float64(last.MinBPM + TopZoneHeadroom)
		}
		if len(bounds) > ThresholdZoneIndex && bounds[ThresholdZoneIndex].MinBPM > 0 {
			zones.ThresholdHR = float64(bounds[ThresholdZoneIndex].MinBPM)
		}
	}

	return zones.WithDefaults()
}

// convertZones converts Strava zone ranges into store rows
func convertZones(ranges []strava.ZoneRange) []store.HRZone {
	zones := make([]store.HRZone, len(ranges))
	for i, r := range ranges {
		zones[i] = store.HRZone{Index: i, MinBPM: r.Min, MaxBPM: r.Max}
	}
	return zones
}
