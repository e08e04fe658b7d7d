package service

import (
	"time"

	"github.com/aluqhof/stridelab/internal/analysis"
	"github.com/aluqhof/stridelab/internal/store"
	"github.com/aluqhof/stridelab/internal/strava"
)

// convertActivity converts a Strava API activity to a store activity
func convertActivity(a strava.Activity) *store.Activity {
	activity := &store.Activity{
		ID:                 a.ID,
		AthleteID:          a.Athlete.ID,
		Name:               a.Name,
		Type:               a.Type,
		SportType:          a.SportType,
		StartDate:          a.StartDate,
		StartDateLocal:     a.StartDateLocal,
		Timezone:           a.Timezone,
		Distance:           a.Distance,
		MovingTime:         a.MovingTime,
		ElapsedTime:        a.ElapsedTime,
		TotalElevationGain: a.TotalElevationGain,
		AverageSpeed:       a.AverageSpeed,
		HasHeartrate:       a.HasHeartrate,
	}

	if a.AverageHeartrate > 0 {
		hr := a.AverageHeartrate
		activity.AverageHeartrate = &hr
	}
	if a.MaxHeartrate > 0 {
		hr := a.MaxHeartrate
		activity.MaxHeartrate = &hr
	}

	return activity
}

// toAnalysis converts cached activities into the analytics model.
// Dates use the local wall clock Strava reports in start_date_local.
func toAnalysis(activities []store.Activity) []analysis.Activity {
	out := make([]analysis.Activity, len(activities))
	for i, a := range activities {
		start := a.StartDateLocal
		if start.IsZero() {
			start = a.StartDate
		}
		out[i] = analysis.Activity{
			ID:                 a.ID,
			Name:               a.Name,
			Type:               a.Type,
			SportType:          a.SportType,
			StartDate:          start,
			Distance:           a.Distance,
			MovingTime:         a.MovingTime,
			AverageHeartrate:   a.AverageHeartrate,
			MaxHeartrate:       a.MaxHeartrate,
			TotalElevationGain: a.TotalElevationGain,
		}
	}
	return out
}

// wallClock re-expresses t's local wall clock in UTC so it compares
// directly with start_date_local values
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
