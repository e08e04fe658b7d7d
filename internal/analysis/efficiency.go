package analysis

import (
	"sort"
	"time"
)

// Limits for the aerobic efficiency series
const (
	MinEfficiencyDistance = 3000
	MaxEfficiencyPoints   = 20
	MinTrendPoints        = 6
	trendWindow           = 5
)

// EfficiencyPoint is the aerobic efficiency of one run
type EfficiencyPoint struct {
	Date         time.Time `json:"date"`
	ActivityName string    `json:"activityName"`
	Pace         float64   `json:"pace"` // seconds per km
	AvgHR        float64   `json:"avgHR"`
	Efficiency   float64   `json:"efficiency"` // meters per heartbeat
	PaceHRRatio  float64   `json:"paceHRRatio"`
}

// CalculateAerobicEfficiency returns meters covered per heartbeat for the
// most recent runs with heart rate, oldest first. Higher is better.
func CalculateAerobicEfficiency(activities []Activity) []EfficiencyPoint {
	var points []EfficiencyPoint
	for _, a := range activities {
		hr, ok := a.HeartRate()
		if !ok || !isRunType(a.Type) || a.Distance < MinEfficiencyDistance || a.MovingTime <= 0 {
			continue
		}

		minutes := float64(a.MovingTime) / 60
		pace := float64(a.MovingTime) / (a.Distance / 1000)

		points = append(points, EfficiencyPoint{
			Date:         a.StartDate,
			ActivityName: a.Name,
			Pace:         pace,
			AvgHR:        hr,
			Efficiency:   round2(a.Distance / (hr * minutes)),
			PaceHRRatio:  round2(pace / hr),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	if len(points) > MaxEfficiencyPoints {
		points = points[len(points)-MaxEfficiencyPoints:]
	}
	return points
}

// EfficiencyTrend compares recent efficiency with the runs before them
type EfficiencyTrend struct {
	Current   float64 `json:"current"`
	Previous  float64 `json:"previous"`
	Change    float64 `json:"change"` // percent
	Improving bool    `json:"improving"`
}

// GetEfficiencyTrend compares the mean of the last 5 points with the mean
// of up to 5 points before them. Returns nil with fewer than 6 points.
func GetEfficiencyTrend(points []EfficiencyPoint) *EfficiencyTrend {
	n := len(points)
	if n < MinTrendPoints {
		return nil
	}

	recent := points[n-trendWindow:]
	olderStart := n - 2*trendWindow
	if olderStart < 0 {
		olderStart = 0
	}
	older := points[olderStart : n-trendWindow]

	recentAvg := meanEfficiency(recent)
	olderAvg := meanEfficiency(older)
	if olderAvg == 0 {
		return nil
	}

	change := (recentAvg - olderAvg) / olderAvg * 100
	return &EfficiencyTrend{
		Current:   round2(recentAvg),
		Previous:  round2(olderAvg),
		Change:    round1(change),
		Improving: change > 0,
	}
}

func meanEfficiency(points []EfficiencyPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Efficiency
	}
	return sum / float64(len(points))
}
