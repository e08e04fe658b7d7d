package analysis

import (
	"math"
	"time"
)

// RaceDistance is a distance race times are predicted for
type RaceDistance struct {
	Name   string  `json:"name"`
	Meters float64 `json:"meters"`
}

var raceDistances = [...]RaceDistance{
	{"5K", Distance5K},
	{"10K", Distance10K},
	{"Half Marathon", DistanceHalfMara},
	{"Marathon", DistanceMarathon},
}

// RaceDistances returns a copy of the prediction distance table
func RaceDistances() []RaceDistance {
	out := make([]RaceDistance, len(raceDistances))
	copy(out, raceDistances[:])
	return out
}

// Blend weights of the two prediction models
const (
	VDOTBlendWeight   = 0.6
	RiegelBlendWeight = 0.4
)

// Windows used to summarize recent training
const (
	volumeWindowDays    = 28
	longRunWindowDays   = 21
	weeksInVolumeWindow = 4
)

// TrainingContext summarizes recent training for prediction adjustments
type TrainingContext struct {
	TSB              float64 `json:"tsb"`
	WeeklyVolume     float64 `json:"weeklyVolume"`     // meters, 4-week average
	LongestRecentRun float64 `json:"longestRecentRun"` // meters, last 3 weeks
	RunsPerWeek      float64 `json:"runsPerWeek"`      // 4-week average
}

// AnalyzeTrainingContext derives volume, long run and frequency from runs
func AnalyzeTrainingContext(activities []Activity, currentTSB float64, now time.Time) TrainingContext {
	fourWeeksAgo := now.Add(-volumeWindowDays * 24 * time.Hour)
	threeWeeksAgo := now.Add(-longRunWindowDays * 24 * time.Hour)

	var totalDistance, longest float64
	var count int
	for _, a := range activities {
		if !isRunType(a.Type) {
			continue
		}
		if !a.StartDate.Before(fourWeeksAgo) {
			totalDistance += a.Distance
			count++
		}
		if !a.StartDate.Before(threeWeeksAgo) && a.Distance > longest {
			longest = a.Distance
		}
	}

	return TrainingContext{
		TSB:              currentTSB,
		WeeklyVolume:     totalDistance / weeksInVolumeWindow,
		LongestRecentRun: longest,
		RunsPerWeek:      float64(count) / weeksInVolumeWindow,
	}
}

// Adjustment is a multiplicative correction applied to a predicted time.
// A factor below 1 means faster.
type Adjustment struct {
	Factor  float64  `json:"factor"`
	Reasons []string `json:"reasons"`
}

// CalculateAdjustmentFactors returns the adjustment for each race distance
func CalculateAdjustmentFactors(ctx TrainingContext) map[string]Adjustment {
	adjustments := make(map[string]Adjustment, len(raceDistances))

	weeklyKm := ctx.WeeklyVolume / 1000
	longestKm := ctx.LongestRecentRun / 1000

	for _, race := range raceDistances {
		adj := Adjustment{Factor: 1.0, Reasons: []string{}}
		apply := func(factor float64, reason string) {
			adj.Factor *= factor
			adj.Reasons = append(adj.Reasons, reason)
		}

		// Freshness
		switch {
		case ctx.TSB > 15:
			apply(0.98, "Ready to race (+2%)")
		case ctx.TSB > 5:
			apply(0.99, "Good form (+1%)")
		case ctx.TSB < -25:
			apply(1.015, "Somewhat fatigued (-1.5%)")
		}

		// Volume
		if race.Meters >= 21097 {
			if weeklyKm < 20 {
				apply(1.02, "Low volume (-2%)")
			} else if weeklyKm >= 50 {
				apply(0.98, "Good volume (+2%)")
			}
		}
		if race.Meters >= 42195 {
			if weeklyKm < 40 {
				apply(1.02, "Marathon prep improvable (-2%)")
			} else if weeklyKm >= 70 {
				apply(0.97, "Excellent marathon prep (+3%)")
			}
		}

		// Long runs
		if race.Meters >= 21097 {
			if longestKm < 12 {
				apply(1.02, "Long runs recommended (-2%)")
			} else if longestKm >= 16 {
				apply(0.99, "Good long runs (+1%)")
			}
		}
		if race.Meters >= 42195 {
			if longestKm < 20 {
				apply(1.03, "Need 20km+ long runs (-3%)")
			} else if longestKm >= 28 {
				apply(0.98, "Optimal long runs (+2%)")
			}
		}

		// Consistency
		switch {
		case ctx.RunsPerWeek >= 5:
			apply(0.99, "Good consistency (+1%)")
		case ctx.RunsPerWeek >= 4:
			apply(0.995, "Consistent (+0.5%)")
		}

		adjustments[race.Name] = adj
	}

	return adjustments
}

// PredictionResult holds predicted race times in seconds keyed by race name
// and the adjustments that were applied to them
type PredictionResult struct {
	Predictions map[string]int        `json:"predictions"`
	Adjustments map[string]Adjustment `json:"adjustments"`
}

// CalculateWeightedPredictions blends a VDOT based and a Riegel based
// prediction from the best effort of each distance band, then applies the
// training context adjustments when ctx is not nil
func CalculateWeightedPredictions(efforts []BestEffort, ctx *TrainingContext) PredictionResult {
	result := PredictionResult{
		Predictions: map[string]int{},
		Adjustments: map[string]Adjustment{},
	}

	ranged := BestEffortsByDistance(efforts)
	if len(ranged) == 0 {
		return result
	}

	var totalWeight float64
	riegel := make([]float64, len(raceDistances))
	for _, e := range ranged {
		totalWeight += e.RangeWeight
		for i, race := range raceDistances {
			riegel[i] += RiegelPrediction(float64(e.Time), e.Distance, race.Meters, DefaultRiegelExponent) * e.RangeWeight
		}
	}

	avgVDOT := weightedVDOT(ranged)

	for i, race := range raceDistances {
		riegelEstimate := riegel[i] / totalWeight
		vdotEstimate := float64(PredictFromVDOT(avgVDOT, race.Meters))
		result.Predictions[race.Name] = int(math.Round(vdotEstimate*VDOTBlendWeight + riegelEstimate*RiegelBlendWeight))
	}

	if ctx == nil {
		return result
	}

	result.Adjustments = CalculateAdjustmentFactors(*ctx)
	for name, adj := range result.Adjustments {
		if t := result.Predictions[name]; t > 0 {
			result.Predictions[name] = int(math.Round(float64(t) * adj.Factor))
		}
	}

	return result
}

// PredictionPace returns the pace in seconds per km of a predicted time
func PredictionPace(seconds int, meters float64) float64 {
	if meters <= 0 {
		return 0
	}
	return float64(seconds) / (meters / 1000)
}
