package analysis

import (
	"math"
	"time"
)

// Time constants (days) of the fitness and fatigue moving averages
const (
	CTLTimeConstant = 42
	ATLTimeConstant = 7
)

// DefaultHistoryDays is the default length of the fitness history window
const DefaultHistoryDays = 90

// Sex selects the Banister TRIMP weighting constant
type Sex int

const (
	Male Sex = iota
	Female
)

// CalculateHRTSS calculates the heart rate Training Stress Score
// hrTSS = hours * IF^2 * 100, IF = HR reserve / threshold HR reserve
// Rounded to a whole number. Returns 0 when the HR settings are degenerate
// or the effort is at or below resting heart rate.
func CalculateHRTSS(durationSeconds, avgHR, thresholdHR, maxHR, restHR float64) float64 {
	if maxHR <= restHR || thresholdHR <= restHR || avgHR <= restHR || durationSeconds <= 0 {
		return 0
	}

	hrReserve := (avgHR - restHR) / (maxHR - restHR)
	lthrReserve := (thresholdHR - restHR) / (maxHR - restHR)
	intensityFactor := hrReserve / lthrReserve

	hours := durationSeconds / 3600
	return math.Round(hours * intensityFactor * intensityFactor * 100)
}

// CalculateTRIMP calculates Training Impulse (Banister model)
// TRIMP = minutes * HRr * 0.64 * e^(k * HRr), k = 1.92 for men, 1.67 for women
func CalculateTRIMP(durationMinutes, avgHR, maxHR, restHR float64, sex Sex) float64 {
	if maxHR <= restHR || avgHR <= restHR || durationMinutes <= 0 {
		return 0
	}

	hrReserve := (avgHR - restHR) / (maxHR - restHR)

	k := 1.92
	if sex == Female {
		k = 1.67
	}

	return math.Round(durationMinutes * hrReserve * 0.64 * math.Exp(k*hrReserve))
}

// ActivityTSS returns the hrTSS of an activity, false when it has no heart rate
func ActivityTSS(a Activity, zones HRZones) (float64, bool) {
	hr, ok := a.HeartRate()
	if !ok {
		return 0, false
	}
	return CalculateHRTSS(float64(a.MovingTime), hr, zones.ThresholdHR, zones.MaxHR, zones.RestingHR), true
}

// FitnessPoint is the fitness state at the end of one calendar day
type FitnessPoint struct {
	Date string  `json:"date"`
	TSS  float64 `json:"tss"`
	CTL  float64 `json:"ctl"` // Chronic Training Load - "Fitness"
	ATL  float64 `json:"atl"` // Acute Training Load - "Fatigue"
	TSB  float64 `json:"tsb"` // Training Stress Balance - "Form"
}

// CalculateCTL folds daily TSS values into the 42-day moving average
func CalculateCTL(dailyTSS []float64, previous float64) float64 {
	return round1(ema(dailyTSS, previous, CTLTimeConstant))
}

// CalculateATL folds daily TSS values into the 7-day moving average
func CalculateATL(dailyTSS []float64, previous float64) float64 {
	return round1(ema(dailyTSS, previous, ATLTimeConstant))
}

// CalculateTSB returns form as fitness minus fatigue
func CalculateTSB(ctl, atl float64) float64 {
	return ctl - atl
}

func ema(values []float64, start, timeConstant float64) float64 {
	v := start
	for _, x := range values {
		v += (x - v) / timeConstant
	}
	return v
}

// BuildFitnessHistory computes daily CTL/ATL/TSB over the daysBack days
// ending on now, inclusive. Every day in the window gets a point; activities
// are bucketed by the calendar day they started on and those without heart
// rate contribute no load.
func BuildFitnessHistory(activities []Activity, zones HRZones, daysBack int, now time.Time) []FitnessPoint {
	if daysBack < 0 {
		daysBack = 0
	}

	today := civilDay(now)
	start := today.AddDate(0, 0, -daysBack)

	tssByDay := make(map[string]float64, daysBack+1)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		tssByDay[d.Format(dayLayout)] = 0
	}

	for _, a := range activities {
		key := a.Day()
		if _, inWindow := tssByDay[key]; !inWindow {
			continue
		}
		if tss, ok := ActivityTSS(a, zones); ok {
			tssByDay[key] += tss
		}
	}

	history := make([]FitnessPoint, 0, daysBack+1)
	var ctl, atl float64
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		tss := tssByDay[key]

		ctl += (tss - ctl) / CTLTimeConstant
		atl += (tss - atl) / ATLTimeConstant

		ctlR, atlR := round1(ctl), round1(atl)
		history = append(history, FitnessPoint{
			Date: key,
			TSS:  tss,
			CTL:  ctlR,
			ATL:  atlR,
			TSB:  round1(CalculateTSB(ctlR, atlR)),
		})
	}

	return history
}

// CurrentFitness returns the most recent point of a history
func CurrentFitness(history []FitnessPoint) FitnessPoint {
	if len(history) == 0 {
		return FitnessPoint{}
	}
	return history[len(history)-1]
}

// FormDescription returns a human-readable description of TSB
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to race"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}
