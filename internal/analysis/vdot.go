package analysis

import (
	"fmt"
	"math"
)

// Standard distances in meters
const (
	Distance1K       = 1000
	Distance1Mile    = 1609.34
	Distance5K       = 5000
	Distance10K      = 10000
	DistanceHalfMara = 21097.5
	DistanceMarathon = 42195
)

// DefaultRiegelExponent is the fatigue exponent from Riegel's endurance model
const DefaultRiegelExponent = 1.05

// oxygenCost returns the VO2 (ml/kg/min) needed to run at velocity m/min
func oxygenCost(velocity float64) float64 {
	return -4.60 + 0.182258*velocity + 0.000104*velocity*velocity
}

// vVO2max inverts the linear part of the oxygen cost curve (m/min)
func vVO2max(vdot float64) float64 {
	return (vdot + 4.60) / 0.182258
}

// CalculateVDOT derives VDOT from a performance using the Daniels/Gilbert
// oxygen cost and drop-dead curves. Rounded to one decimal.
// Returns 0 when distance or time is not positive.
func CalculateVDOT(distanceMeters, timeSeconds float64) float64 {
	if distanceMeters <= 0 || timeSeconds <= 0 {
		return 0
	}

	timeMinutes := timeSeconds / 60
	velocity := distanceMeters / timeMinutes

	// Fraction of VO2max sustainable for this duration
	pct := 0.8 + 0.1894393*math.Exp(-0.012778*timeMinutes) + 0.2989558*math.Exp(-0.1932605*timeMinutes)

	return round1(oxygenCost(velocity) / pct)
}

// RiegelPrediction scales a known performance to another distance
// using T2 = T1 * (D2/D1)^exponent
func RiegelPrediction(knownTime, knownDistance, targetDistance, exponent float64) float64 {
	if knownDistance <= 0 || knownTime <= 0 || targetDistance <= 0 {
		return 0
	}
	return knownTime * math.Pow(targetDistance/knownDistance, exponent)
}

// raceIntensity is the fraction of vVO2max sustainable over a race distance
func raceIntensity(distance float64) float64 {
	switch {
	case distance <= 5000:
		return 0.94 + (5000-distance)/5000*0.04
	case distance <= 10000:
		return 0.90 + (10000-distance)/10000*0.04
	case distance <= 21097:
		return 0.85 + (21097-distance)/21097*0.05
	default:
		return 0.80 + (42195-distance)/42195*0.05
	}
}

// PredictFromVDOT predicts a race time in seconds for targetDistance meters
func PredictFromVDOT(vdot, targetDistance float64) int {
	if vdot <= 0 || targetDistance <= 0 {
		return 0
	}

	velocity := vVO2max(vdot) * raceIntensity(targetDistance)
	if velocity <= 0 {
		return 0
	}

	return int(math.Round(targetDistance / velocity * 60))
}

// PaceRange is a min/max pair of formatted paces
type PaceRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// TrainingPaces are the per-km paces for each Daniels training intensity
type TrainingPaces struct {
	Easy       PaceRange `json:"easy"`
	Marathon   string    `json:"marathon"`
	Threshold  string    `json:"threshold"`
	Interval   string    `json:"interval"`
	Repetition string    `json:"repetition"`
}

// GetTrainingPaces returns training paces as fractions of vVO2max.
// Easy spans 59-74%, so Easy.Min is the faster bound.
func GetTrainingPaces(vdot float64) *TrainingPaces {
	if vdot <= 0 {
		return nil
	}

	v := vVO2max(vdot)
	return &TrainingPaces{
		Easy: PaceRange{
			Min: velocityToPace(v * 0.74),
			Max: velocityToPace(v * 0.59),
		},
		Marathon:   velocityToPace(v * 0.75),
		Threshold:  velocityToPace(v * 0.83),
		Interval:   velocityToPace(v * 0.95),
		Repetition: velocityToPace(v * 1.0),
	}
}

// velocityToPace formats a velocity in m/min as m:ss per km
func velocityToPace(velocity float64) string {
	if velocity <= 0 {
		return "-"
	}
	return FormatPace(1000 / velocity * 60)
}

// FormatPace formats seconds per km as m:ss
func FormatPace(secondsPerKm float64) string {
	total := int(math.Round(secondsPerKm))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// GetVDOTLabel returns a human-readable fitness level for a VDOT value
func GetVDOTLabel(vdot float64) string {
	switch {
	case vdot >= 75:
		return "Elite"
	case vdot >= 65:
		return "Highly Competitive"
	case vdot >= 55:
		return "Competitive"
	case vdot >= 45:
		return "Advanced Recreational"
	case vdot >= 38:
		return "Intermediate"
	case vdot >= 30:
		return "Beginner"
	default:
		return "Novice"
	}
}

// EstimateVO2maxFromHR estimates VO2max from a steady effort assuming
// %HRR tracks %VO2R. Rounded to one decimal, 0 when inputs are unusable.
func EstimateVO2maxFromHR(paceSecPerKm, avgHR, maxHR, restHR float64) float64 {
	if paceSecPerKm <= 0 || maxHR <= restHR || avgHR <= restHR {
		return 0
	}

	hrReserve := (avgHR - restHR) / (maxHR - restHR)
	velocity := 1000 / (paceSecPerKm / 60)

	return round1(oxygenCost(velocity) / hrReserve)
}
