package analysis

import "math"

// Intensity boundaries as a fraction of max heart rate
const (
	easyCeiling     = 0.75
	moderateCeiling = 0.85
)

// NoHRDataRecommendation is returned when no activity carries heart rate
const NoHRDataRecommendation = "Not enough heart rate data."

// TrainingDistribution is the share of moving time per intensity bucket
type TrainingDistribution struct {
	Easy           int    `json:"zone1_2"`
	Moderate       int    `json:"zone3"`
	Hard           int    `json:"zone4_5"`
	IsPolarized    bool   `json:"isPolarized"`
	Recommendation string `json:"recommendation"`
}

// AnalyzeTrainingDistribution buckets moving time by average heart rate
// and checks it against the polarized (80/20) model
func AnalyzeTrainingDistribution(activities []Activity, maxHR float64) TrainingDistribution {
	var easy, moderate, hard float64
	for _, a := range activities {
		hr, ok := a.HeartRate()
		if !ok {
			continue
		}

		t := float64(a.MovingTime)
		switch {
		case hr < maxHR*easyCeiling:
			easy += t
		case hr < maxHR*moderateCeiling:
			moderate += t
		default:
			hard += t
		}
	}

	total := easy + moderate + hard
	if total <= 0 {
		return TrainingDistribution{Recommendation: NoHRDataRecommendation}
	}

	easyPct := easy / total * 100
	moderatePct := moderate / total * 100
	hardPct := hard / total * 100

	polarized := easyPct >= 75 && moderatePct <= 15

	var rec string
	switch {
	case polarized:
		rec = "Polarized distribution. Excellent for aerobic improvements."
	case moderatePct > 30:
		rec = "Too much time in gray zone (Z3). Train easier or harder."
	case easyPct < 70:
		rec = "Consider adding more easy volume for better recovery."
	default:
		rec = "Good distribution. Keep it up."
	}

	return TrainingDistribution{
		Easy:           int(math.Round(easyPct)),
		Moderate:       int(math.Round(moderatePct)),
		Hard:           int(math.Round(hardPct)),
		IsPolarized:    polarized,
		Recommendation: rec,
	}
}
