package analysis

import (
	"math"
	"time"
)

// RiskLevel classifies an acute:chronic workload ratio
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// InjuryRisk is the acute:chronic workload ratio and its interpretation
type InjuryRisk struct {
	ACWR           float64   `json:"acwr"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	WeeklyLoad     float64   `json:"weeklyLoad"`
	ChronicLoad    float64   `json:"chronicLoad"`
	Recommendation string    `json:"recommendation"`
}

// CalculateACWR compares the TSS of the last 7 days with the weekly
// average of the last 28 days. The ratio is 0 when there is no chronic load.
func CalculateACWR(activities []Activity, zones HRZones, now time.Time) InjuryRisk {
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -28)

	var weeklyTSS, monthlyTSS float64
	for _, a := range activities {
		tss, ok := ActivityTSS(a, zones)
		if !ok {
			continue
		}
		if !a.StartDate.Before(weekAgo) {
			weeklyTSS += tss
		}
		if !a.StartDate.Before(monthAgo) {
			monthlyTSS += tss
		}
	}

	chronic := monthlyTSS / 4
	var acwr float64
	if chronic > 0 {
		acwr = weeklyTSS / chronic
	}

	level, recommendation := ClassifyACWR(acwr)
	return InjuryRisk{
		ACWR:           round2(acwr),
		RiskLevel:      level,
		WeeklyLoad:     math.Round(weeklyTSS),
		ChronicLoad:    math.Round(chronic),
		Recommendation: recommendation,
	}
}

// ClassifyACWR maps a ratio to its risk band and recommendation
func ClassifyACWR(acwr float64) (RiskLevel, string) {
	switch {
	case acwr < 0.8:
		return RiskLow, "Low load. You can gradually increase volume."
	case acwr <= 1.3:
		return RiskModerate, "Optimal zone. Maintain this load level."
	case acwr <= 1.5:
		return RiskHigh, "High load. Consider reducing intensity."
	default:
		return RiskVeryHigh, "Alert! High injury risk. Reduce the load."
	}
}
