package analysis

import (
	"math"
	"time"
)

// DefaultZoneWeeks is the number of weeks in the zone distribution
const DefaultZoneWeeks = 8

// EstimateMaxHR returns the highest recorded max heart rate above 150 bpm,
// or 190 when none is plausible
func EstimateMaxHR(activities []Activity) float64 {
	best := 0.0
	for _, a := range activities {
		if a.MaxHeartrate != nil && *a.MaxHeartrate > 150 && *a.MaxHeartrate > best {
			best = *a.MaxHeartrate
		}
	}
	if best == 0 {
		return DefaultZones().MaxHR
	}
	return best
}

// ZoneWeek is the moving time (seconds) spent per heart rate zone in a week
type ZoneWeek struct {
	Label     string    `json:"week"`
	WeekStart time.Time `json:"weekStart"`
	Zones     [5]int    `json:"zones"`
}

// Total returns the week's moving time across all zones
func (w ZoneWeek) Total() int {
	var t int
	for _, z := range w.Zones {
		t += z
	}
	return t
}

// zoneIndex maps average HR as percent of max to zones 1-5 (0-based)
func zoneIndex(hrPercent float64) int {
	switch {
	case hrPercent < 60:
		return 0
	case hrPercent < 70:
		return 1
	case hrPercent < 80:
		return 2
	case hrPercent < 90:
		return 3
	default:
		return 4
	}
}

// WeeklyZoneDistribution assigns each activity's moving time to a zone by
// its average heart rate, for the last n weeks, oldest first
func WeeklyZoneDistribution(activities []Activity, maxHR float64, weeks int, now time.Time) []ZoneWeek {
	current := StartOfWeek(now)
	out := make([]ZoneWeek, 0, weeks)

	for i := weeks - 1; i >= 0; i-- {
		start := current.AddDate(0, 0, -7*i)
		w := ZoneWeek{Label: start.Format("02/01"), WeekStart: start}

		if maxHR > 0 {
			for _, a := range filterRange(activities, start, start.AddDate(0, 0, 7)) {
				hr, ok := a.HeartRate()
				if !ok {
					continue
				}
				w.Zones[zoneIndex(hr/maxHR*100)] += a.MovingTime
			}
		}

		out = append(out, w)
	}
	return out
}

// TrainingBalance checks the zone distribution against the 80/20 rule
type TrainingBalance struct {
	EasyPercent     int    `json:"easyPercent"`
	ModeratePercent int    `json:"moderatePercent"`
	HardPercent     int    `json:"hardPercent"`
	IsPolarized     bool   `json:"isPolarized"`
	Recommendation  string `json:"recommendation"`
}

// AnalyzeTrainingBalance treats zones 1-2 as easy and 4-5 as hard
func AnalyzeTrainingBalance(weeks []ZoneWeek) TrainingBalance {
	var easy, hard, total float64
	for _, w := range weeks {
		easy += float64(w.Zones[0] + w.Zones[1])
		hard += float64(w.Zones[3] + w.Zones[4])
		total += float64(w.Total())
	}

	var easyPct, hardPct float64
	if total > 0 {
		easyPct = easy / total * 100
		hardPct = hard / total * 100
	}

	b := TrainingBalance{
		EasyPercent:     int(math.Round(easyPct)),
		HardPercent:     int(math.Round(hardPct)),
		ModeratePercent: int(math.Round(100 - easyPct - hardPct)),
		IsPolarized:     easyPct >= 75 && hardPct <= 20,
	}
	switch {
	case easyPct < 75:
		b.Recommendation = "Consider more easy workouts (zone 1-2) for better recovery"
	case hardPct > 20:
		b.Recommendation = "Reduce high intensity slightly to avoid overtraining"
	default:
		b.Recommendation = "Excellent polarized training balance"
	}
	return b
}

// GoalType identifies what a goal measures
type GoalType string

const (
	GoalWeeklyDistance   GoalType = "weekly_distance"
	GoalWeeklyTime       GoalType = "weekly_time"
	GoalWeeklyActivities GoalType = "weekly_activities"
	GoalMonthlyDistance  GoalType = "monthly_distance"
)

// Goal is a suggested target and the progress made towards it
type Goal struct {
	Type    GoalType `json:"type"`
	Target  float64  `json:"target"`
	Current float64  `json:"current"`
	Unit    string   `json:"unit"`
	Period  string   `json:"period"`
}

// Progress returns current over target as a percentage capped at 100
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	return math.Min(100, g.Current/g.Target*100)
}

// SuggestGoals proposes targets 10% above the average of the last four
// weeks, with at least three activities a week
func SuggestGoals(activities []Activity, zones HRZones, now time.Time) []Goal {
	recent := WeeklyTrends(activities, zones, 4, now)

	var dist, secs, count float64
	for _, w := range recent {
		dist += w.Distance
		secs += float64(w.Time)
		count += float64(w.Activities)
	}
	dist /= 4
	secs /= 4
	count /= 4

	weekStart := StartOfWeek(now)
	monthStart := StartOfMonth(now)
	thisWeek := totals(filterRange(activities, weekStart, weekStart.AddDate(0, 0, 7)))
	thisMonth := totals(filterRange(activities, monthStart, monthStart.AddDate(0, 1, 0)))

	return []Goal{
		{
			Type:    GoalWeeklyDistance,
			Target:  math.Round(dist*1.1/1000) * 1000,
			Current: thisWeek.Distance,
			Unit:    "km",
			Period:  "This week",
		},
		{
			Type:    GoalWeeklyTime,
			Target:  math.Round(secs*1.1/3600) * 3600,
			Current: float64(thisWeek.Time),
			Unit:    "hours",
			Period:  "This week",
		},
		{
			Type:    GoalWeeklyActivities,
			Target:  math.Max(math.Round(count), 3),
			Current: float64(thisWeek.Activities),
			Unit:    "activities",
			Period:  "This week",
		},
		{
			Type:    GoalMonthlyDistance,
			Target:  math.Round(dist*4.3*1.1/1000) * 1000,
			Current: thisMonth.Distance,
			Unit:    "km",
			Period:  "This month",
		},
	}
}
