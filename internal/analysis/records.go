package analysis

import (
	"math"
	"time"
)

// PRDistance is a distance tracked for personal records, with the band of
// actual run distances accepted as an attempt at it
type PRDistance struct {
	Name   string
	Meters float64
	MinPct float64
	MaxPct float64
}

var prDistances = [...]PRDistance{
	{"1K", Distance1K, 0.95, 1.15},
	{"1 Mile", Distance1Mile, 0.95, 1.15},
	{"5K", Distance5K, 0.95, 1.10},
	{"10K", Distance10K, 0.95, 1.10},
	{"Half Marathon", DistanceHalfMara, 0.98, 1.05},
	{"Marathon", DistanceMarathon, 0.98, 1.03},
}

// PRDistances returns a copy of the personal record distance table
func PRDistances() []PRDistance {
	out := make([]PRDistance, len(prDistances))
	copy(out, prDistances[:])
	return out
}

// PersonalRecord is the fastest run at a PR distance
type PersonalRecord struct {
	Distance       string    `json:"distance"`
	DistanceMeters float64   `json:"distanceMeters"`
	Time           int       `json:"time"` // seconds, scaled to the exact distance
	Pace           float64   `json:"pace"` // seconds per km
	ActivityID     int64     `json:"activityId"`
	ActivityName   string    `json:"activityName"`
	Date           time.Time `json:"date"`
}

// FindPersonalRecords returns the fastest run for each PR distance.
// Runs within the distance's tolerance band count, with their time scaled
// proportionally to the exact distance. Distances with no qualifying run
// are omitted.
func FindPersonalRecords(activities []Activity) []PersonalRecord {
	var records []PersonalRecord

	for _, pd := range prDistances {
		minDist := pd.Meters * pd.MinPct
		maxDist := pd.Meters * pd.MaxPct

		var best *PersonalRecord
		for _, a := range activities {
			if !isRunType(a.Type) || a.MovingTime <= 0 {
				continue
			}
			if a.Distance < minDist || a.Distance > maxDist {
				continue
			}

			adjusted := float64(a.MovingTime) * (pd.Meters / a.Distance)
			rec := PersonalRecord{
				Distance:       pd.Name,
				DistanceMeters: pd.Meters,
				Time:           int(math.Round(adjusted)),
				Pace:           adjusted / (pd.Meters / 1000),
				ActivityID:     a.ID,
				ActivityName:   a.Name,
				Date:           a.StartDate,
			}
			if best == nil || rec.Time < best.Time {
				best = &rec
			}
		}

		if best != nil {
			records = append(records, *best)
		}
	}

	return records
}
