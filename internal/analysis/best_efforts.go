package analysis

import (
	"math"
	"sort"
	"time"
)

// Defaults for best effort selection
const (
	DefaultMinEffortDistance = 3000
	MaxBestEfforts           = 10
)

// BestEffort is a whole run considered as a candidate race performance
type BestEffort struct {
	ActivityID   int64     `json:"activityId"`
	ActivityName string    `json:"activityName"`
	Date         time.Time `json:"date"`
	Distance     float64   `json:"distance"` // meters
	Time         int       `json:"time"`     // seconds
	Pace         float64   `json:"pace"`     // seconds per km
}

// DistanceRange is a named distance band with its reliability weight
type DistanceRange struct {
	Name   string  `json:"name"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Weight float64 `json:"weight"`
}

// Contains reports whether distance falls inside the band, bounds inclusive
func (r DistanceRange) Contains(distance float64) bool {
	return distance >= r.Min && distance <= r.Max
}

// Longer bands predict race fitness better and carry more weight
var distanceRanges = [...]DistanceRange{
	{"5K", 4000, 6000, 1},
	{"10K", 9000, 12000, 1.5},
	{"15K", 14000, 17000, 2},
	{"21K", 20000, 23000, 3},
	{"30K", 28000, 35000, 3.5},
	{"42K", 40000, 44000, 4},
}

// DistanceRanges returns a copy of the distance band table
func DistanceRanges() []DistanceRange {
	out := make([]DistanceRange, len(distanceRanges))
	copy(out, distanceRanges[:])
	return out
}

// RangedEffort is the fastest effort found within a distance band
type RangedEffort struct {
	BestEffort
	RangeName   string  `json:"rangeName"`
	RangeWeight float64 `json:"rangeWeight"`
}

// FindBestEfforts returns the fastest runs of at least minDistance meters,
// ordered by pace, at most MaxBestEfforts of them
func FindBestEfforts(activities []Activity, minDistance float64) []BestEffort {
	var efforts []BestEffort
	for _, a := range activities {
		if !isRunType(a.Type) || a.Distance < minDistance {
			continue
		}
		if a.Distance <= 0 || a.MovingTime <= 0 {
			continue
		}

		efforts = append(efforts, BestEffort{
			ActivityID:   a.ID,
			ActivityName: a.Name,
			Date:         a.StartDate,
			Distance:     a.Distance,
			Time:         a.MovingTime,
			Pace:         float64(a.MovingTime) / (a.Distance / 1000),
		})
	}

	sort.SliceStable(efforts, func(i, j int) bool {
		return efforts[i].Pace < efforts[j].Pace
	})

	if len(efforts) > MaxBestEfforts {
		efforts = efforts[:MaxBestEfforts]
	}
	return efforts
}

// BestEffortsByDistance keeps the fastest effort per distance band.
// An effort belongs to the first band containing its distance; efforts
// outside every band are dropped. Output follows band order.
func BestEffortsByDistance(efforts []BestEffort) []RangedEffort {
	var best [len(distanceRanges)]*RangedEffort

	for _, e := range efforts {
		for i, r := range distanceRanges {
			if !r.Contains(e.Distance) {
				continue
			}
			if best[i] == nil || e.Pace < best[i].Pace {
				best[i] = &RangedEffort{BestEffort: e, RangeName: r.Name, RangeWeight: r.Weight}
			}
			break
		}
	}

	var out []RangedEffort
	for _, re := range best {
		if re != nil {
			out = append(out, *re)
		}
	}
	return out
}

// VDOTEstimate is a VDOT aggregated over several distance bands
type VDOTEstimate struct {
	VDOT        float64        `json:"vdot"`
	Confidence  int            `json:"confidence"` // 0-100
	EffortsUsed int            `json:"effortsUsed"`
	UsedEfforts []RangedEffort `json:"usedEfforts"`
}

// CalculateWeightedVDOT averages the VDOT of the best effort in each band,
// weighted by band reliability. Confidence grows 25 points per band.
func CalculateWeightedVDOT(efforts []BestEffort) VDOTEstimate {
	ranged := BestEffortsByDistance(efforts)
	if len(ranged) == 0 {
		return VDOTEstimate{UsedEfforts: []RangedEffort{}}
	}

	avg := weightedVDOT(ranged)

	return VDOTEstimate{
		VDOT:        round1(avg),
		Confidence:  int(math.Min(100, float64(len(ranged)*25))),
		EffortsUsed: len(ranged),
		UsedEfforts: ranged,
	}
}

// weightedVDOT is the unrounded weighted mean VDOT of ranged efforts
func weightedVDOT(ranged []RangedEffort) float64 {
	var sum, totalWeight float64
	for _, e := range ranged {
		sum += CalculateVDOT(e.Distance, float64(e.Time)) * e.RangeWeight
		totalWeight += e.RangeWeight
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight
}
