package analysis

import (
	"math"
	"time"
)

// Activity is a single recorded workout as seen by the analytics engine.
// StartDate is the local wall-clock start, Distance is in meters and
// MovingTime in seconds.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sportType"`
	StartDate          time.Time `json:"startDate"`
	Distance           float64   `json:"distance"`
	MovingTime         int       `json:"movingTime"`
	AverageHeartrate   *float64  `json:"averageHeartrate,omitempty"`
	MaxHeartrate       *float64  `json:"maxHeartrate,omitempty"`
	TotalElevationGain float64   `json:"totalElevationGain"`
}

// IsRun reports whether the activity is an outdoor or virtual run
func (a Activity) IsRun() bool {
	return isRunType(a.Type) || isRunType(a.SportType)
}

// HeartRate returns the average heart rate when it was recorded
func (a Activity) HeartRate() (float64, bool) {
	if a.AverageHeartrate == nil || *a.AverageHeartrate <= 0 {
		return 0, false
	}
	return *a.AverageHeartrate, true
}

// Day returns the calendar day the activity started on, as YYYY-MM-DD
func (a Activity) Day() string {
	return a.StartDate.Format(dayLayout)
}

func isRunType(t string) bool {
	return t == "Run" || t == "VirtualRun"
}

const dayLayout = "2006-01-02"

// HRZones holds the athlete heart rate settings used for load calculations
type HRZones struct {
	RestingHR   float64 `json:"restingHR"`
	MaxHR       float64 `json:"maxHR"`
	ThresholdHR float64 `json:"thresholdHR"`
}

// DefaultZones returns the fallback settings used when nothing is configured
func DefaultZones() HRZones {
	return HRZones{
		RestingHR:   60,
		MaxHR:       190,
		ThresholdHR: 165,
	}
}

// WithDefaults fills any unset field from DefaultZones
func (z HRZones) WithDefaults() HRZones {
	d := DefaultZones()
	if z.RestingHR <= 0 {
		z.RestingHR = d.RestingHR
	}
	if z.MaxHR <= 0 {
		z.MaxHR = d.MaxHR
	}
	if z.ThresholdHR <= 0 {
		z.ThresholdHR = d.ThresholdHR
	}
	return z
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// runsOnly returns the runs in activities, keeping order
func runsOnly(activities []Activity) []Activity {
	runs := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if a.IsRun() {
			runs = append(runs, a)
		}
	}
	return runs
}
