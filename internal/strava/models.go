package strava

import "time"

// Activity represents a Strava activity summary from the API
type Activity struct {
	ID                 int64     `json:"id"`
	Athlete            Athlete   `json:"athlete"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     time.Time `json:"start_date_local"`
	Timezone           string    `json:"timezone"`
	Distance           float64   `json:"distance"`    // meters
	MovingTime         int       `json:"moving_time"` // seconds
	ElapsedTime        int       `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	AverageSpeed       float64   `json:"average_speed"` // m/s
	AverageHeartrate   float64   `json:"average_heartrate"`
	MaxHeartrate       float64   `json:"max_heartrate"`
	HasHeartrate       bool      `json:"has_heartrate"`
}

// Athlete represents a Strava athlete (minimal info in activity response)
type Athlete struct {
	ID int64 `json:"id"`
}

// AthleteZones is the /athlete/zones response
type AthleteZones struct {
	HeartRate *HeartRateZones `json:"heart_rate"`
}

// HeartRateZones holds the athlete's heart rate zone boundaries
type HeartRateZones struct {
	CustomZones bool        `json:"custom_zones"`
	Zones       []ZoneRange `json:"zones"`
}

// ZoneRange is one zone; Max is -1 for the open-ended top zone
type ZoneRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// HRZones returns the heart rate zone ranges, or nil when none are configured
func (z *AthleteZones) HRZones() []ZoneRange {
	if z == nil || z.HeartRate == nil {
		return nil
	}
	return z.HeartRate.Zones
}
