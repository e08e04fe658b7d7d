package store

import "time"

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64     `db:"athlete_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// Activity is a cached Strava activity summary
type Activity struct {
	ID                 int64     `db:"id"`
	AthleteID          int64     `db:"athlete_id"`
	Name               string    `db:"name"`
	Type               string    `db:"type"`
	SportType          string    `db:"sport_type"`
	StartDate          time.Time `db:"start_date"`
	StartDateLocal     time.Time `db:"start_date_local"`
	Timezone           string    `db:"timezone"`
	Distance           float64   `db:"distance"`    // meters
	MovingTime         int       `db:"moving_time"` // seconds
	ElapsedTime        int       `db:"elapsed_time"`
	TotalElevationGain float64   `db:"total_elevation_gain"`
	AverageSpeed       float64   `db:"average_speed"` // m/s
	AverageHeartrate   *float64  `db:"average_heartrate"`
	MaxHeartrate       *float64  `db:"max_heartrate"`
	HasHeartrate       bool      `db:"has_heartrate"`
}

// HRZone is one heart rate zone boundary pair, in bpm.
// A MaxBPM of -1 marks an open-ended top zone.
type HRZone struct {
	Index  int `db:"zone_index"`
	MinBPM int `db:"min_bpm"`
	MaxBPM int `db:"max_bpm"`
}
