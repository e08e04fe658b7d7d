package analysis

import "time"

func floatPtr(f float64) *float64 {
	return &f
}

// at returns a local wall-clock time in UTC
func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func run(id int64, start time.Time, meters float64, seconds int) Activity {
	return Activity{
		ID:         id,
		Name:       "Run",
		Type:       "Run",
		SportType:  "Run",
		StartDate:  start,
		Distance:   meters,
		MovingTime: seconds,
	}
}

func runHR(id int64, start time.Time, meters float64, seconds int, hr float64) Activity {
	a := run(id, start, meters, seconds)
	a.AverageHeartrate = floatPtr(hr)
	return a
}
