package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aluqhof/stridelab/internal/store"
)

// openTestDB creates an in-memory SQLite store with migrations applied
func openTestDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func floatPtr(v float64) *float64 { return &v }

// seedRun stores a run that started at local wall-clock time start
func seedRun(t *testing.T, db *store.DB, id int64, start time.Time, meters float64, seconds int, hr float64) {
	t.Helper()

	a := &store.Activity{
		ID:             id,
		AthleteID:      1,
		Name:           "Run",
		Type:           "Run",
		SportType:      "Run",
		StartDate:      start,
		StartDateLocal: start,
		Distance:       meters,
		MovingTime:     seconds,
		ElapsedTime:    seconds,
		HasHeartrate:   hr > 0,
	}
	if hr > 0 {
		a.AverageHeartrate = floatPtr(hr)
		a.MaxHeartrate = floatPtr(hr + 15)
	}
	require.NoError(t, db.UpsertActivity(a))
}
