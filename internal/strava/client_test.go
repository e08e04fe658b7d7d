package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = Limits{Short: 1000, ShortWindow: time.Minute, Daily: 10000}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.Client(), srv.URL, NewRateLimiterWithLimits(testLimits))
}

func TestGetAllActivitiesPaginates(t *testing.T) {
	var pages []int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/athlete/activities", r.URL.Path)
		assert.Equal(t, "1700000000", r.URL.Query().Get("after"))
		assert.Equal(t, strconv.Itoa(MaxPerPage), r.URL.Query().Get("per_page"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pages = append(pages, page)

		n := MaxPerPage
		if page == 2 {
			n = 3
		}
		acts := make([]Activity, n)
		for i := range acts {
			acts[i] = Activity{ID: int64(page*1000 + i), Type: "Run", Distance: 5000}
		}
		w.Header().Set("X-RateLimit-Usage", "12,340")
		w.Header().Set("X-RateLimit-Limit", "200,2000")
		assert.NoError(t, json.NewEncoder(w).Encode(acts))
	})

	var progress []int
	acts, err := client.GetAllActivities(context.Background(), time.Unix(1700000000, 0), func(n int) {
		progress = append(progress, n)
	})
	require.NoError(t, err)
	assert.Len(t, acts, MaxPerPage+3)
	assert.Equal(t, []int{1, 2}, pages)
	assert.Equal(t, []int{MaxPerPage, MaxPerPage + 3}, progress)

	short, daily := client.RateLimitStatus()
	assert.Equal(t, 188, short)
	assert.Equal(t, 1660, daily)
}

func TestGetActivitiesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Authorization Error"}`)
	})

	_, err := client.GetActivities(context.Background(), time.Time{}, 1, 10)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Authorization Error")
}

func TestGetActivitiesOmitsZeroAfter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("after"))
		fmt.Fprint(w, `[]`)
	})

	acts, err := client.GetActivities(context.Background(), time.Time{}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, acts)
}

func TestGetAthleteZones(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/athlete/zones", r.URL.Path)
		fmt.Fprint(w, `{"heart_rate":{"custom_zones":false,"zones":[
			{"min":0,"max":123},{"min":123,"max":153},{"min":153,"max":169},
			{"min":169,"max":184},{"min":184,"max":-1}]}}`)
	})

	zones, err := client.GetAthleteZones(context.Background())
	require.NoError(t, err)
	hr := zones.HRZones()
	require.Len(t, hr, 5)
	assert.Equal(t, ZoneRange{Min: 169, Max: 184}, hr[3])
	assert.Equal(t, -1, hr[4].Max)
}

func TestHRZonesNil(t *testing.T) {
	var z *AthleteZones
	assert.Nil(t, z.HRZones())
	assert.Nil(t, (&AthleteZones{}).HRZones())
}
