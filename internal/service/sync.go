package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/aluqhof/stridelab/internal/logging"
	"github.com/aluqhof/stridelab/internal/store"
	"github.com/aluqhof/stridelab/internal/strava"
)

// Sync phases
const (
	PhaseActivities = "activities"
	PhaseZones      = "zones"
	PhaseDone       = "done"
)

// SyncService orchestrates syncing data from Strava into the local store
type SyncService struct {
	client     *strava.Client
	store      *store.DB
	log        *logrus.Entry
	now        func() time.Time
	onComplete []func()
}

// NewSyncService creates a new sync service
func NewSyncService(client *strava.Client, db *store.DB) *SyncService {
	return &SyncService{
		client: client,
		store:  db,
		log:    logging.Component("sync"),
		now:    time.Now,
	}
}

// OnComplete registers fn to run after every sync that stored data
func (s *SyncService) OnComplete(fn func()) {
	s.onComplete = append(s.onComplete, fn)
}

// SyncProgress reports progress during sync
type SyncProgress struct {
	Phase   string
	Fetched int
	Stored  int
}

// SyncResult contains the results of a sync operation.
// Errors aggregates per-item failures that did not stop the sync.
type SyncResult struct {
	ActivitiesFetched int
	ActivitiesStored  int
	ZonesStored       int
	Incremental       bool
	Since             time.Time
	Duration          time.Duration
	Errors            error
}

// ErrorList returns the individual non-fatal errors
func (r *SyncResult) ErrorList() []error {
	return multierr.Errors(r.Errors)
}

// SyncAll fetches new activities and the athlete's heart rate zones.
// progress, when non-nil, is closed on return.
func (s *SyncService) SyncAll(ctx context.Context, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	started := s.now()
	result := &SyncResult{}

	if err := s.syncActivities(ctx, progress, result); err != nil {
		s.notify(result)
		return result, fmt.Errorf("syncing activities: %w", err)
	}

	s.syncZones(ctx, progress, result)

	if err := s.store.SetLastSync(s.now()); err != nil {
		result.Errors = multierr.Append(result.Errors, fmt.Errorf("recording sync time: %w", err))
	}

	result.Duration = s.now().Sub(started)
	s.send(ctx, progress, SyncProgress{Phase: PhaseDone, Fetched: result.ActivitiesFetched, Stored: result.ActivitiesStored})

	s.log.WithFields(logrus.Fields{
		"fetched":  result.ActivitiesFetched,
		"stored":   result.ActivitiesStored,
		"zones":    result.ZonesStored,
		"errors":   len(result.ErrorList()),
		"duration": result.Duration,
	}).Info("sync finished")

	s.notify(result)
	return result, nil
}

func (s *SyncService) notify(result *SyncResult) {
	if result.ActivitiesStored == 0 && result.ZonesStored == 0 {
		return
	}
	for _, fn := range s.onComplete {
		fn()
	}
}

// syncActivities fetches activities newer than the newest cached one
func (s *SyncService) syncActivities(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	after, ok, err := s.store.LatestActivityDate()
	if err != nil {
		return fmt.Errorf("reading latest activity: %w", err)
	}
	result.Incremental = ok
	result.Since = after

	s.send(ctx, progress, SyncProgress{Phase: PhaseActivities})

	activities, fetchErr := s.client.GetAllActivities(ctx, after, func(fetched int) {
		s.send(ctx, progress, SyncProgress{Phase: PhaseActivities, Fetched: fetched})
	})
	result.ActivitiesFetched = len(activities)

	// Keep whatever arrived before a failure
	for _, a := range activities {
		if err := s.store.UpsertActivity(convertActivity(a)); err != nil {
			result.Errors = multierr.Append(result.Errors, fmt.Errorf("storing activity %d: %w", a.ID, err))
			continue
		}
		result.ActivitiesStored++
	}

	s.send(ctx, progress, SyncProgress{Phase: PhaseActivities, Fetched: result.ActivitiesFetched, Stored: result.ActivitiesStored})
	return fetchErr
}

// syncZones refreshes the cached heart rate zones. Failures are non-fatal
// since zone data only refines the heuristic defaults.
func (s *SyncService) syncZones(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) {
	s.send(ctx, progress, SyncProgress{Phase: PhaseZones, Fetched: result.ActivitiesFetched, Stored: result.ActivitiesStored})

	zones, err := s.client.GetAthleteZones(ctx)
	if err != nil {
		s.log.WithError(err).Warn("athlete zones unavailable")
		result.Errors = multierr.Append(result.Errors, err)
		return
	}

	ranges := zones.HRZones()
	if len(ranges) == 0 {
		return
	}
	if err := s.store.SaveHRZones(convertZones(ranges)); err != nil {
		result.Errors = multierr.Append(result.Errors, fmt.Errorf("saving zones: %w", err))
		return
	}
	result.ZonesStored = len(ranges)
}

func (s *SyncService) send(ctx context.Context, progress chan<- SyncProgress, p SyncProgress) {
	if progress == nil {
		return
	}
	select {
	case progress <- p:
	case <-ctx.Done():
	}
}

// LastSync returns when the last sync finished, or the zero time
func (s *SyncService) LastSync() (time.Time, error) {
	return s.store.LastSync()
}

// RateLimitStatus returns the current rate limit status from the client
func (s *SyncService) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return s.client.RateLimitStatus()
}
