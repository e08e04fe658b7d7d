package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/aluqhof/stridelab/internal/analysis"
	"github.com/aluqhof/stridelab/internal/config"
	"github.com/aluqhof/stridelab/internal/logging"
	"github.com/aluqhof/stridelab/internal/store"
)

// PerformanceReport covers fitness level, race predictions and training load
type PerformanceReport struct {
	VDOT            float64                        `json:"vdot"`
	VDOTLabel       string                         `json:"vdotLabel"`
	VDOTConfidence  int                            `json:"vdotConfidence"`
	EffortsUsed     int                            `json:"effortsUsed"`
	RacePredictions map[string]int                 `json:"racePredictions"`
	Adjustments     map[string]analysis.Adjustment `json:"adjustments"`
	TrainingContext analysis.TrainingContext       `json:"trainingContext"`
	TrainingPaces   *analysis.TrainingPaces        `json:"trainingPaces"`
	BestEfforts     []analysis.RangedEffort        `json:"bestEfforts"`
	FitnessHistory  []analysis.FitnessPoint        `json:"fitnessHistory"`
	CurrentFitness  analysis.FitnessPoint          `json:"currentFitness"`
	Form            string                         `json:"form"`
	Zones           analysis.HRZones               `json:"zones"`
}

// PremiumReport covers records, injury risk, efficiency and consistency
type PremiumReport struct {
	PersonalRecords      []analysis.PersonalRecord     `json:"personalRecords"`
	InjuryRisk           analysis.InjuryRisk           `json:"injuryRisk"`
	EfficiencyData       []analysis.EfficiencyPoint    `json:"efficiencyData"`
	EfficiencyTrend      *analysis.EfficiencyTrend     `json:"efficiencyTrend"`
	TrainingDistribution analysis.TrainingDistribution `json:"trainingDistribution"`
	Streaks              analysis.StreakData           `json:"streaks"`
	MonthComparison      analysis.PeriodComparison     `json:"monthComparison"`
}

// TrendsReport covers volume over time and training habits
type TrendsReport struct {
	Weekly         []analysis.WeekSummary   `json:"weekly"`
	Monthly        []analysis.MonthSummary  `json:"monthly"`
	DayOfWeek      []analysis.DayOfWeekStat `json:"dayOfWeek"`
	TimeOfDay      []analysis.HourStat      `json:"timeOfDay"`
	EstimatedMaxHR float64                  `json:"estimatedMaxHR"`
	ZoneWeeks      []analysis.ZoneWeek      `json:"zoneWeeks"`
	Balance        analysis.TrainingBalance `json:"balance"`
	Goals          []analysis.Goal          `json:"goals"`
}

// Report bundles every section
type Report struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Activities  int                `json:"activities"`
	Performance *PerformanceReport `json:"performance"`
	Premium     *PremiumReport     `json:"premium"`
	Trends      *TrendsReport      `json:"trends"`
}

// ReportService builds reports from the local store and caches them
type ReportService struct {
	store   *store.DB
	athlete config.AthleteConfig
	days    int
	cache   *cache.Cache
	log     *logrus.Entry
	now     func() time.Time
}

// NewReportService creates a report service. days is the fitness window.
func NewReportService(db *store.DB, athlete config.AthleteConfig, analysisCfg config.AnalysisConfig) *ReportService {
	days := analysisCfg.FitnessDays
	if days <= 0 {
		days = analysis.DefaultHistoryDays
	}
	return &ReportService{
		store:   db,
		athlete: athlete,
		days:    days,
		cache:   cache.New(analysisCfg.CacheTTL(), cacheCleanupInterval),
		log:     logging.Component("report"),
		now:     time.Now,
	}
}

// Invalidate drops every cached report
func (r *ReportService) Invalidate() {
	r.cache.Flush()
	r.log.Debug("report cache invalidated")
}

// FitnessDays returns the fitness history window in days
func (r *ReportService) FitnessDays() int {
	return r.days
}

// Zones resolves heart rate settings from cached Strava zones and config
func (r *ReportService) Zones() (analysis.HRZones, error) {
	bounds, err := r.store.GetHRZones()
	if err != nil && !errors.Is(err, store.ErrNoZones) {
		return analysis.HRZones{}, fmt.Errorf("loading zones: %w", err)
	}
	return ZonesFromBoundaries(bounds, r.athlete), nil
}

// Activities returns every cached activity in the analytics model
func (r *ReportService) Activities() ([]analysis.Activity, error) {
	if v, ok := r.cache.Get(cacheKeyActivities); ok {
		return v.([]analysis.Activity), nil
	}

	stored, err := r.store.ListActivitiesSince(time.Time{})
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	acts := toAnalysis(stored)
	r.cache.SetDefault(cacheKeyActivities, acts)
	return acts, nil
}

// cached returns the value under key, building and storing it on a miss
func cached[T any](r *ReportService, key string, build func() (T, error)) (T, error) {
	if v, ok := r.cache.Get(key); ok {
		return v.(T), nil
	}

	start := time.Now()
	v, err := build()
	if err != nil {
		return v, err
	}
	r.cache.SetDefault(key, v)
	r.log.WithFields(logrus.Fields{"report": key, "took": time.Since(start)}).Debug("report built")
	return v, nil
}

// inputs loads activities and zones plus the reference time
func (r *ReportService) inputs() ([]analysis.Activity, analysis.HRZones, time.Time, error) {
	acts, err := r.Activities()
	if err != nil {
		return nil, analysis.HRZones{}, time.Time{}, err
	}
	zones, err := r.Zones()
	if err != nil {
		return nil, analysis.HRZones{}, time.Time{}, err
	}
	return acts, zones, wallClock(r.now()), nil
}

// Performance builds the VDOT, prediction and fitness report
func (r *ReportService) Performance() (*PerformanceReport, error) {
	return cached(r, cacheKeyPerformance, func() (*PerformanceReport, error) {
		acts, zones, now, err := r.inputs()
		if err != nil {
			return nil, err
		}
		recent := since(acts, now.AddDate(0, 0, -r.days))

		efforts := analysis.FindBestEfforts(recent, analysis.DefaultMinEffortDistance)
		estimate := analysis.CalculateWeightedVDOT(efforts)

		history := analysis.BuildFitnessHistory(acts, zones, r.days, now)
		current := analysis.CurrentFitness(history)

		trainingCtx := analysis.AnalyzeTrainingContext(recent, current.TSB, now)
		predictions := analysis.CalculateWeightedPredictions(efforts, &trainingCtx)

		var paces *analysis.TrainingPaces
		if estimate.VDOT > 0 {
			paces = analysis.GetTrainingPaces(estimate.VDOT)
		}

		return &PerformanceReport{
			VDOT:            estimate.VDOT,
			VDOTLabel:       analysis.GetVDOTLabel(estimate.VDOT),
			VDOTConfidence:  estimate.Confidence,
			EffortsUsed:     estimate.EffortsUsed,
			RacePredictions: predictions.Predictions,
			Adjustments:     predictions.Adjustments,
			TrainingContext: trainingCtx,
			TrainingPaces:   paces,
			BestEfforts:     estimate.UsedEfforts,
			FitnessHistory:  history,
			CurrentFitness:  current,
			Form:            analysis.FormDescription(current.TSB),
			Zones:           zones,
		}, nil
	})
}

// Premium builds the records, injury risk, efficiency and streak report
func (r *ReportService) Premium() (*PremiumReport, error) {
	return cached(r, cacheKeyPremium, func() (*PremiumReport, error) {
		acts, zones, now, err := r.inputs()
		if err != nil {
			return nil, err
		}
		recent := since(acts, now.AddDate(0, 0, -PremiumWindowDays))

		efficiency := analysis.CalculateAerobicEfficiency(recent)

		return &PremiumReport{
			PersonalRecords:      analysis.FindPersonalRecords(acts),
			InjuryRisk:           analysis.CalculateACWR(recent, zones, now),
			EfficiencyData:       efficiency,
			EfficiencyTrend:      analysis.GetEfficiencyTrend(efficiency),
			TrainingDistribution: analysis.AnalyzeTrainingDistribution(recent, zones.MaxHR),
			Streaks:              analysis.CalculateStreaks(recent, now),
			MonthComparison:      analysis.MonthOverMonth(acts, now),
		}, nil
	})
}

// Trends builds the weekly, monthly and habit report
func (r *ReportService) Trends() (*TrendsReport, error) {
	return cached(r, cacheKeyTrends, func() (*TrendsReport, error) {
		acts, zones, now, err := r.inputs()
		if err != nil {
			return nil, err
		}

		maxHR := analysis.EstimateMaxHR(acts)
		zoneWeeks := analysis.WeeklyZoneDistribution(acts, maxHR, analysis.DefaultZoneWeeks, now)

		return &TrendsReport{
			Weekly:         analysis.WeeklyTrends(acts, zones, analysis.DefaultTrendWeeks, now),
			Monthly:        analysis.MonthlyTrends(acts, analysis.DefaultTrendMonths, now),
			DayOfWeek:      analysis.DayOfWeekBreakdown(acts),
			TimeOfDay:      analysis.TimeOfDayBreakdown(acts),
			EstimatedMaxHR: maxHR,
			ZoneWeeks:      zoneWeeks,
			Balance:        analysis.AnalyzeTrainingBalance(zoneWeeks),
			Goals:          analysis.SuggestGoals(acts, zones, now),
		}, nil
	})
}

// Full builds every report section
func (r *ReportService) Full() (*Report, error) {
	acts, err := r.Activities()
	if err != nil {
		return nil, err
	}
	perf, err := r.Performance()
	if err != nil {
		return nil, fmt.Errorf("building performance report: %w", err)
	}
	premium, err := r.Premium()
	if err != nil {
		return nil, fmt.Errorf("building premium report: %w", err)
	}
	trends, err := r.Trends()
	if err != nil {
		return nil, fmt.Errorf("building trends report: %w", err)
	}

	return &Report{
		GeneratedAt: r.now(),
		Activities:  len(acts),
		Performance: perf,
		Premium:     premium,
		Trends:      trends,
	}, nil
}

// since returns the activities starting at or after from
func since(activities []analysis.Activity, from time.Time) []analysis.Activity {
	out := make([]analysis.Activity, 0, len(activities))
	for _, a := range activities {
		if !a.StartDate.Before(from) {
			out = append(out, a)
		}
	}
	return out
}
