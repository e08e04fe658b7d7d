package service

import "time"

const (
	// Zone heuristic: the top zone's lower bound sits roughly this far below max HR
	TopZoneHeadroom = 20
	// Zone index whose lower bound approximates lactate threshold
	ThresholdZoneIndex = 3

	// Premium stats look back this far by default
	PremiumWindowDays = 90

	// Cache keys
	cacheKeyActivities  = "activities"
	cacheKeyPerformance = "performance"
	cacheKeyPremium     = "premium"
	cacheKeyTrends      = "trends"

	// How often expired cache entries are purged
	cacheCleanupInterval = 10 * time.Minute
)
