package analysis

import (
	"math"
	"sort"
	"time"
)

// Consistency is scored against this many activities per week
const idealActivitiesPerWeek = 4

// StreakData summarizes how regularly the athlete trains
type StreakData struct {
	CurrentStreak       int `json:"currentStreak"`
	LongestStreak       int `json:"longestStreak"`
	ThisWeekActivities  int `json:"thisWeekActivities"`
	ThisMonthActivities int `json:"thisMonthActivities"`
	ConsistencyScore    int `json:"consistencyScore"` // 0-100
}

// CalculateStreaks finds consecutive training days and scores consistency.
// The current streak only counts when the latest activity was today or
// yesterday.
func CalculateStreaks(activities []Activity, now time.Time) StreakData {
	if len(activities) == 0 {
		return StreakData{}
	}

	days := uniqueDays(activities)

	today := civilDay(now)
	yesterday := today.AddDate(0, 0, -1)

	var current int
	last := days[len(days)-1]
	if last.Equal(today) || last.Equal(yesterday) {
		current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if !days[i].AddDate(0, 0, 1).Equal(days[i+1]) {
				break
			}
			current++
		}
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	weekAgo := now.AddDate(0, 0, -7)
	consistencyFrom := now.AddDate(0, 0, -28)
	monthAgo := now.AddDate(0, 0, -30)

	var week, month, trailing28 int
	for _, a := range activities {
		if !a.StartDate.Before(weekAgo) {
			week++
		}
		if !a.StartDate.Before(consistencyFrom) {
			trailing28++
		}
		if !a.StartDate.Before(monthAgo) {
			month++
		}
	}

	perWeek := float64(trailing28) / 4
	score := int(math.Min(100, math.Round(perWeek/idealActivitiesPerWeek*100)))

	return StreakData{
		CurrentStreak:       current,
		LongestStreak:       longest,
		ThisWeekActivities:  week,
		ThisMonthActivities: month,
		ConsistencyScore:    score,
	}
}

// uniqueDays returns the distinct calendar days of activities, sorted
func uniqueDays(activities []Activity) []time.Time {
	seen := make(map[time.Time]bool, len(activities))
	var days []time.Time
	for _, a := range activities {
		d := civilDay(a.StartDate)
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// civilDay drops the clock and zone of t, keeping its calendar date
func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
