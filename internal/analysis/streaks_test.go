package analysis

import "testing"

func daily(days ...int) []Activity {
	var activities []Activity
	for i, d := range days {
		activities = append(activities, run(int64(i), at(2024, 1, d, 7), 5000, 1500))
	}
	return activities
}

func TestCalculateStreaks(t *testing.T) {
	tests := []struct {
		name       string
		activities []Activity
		today      int
		current    int
		longest    int
	}{
		{"five consecutive days ending today", daily(1, 2, 3, 4, 5), 5, 5, 5},
		{"last activity yesterday", daily(1, 2, 3, 4), 5, 4, 4},
		{"last activity two days ago", daily(1, 2, 3), 5, 0, 3},
		{"gap in the middle", daily(1, 2, 3, 5, 6), 6, 2, 3},
		{"same day twice", daily(4, 5, 5), 5, 2, 2},
		{"single day", daily(10), 20, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStreaks(tt.activities, at(2024, 1, tt.today, 20))
			if got.CurrentStreak != tt.current {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.current)
			}
			if got.LongestStreak != tt.longest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.longest)
			}
		})
	}
}

func TestCalculateStreaksCounts(t *testing.T) {
	got := CalculateStreaks(daily(1, 2, 3, 4, 5), at(2024, 1, 5, 20))

	if got.ThisWeekActivities != 5 || got.ThisMonthActivities != 5 {
		t.Errorf("week/month = %d/%d, want 5/5", got.ThisWeekActivities, got.ThisMonthActivities)
	}
	// 5 activities over 4 weeks against an ideal of 4 a week
	if got.ConsistencyScore != 31 {
		t.Errorf("ConsistencyScore = %d, want 31", got.ConsistencyScore)
	}
}

func TestCalculateStreaksConsistencyCapped(t *testing.T) {
	var days []int
	for d := 1; d <= 28; d++ {
		days = append(days, d)
	}

	got := CalculateStreaks(daily(days...), at(2024, 1, 28, 20))
	if got.ConsistencyScore != 100 {
		t.Errorf("ConsistencyScore = %d, want 100", got.ConsistencyScore)
	}
	if got.CurrentStreak != 28 || got.LongestStreak != 28 {
		t.Errorf("streaks = %d/%d, want 28/28", got.CurrentStreak, got.LongestStreak)
	}
}

func TestCalculateStreaksEmpty(t *testing.T) {
	if got := CalculateStreaks(nil, at(2024, 1, 5, 12)); got != (StreakData{}) {
		t.Errorf("CalculateStreaks(nil) = %+v, want zero value", got)
	}
}
