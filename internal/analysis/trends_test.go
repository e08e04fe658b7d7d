package analysis

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{at(2024, 3, 27, 15), at(2024, 3, 25, 0)}, // Wednesday
		{at(2024, 3, 25, 0), at(2024, 3, 25, 0)},  // Monday
		{at(2024, 3, 24, 23), at(2024, 3, 18, 0)}, // Sunday
	}

	for _, tt := range tests {
		if got := StartOfWeek(tt.in); !got.Equal(tt.want) {
			t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWeeklyTrends(t *testing.T) {
	now := at(2024, 3, 27, 12)
	zones := DefaultZones()

	ride := Activity{ID: 9, Type: "Ride", SportType: "Ride", StartDate: at(2024, 3, 26, 18), Distance: 20000, MovingTime: 3600}
	hilly := runHR(1, at(2024, 3, 25, 6), 10000, 3000, 150)
	hilly.TotalElevationGain = 100

	activities := []Activity{
		hilly,
		ride,
		run(2, time.Date(2024, 3, 24, 20, 0, 0, 0, time.UTC), 5000, 1500),
	}

	weeks := WeeklyTrends(activities, zones, 2, now)
	if len(weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(weeks))
	}

	prev, cur := weeks[0], weeks[1]
	if !prev.WeekStart.Equal(at(2024, 3, 18, 0)) || !cur.WeekStart.Equal(at(2024, 3, 25, 0)) {
		t.Errorf("week starts = %v, %v", prev.WeekStart, cur.WeekStart)
	}
	if cur.Label != "25/03" {
		t.Errorf("Label = %q, want 25/03", cur.Label)
	}

	if cur.Distance != 30000 || cur.Time != 6600 || cur.Activities != 2 {
		t.Errorf("current week totals = %v/%v/%v, want 30000/6600/2", cur.Distance, cur.Time, cur.Activities)
	}
	if cur.AvgPace != 300 {
		t.Errorf("AvgPace = %v, want 300 (runs only)", cur.AvgPace)
	}
	if cur.AvgHR != 150 || cur.Elevation != 100 {
		t.Errorf("AvgHR/Elevation = %v/%v, want 150/100", cur.AvgHR, cur.Elevation)
	}
	if want := CalculateHRTSS(3000, 150, 165, 190, 60); cur.TSS != want {
		t.Errorf("TSS = %v, want %v", cur.TSS, want)
	}

	if prev.Activities != 1 || prev.Distance != 5000 || prev.AvgHR != 0 {
		t.Errorf("previous week = %+v", prev)
	}
}

func TestMonthlyTrends(t *testing.T) {
	now := at(2024, 3, 15, 12)
	activities := []Activity{
		run(1, at(2024, 1, 31, 23), 10000, 3000),
		run(2, at(2024, 2, 1, 0), 12000, 3600),
		run(3, at(2024, 3, 10, 8), 8000, 2400),
		run(4, at(2023, 12, 31, 8), 8000, 2400),
	}

	months := MonthlyTrends(activities, 3, now)
	if len(months) != 3 {
		t.Fatalf("got %d months, want 3", len(months))
	}

	wantLabels := []string{"Jan 24", "Feb 24", "Mar 24"}
	wantDistance := []float64{10000, 12000, 8000}
	for i, m := range months {
		if m.Label != wantLabels[i] {
			t.Errorf("month[%d].Label = %q, want %q", i, m.Label, wantLabels[i])
		}
		if m.Distance != wantDistance[i] || m.Activities != 1 {
			t.Errorf("month[%d] = %v over %d, want %v over 1", i, m.Distance, m.Activities, wantDistance[i])
		}
		if m.AvgPace != 300 {
			t.Errorf("month[%d].AvgPace = %v, want 300", i, m.AvgPace)
		}
	}
}

func TestComparePeriods(t *testing.T) {
	current := []Activity{
		run(1, at(2024, 3, 1, 8), 10000, 3000),
		run(2, at(2024, 3, 2, 8), 20000, 6000),
	}
	previous := []Activity{run(3, at(2024, 2, 1, 8), 20000, 6000)}

	got := ComparePeriods(current, previous)
	if got.DistanceChange != 50 || got.TimeChange != 50 || got.ActivitiesChange != 100 {
		t.Errorf("changes = %d/%d/%d, want 50/50/100", got.DistanceChange, got.TimeChange, got.ActivitiesChange)
	}

	empty := ComparePeriods(current, nil)
	if empty.DistanceChange != 0 || empty.TimeChange != 0 || empty.ActivitiesChange != 0 {
		t.Errorf("changes against an empty period = %+v, want zeros", empty)
	}
	if empty.Current.Distance != 30000 {
		t.Errorf("Current.Distance = %v, want 30000", empty.Current.Distance)
	}
}

func TestMonthOverMonth(t *testing.T) {
	activities := []Activity{
		run(1, at(2024, 3, 2, 8), 10000, 3000),
		run(2, at(2024, 2, 10, 8), 10000, 3000),
		run(3, at(2024, 2, 28, 8), 10000, 3000),
		run(4, at(2024, 1, 31, 8), 10000, 3000),
	}

	got := MonthOverMonth(activities, at(2024, 3, 15, 12))
	if got.Current.Activities != 1 || got.Previous.Activities != 2 {
		t.Errorf("activities = %d vs %d, want 1 vs 2", got.Current.Activities, got.Previous.Activities)
	}
	if got.ActivitiesChange != -50 {
		t.Errorf("ActivitiesChange = %d, want -50", got.ActivitiesChange)
	}
}

func TestDayOfWeekBreakdown(t *testing.T) {
	ride := Activity{Type: "Ride", StartDate: at(2024, 3, 25, 18), Distance: 30000, MovingTime: 3600}
	activities := []Activity{
		run(1, at(2024, 3, 25, 7), 10000, 3000), // Monday
		run(2, at(2024, 3, 18, 7), 10000, 2400), // Monday
		ride,                                    // Monday
		run(3, at(2024, 3, 24, 7), 5000, 1500),  // Sunday
	}

	got := DayOfWeekBreakdown(activities)
	if len(got) != 7 {
		t.Fatalf("got %d days, want 7", len(got))
	}
	if got[0].Day != time.Monday || got[0].DayName != "Mon" || got[6].Day != time.Sunday {
		t.Errorf("unexpected day order: %v ... %v", got[0].DayName, got[6].DayName)
	}

	mon := got[0]
	if mon.Count != 3 || mon.Distance != 50000 {
		t.Errorf("Monday = %d activities, %vm, want 3, 50000m", mon.Count, mon.Distance)
	}
	if mon.AvgPace != 270 {
		t.Errorf("Monday AvgPace = %v, want 270", mon.AvgPace)
	}
	if got[1].Count != 0 || got[1].AvgPace != 0 {
		t.Errorf("Tuesday = %+v, want empty", got[1])
	}
}

func TestTimeOfDayBreakdown(t *testing.T) {
	activities := []Activity{
		runHR(1, at(2024, 3, 25, 7), 10000, 3000, 150),
		run(2, at(2024, 3, 26, 7), 10000, 2400),
		runHR(3, at(2024, 3, 27, 18), 5000, 1500, 160),
	}

	got := TimeOfDayBreakdown(activities)
	if len(got) != 2 {
		t.Fatalf("got %d hours, want 2", len(got))
	}
	if got[0].Hour != 7 || got[0].Count != 2 || got[0].AvgPace != 270 || got[0].AvgHR != 150 {
		t.Errorf("07:00 = %+v", got[0])
	}
	if got[1].Hour != 18 || got[1].AvgHR != 160 {
		t.Errorf("18:00 = %+v", got[1])
	}
}
