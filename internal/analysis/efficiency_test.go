package analysis

import (
	"math"
	"testing"
)

func TestCalculateAerobicEfficiency(t *testing.T) {
	ride := runHR(10, at(2024, 1, 1, 8), 30000, 3600, 140)
	ride.Type, ride.SportType = "Ride", "Ride"

	activities := []Activity{
		runHR(2, at(2024, 1, 5, 8), 10000, 3000, 150),
		runHR(1, at(2024, 1, 3, 8), 8000, 2400, 160),
		run(3, at(2024, 1, 4, 8), 10000, 3000),          // no HR
		runHR(4, at(2024, 1, 6, 8), 2500, 750, 150),     // too short
		ride,
	}

	got := CalculateAerobicEfficiency(activities)
	if len(got) != 2 {
		t.Fatalf("got %d points, want 2", len(got))
	}

	// Oldest first
	if !got[0].Date.Before(got[1].Date) {
		t.Error("points not ordered by date")
	}

	p := got[1]
	if p.Efficiency != 1.33 {
		t.Errorf("Efficiency = %v, want 1.33", p.Efficiency)
	}
	if p.PaceHRRatio != 2 {
		t.Errorf("PaceHRRatio = %v, want 2", p.PaceHRRatio)
	}
	if p.Pace != 300 || p.AvgHR != 150 {
		t.Errorf("Pace/AvgHR = %v/%v, want 300/150", p.Pace, p.AvgHR)
	}
}

func TestCalculateAerobicEfficiencyKeepsMostRecent(t *testing.T) {
	var activities []Activity
	for i := 0; i < 25; i++ {
		activities = append(activities, runHR(int64(i), at(2024, 1, i+1, 8), 10000, 3000, 150))
	}

	got := CalculateAerobicEfficiency(activities)
	if len(got) != MaxEfficiencyPoints {
		t.Fatalf("len = %d, want %d", len(got), MaxEfficiencyPoints)
	}
	if got[0].Date != at(2024, 1, 6, 8) {
		t.Errorf("first point = %v, want 2024-01-06", got[0].Date)
	}
}

func efficiencyPoints(values ...float64) []EfficiencyPoint {
	points := make([]EfficiencyPoint, len(values))
	for i, v := range values {
		points[i] = EfficiencyPoint{Date: at(2024, 1, i+1, 8), Efficiency: v}
	}
	return points
}

func TestGetEfficiencyTrend(t *testing.T) {
	t.Run("too few points", func(t *testing.T) {
		if got := GetEfficiencyTrend(efficiencyPoints(1, 1, 1, 1, 1)); got != nil {
			t.Errorf("GetEfficiencyTrend(5 points) = %+v, want nil", got)
		}
		if got := GetEfficiencyTrend(nil); got != nil {
			t.Errorf("GetEfficiencyTrend(nil) = %+v, want nil", got)
		}
	})

	t.Run("improving", func(t *testing.T) {
		got := GetEfficiencyTrend(efficiencyPoints(1.2, 1.2, 1.2, 1.2, 1.2, 1.32, 1.32, 1.32, 1.32, 1.32))
		if got == nil {
			t.Fatal("expected a trend")
		}
		if got.Current != 1.32 || got.Previous != 1.2 {
			t.Errorf("Current/Previous = %v/%v, want 1.32/1.2", got.Current, got.Previous)
		}
		if math.Abs(got.Change-10.0) > 1e-9 || !got.Improving {
			t.Errorf("Change = %v improving=%v, want 10 improving", got.Change, got.Improving)
		}
	})

	t.Run("declining with a short history", func(t *testing.T) {
		got := GetEfficiencyTrend(efficiencyPoints(1.5, 1.2, 1.2, 1.2, 1.2, 1.2))
		if got == nil {
			t.Fatal("expected a trend")
		}
		if got.Previous != 1.5 || got.Improving {
			t.Errorf("got %+v, want previous 1.5 and declining", got)
		}
		if math.Abs(got.Change-(-20.0)) > 1e-9 {
			t.Errorf("Change = %v, want -20", got.Change)
		}
	})

	t.Run("only compares the last ten", func(t *testing.T) {
		got := GetEfficiencyTrend(efficiencyPoints(9, 9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1))
		if got == nil || got.Change != 0 || got.Improving {
			t.Errorf("got %+v, want flat trend", got)
		}
	})
}
