package analysis

import (
	"math"
	"testing"
)

func TestDefaultZones(t *testing.T) {
	zones := DefaultZones()

	if zones.RestingHR != 60 {
		t.Errorf("DefaultZones().RestingHR = %v, want 60", zones.RestingHR)
	}
	if zones.MaxHR != 190 {
		t.Errorf("DefaultZones().MaxHR = %v, want 190", zones.MaxHR)
	}
	if zones.ThresholdHR != 165 {
		t.Errorf("DefaultZones().ThresholdHR = %v, want 165", zones.ThresholdHR)
	}
}

func TestHRZonesWithDefaults(t *testing.T) {
	got := HRZones{MaxHR: 200}.WithDefaults()
	want := HRZones{RestingHR: 60, MaxHR: 200, ThresholdHR: 165}
	if got != want {
		t.Errorf("WithDefaults() = %+v, want %+v", got, want)
	}
}

func TestCalculateHRTSS(t *testing.T) {
	tests := []struct {
		name                          string
		duration, avg, thr, max, rest float64
		want                          float64
	}{
		{"one hour at threshold", 3600, 165, 165, 190, 60, 100},
		{"half hour at threshold", 1800, 165, 165, 190, 60, 50},
		{"one hour easy", 3600, 140, 165, 190, 60, 58},
		{"max equals rest", 3600, 150, 165, 60, 60, 0},
		{"threshold equals rest", 3600, 150, 60, 190, 60, 0},
		{"at resting HR", 3600, 60, 165, 190, 60, 0},
		{"zero duration", 0, 150, 165, 190, 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHRTSS(tt.duration, tt.avg, tt.thr, tt.max, tt.rest)
			if got != tt.want {
				t.Errorf("CalculateHRTSS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateTRIMP(t *testing.T) {
	if got := CalculateTRIMP(60, 150, 190, 60, Male); got != 100 {
		t.Errorf("CalculateTRIMP(male) = %v, want 100", got)
	}
	if got := CalculateTRIMP(60, 150, 190, 60, Female); got != 84 {
		t.Errorf("CalculateTRIMP(female) = %v, want 84", got)
	}
	if got := CalculateTRIMP(60, 150, 60, 60, Male); got != 0 {
		t.Errorf("CalculateTRIMP with zero HR reserve = %v, want 0", got)
	}
}

func TestActivityTSS(t *testing.T) {
	zones := DefaultZones()

	if _, ok := ActivityTSS(run(1, at(2024, 1, 1, 8), 10000, 3600), zones); ok {
		t.Error("ActivityTSS should report false without heart rate")
	}

	tss, ok := ActivityTSS(runHR(1, at(2024, 1, 1, 8), 10000, 3600, 165), zones)
	if !ok || tss != 100 {
		t.Errorf("ActivityTSS() = %v, %v, want 100, true", tss, ok)
	}
}

func TestCalculateCTLAndATL(t *testing.T) {
	daily := make([]float64, 42)
	for i := range daily {
		daily[i] = 100
	}

	if got := CalculateCTL(daily, 0); math.Abs(got-63.7) > 0.05 {
		t.Errorf("CalculateCTL(42 x 100) = %v, want 63.7", got)
	}
	if got := CalculateATL(daily[:7], 0); math.Abs(got-66.0) > 0.05 {
		t.Errorf("CalculateATL(7 x 100) = %v, want 66.0", got)
	}
	if got := CalculateCTL(nil, 42.5); got != 42.5 {
		t.Errorf("CalculateCTL(nil, 42.5) = %v, want 42.5", got)
	}
}

func TestCalculateTSB(t *testing.T) {
	pairs := [][2]float64{{0, 0}, {50, 60}, {63.7, 12.1}, {-3, 4.5}}
	for _, p := range pairs {
		if got := CalculateTSB(p[0], p[1]); got != p[0]-p[1] {
			t.Errorf("CalculateTSB(%v, %v) = %v, want %v", p[0], p[1], got, p[0]-p[1])
		}
	}
}

func TestBuildFitnessHistory(t *testing.T) {
	now := at(2024, 3, 31, 18)
	zones := DefaultZones()

	activities := []Activity{
		runHR(1, at(2024, 3, 1, 7), 10000, 3600, 165),
		runHR(2, at(2024, 3, 15, 7), 15000, 5400, 150),
		runHR(3, at(2024, 3, 15, 18), 5000, 1500, 170), // same day, summed
		run(4, at(2024, 3, 20, 7), 8000, 2800),         // no HR
		runHR(5, at(2023, 10, 1, 7), 10000, 3600, 165), // outside window
	}

	history := BuildFitnessHistory(activities, zones, 90, now)

	if len(history) != 91 {
		t.Fatalf("len(history) = %d, want 91", len(history))
	}
	if history[0].Date != "2024-01-01" {
		t.Errorf("first date = %s, want 2024-01-01", history[0].Date)
	}
	if history[90].Date != "2024-03-31" {
		t.Errorf("last date = %s, want 2024-03-31", history[90].Date)
	}

	for _, p := range history {
		if math.Abs(p.TSB-(p.CTL-p.ATL)) > 1e-9 {
			t.Errorf("%s: TSB %v != CTL %v - ATL %v", p.Date, p.TSB, p.CTL, p.ATL)
		}
	}

	byDate := make(map[string]FitnessPoint)
	for _, p := range history {
		byDate[p.Date] = p
	}
	if got := byDate["2024-03-01"].TSS; got != 100 {
		t.Errorf("TSS on 2024-03-01 = %v, want 100", got)
	}
	sameDay := CalculateHRTSS(5400, 150, 165, 190, 60) + CalculateHRTSS(1500, 170, 165, 190, 60)
	if got := byDate["2024-03-15"].TSS; got != sameDay {
		t.Errorf("TSS on 2024-03-15 = %v, want %v", got, sameDay)
	}
	if got := byDate["2024-03-20"].TSS; got != 0 {
		t.Errorf("TSS on 2024-03-20 = %v, want 0 for activity without HR", got)
	}

	// Load decays on rest days
	if byDate["2024-03-02"].CTL >= byDate["2024-03-01"].CTL {
		t.Errorf("CTL did not decay after rest day: %v -> %v", byDate["2024-03-01"].CTL, byDate["2024-03-02"].CTL)
	}
}

func TestBuildFitnessHistoryNoTraining(t *testing.T) {
	history := BuildFitnessHistory(nil, DefaultZones(), 30, at(2024, 3, 31, 12))

	if len(history) != 31 {
		t.Fatalf("len(history) = %d, want 31", len(history))
	}
	for _, p := range history {
		if p.CTL != 0 || p.ATL != 0 || p.TSB != 0 || p.TSS != 0 {
			t.Errorf("%s: expected zero fitness, got %+v", p.Date, p)
		}
	}
}

func TestBuildFitnessHistoryDecaysToBaseline(t *testing.T) {
	now := at(2024, 12, 31, 12)
	activities := []Activity{runHR(1, at(2024, 1, 1, 7), 20000, 7200, 165)}

	history := BuildFitnessHistory(activities, DefaultZones(), 365, now)
	if history[0].Date != "2024-01-01" || history[0].TSS == 0 {
		t.Fatalf("expected load on the first day, got %+v", history[0])
	}

	last := CurrentFitness(history)
	if last.CTL > 0.1 || last.ATL != 0 {
		t.Errorf("expected fitness to decay towards 0 after a year, got %+v", last)
	}
}

func TestCurrentFitness(t *testing.T) {
	if got := CurrentFitness(nil); got != (FitnessPoint{}) {
		t.Errorf("CurrentFitness(nil) = %+v, want zero value", got)
	}

	history := []FitnessPoint{{Date: "2024-01-01", CTL: 1}, {Date: "2024-01-02", CTL: 2}}
	if got := CurrentFitness(history); got.Date != "2024-01-02" {
		t.Errorf("CurrentFitness() = %+v, want last point", got)
	}
}

func TestFormDescription(t *testing.T) {
	tests := []struct {
		tsb  float64
		want string
	}{
		{30, "Very fresh (possibly detrained)"},
		{15, "Fresh and ready to race"},
		{5, "Neutral - good for training"},
		{-5, "Slightly fatigued"},
		{-20, "Tired but building fitness"},
		{-30, "Very fatigued - rest needed"},
	}

	for _, tt := range tests {
		if got := FormDescription(tt.tsb); got != tt.want {
			t.Errorf("FormDescription(%v) = %q, want %q", tt.tsb, got, tt.want)
		}
	}
}
