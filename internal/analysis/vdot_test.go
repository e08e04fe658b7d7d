package analysis

import (
	"math"
	"testing"
)

func TestCalculateVDOT(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		seconds   float64
		want      float64
		tolerance float64
	}{
		{"5K in 20:00", Distance5K, 1200, 49.8, 0.05},
		{"10K in 40:00", Distance10K, 2400, 51.9, 0.05},
		{"half marathon in 1:30:00", DistanceHalfMara, 5400, 51.0, 0.05},
		{"zero time", Distance5K, 0, 0, 0},
		{"negative time", Distance5K, -10, 0, 0},
		{"zero distance", 0, 1200, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVDOT(tt.distance, tt.seconds)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("CalculateVDOT(%v, %v) = %v, want %v", tt.distance, tt.seconds, got, tt.want)
			}
		})
	}
}

func TestCalculateVDOTBounds(t *testing.T) {
	got := CalculateVDOT(5000, 1200)
	if got < 40 || got > 55 {
		t.Errorf("CalculateVDOT(5000, 1200) = %v, want between 40 and 55", got)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("CalculateVDOT returned non-finite value %v", got)
	}
}

func TestCalculateVDOTMonotonic(t *testing.T) {
	// Faster for the same distance means fitter
	prev := math.Inf(1)
	for secs := 900.0; secs <= 2400; secs += 60 {
		v := CalculateVDOT(Distance5K, secs)
		if v > prev {
			t.Errorf("VDOT increased from %v to %v when slowing to %vs", prev, v, secs)
		}
		prev = v
	}

	// Further in the same time means fitter
	prev = math.Inf(-1)
	for d := 3000.0; d <= 6000; d += 250 {
		v := CalculateVDOT(d, 1200)
		if v < prev {
			t.Errorf("VDOT decreased from %v to %v when extending to %vm", prev, v, d)
		}
		prev = v
	}
}

func TestRiegelPrediction(t *testing.T) {
	got := RiegelPrediction(1200, 5000, 10000, DefaultRiegelExponent)
	if math.Abs(got-2484.6) > 0.5 {
		t.Errorf("RiegelPrediction(1200, 5000, 10000) = %v, want ~2484.6", got)
	}
	if got <= 2400 {
		t.Errorf("RiegelPrediction should exceed linear scaling, got %v", got)
	}

	direct := 1200 * math.Pow(2, 1.05)
	if math.Abs(got-direct) > 1e-9 {
		t.Errorf("RiegelPrediction = %v, want %v", got, direct)
	}

	if got := RiegelPrediction(1200, 0, 10000, DefaultRiegelExponent); got != 0 {
		t.Errorf("RiegelPrediction with zero known distance = %v, want 0", got)
	}
}

func TestPredictFromVDOT(t *testing.T) {
	tests := []struct {
		vdot     float64
		distance float64
		want     int
	}{
		{50, Distance5K, 1065},
		{50, Distance10K, 2225},
		{50, DistanceHalfMara, 5122},
		{50, DistanceMarathon, 10564},
		{0, Distance5K, 0},
		{50, 0, 0},
	}

	for _, tt := range tests {
		got := PredictFromVDOT(tt.vdot, tt.distance)
		if abs(got-tt.want) > 1 {
			t.Errorf("PredictFromVDOT(%v, %v) = %d, want %d", tt.vdot, tt.distance, got, tt.want)
		}
	}
}

func TestPredictFromVDOTOrdering(t *testing.T) {
	var prev int
	for _, d := range []float64{Distance5K, Distance10K, DistanceHalfMara, DistanceMarathon} {
		got := PredictFromVDOT(45, d)
		if got <= prev {
			t.Errorf("PredictFromVDOT(45, %v) = %d, not longer than previous %d", d, got, prev)
		}
		prev = got
	}
}

func TestGetTrainingPaces(t *testing.T) {
	paces := GetTrainingPaces(50)
	if paces == nil {
		t.Fatal("GetTrainingPaces(50) returned nil")
	}

	want := TrainingPaces{
		Easy:       PaceRange{Min: "4:31", Max: "5:39"},
		Marathon:   "4:27",
		Threshold:  "4:01",
		Interval:   "3:31",
		Repetition: "3:20",
	}
	if *paces != want {
		t.Errorf("GetTrainingPaces(50) = %+v, want %+v", *paces, want)
	}

	if GetTrainingPaces(0) != nil {
		t.Error("GetTrainingPaces(0) should be nil")
	}
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		secs float64
		want string
	}{
		{300, "5:00"},
		{299.6, "5:00"},
		{299.4, "4:59"},
		{245, "4:05"},
		{59.5, "1:00"},
	}

	for _, tt := range tests {
		if got := FormatPace(tt.secs); got != tt.want {
			t.Errorf("FormatPace(%v) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestEstimateVO2maxFromHR(t *testing.T) {
	got := EstimateVO2maxFromHR(300, 150, 190, 60)
	if math.Abs(got-52.0) > 0.05 {
		t.Errorf("EstimateVO2maxFromHR(300, 150, 190, 60) = %v, want 52.0", got)
	}

	if got := EstimateVO2maxFromHR(300, 60, 190, 60); got != 0 {
		t.Errorf("EstimateVO2maxFromHR at resting HR = %v, want 0", got)
	}
	if got := EstimateVO2maxFromHR(300, 150, 60, 60); got != 0 {
		t.Errorf("EstimateVO2maxFromHR with max == rest = %v, want 0", got)
	}
}

func TestGetVDOTLabel(t *testing.T) {
	tests := []struct {
		vdot float64
		want string
	}{
		{80, "Elite"},
		{65, "Highly Competitive"},
		{58, "Competitive"},
		{49.8, "Advanced Recreational"},
		{40, "Intermediate"},
		{32, "Beginner"},
		{20, "Novice"},
	}

	for _, tt := range tests {
		if got := GetVDOTLabel(tt.vdot); got != tt.want {
			t.Errorf("GetVDOTLabel(%v) = %q, want %q", tt.vdot, got, tt.want)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
