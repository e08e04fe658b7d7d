package analysis

import "testing"

func TestFindPersonalRecords(t *testing.T) {
	activities := []Activity{
		run(1, at(2024, 2, 1, 8), 5200, 1300),   // 5K in 1250s when scaled
		run(2, at(2024, 2, 3, 8), 5000, 1290),   // slower
		run(3, at(2024, 2, 5, 8), 5600, 1300),   // beyond 5K tolerance
		run(4, at(2024, 2, 7, 8), 1100, 240),    // 1K
		run(5, at(2024, 2, 9, 8), 42500, 12000), // marathon
	}

	records := FindPersonalRecords(activities)

	byName := make(map[string]PersonalRecord)
	for _, r := range records {
		byName[r.Distance] = r
	}

	fiveK, ok := byName["5K"]
	if !ok {
		t.Fatal("expected a 5K record")
	}
	if fiveK.ActivityID != 1 || fiveK.Time != 1250 {
		t.Errorf("5K record = activity %d in %ds, want activity 1 in 1250s", fiveK.ActivityID, fiveK.Time)
	}
	if fiveK.Pace != 250 {
		t.Errorf("5K pace = %v, want 250", fiveK.Pace)
	}

	if r, ok := byName["1K"]; !ok || r.Time != 218 {
		t.Errorf("1K record = %+v, want 218s", r)
	}
	if r, ok := byName["Marathon"]; !ok || r.ActivityID != 5 {
		t.Errorf("Marathon record = %+v, want activity 5", r)
	}
	if _, ok := byName["Half Marathon"]; ok {
		t.Error("unexpected half marathon record")
	}
	if _, ok := byName["1 Mile"]; ok {
		t.Error("unexpected mile record")
	}
}

func TestFindPersonalRecordsIgnoresOtherSports(t *testing.T) {
	ride := run(1, at(2024, 2, 1, 8), 5000, 600)
	ride.Type, ride.SportType = "Ride", "Ride"

	if got := FindPersonalRecords([]Activity{ride}); len(got) != 0 {
		t.Errorf("FindPersonalRecords(ride) = %+v, want none", got)
	}
}
