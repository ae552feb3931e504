package pipeline

import (
	"math"
	"testing"

	"lastmile/domain/delivery"
)

func cleanRecords(times ...float64) []delivery.CleanRecord {
	records := make([]delivery.CleanRecord, len(times))
	for i, dt := range times {
		records[i] = delivery.CleanRecord{
			DeliveryTime: dt,
			Weather:      "Sunny",
			Traffic:      "Low",
			Vehicle:      "Bike",
			Area:         "Urban",
			Category:     "Food",
		}
	}
	return records
}

func TestComputeThreshold(t *testing.T) {
	// mean = 28, sample std = sqrt(6480/4) ≈ 40.2492
	threshold := ComputeThreshold(cleanRecords(10, 10, 10, 10, 100))

	if !threshold.Valid {
		t.Fatal("threshold over a non-empty set must be valid")
	}
	if math.Abs(threshold.Mean-28) > 1e-9 {
		t.Errorf("Mean = %v, want 28", threshold.Mean)
	}
	if math.Abs(threshold.StdDev-math.Sqrt(1620)) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", threshold.StdDev, math.Sqrt(1620))
	}
	if math.Abs(threshold.Cutoff-(28+math.Sqrt(1620))) > 1e-9 {
		t.Errorf("Cutoff = %v, want mean+std", threshold.Cutoff)
	}
}

func TestComputeThresholdDegenerateSets(t *testing.T) {
	if ComputeThreshold(nil).Valid {
		t.Error("empty set must yield an undefined threshold")
	}

	single := ComputeThreshold(cleanRecords(42))
	if !single.Valid || single.StdDev != 0 || single.Cutoff != 42 {
		t.Errorf("single-record set should have zero spread: %+v", single)
	}
}

func TestDerive(t *testing.T) {
	records := cleanRecords(10, 10, 10, 10, 100)
	age := func(v float64) *float64 { return &v }
	records[0].AgentAge = age(22)
	records[1].AgentAge = age(38)
	records[2].AgentAge = age(57)

	derived, threshold := NewDeriver().Derive(records)

	if len(derived) != len(records) {
		t.Fatalf("got %d derived records, want %d", len(derived), len(records))
	}

	lateCount := 0
	for _, r := range derived {
		if r.Late {
			lateCount++
			if r.DeliveryTime <= threshold.Cutoff {
				t.Errorf("record with time %v flagged late below cutoff %v", r.DeliveryTime, threshold.Cutoff)
			}
		}
	}
	if lateCount != 1 {
		t.Errorf("got %d late records, want 1 (only the 100)", lateCount)
	}

	if derived[0].AgeGroup != delivery.AgeGroupUnder25 ||
		derived[1].AgeGroup != delivery.AgeGroup25To40 ||
		derived[2].AgeGroup != delivery.AgeGroupOver40 ||
		derived[3].AgeGroup != delivery.AgeGroupUnknown {
		t.Errorf("age buckets wrong: %v %v %v %v",
			derived[0].AgeGroup, derived[1].AgeGroup, derived[2].AgeGroup, derived[3].AgeGroup)
	}
}

func TestThresholdStableUnderFiltering(t *testing.T) {
	// The threshold is a property of the loaded dataset, not of the current
	// view: filtering away the outlier must not move it.
	derived, threshold := NewDeriver().Derive(cleanRecords(10, 10, 10, 10, 100))

	selection := delivery.Selection{delivery.FieldWeather: delivery.NewValueSet("Sunny")}
	filtered := ApplyFilter(derived, selection)

	for _, r := range filtered {
		if r.Late != threshold.IsLate(r.DeliveryTime) {
			t.Error("Late flags must be unchanged by filtering")
		}
	}

	recomputed := ComputeThreshold(cleanRecords(10, 10, 10, 10, 100))
	if recomputed.Cutoff != threshold.Cutoff {
		t.Error("threshold must be reproducible from the full clean set")
	}
}

func TestDeriveEmptySet(t *testing.T) {
	derived, threshold := NewDeriver().Derive(nil)
	if len(derived) != 0 {
		t.Errorf("got %d records, want 0", len(derived))
	}
	if threshold.Valid {
		t.Error("empty set must yield an undefined threshold")
	}
}
