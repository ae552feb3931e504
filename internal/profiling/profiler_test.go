package profiling

import (
	"math"
	"testing"

	"lastmile/domain/delivery"
)

func records(times []float64, ages []*float64) []delivery.DerivedRecord {
	out := make([]delivery.DerivedRecord, len(times))
	for i, dt := range times {
		out[i] = delivery.DerivedRecord{
			CleanRecord: delivery.CleanRecord{DeliveryTime: dt},
		}
		if ages != nil {
			out[i].AgentAge = ages[i]
		}
	}
	return out
}

func TestProfile(t *testing.T) {
	age := func(v float64) *float64 { return &v }
	input := records(
		[]float64{10, 20, 30, 40, 50},
		[]*float64{age(25), age(35), nil, age(45), nil},
	)

	profiles := NewProfiler().Profile(input)
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}

	dt := profiles[0]
	if dt.Field != string(delivery.FieldDeliveryTime) {
		t.Errorf("first profile should be DeliveryTime, got %s", dt.Field)
	}
	if dt.Count != 5 || dt.MissingCount != 0 {
		t.Errorf("DeliveryTime counts wrong: %+v", dt)
	}
	if math.Abs(dt.Mean-30) > 1e-9 {
		t.Errorf("Mean = %v, want 30", dt.Mean)
	}
	if dt.Min != 10 || dt.Max != 50 {
		t.Errorf("Min/Max = %v/%v, want 10/50", dt.Min, dt.Max)
	}
	if math.Abs(dt.Median-30) > 1e-9 {
		t.Errorf("Median = %v, want 30", dt.Median)
	}
	if math.Abs(dt.StdDev-math.Sqrt(250)) > 1e-9 {
		t.Errorf("StdDev = %v, want sample std %v", dt.StdDev, math.Sqrt(250))
	}
	if dt.Q25 >= dt.Median || dt.Q75 <= dt.Median {
		t.Errorf("quartiles should bracket the median: q25=%v median=%v q75=%v", dt.Q25, dt.Median, dt.Q75)
	}

	ageProfile := profiles[1]
	if ageProfile.Count != 3 || ageProfile.MissingCount != 2 {
		t.Errorf("AgentAge should count missing values: %+v", ageProfile)
	}
}

func TestProfileSymmetricDataHasNoSkew(t *testing.T) {
	input := records([]float64{10, 20, 30, 40, 50}, nil)
	dt := NewProfiler().Profile(input)[0]

	if math.Abs(dt.Skewness) > 1e-9 {
		t.Errorf("symmetric data should have zero skewness, got %v", dt.Skewness)
	}
}

func TestProfileSkewedData(t *testing.T) {
	input := records([]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 100}, nil)
	dt := NewProfiler().Profile(input)[0]

	if dt.Skewness <= 0 {
		t.Errorf("right-tailed data should skew positive, got %v", dt.Skewness)
	}
	if dt.NormalityP < 0 || dt.NormalityP > 1 {
		t.Errorf("p-value out of range: %v", dt.NormalityP)
	}
}

func TestProfileEmptyInput(t *testing.T) {
	profiles := NewProfiler().Profile(nil)
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}
	for _, p := range profiles {
		if p.Count != 0 || p.Mean != 0 || p.StdDev != 0 {
			t.Errorf("empty input should produce a zero profile: %+v", p)
		}
	}
}

func TestProfileSingleValue(t *testing.T) {
	dt := NewProfiler().Profile(records([]float64{42}, nil))[0]

	if dt.Count != 1 || dt.Mean != 42 || dt.Min != 42 || dt.Max != 42 {
		t.Errorf("single value profile wrong: %+v", dt)
	}
	if dt.StdDev != 0 || dt.Skewness != 0 {
		t.Errorf("single value should have zero spread: %+v", dt)
	}
}
