package pipeline

import (
	"lastmile/domain/delivery"

	"github.com/montanaflynn/stats"
)

// Deriver computes the derived columns: the age bucket per record and the
// dataset-wide lateness flag.
type Deriver struct{}

// NewDeriver creates a deriver.
func NewDeriver() *Deriver {
	return &Deriver{}
}

// Derive produces derived records from the clean set. The lateness threshold
// is computed once over the entire input, before any filtering ever happens;
// filter changes must not call Derive again. An empty input yields an empty
// output and an invalid threshold that marks no record late.
func (d *Deriver) Derive(records []delivery.CleanRecord) ([]delivery.DerivedRecord, delivery.Threshold) {
	threshold := ComputeThreshold(records)

	derived := make([]delivery.DerivedRecord, len(records))
	for i, r := range records {
		derived[i] = delivery.DerivedRecord{
			CleanRecord: r,
			AgeGroup:    delivery.AgeGroupFor(r.AgentAge),
			Late:        threshold.IsLate(r.DeliveryTime),
		}
	}
	return derived, threshold
}

// ComputeThreshold returns mean + one sample (Bessel-corrected) standard
// deviation of DeliveryTime over the whole clean set. A single-record set
// has zero spread; an empty set has no defined threshold.
func ComputeThreshold(records []delivery.CleanRecord) delivery.Threshold {
	if len(records) == 0 {
		return delivery.Threshold{}
	}

	times := make([]float64, len(records))
	for i, r := range records {
		times[i] = r.DeliveryTime
	}

	mean, err := stats.Mean(times)
	if err != nil {
		return delivery.Threshold{}
	}

	stdDev := 0.0
	if len(times) > 1 {
		if sd, err := stats.StandardDeviationSample(times); err == nil {
			stdDev = sd
		}
	}

	return delivery.Threshold{
		Mean:   mean,
		StdDev: stdDev,
		Cutoff: mean + stdDev,
		Valid:  true,
	}
}
