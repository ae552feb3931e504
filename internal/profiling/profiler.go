package profiling

import (
	"math"

	"lastmile/domain/delivery"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// FieldProfile holds descriptive statistics for one numeric field of the
// current view.
type FieldProfile struct {
	Field        string  `json:"field"`
	Count        int     `json:"count"`
	MissingCount int     `json:"missing_count"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Median       float64 `json:"median"`
	Q25          float64 `json:"q25"`
	Q75          float64 `json:"q75"`
	Skewness     float64 `json:"skewness"`
	IsNormal     bool    `json:"is_normal"`
	NormalityP   float64 `json:"normality_p"`
}

// Profiler computes numeric field profiles
type Profiler struct{}

// NewProfiler creates a profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Profile summarizes the three numeric fields over the given records. It is
// computed per view, so it reflects the current filter, unlike the lateness
// threshold. Empty or tiny inputs produce zero-valued profiles, never errors.
func (p *Profiler) Profile(records []delivery.DerivedRecord) []FieldProfile {
	deliveryTimes := make([]float64, 0, len(records))
	ages := make([]float64, 0, len(records))
	ratings := make([]float64, 0, len(records))
	agesMissing, ratingsMissing := 0, 0

	for _, r := range records {
		deliveryTimes = append(deliveryTimes, r.DeliveryTime)
		if r.AgentAge != nil {
			ages = append(ages, *r.AgentAge)
		} else {
			agesMissing++
		}
		if r.AgentRating != nil {
			ratings = append(ratings, *r.AgentRating)
		} else {
			ratingsMissing++
		}
	}

	return []FieldProfile{
		p.profileValues(string(delivery.FieldDeliveryTime), deliveryTimes, 0),
		p.profileValues(string(delivery.FieldAgentAge), ages, agesMissing),
		p.profileValues(string(delivery.FieldAgentRating), ratings, ratingsMissing),
	}
}

func (p *Profiler) profileValues(field string, data []float64, missing int) FieldProfile {
	profile := FieldProfile{Field: field, Count: len(data), MissingCount: missing}
	if len(data) == 0 {
		return profile
	}

	profile.Mean, _ = stats.Mean(data)
	profile.Min, _ = stats.Min(data)
	profile.Max, _ = stats.Max(data)
	profile.Median, _ = stats.Median(data)

	if len(data) > 1 {
		profile.StdDev, _ = stats.StandardDeviationSample(data)
		profile.Q25, _ = stats.Percentile(data, 25)
		profile.Q75, _ = stats.Percentile(data, 75)
	}

	if len(data) >= 3 && profile.StdDev > 0 {
		profile.Skewness = sampleSkewness(data, profile.Mean, profile.StdDev)
		profile.IsNormal, profile.NormalityP = testNormality(data, profile.Mean, profile.StdDev)
	}

	return profile
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient of skewness
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}
	skewness := sumCubed / n
	if n > 2 {
		skewness *= math.Sqrt(n*(n-1)) / (n - 2)
	}
	return skewness
}

// sampleKurtosis computes total (non-excess) sample kurtosis
func sampleKurtosis(data []float64, mean, stdDev float64) float64 {
	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}
	return sumFourth / n
}

// testNormality approximates a normality check from skewness and kurtosis,
// mapping the combined statistic through a chi-squared tail. Rough, but good
// enough to annotate a dashboard profile.
func testNormality(data []float64, mean, stdDev float64) (bool, float64) {
	skewness := sampleSkewness(data, mean, stdDev)
	kurtosis := sampleKurtosis(data, mean, stdDev)

	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2

	chiDist := distuv.ChiSquared{K: 2}
	pValue := 1 - chiDist.CDF(testStat*testStat)

	return pValue > 0.05, pValue
}
