package pipeline

import (
	"sort"

	"lastmile/domain/core"
	"lastmile/domain/delivery"

	"github.com/montanaflynn/stats"
)

// ApplyFilter returns the subset of records passing the selection. Pure and
// stateless: the input is never mutated and no dataset state is touched, so
// an empty result is a valid view, not an error.
func ApplyFilter(records []delivery.DerivedRecord, selection delivery.Selection) []delivery.DerivedRecord {
	filtered := make([]delivery.DerivedRecord, 0, len(records))
	for _, r := range records {
		if selection.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// DistinctValues returns the ordered distinct values of a groupable field,
// for populating filter controls. The default selection is all of them.
func DistinctValues(records []delivery.DerivedRecord, field delivery.Field) ([]string, error) {
	values, ok := delivery.DistinctValues(records, field)
	if !ok {
		return nil, core.NewUnknownFieldError(string(field))
	}
	return values, nil
}

// Summarize groups records by a field and returns the mean delivery time and
// row count per group. One row per distinct value present in the input, in
// ascending lexicographic key order so chart output is deterministic across
// every grouping field.
func Summarize(records []delivery.DerivedRecord, field delivery.Field) ([]delivery.SummaryRow, error) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		key, ok := r.GroupValue(field)
		if !ok {
			return nil, core.NewUnknownFieldError(string(field))
		}
		sums[key] += r.DeliveryTime
		counts[key]++
	}

	keys := make([]string, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]delivery.SummaryRow, len(keys))
	for i, key := range keys {
		rows[i] = delivery.SummaryRow{
			GroupKey:         key,
			MeanDeliveryTime: sums[key] / float64(counts[key]),
			Count:            counts[key],
		}
	}
	return rows, nil
}

// KPIs computes the headline numbers over a filtered view. An empty view is
// valid: the average is nil rather than zero and the late percentage is 0,
// so no caller ever divides by zero.
func KPIs(records []delivery.DerivedRecord) delivery.KPISummary {
	summary := delivery.KPISummary{TotalCount: len(records)}
	if len(records) == 0 {
		return summary
	}

	times := make([]float64, len(records))
	lateCount := 0
	for i, r := range records {
		times[i] = r.DeliveryTime
		if r.Late {
			lateCount++
		}
	}

	if avg, err := stats.Mean(times); err == nil {
		summary.AvgDeliveryTime = &avg
	}
	summary.LatePercentage = 100 * float64(lateCount) / float64(len(records))
	return summary
}
