package delivery

// Field is a canonical column name the pipeline operates on, independent of
// the source file's actual header spelling.
type Field string

const (
	FieldDeliveryTime Field = "DeliveryTime"
	FieldWeather      Field = "Weather"
	FieldTraffic      Field = "Traffic"
	FieldVehicle      Field = "Vehicle"
	FieldAgentAge     Field = "AgentAge"
	FieldAgentRating  Field = "AgentRating"
	FieldArea         Field = "Area"
	FieldCategory     Field = "Category"

	// FieldAgeGroup is derived, not read from the source. It is groupable but
	// never part of header resolution.
	FieldAgeGroup Field = "AgeGroup"
)

// CanonicalFields lists the eight source-backed fields in resolution order.
var CanonicalFields = []Field{
	FieldDeliveryTime,
	FieldWeather,
	FieldTraffic,
	FieldVehicle,
	FieldAgentAge,
	FieldAgentRating,
	FieldArea,
	FieldCategory,
}

// CategoricalFields lists the five filterable categorical fields.
var CategoricalFields = []Field{
	FieldWeather,
	FieldTraffic,
	FieldVehicle,
	FieldArea,
	FieldCategory,
}

// GroupableFields lists the fields summaries can group by.
var GroupableFields = []Field{
	FieldWeather,
	FieldTraffic,
	FieldVehicle,
	FieldArea,
	FieldCategory,
	FieldAgeGroup,
}

// UnknownCategory is the value every missing or none-like categorical cell is
// normalized to.
const UnknownCategory = "Unknown"

// CleanRecord is one delivery row after normalization. DeliveryTime is always
// finite; rows that fail numeric coercion on it never become CleanRecords.
// AgentRating and AgentAge are nil when the source cell was missing or
// unparseable.
type CleanRecord struct {
	DeliveryTime float64  `json:"delivery_time"`
	AgentRating  *float64 `json:"agent_rating,omitempty"`
	AgentAge     *float64 `json:"agent_age,omitempty"`
	Weather      string   `json:"weather"`
	Traffic      string   `json:"traffic"`
	Vehicle      string   `json:"vehicle"`
	Area         string   `json:"area"`
	Category     string   `json:"category"`
}

// Categorical returns the value of one of the five categorical fields.
func (r CleanRecord) Categorical(f Field) (string, bool) {
	switch f {
	case FieldWeather:
		return r.Weather, true
	case FieldTraffic:
		return r.Traffic, true
	case FieldVehicle:
		return r.Vehicle, true
	case FieldArea:
		return r.Area, true
	case FieldCategory:
		return r.Category, true
	}
	return "", false
}

// AgeGroup is a discrete bucket of agent age.
type AgeGroup string

const (
	AgeGroupUnder25 AgeGroup = "<25"
	AgeGroup25To40  AgeGroup = "25-40"
	AgeGroupOver40  AgeGroup = "40+"
	AgeGroupUnknown AgeGroup = "Unknown"
)

// AgeGroupFor buckets an agent age using closed-on-right intervals:
// (-inf,24] -> "<25", (24,40] -> "25-40", (40,inf) -> "40+". A missing age
// gets its own bucket instead of being excluded.
func AgeGroupFor(age *float64) AgeGroup {
	if age == nil {
		return AgeGroupUnknown
	}
	switch {
	case *age <= 24:
		return AgeGroupUnder25
	case *age <= 40:
		return AgeGroup25To40
	default:
		return AgeGroupOver40
	}
}

// DerivedRecord is a CleanRecord plus the two derived columns.
type DerivedRecord struct {
	CleanRecord
	AgeGroup AgeGroup `json:"age_group"`
	Late     bool     `json:"late"`
}

// GroupValue returns the record's value for a groupable field.
func (r DerivedRecord) GroupValue(f Field) (string, bool) {
	if f == FieldAgeGroup {
		return string(r.AgeGroup), true
	}
	return r.Categorical(f)
}

// Threshold is the dataset-wide lateness cutoff, mean plus one sample
// standard deviation of DeliveryTime. It is computed once per load and is a
// property of the dataset, not of the current filter: recomputing per filter
// would make "late" mean something different under every filter combination.
type Threshold struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Cutoff float64 `json:"cutoff"`
	Valid  bool    `json:"valid"`
}

// IsLate reports whether a delivery time exceeds the cutoff. An invalid
// (undefined) threshold marks no record as late.
func (t Threshold) IsLate(deliveryTime float64) bool {
	return t.Valid && deliveryTime > t.Cutoff
}

// SummaryRow is one group of a group-by-mean aggregation.
type SummaryRow struct {
	GroupKey         string  `json:"group_key"`
	MeanDeliveryTime float64 `json:"mean_delivery_time"`
	Count            int     `json:"count"`
}

// KPISummary holds the headline numbers for the current filtered view.
// AvgDeliveryTime is nil, not zero, when the view is empty.
type KPISummary struct {
	AvgDeliveryTime *float64 `json:"avg_delivery_time,omitempty"`
	TotalCount      int      `json:"total_count"`
	LatePercentage  float64  `json:"late_percentage"`
}
