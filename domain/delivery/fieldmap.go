package delivery

import (
	"strings"
)

// FieldMap records, per canonical field, the source header it was resolved
// to. A field absent from the map is unresolved; its column is filled with
// missing values downstream. Built once per dataset load, immutable after.
type FieldMap map[Field]string

// synonymTable is the fixed list of acceptable header spellings per canonical
// field, in priority order. Matching is case-insensitive and exact; the first
// hit wins, so a second header matching the same field is ignored silently.
var synonymTable = map[Field][]string{
	FieldDeliveryTime: {"Delivery_Time", "Delivery Time", "DeliveryTime", "Time_taken(min)", "Delivery_Duration"},
	FieldWeather:      {"Weather", "Weather_Conditions", "Weatherconditions"},
	FieldTraffic:      {"Traffic", "Road_traffic_density", "Traffic_Level"},
	FieldVehicle:      {"Vehicle", "Type_of_vehicle", "Vehicle_Type"},
	FieldAgentAge:     {"Agent_Age", "Agent Age", "Delivery_person_Age", "Courier_Age"},
	FieldAgentRating:  {"Agent_Rating", "Agent Rating", "Delivery_person_Ratings", "Courier_Rating"},
	FieldArea:         {"Area", "City_Area", "Region"},
	FieldCategory:     {"Category", "Type_of_order", "Order_Category", "Product_Category"},
}

// ResolveFields builds a FieldMap from the (already trimmed) source headers.
// Each canonical field is matched against its synonym list in priority order,
// then against the canonical name itself as a fallback.
func ResolveFields(headers []string) FieldMap {
	fm := make(FieldMap, len(CanonicalFields))
	for _, field := range CanonicalFields {
		if header, ok := resolveField(field, headers); ok {
			fm[field] = header
		}
	}
	return fm
}

func resolveField(field Field, headers []string) (string, bool) {
	for _, synonym := range synonymTable[field] {
		for _, header := range headers {
			if strings.EqualFold(header, synonym) {
				return header, true
			}
		}
	}
	for _, header := range headers {
		if strings.EqualFold(header, string(field)) {
			return header, true
		}
	}
	return "", false
}

// Resolved reports whether a canonical field was mapped to a source header.
func (fm FieldMap) Resolved(f Field) bool {
	header, ok := fm[f]
	return ok && header != ""
}

// Header returns the source header a canonical field resolved to.
func (fm FieldMap) Header(f Field) string {
	return fm[f]
}

// UnresolvedFields returns the canonical fields with no source column, in
// canonical order.
func (fm FieldMap) UnresolvedFields() []string {
	var unresolved []string
	for _, field := range CanonicalFields {
		if !fm.Resolved(field) {
			unresolved = append(unresolved, string(field))
		}
	}
	return unresolved
}
