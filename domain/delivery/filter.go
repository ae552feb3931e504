package delivery

import (
	"sort"
)

// ValueSet is a set of allowed categorical values.
type ValueSet map[string]struct{}

// NewValueSet builds a set from a list of values.
func NewValueSet(values ...string) ValueSet {
	set := make(ValueSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Has reports set membership.
func (s ValueSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Values returns the set's members in lexicographic order.
func (s ValueSet) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Selection holds the allowed values per categorical field. Filtering is a
// pure conjunction of five set-memberships.
//
// An empty (or absent) set for a field is treated as "no constraint on that
// field", not "match nothing". The permissive reading keeps KPIs usable when
// a control is cleared, and it is applied uniformly across all five fields.
type Selection map[Field]ValueSet

// Matches reports whether a record passes every field constraint.
func (s Selection) Matches(r DerivedRecord) bool {
	for _, field := range CategoricalFields {
		set := s[field]
		if len(set) == 0 {
			continue
		}
		value, _ := r.Categorical(field)
		if !set.Has(value) {
			return false
		}
	}
	return true
}

// DistinctValues returns the ordered distinct values of a groupable field
// present in the records. Used both for aggregation and for populating
// filter controls.
func DistinctValues(records []DerivedRecord, field Field) ([]string, bool) {
	seen := make(map[string]struct{})
	for _, r := range records {
		value, ok := r.GroupValue(field)
		if !ok {
			return nil, false
		}
		seen[value] = struct{}{}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, true
}

// DefaultSelection selects every distinct value of every categorical field,
// i.e. no filtering.
func DefaultSelection(records []DerivedRecord) Selection {
	selection := make(Selection, len(CategoricalFields))
	for _, field := range CategoricalFields {
		values, _ := DistinctValues(records, field)
		selection[field] = NewValueSet(values...)
	}
	return selection
}
