package delivery

import (
	"reflect"
	"testing"
)

func TestResolveFields(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		field      Field
		wantHeader string
		resolved   bool
	}{
		{
			name:       "exact synonym",
			headers:    []string{"Delivery_Time", "Weather"},
			field:      FieldDeliveryTime,
			wantHeader: "Delivery_Time",
			resolved:   true,
		},
		{
			name:       "spaced mixed-case synonym",
			headers:    []string{"dELIVERY tIME", "Weather"},
			field:      FieldDeliveryTime,
			wantHeader: "dELIVERY tIME",
			resolved:   true,
		},
		{
			name:       "fallback to canonical name",
			headers:    []string{"deliverytime"},
			field:      FieldDeliveryTime,
			wantHeader: "deliverytime",
			resolved:   true,
		},
		{
			name:     "no recognizable header",
			headers:  []string{"Speed", "Distance"},
			field:    FieldDeliveryTime,
			resolved: false,
		},
		{
			name:       "alternate export spelling",
			headers:    []string{"Type_of_vehicle"},
			field:      FieldVehicle,
			wantHeader: "Type_of_vehicle",
			resolved:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := ResolveFields(tt.headers)
			if fm.Resolved(tt.field) != tt.resolved {
				t.Fatalf("Resolved(%s) = %v, want %v", tt.field, fm.Resolved(tt.field), tt.resolved)
			}
			if tt.resolved && fm.Header(tt.field) != tt.wantHeader {
				t.Errorf("Header(%s) = %q, want %q", tt.field, fm.Header(tt.field), tt.wantHeader)
			}
		})
	}
}

func TestResolveFieldsFirstMatchWins(t *testing.T) {
	// Both headers match DeliveryTime; the synonym earlier in priority order
	// wins and the later match is ignored silently.
	fm := ResolveFields([]string{"Delivery Time", "Delivery_Time"})
	if got := fm.Header(FieldDeliveryTime); got != "Delivery_Time" {
		t.Errorf("Header(DeliveryTime) = %q, want priority synonym %q", got, "Delivery_Time")
	}
}

func TestUnresolvedFields(t *testing.T) {
	fm := ResolveFields([]string{"Delivery_Time", "Weather", "Traffic"})
	want := []string{"Vehicle", "AgentAge", "AgentRating", "Area", "Category"}
	if got := fm.UnresolvedFields(); !reflect.DeepEqual(got, want) {
		t.Errorf("UnresolvedFields() = %v, want %v", got, want)
	}

	full := ResolveFields([]string{
		"Delivery_Time", "Weather", "Traffic", "Vehicle",
		"Agent_Age", "Agent_Rating", "Area", "Category",
	})
	if got := full.UnresolvedFields(); len(got) != 0 {
		t.Errorf("UnresolvedFields() = %v, want none", got)
	}
}
