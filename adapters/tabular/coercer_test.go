package tabular

import (
	"testing"
)

func TestCoerce(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }
	coercer := NewNumericCoercer()

	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{"plain integer", "42", ptr(42)},
		{"decimal", "27.5", ptr(27.5)},
		{"surrounding whitespace", "  17 ", ptr(17)},
		{"thousands separator", "1,250", ptr(1250)},
		{"parenthesized negative", "(5)", ptr(-5)},
		{"scientific notation", "1e2", ptr(100)},
		{"text", "abc", nil},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"nan token", "NaN", nil},
		{"none token", "None", nil},
		{"na token", "N/A", nil},
		{"dash placeholder", "-", nil},
		{"infinity rejected", "Inf", nil},
		{"mixed digits and text", "12 min", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coercer.Coerce(tt.raw)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("Coerce(%q) = %v, want missing", tt.raw, *got)
			case tt.want != nil && got == nil:
				t.Errorf("Coerce(%q) = missing, want %v", tt.raw, *tt.want)
			case tt.want != nil && got != nil && *got != *tt.want:
				t.Errorf("Coerce(%q) = %v, want %v", tt.raw, *got, *tt.want)
			}
		})
	}
}

func TestIsNoneLike(t *testing.T) {
	for _, token := range []string{"nan", "NaN", "None", "NULL", "na", "N/A", "-"} {
		if !IsNoneLike(token) {
			t.Errorf("IsNoneLike(%q) = false, want true", token)
		}
	}
	for _, token := range []string{"Sunny", "0", "n/b"} {
		if IsNoneLike(token) {
			t.Errorf("IsNoneLike(%q) = true, want false", token)
		}
	}
}
