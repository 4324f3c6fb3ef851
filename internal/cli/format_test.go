package cli

import "testing"

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"zero", 0, "KES 0"},
		{"small", 999, "KES 999"},
		{"thousands", 250000, "KES 250,000"},
		{"millions", 1000000, "KES 1,000,000"},
		{"truncates cents", 45000.75, "KES 45,000"},
		{"negative", -5000, "KES -5,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatPrice(tt.amount)
			if result != tt.expected {
				t.Errorf("formatPrice(%v) = %q, want %q", tt.amount, result, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}
