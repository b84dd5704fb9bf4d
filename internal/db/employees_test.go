package db

import (
	"testing"
)

func TestLowerAll(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"mixed case", []string{"Go", "PostgreSQL", "REACT"}, []string{"go", "postgresql", "react"}},
		{"already lower", []string{"go"}, []string{"go"}},
		{"empty", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lowerAll(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("lowerAll(%v) returned %d items, expected %d", tt.input, len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("lowerAll(%v)[%d] = %q, expected %q", tt.input, i, result[i], tt.expected[i])
				}
			}
		})
	}
}
