package rules

import "testing"

func TestApplyConwayRules(t *testing.T) {
	tests := []struct {
		name      string
		neighbors int
		alive     bool
		want      bool
	}{
		{"lonely dies", 0, true, false},
		{"one neighbour dies", 1, true, false},
		{"two survives", 2, true, true},
		{"three survives", 3, true, true},
		{"four dies", 4, true, false},
		{"eight dies", 8, true, false},
		{"dead stays dead with two", 2, false, false},
		{"birth with three", 3, false, true},
		{"dead stays dead with four", 4, false, false},
		{"dead stays dead with none", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyConwayRules(tt.neighbors, tt.alive); got != tt.want {
				t.Errorf("ApplyConwayRules(%d, %v) = %v, want %v", tt.neighbors, tt.alive, got, tt.want)
			}
		})
	}
}
