package utils

import "testing"

func TestPointInRect(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"内部", 110, 20, true},
		{"左上角", 100, 10, true},
		{"右下角", 140, 50, true},
		{"左侧外", 99.5, 20, false},
		{"下方外", 120, 50.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInRect(tt.px, tt.py, 100, 10, 40, 40); got != tt.want {
				t.Errorf("PointInRect(%v, %v): got %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}
