package components

import "testing"

func TestUIStateValues(t *testing.T) {
	tests := []struct {
		name     string
		state    UIState
		expected int
		label    string
	}{
		{"UINormal should be 0", UINormal, 0, "normal"},
		{"UIHovered should be 1", UIHovered, 1, "hovered"},
		{"UIClicked should be 2", UIClicked, 2, "clicked"},
		{"UIDisabled should be 3", UIDisabled, 3, "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.state) != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, int(tt.state))
			}
			if tt.state.String() != tt.label {
				t.Errorf("String(): got %q, want %q", tt.state.String(), tt.label)
			}
		})
	}

	if UIState(42).String() != "unknown" {
		t.Errorf("Out-of-range state should be unknown, got %q", UIState(42).String())
	}
}

func TestBoundsArea(t *testing.T) {
	tests := []struct {
		b    Bounds
		want float64
	}{
		{Bounds{Width: 800, Height: 600}, 480000},
		{Bounds{Width: 0, Height: 600}, 0},
		{Bounds{Width: 400, Height: -1}, 0},
	}
	for _, tt := range tests {
		if got := tt.b.Area(); got != tt.want {
			t.Errorf("Area(%+v): got %v, want %v", tt.b, got, tt.want)
		}
	}
}
