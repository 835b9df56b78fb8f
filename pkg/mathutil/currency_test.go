package mathutil

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{439.8549, 439.85},
		{439.856, 439.86},
		{-1.004, -1.0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.input); got != tt.expected {
			t.Errorf("Round(%v) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(439.85, 439.855, 0.01) {
		t.Error("WithinTolerance(439.85, 439.855, 0.01) = false")
	}
	if WithinTolerance(439.85, 440.00, 0.01) {
		t.Error("WithinTolerance(439.85, 440.00, 0.01) = true")
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.005) {
		t.Error("IsZero(0.005) = false")
	}
	if IsZero(0.02) {
		t.Error("IsZero(0.02) = true")
	}
}

func TestMax(t *testing.T) {
	if got := Max(50, 441.95); got != 441.95 {
		t.Errorf("Max(50, 441.95) = %v", got)
	}
	if got := Max(50, 30); got != 50 {
		t.Errorf("Max(50, 30) = %v", got)
	}
}

func TestApplyPercentage(t *testing.T) {
	if got := ApplyPercentage(439.85, 20); !WithinTolerance(got, 87.97, 1e-9) {
		t.Errorf("ApplyPercentage(439.85, 20) = %v, expected 87.97", got)
	}
}
