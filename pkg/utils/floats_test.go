package utils

import (
	"math"
	"testing"
)

func TestLinspace(t *testing.T) {
	got := Linspace(1, 3, 5)
	want := []float64{1, 1.5, 2, 2.5, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("at %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestLinspace_TooFew(t *testing.T) {
	if got := Linspace(0, 1, 1); got != nil {
		t.Errorf("expected nil for n=1, got %v", got)
	}
}
