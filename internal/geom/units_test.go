package geom

import (
	"math"
	"testing"
)

// TestUnits_RoundTrip verifies px-to-mm inverts mm-to-px within tolerance.
func TestUnits_RoundTrip(t *testing.T) {
	values := []float64{0, 0.1, 1, 13.37, 216, 99999.5}
	scales := []float64{0.25, 1, 2, 3.779}
	for _, mm := range values {
		for _, scale := range scales {
			got := PxToMm(MmToPx(mm, scale), scale)
			if math.Abs(got-mm) > 1e-9 {
				t.Fatalf("round trip of %v at scale %v gave %v", mm, scale, got)
			}
		}
	}
}

// TestUnits_GuardsReturnZero verifies invalid input degrades to zero.
func TestUnits_GuardsReturnZero(t *testing.T) {
	if got := MmToPx(math.NaN(), 2); got != 0 {
		t.Fatalf("expected 0 for NaN mm, got %v", got)
	}
	if got := MmToPx(10, 0); got != 0 {
		t.Fatalf("expected 0 for zero scale, got %v", got)
	}
	if got := PxToMm(10, -1); got != 0 {
		t.Fatalf("expected 0 for negative scale, got %v", got)
	}
	if got := PxToMm(math.Inf(1), 2); got != 0 {
		t.Fatalf("expected 0 for infinite px, got %v", got)
	}
}
