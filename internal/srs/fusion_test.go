package srs

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestFuseFallbackIdentity(t *testing.T) {
	// fuse(x, nil) == x for all x in [0,1].
	for x := 0.0; x <= 1.0; x += 0.05 {
		if got := Fuse(x, nil); got != x {
			t.Errorf("Fuse(%v, nil) = %v, want %v", x, got, x)
		}
	}
}

func TestFuseAveragesWhenAnalysisPresent(t *testing.T) {
	if got := Fuse(0.6, ptr(0.8)); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("Fuse(0.6, 0.8) = %v, want 0.7", got)
	}
}

func TestFuseSymmetric(t *testing.T) {
	pairs := [][2]float64{{0.1, 0.9}, {0.33, 0.66}, {0, 1}, {0.5, 0.5}}
	for _, p := range pairs {
		if Fuse(p[0], ptr(p[1])) != Fuse(p[1], ptr(p[0])) {
			t.Errorf("Fuse not symmetric for %v", p)
		}
	}
}

func TestFuseTreatsInvalidAnalysisAsAbsent(t *testing.T) {
	for _, bad := range []float64{-0.2, 1.5, math.NaN()} {
		if got := Fuse(0.4, ptr(bad)); got != 0.4 {
			t.Errorf("Fuse(0.4, %v) = %v, want 0.4", bad, got)
		}
	}
}

func TestFuseClamps(t *testing.T) {
	if got := Fuse(1.4, nil); got != 1 {
		t.Errorf("Fuse(1.4, nil) = %v, want 1", got)
	}
	if got := Fuse(-0.3, nil); got != 0 {
		t.Errorf("Fuse(-0.3, nil) = %v, want 0", got)
	}
}
