package srs

import "math"

// Fuse blends the student's self-reported confidence with the analysis
// overall score (both on [0,1]). When the analysis score is absent or
// invalid the self-report stands alone; the result is always clamped to
// [0,1]. Fuse cannot fail.
func Fuse(selfReported float64, analysisOverall *float64) float64 {
	fused := selfReported
	if analysisOverall != nil && !math.IsNaN(*analysisOverall) && *analysisOverall >= 0 && *analysisOverall <= 1 {
		fused = (selfReported + *analysisOverall) / 2
	}
	return clamp01(fused)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
