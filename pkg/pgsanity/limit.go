package pgsanity

// ClampSampleLimit bounds a caller-supplied sample size into a safe range.
// A requested value below 1 (which covers absent inputs represented as 0 as
// well as negative garbage) yields def; values above max are capped at max.
// Total over all integer inputs; invalid sizes are clamped, never rejected.
//
// This is the single clamping implementation: ScanParameters.Normalize
// delegates here, and the scan service normalizes once per run.
func ClampSampleLimit(requested, def, max int) int {
	if requested < 1 {
		return def
	}
	if requested > max {
		return max
	}
	return requested
}
