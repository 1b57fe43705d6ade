package search

import "math"

// Cosine computes cosine similarity between two vectors of equal length.
// A zero norm on either side yields 0 rather than a division error.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrVectorLengthMismatch
	}
	var dot float64
	var na float64
	var nb float64
	for i := 0; i < len(a); i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0, nil
	}
	return dot / den, nil
}

// Round3 rounds a score to 3 decimal places for presentation. Ranking always
// uses the unrounded value.
func Round3(score float64) float64 {
	return math.Round(score*1000) / 1000
}
