package utils

// Linspace returns n evenly spaced values from start to stop inclusive.
// Returns nil if n < 2.
func Linspace(start, stop float64, n int) []float64 {
	if n < 2 {
		return nil
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}
