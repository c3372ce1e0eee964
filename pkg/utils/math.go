package utils

// Mean returns the arithmetic mean of xs, or (0, false) when xs is empty.
// The empty case is significant: a zero-row filter must render "N/A", never 0.
func Mean(xs []int) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	var sum int
	for _, v := range xs {
		sum += v
	}
	return float64(sum) / float64(len(xs)), true
}
