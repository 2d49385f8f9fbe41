package aggregator

// LocalMinima returns the indices i, 0 < i < len-1, with x[i] strictly below both neighbours.
func LocalMinima(x []float64) []int {
	var idx []int
	for i := 1; i < len(x)-1; i++ {
		if x[i] < x[i-1] && x[i] < x[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}

// LocalMaxima returns the indices i, 0 < i < len-1, with x[i] strictly above both neighbours.
func LocalMaxima(x []float64) []int {
	var idx []int
	for i := 1; i < len(x)-1; i++ {
		if x[i] > x[i-1] && x[i] > x[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}
