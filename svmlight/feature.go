package svmlight

// Feature is one component of a sparse vector.
// Indices count from 1. Index 0 is reserved for the sample serial number in
// precomputed-kernel sets.
type Feature struct {
	Index int
	Value float64
}

// Sample is one labelled sparse vector.
// Features are ordered by strictly increasing index.
type Sample struct {
	Label    float64
	Features []Feature
}

// MaxIndex returns the largest feature index in the sample, or 0 if the
// sample has no features.
func (s Sample) MaxIndex() int {
	if len(s.Features) == 0 {
		return 0
	}
	return s.Features[len(s.Features)-1].Index
}

// Dot returns the inner product with a dense vector.
// Feature index k corresponds to x[k-1]. Components outside x contribute
// zero, as does a serial component at index 0.
func (s Sample) Dot(x []float64) float64 {
	var y float64
	for _, f := range s.Features {
		if f.Index < 1 || f.Index > len(x) {
			continue
		}
		y += f.Value * x[f.Index-1]
	}
	return y
}

// Dense materializes the sample as a dense vector of length n.
// Components outside [1, n] are dropped.
func (s Sample) Dense(n int) []float64 {
	x := make([]float64, n)
	for _, f := range s.Features {
		if f.Index < 1 || f.Index > n {
			continue
		}
		x[f.Index-1] = f.Value
	}
	return x
}

// SparseVector converts a dense vector to features with 1-based indices,
// dropping zero components.
func SparseVector(x []float64) []Feature {
	var fs []Feature
	for i, v := range x {
		if v == 0 {
			continue
		}
		fs = append(fs, Feature{Index: i + 1, Value: v})
	}
	return fs
}
