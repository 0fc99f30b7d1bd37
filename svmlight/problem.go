package svmlight

// Problem is a set of labelled samples ready for training.
type Problem struct {
	// Samples in file order.
	Samples []Sample
	// MaxIndex is the largest feature index over all samples.
	MaxIndex int
	// Path names the file the problem was read from, or is empty for
	// problems built in memory.
	Path string
}

// NewProblem builds a problem from samples, computing MaxIndex.
func NewProblem(samples []Sample) *Problem {
	prob := &Problem{Samples: samples}
	for _, s := range samples {
		if n := s.MaxIndex(); n > prob.MaxIndex {
			prob.MaxIndex = n
		}
	}
	return prob
}

// Len returns the number of samples.
func (p *Problem) Len() int { return len(p.Samples) }

// Labels returns the sample labels as one vector.
func (p *Problem) Labels() []float64 {
	y := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		y[i] = s.Label
	}
	return y
}

// GammaDefault returns gamma unless it is zero, the unset sentinel, in which
// case it derives 1/MaxIndex. An empty problem yields zero.
func (p *Problem) GammaDefault(gamma float64) float64 {
	if gamma != 0 {
		return gamma
	}
	if p.MaxIndex == 0 {
		return 0
	}
	return 1 / float64(p.MaxIndex)
}
