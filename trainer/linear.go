package trainer

import (
	"fmt"
	"os"

	"github.com/jvlmdr/go-svm/svm"

	"github.com/DaHoC/trainHOG/svmlight"
)

func init() {
	Register("linear", func() Trainer { return new(linearTrainer) })
}

// linearTrainer trains a linear machine with the go-svm solver.
// The trained weight vector is compacted into a single support vector,
// which is exact for a linear kernel.
type linearTrainer struct{}

// denseSet presents the samples of a problem as dense vectors.
// A nonzero bias appends a constant component to every vector.
type denseSet struct {
	prob *svmlight.Problem
	dim  int
	bias float64
}

func (set *denseSet) Len() int { return set.prob.Len() }

func (set *denseSet) Dim() int {
	if set.bias != 0 {
		return set.dim + 1
	}
	return set.dim
}

func (set *denseSet) At(i int) []float64 {
	x := set.prob.Samples[i].Dense(set.dim)
	if set.bias != 0 {
		x = append(x, set.bias)
	}
	return x
}

func (linearTrainer) Train(prob *svmlight.Problem, p Params) (*Model, error) {
	const backend = "linear"
	if prob.Len() == 0 {
		return nil, trainErrf(backend, "empty problem")
	}
	if p.Kernel != Linear {
		return nil, trainErrf(backend, "kernel %v not supported", p.Kernel)
	}
	if prob.MaxIndex == 0 {
		return nil, trainErrf(backend, "problem has no features")
	}
	y := prob.Labels()
	for i, yi := range y {
		if yi != 1 && yi != -1 {
			return nil, trainErrf(backend, "sample %d: label %g, want +1 or -1", i, yi)
		}
	}
	c := make([]float64, prob.Len())
	for i := range c {
		c[i] = p.C
	}
	set := &denseSet{prob: prob, dim: prob.MaxIndex, bias: p.Bias}
	w, err := svm.Train(set, y, c, p.Term.Terminate)
	if err != nil {
		return nil, &TrainError{Backend: backend, Err: err}
	}
	var b float64
	if p.Bias != 0 {
		b = p.Bias * w[len(w)-1]
		w = w[:len(w)-1]
	}
	m := &Model{
		Type:    CSVC,
		Kernel:  Linear,
		Rho:     -b,
		SVs:     []SupportVector{{Coef: 1, Features: svmlight.SparseVector(w)}},
		Backend: backend,
	}
	return m, nil
}

func (linearTrainer) Predict(m *Model, x []svmlight.Feature) (Prediction, error) {
	if m.Kernel != Linear {
		return Prediction{}, fmt.Errorf("linear backend predicts linear models only")
	}
	if m.Empty() {
		return Prediction{}, fmt.Errorf("model has no support vectors")
	}
	var score float64
	for _, sv := range m.SVs {
		score += sv.Coef * sparseDot(sv.Features, x)
	}
	score -= m.Rho
	label := 1.0
	if score < 0 {
		label = -1
	}
	return Prediction{Label: label}, nil
}

func (linearTrainer) Save(m *Model, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &PersistError{Op: "save", Path: path, Err: err}
	}
	defer file.Close()
	if err := EncodeModel(file, m); err != nil {
		return &PersistError{Op: "save", Path: path, Err: err}
	}
	return nil
}

func (linearTrainer) Load(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &PersistError{Op: "load", Path: path, Err: err}
	}
	defer file.Close()
	m, err := DecodeModel(file)
	if err != nil {
		return nil, &PersistError{Op: "load", Path: path, Err: err}
	}
	if m.Kernel != Linear {
		return nil, &PersistError{Op: "load", Path: path, Err: fmt.Errorf("kernel %v in a linear model", m.Kernel)}
	}
	m.Backend = "linear"
	return m, nil
}

// sparseDot returns the inner product of two ordered sparse vectors.
func sparseDot(a, b []svmlight.Feature) float64 {
	var y float64
	var i, j int
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index < b[j].Index:
			i++
		case a[i].Index > b[j].Index:
			j++
		default:
			y += a[i].Value * b[j].Value
			i++
			j++
		}
	}
	return y
}
