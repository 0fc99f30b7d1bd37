// Package detector collapses trained support-vector models into dense
// linear detectors for sliding-window evaluation.
package detector

import (
	"errors"
	"log"

	"gonum.org/v1/gonum/floats"

	"github.com/DaHoC/trainHOG/svmlight"
	"github.com/DaHoC/trainHOG/trainer"
)

// ErrEmptyModel indicates a model without support vectors.
var ErrEmptyModel = errors.New("model has no support vectors")

// ErrNotLinear indicates a model whose kernel is not linear.
// Support vectors collapse into one weight vector only under a linear
// kernel.
var ErrNotLinear = errors.New("model kernel is not linear")

// Vector is a dense linear detector.
// The score of a window x is Weights.x + Bias.
type Vector struct {
	Weights []float64
	Bias    float64
}

// Len returns the number of weights.
func (v *Vector) Len() int { return len(v.Weights) }

// Threshold returns -Bias, the raw dot product at which a window becomes a
// hit. It equals the solver threshold rho.
func (v *Vector) Threshold() float64 { return -v.Bias }

// Score returns the detector response for a dense window.
// x must have the same length as Weights.
func (v *Vector) Score(x []float64) float64 {
	return floats.Dot(v.Weights, x) + v.Bias
}

// ScoreSparse returns the detector response for a sparse sample.
// Components outside the detector contribute zero.
func (v *Vector) ScoreSparse(fs []svmlight.Feature) float64 {
	var y float64
	for _, f := range fs {
		if f.Index < 1 || f.Index > len(v.Weights) {
			continue
		}
		y += f.Value * v.Weights[f.Index-1]
	}
	return y + v.Bias
}

// Synthesize collapses the support vectors of a linear model into one dense
// weight vector plus bias. The first support vector fixes the length. A
// component of a later vector that falls outside that length is skipped
// with a warning; the returned count is the number of skipped components.
// The result is deterministic: accumulation runs in model order.
func Synthesize(m *trainer.Model) (*Vector, int, error) {
	if m.Kernel != trainer.Linear {
		return nil, 0, ErrNotLinear
	}
	if m.Empty() {
		return nil, 0, ErrEmptyModel
	}
	n := m.SVs[0].MaxIndex()
	v := &Vector{
		Weights: make([]float64, n),
		Bias:    -m.Rho,
	}
	var skipped int
	for i, sv := range m.SVs {
		for _, f := range sv.Features {
			if f.Index < 1 || f.Index > n {
				skipped++
				log.Printf("support vector %d: feature index %d outside [1, %d], skip", i, f.Index, n)
				continue
			}
			v.Weights[f.Index-1] += sv.Coef * f.Value
		}
	}
	return v, skipped, nil
}
