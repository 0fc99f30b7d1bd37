package trainer

import (
	"github.com/DaHoC/trainHOG/svmlight"
)

// SupportVector is one support vector together with its coefficient
// (alpha times label, as stored by libsvm).
type SupportVector struct {
	Coef     float64
	Features []svmlight.Feature
}

// MaxIndex returns the largest feature index in the vector, or 0 if it has
// no features. The features need not be ordered.
func (sv SupportVector) MaxIndex() int {
	var max int
	for _, f := range sv.Features {
		if f.Index > max {
			max = f.Index
		}
	}
	return max
}

// Model is the portable view of a trained machine. It carries everything
// needed to synthesize a dense detector and to persist the machine.
//
// The decision function is sum_i Coef_i K(sv_i, x) - Rho.
type Model struct {
	Type   MachineType
	Kernel Kernel
	Degree int
	Gamma  float64
	Coef0  float64
	// Rho is the solver threshold. The additive bias of the decision
	// function is -Rho.
	Rho float64
	SVs []SupportVector
	// ProbA, ProbB hold probability calibration coefficients.
	// Empty slices mean the model has no probability information.
	ProbA, ProbB []float64
	// Backend names the trainer that produced or loaded the model.
	Backend string

	// native is the backend handle used for prediction.
	native interface{}
}

// Empty reports whether the model has no support vectors.
func (m *Model) Empty() bool { return len(m.SVs) == 0 }
