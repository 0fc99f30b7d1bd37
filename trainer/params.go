package trainer

import (
	"fmt"
	"log"
)

// Kernel identifies the kernel family. Values follow the libsvm wire order.
type Kernel int

const (
	Linear Kernel = iota
	Poly
	RBF
	Sigmoid
	Precomputed
)

var kernelNames = []string{"linear", "polynomial", "rbf", "sigmoid", "precomputed"}

func (k Kernel) String() string {
	if k < 0 || int(k) >= len(kernelNames) {
		return fmt.Sprintf("kernel(%d)", int(k))
	}
	return kernelNames[k]
}

func kernelByName(s string) (Kernel, bool) {
	for i, name := range kernelNames {
		if s == name {
			return Kernel(i), true
		}
	}
	return 0, false
}

// ParseKernel resolves a kernel by name, as used in model files.
func ParseKernel(s string) (Kernel, error) {
	k, ok := kernelByName(s)
	if !ok {
		return 0, fmt.Errorf("unknown kernel: %q", s)
	}
	return k, nil
}

// MachineType identifies the learning machine. Values follow the libsvm
// wire order.
type MachineType int

const (
	CSVC MachineType = iota
	NuSVC
	OneClass
	EpsilonSVR
	NuSVR
)

var machineNames = []string{"c_svc", "nu_svc", "one_class", "epsilon_svr", "nu_svr"}

func (m MachineType) String() string {
	if m < 0 || int(m) >= len(machineNames) {
		return fmt.Sprintf("machine(%d)", int(m))
	}
	return machineNames[m]
}

func machineByName(s string) (MachineType, bool) {
	for i, name := range machineNames {
		if s == name {
			return MachineType(i), true
		}
	}
	return 0, false
}

// ParseMachine resolves a machine type by name, as used in model files.
func ParseMachine(s string) (MachineType, error) {
	m, ok := machineByName(s)
	if !ok {
		return 0, fmt.Errorf("unknown machine type: %q", s)
	}
	return m, nil
}

// Params configures training. Not every backend consults every field.
type Params struct {
	Type   MachineType
	Kernel Kernel
	Degree int
	// Gamma scales the polynomial, RBF and sigmoid kernels.
	// Zero means unset and derives 1/MaxIndex from the problem.
	Gamma float64
	Coef0 float64
	// C is the misclassification cost.
	C  float64
	Nu float64
	// Epsilon is the width of the regression tube.
	Epsilon float64
	// Tol is the stopping tolerance of the kernel solver.
	Tol float64
	// CacheSize is the kernel cache in megabytes.
	CacheSize float64
	Probability bool
	// Shrinking enables the shrinking heuristic in backends that
	// implement it.
	Shrinking bool
	// Bias is the constant component the linear backend appends to every
	// sample. Zero disables the bias term.
	Bias float64
	// Term bounds the iterations of the linear solver.
	Term Term
}

// DefaultParams returns parameters suited to training a window detector:
// epsilon regression with a linear kernel and a small misclassification
// cost.
func DefaultParams() Params {
	return Params{
		Type:        EpsilonSVR,
		Kernel:      Linear,
		Degree:      3,
		C:           0.01,
		Nu:          0.5,
		Epsilon:     0.1,
		Tol:         1e-3,
		CacheSize:   512,
		Probability: true,
		Bias:        1,
		Term:        Term{Epochs: 100, RelGap: 1e-3},
	}
}

// Term bounds the iterations of the linear solver.
type Term struct {
	Epochs int // Zero or less means no limit.
	RelGap float64
	AbsGap float64
}

// Terminate reports whether the solver should stop.
// It logs the lower and upper bounds at each epoch.
func (term Term) Terminate(epoch int, f, g float64, w []float64, a map[int]float64) (bool, error) {
	log.Printf("bounds: [%.6g, %.6g]", g, f)
	gap := f - g
	// gap and f are positive.
	if relGap := gap / f; relGap <= term.RelGap {
		log.Printf("relative gap %.3g <= %.3g", relGap, term.RelGap)
		return true, nil
	}
	if gap <= term.AbsGap {
		log.Printf("absolute gap %.3g <= %.3g", gap, term.AbsGap)
		return true, nil
	}
	// epoch counts completed epochs.
	if term.Epochs > 0 && epoch >= term.Epochs {
		log.Printf("reach iteration limit")
		return true, nil
	}
	return false, nil
}
