package trainer

import (
	"fmt"
	"os"

	libSvm "github.com/ewalker544/libsvm-go"

	"github.com/DaHoC/trainHOG/svmlight"
)

func init() {
	Register("libsvm", func() Trainer { return new(libsvmTrainer) })
}

// libsvmTrainer trains kernel machines with the libsvm solver.
type libsvmTrainer struct{}

func (libsvmTrainer) Train(prob *svmlight.Problem, p Params) (*Model, error) {
	const backend = "libsvm"
	if prob.Len() == 0 {
		return nil, trainErrf(backend, "empty problem")
	}
	if p.Kernel == Precomputed {
		if err := checkSerialColumn(prob); err != nil {
			return nil, &TrainError{Backend: backend, Err: err}
		}
	}
	param := libSvm.NewParameter()
	param.SvmType = machineConst(p.Type)
	param.KernelType = kernelConst(p.Kernel)
	param.Degree = p.Degree
	param.Gamma = prob.GammaDefault(p.Gamma)
	param.Coef0 = p.Coef0
	param.C = p.C
	param.Nu = p.Nu
	param.P = p.Epsilon
	param.Eps = p.Tol
	param.CacheSize = int(p.CacheSize)
	param.Probability = p.Probability

	// The solver reads problems from files.
	fname, cleanup, err := problemFile(prob)
	if err != nil {
		return nil, &TrainError{Backend: backend, Err: err}
	}
	defer cleanup()
	problem, err := libSvm.NewProblem(fname, param)
	if err != nil {
		return nil, &TrainError{Backend: backend, Err: err}
	}
	native := libSvm.NewModel(param)
	if err := native.Train(problem); err != nil {
		return nil, &TrainError{Backend: backend, Err: err}
	}
	m, err := portableModel(native)
	if err != nil {
		return nil, &TrainError{Backend: backend, Err: err}
	}
	m.Backend = backend
	m.native = native
	return m, nil
}

func (libsvmTrainer) Predict(m *Model, x []svmlight.Feature) (Prediction, error) {
	native, ok := m.native.(*libSvm.Model)
	if !ok {
		return Prediction{}, fmt.Errorf("model was not produced by the libsvm backend")
	}
	vec := make(map[int]float64, len(x))
	for _, f := range x {
		vec[f.Index] = f.Value
	}
	if len(m.ProbA) > 0 {
		label, prob := native.PredictProbability(vec)
		return Prediction{Label: label, Prob: prob}, nil
	}
	return Prediction{Label: native.Predict(vec)}, nil
}

func (libsvmTrainer) Save(m *Model, path string) error {
	native, ok := m.native.(*libSvm.Model)
	if !ok {
		return &PersistError{Op: "save", Path: path, Err: fmt.Errorf("model was not produced by the libsvm backend")}
	}
	if err := native.Dump(path); err != nil {
		return &PersistError{Op: "save", Path: path, Err: err}
	}
	return nil
}

func (libsvmTrainer) Load(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &PersistError{Op: "load", Path: path, Err: err}
	}
	m, err := DecodeModel(file)
	file.Close()
	if err != nil {
		return nil, &PersistError{Op: "load", Path: path, Err: err}
	}
	m.Backend = "libsvm"
	m.native = libSvm.NewModelFromFile(path)
	return m, nil
}

// problemFile writes the problem to a file the solver can read.
// The caller must invoke cleanup when done.
func problemFile(prob *svmlight.Problem) (string, func(), error) {
	file, err := os.CreateTemp("", "trainhog-problem-")
	if err != nil {
		return "", nil, err
	}
	fname := file.Name()
	cleanup := func() { os.Remove(fname) }
	err = svmlight.WriteProblem(file, prob, "")
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return fname, cleanup, nil
}

// portableModel extracts the support vectors and coefficients from a native
// model by round-tripping it through the model file format.
func portableModel(native *libSvm.Model) (*Model, error) {
	file, err := os.CreateTemp("", "trainhog-model-")
	if err != nil {
		return nil, err
	}
	fname := file.Name()
	file.Close()
	defer os.Remove(fname)
	if err := native.Dump(fname); err != nil {
		return nil, err
	}
	dump, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer dump.Close()
	return DecodeModel(dump)
}

// checkSerialColumn verifies that a problem destined for a precomputed
// kernel carries the 0:serial column.
func checkSerialColumn(prob *svmlight.Problem) error {
	for i, s := range prob.Samples {
		if len(s.Features) == 0 || s.Features[0].Index != 0 {
			return fmt.Errorf("sample %d: precomputed kernel needs a 0:serial column", i)
		}
	}
	return nil
}

func machineConst(t MachineType) int {
	switch t {
	case CSVC:
		return libSvm.C_SVC
	case NuSVC:
		return libSvm.NU_SVC
	case OneClass:
		return libSvm.ONE_CLASS
	case EpsilonSVR:
		return libSvm.EPSILON_SVR
	case NuSVR:
		return libSvm.NU_SVR
	}
	return libSvm.C_SVC
}

func kernelConst(k Kernel) int {
	switch k {
	case Linear:
		return libSvm.LINEAR
	case Poly:
		return libSvm.POLY
	case RBF:
		return libSvm.RBF
	case Sigmoid:
		return libSvm.SIGMOID
	case Precomputed:
		return libSvm.PRECOMPUTED
	}
	return libSvm.LINEAR
}
