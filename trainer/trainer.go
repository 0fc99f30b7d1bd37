// Package trainer provides a uniform interface to SVM solvers for training
// sliding-window detectors. Backends register themselves by name and are
// selected at runtime.
package trainer

import (
	"fmt"
	"sort"

	"github.com/DaHoC/trainHOG/svmlight"
)

// Trainer is the capability set shared by all backends: train a model,
// evaluate it, and move it to and from disk. Every value returned by New is
// independent; trainers share no state.
type Trainer interface {
	Train(prob *svmlight.Problem, p Params) (*Model, error)
	Predict(m *Model, x []svmlight.Feature) (Prediction, error)
	Save(m *Model, path string) error
	Load(path string) (*Model, error)
}

// Prediction is the outcome of evaluating one sample.
type Prediction struct {
	Label float64
	// Prob holds probability estimates, or is nil when the model carries no
	// probability information.
	Prob []float64
}

// Factory creates trainers by name.
type Factory struct {
	types map[string]func() Trainer
}

func NewFactory() *Factory {
	return &Factory{types: make(map[string]func() Trainer)}
}

func (f *Factory) Register(name string, create func() Trainer) {
	f.types[name] = create
}

func (f *Factory) New(name string) (Trainer, error) {
	create, ok := f.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown trainer %q", name)
	}
	return create(), nil
}

func (f *Factory) Names() []string {
	var names []string
	for name := range f.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultFactory = NewFactory()

// Register adds a backend to the default factory.
func Register(name string, create func() Trainer) {
	defaultFactory.Register(name, create)
}

// New creates a trainer registered under the given name.
func New(name string) (Trainer, error) {
	return defaultFactory.New(name)
}

// Names lists the registered backends.
func Names() []string {
	return defaultFactory.Names()
}
