package trainer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/DaHoC/trainHOG/svmlight"
)

func TestDenseSet(t *testing.T) {
	prob := svmlight.NewProblem([]svmlight.Sample{
		{Label: 1, Features: []svmlight.Feature{{Index: 1, Value: 2}, {Index: 3, Value: 1}}},
		{Label: -1, Features: []svmlight.Feature{{Index: 2, Value: 5}}},
	})
	set := &denseSet{prob: prob, dim: prob.MaxIndex, bias: 1}
	if set.Len() != 2 {
		t.Errorf("len: want %d, got %d", 2, set.Len())
	}
	if set.Dim() != 4 {
		t.Errorf("dim with bias: want %d, got %d", 4, set.Dim())
	}
	want := []float64{2, 0, 1, 1}
	got := set.At(0)
	if len(got) != len(want) {
		t.Fatalf("vector length: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("at %d: want %g, got %g", i, want[i], got[i])
		}
	}
	plain := &denseSet{prob: prob, dim: prob.MaxIndex}
	if plain.Dim() != 3 {
		t.Errorf("dim without bias: want %d, got %d", 3, plain.Dim())
	}
}

func TestSparseDot(t *testing.T) {
	a := []svmlight.Feature{{Index: 1, Value: 2}, {Index: 3, Value: 4}, {Index: 5, Value: 1}}
	b := []svmlight.Feature{{Index: 3, Value: 0.5}, {Index: 4, Value: 10}, {Index: 5, Value: 2}}
	if want, got := 4*0.5+1*2.0, sparseDot(a, b); got != want {
		t.Errorf("want %g, got %g", want, got)
	}
	if got := sparseDot(a, nil); got != 0 {
		t.Errorf("empty operand: want 0, got %g", got)
	}
}

// Classes separated by the sign of x1-x2.
func separableProblem() *svmlight.Problem {
	return svmlight.NewProblem([]svmlight.Sample{
		{Label: 1, Features: []svmlight.Feature{{Index: 1, Value: 3}, {Index: 2, Value: 1}}},
		{Label: 1, Features: []svmlight.Feature{{Index: 1, Value: 4}, {Index: 2, Value: 2}}},
		{Label: -1, Features: []svmlight.Feature{{Index: 1, Value: 1}, {Index: 2, Value: 3}}},
		{Label: -1, Features: []svmlight.Feature{{Index: 1, Value: 2}, {Index: 2, Value: 4}}},
	})
}

func TestLinearTrainPredict(t *testing.T) {
	prob := separableProblem()
	p := DefaultParams()
	p.Type = CSVC
	p.C = 1
	p.Term = Term{Epochs: 200, RelGap: 1e-4}
	tr, err := New("linear")
	if err != nil {
		t.Fatal(err)
	}
	m, err := tr.Train(prob, p)
	if err != nil {
		t.Fatal(err)
	}
	if m.Kernel != Linear {
		t.Errorf("kernel: want %v, got %v", Linear, m.Kernel)
	}
	if len(m.SVs) != 1 {
		t.Fatalf("want single compacted vector, got %d", len(m.SVs))
	}
	for i, s := range prob.Samples {
		pred, err := tr.Predict(m, s.Features)
		if err != nil {
			t.Fatal(err)
		}
		if pred.Label != s.Label {
			t.Errorf("sample %d: want label %g, got %g", i, s.Label, pred.Label)
		}
	}
}

func TestLinearTrainRejects(t *testing.T) {
	tr, err := New("linear")
	if err != nil {
		t.Fatal(err)
	}
	prob := separableProblem()
	p := DefaultParams()
	p.Kernel = RBF
	_, err = tr.Train(prob, p)
	if err == nil {
		t.Error("expect error for non-linear kernel")
	}
	var te *TrainError
	if !errors.As(err, &te) {
		t.Errorf("want *TrainError, got %v", err)
	}
	if _, err := tr.Train(svmlight.NewProblem(nil), DefaultParams()); err == nil {
		t.Error("expect error for empty problem")
	}
	bad := svmlight.NewProblem([]svmlight.Sample{
		{Label: 2, Features: []svmlight.Feature{{Index: 1, Value: 1}}},
		{Label: -1, Features: []svmlight.Feature{{Index: 2, Value: 1}}},
	})
	if _, err := tr.Train(bad, DefaultParams()); err == nil {
		t.Error("expect error for label other than +1/-1")
	}
}

func TestLinearSaveLoad(t *testing.T) {
	m := &Model{
		Type:    CSVC,
		Kernel:  Linear,
		Rho:     -0.5,
		SVs:     []SupportVector{{Coef: 1, Features: []svmlight.Feature{{Index: 1, Value: 0.25}, {Index: 4, Value: -1.5}}}},
		Backend: "linear",
	}
	tr, err := New("linear")
	if err != nil {
		t.Fatal(err)
	}
	fname := filepath.Join(t.TempDir(), "model.dat")
	if err := tr.Save(m, fname); err != nil {
		t.Fatal(err)
	}
	got, err := tr.Load(fname)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rho != m.Rho {
		t.Errorf("rho: want %g, got %g", m.Rho, got.Rho)
	}
	if len(got.SVs) != 1 || len(got.SVs[0].Features) != 2 {
		t.Fatalf("support vectors not restored: %+v", got.SVs)
	}
	if got.SVs[0].Features[1] != m.SVs[0].Features[1] {
		t.Errorf("feature: want %v, got %v", m.SVs[0].Features[1], got.SVs[0].Features[1])
	}
}

func TestLinearPersistErrors(t *testing.T) {
	tr, err := New("linear")
	if err != nil {
		t.Fatal(err)
	}
	m := &Model{Kernel: Linear, SVs: []SupportVector{{Coef: 1}}}
	bad := filepath.Join(t.TempDir(), "missing", "model.dat")
	err = tr.Save(m, bad)
	var pe *PersistError
	if !errors.As(err, &pe) {
		t.Fatalf("save: want *PersistError, got %v", err)
	}
	if pe.Op != "save" {
		t.Errorf("op: want save, got %q", pe.Op)
	}
	_, err = tr.Load(filepath.Join(t.TempDir(), "nope.dat"))
	if !errors.As(err, &pe) {
		t.Fatalf("load: want *PersistError, got %v", err)
	}
	if pe.Op != "load" {
		t.Errorf("op: want load, got %q", pe.Op)
	}
}
