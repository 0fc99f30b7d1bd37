package trainer

import (
	"path/filepath"
	"testing"

	"github.com/DaHoC/trainHOG/svmlight"
)

func TestLibSVMTrainPredict(t *testing.T) {
	prob := separableProblem()
	p := Params{Type: CSVC, Kernel: Linear, C: 1, Tol: 1e-3, CacheSize: 64}
	tr, err := New("libsvm")
	if err != nil {
		t.Fatal(err)
	}
	m, err := tr.Train(prob, p)
	if err != nil {
		t.Fatal(err)
	}
	if m.Empty() {
		t.Fatal("no support vectors")
	}
	if m.Kernel != Linear {
		t.Errorf("kernel: want %v, got %v", Linear, m.Kernel)
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
	// A reloaded model must predict identically.
	fname := filepath.Join(t.TempDir(), "model.dat")
	if err := tr.Save(m, fname); err != nil {
		t.Fatal(err)
	}
	got, err := tr.Load(fname)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.SVs) != len(m.SVs) {
		t.Fatalf("number of support vectors: want %d, got %d", len(m.SVs), len(got.SVs))
	}
	if got.Rho != m.Rho {
		t.Errorf("rho: want %g, got %g", m.Rho, got.Rho)
	}
	for i, s := range prob.Samples {
		pred, err := tr.Predict(got, s.Features)
		if err != nil {
			t.Fatal(err)
		}
		if pred.Label != s.Label {
			t.Errorf("reloaded, sample %d: want label %g, got %g", i, s.Label, pred.Label)
		}
	}
}

func TestLibSVMTrainEmpty(t *testing.T) {
	tr, err := New("libsvm")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Train(svmlight.NewProblem(nil), DefaultParams()); err == nil {
		t.Error("expect error for empty problem")
	}
}
