package detector

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeFormat(t *testing.T) {
	v := &Vector{Weights: []float64{1.5, -2}, Bias: 0.25}
	var b bytes.Buffer
	if err := Encode(&b, v, true); err != nil {
		t.Fatal(err)
	}
	if want := "1.5 -2 0.25\n"; b.String() != want {
		t.Errorf("want %q, got %q", want, b.String())
	}
	b.Reset()
	if err := Encode(&b, v, false); err != nil {
		t.Fatal(err)
	}
	if want := "1.5 -2\n"; b.String() != want {
		t.Errorf("want %q, got %q", want, b.String())
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	v := &Vector{Weights: []float64{0.125, -3, 0, 2.5e-8}, Bias: -0.75}
	for _, withBias := range []bool{true, false} {
		var b bytes.Buffer
		if err := Encode(&b, v, withBias); err != nil {
			t.Fatal("encode:", err)
		}
		got, err := Decode(&b, withBias)
		if err != nil {
			t.Fatal("decode:", err)
		}
		sliceEq(t, v.Weights, got.Weights)
		if withBias && got.Bias != v.Bias {
			t.Errorf("bias: want %g, got %g", v.Bias, got.Bias)
		}
		if !withBias && got.Bias != 0 {
			t.Errorf("bias: want 0, got %g", got.Bias)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode(strings.NewReader("1.5 abc 2\n"), true); err == nil {
		t.Error("expect error for bad number")
	}
	if _, err := Decode(strings.NewReader(""), true); err == nil {
		t.Error("expect error for empty input with bias")
	}
}

func TestSaveLoad(t *testing.T) {
	v := &Vector{Weights: []float64{1, -0.5, 0.25}, Bias: 0.6}
	fname := filepath.Join(t.TempDir(), "descriptor.dat")
	if err := Save(fname, v); err != nil {
		t.Fatal(err)
	}
	got, err := Load(fname)
	if err != nil {
		t.Fatal(err)
	}
	sliceEq(t, v.Weights, got.Weights)
	if got.Bias != v.Bias {
		t.Errorf("bias: want %g, got %g", v.Bias, got.Bias)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.dat")); err == nil {
		t.Error("expect error for missing file")
	}
}
