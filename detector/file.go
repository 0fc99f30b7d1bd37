package detector

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Save writes the detector to the named file with the bias as the trailing
// value.
func Save(fname string, v *Vector) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer file.Close()
	return Encode(file, v, true)
}

// Load reads a detector saved by Save.
func Load(fname string) (*Vector, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	v, err := Decode(file, true)
	if err != nil {
		return nil, fmt.Errorf("load detector %s: %w", fname, err)
	}
	return v, nil
}

// Encode writes the weights as one line of space-separated values with the
// C-locale decimal point. withBias appends the bias as the trailing value,
// the layout expected by scorers that take the bias as an extra component.
func Encode(w io.Writer, v *Vector, withBias bool) error {
	b := bufio.NewWriter(w)
	for i, x := range v.Weights {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	if withBias {
		if len(v.Weights) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(v.Bias, 'g', -1, 64))
	}
	b.WriteByte('\n')
	return b.Flush()
}

// Decode reads a detector written by Encode.
// withBias takes the trailing value as the bias.
func Decode(r io.Reader, withBias bool) (*Vector, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(string(buf))
	xs := make([]float64, len(fields))
	for i, field := range fields {
		x, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: bad number %q", i, field)
		}
		xs[i] = x
	}
	if !withBias {
		return &Vector{Weights: xs}, nil
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("missing bias")
	}
	return &Vector{Weights: xs[:len(xs)-1], Bias: xs[len(xs)-1]}, nil
}
