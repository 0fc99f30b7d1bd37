package trainer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DaHoC/trainHOG/svmlight"
)

// EncodeModel writes the model in the libsvm text format.
func EncodeModel(w io.Writer, m *Model) error {
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "svm_type %s\n", m.Type)
	fmt.Fprintf(b, "kernel_type %s\n", m.Kernel)
	if m.Kernel == Poly {
		fmt.Fprintf(b, "degree %d\n", m.Degree)
	}
	if m.Kernel == Poly || m.Kernel == RBF || m.Kernel == Sigmoid {
		fmt.Fprintf(b, "gamma %s\n", formatFloat(m.Gamma))
	}
	if m.Kernel == Poly || m.Kernel == Sigmoid {
		fmt.Fprintf(b, "coef0 %s\n", formatFloat(m.Coef0))
	}
	fmt.Fprintln(b, "nr_class 2")
	fmt.Fprintf(b, "total_sv %d\n", len(m.SVs))
	fmt.Fprintf(b, "rho %s\n", formatFloat(m.Rho))
	if len(m.ProbA) > 0 {
		fmt.Fprintf(b, "probA%s\n", formatFloats(m.ProbA))
	}
	if len(m.ProbB) > 0 {
		fmt.Fprintf(b, "probB%s\n", formatFloats(m.ProbB))
	}
	fmt.Fprintln(b, "SV")
	for _, sv := range m.SVs {
		b.WriteString(formatFloat(sv.Coef))
		for _, f := range sv.Features {
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(f.Index))
			b.WriteByte(':')
			b.WriteString(formatFloat(f.Value))
		}
		b.WriteByte('\n')
	}
	return b.Flush()
}

// DecodeModel reads a model in the libsvm text format.
// It fails on any model that lacks a field the detector synthesis depends
// on: machine and kernel type, rho, and the complete support-vector block.
func DecodeModel(r io.Reader) (*Model, error) {
	sc := bufio.NewScanner(r)
	// Support-vector lines can be long.
	sc.Buffer(make([]byte, 0, 64*1024), 1<<26)
	m := new(Model)
	var (
		totalSV                    = -1
		sawType, sawKernel, sawRho bool
		inSV                       bool
	)
	for !inSV && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "SV" {
			inSV = true
			break
		}
		key, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		switch key {
		case "svm_type":
			t, ok := machineByName(rest)
			if !ok {
				return nil, fmt.Errorf("unknown svm_type %q", rest)
			}
			m.Type, sawType = t, true
		case "kernel_type":
			k, ok := kernelByName(rest)
			if !ok {
				return nil, fmt.Errorf("unknown kernel_type %q", rest)
			}
			m.Kernel, sawKernel = k, true
		case "degree":
			d, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("bad degree %q", rest)
			}
			m.Degree = d
		case "gamma":
			g, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				return nil, fmt.Errorf("bad gamma %q", rest)
			}
			m.Gamma = g
		case "coef0":
			c, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				return nil, fmt.Errorf("bad coef0 %q", rest)
			}
			m.Coef0 = c
		case "nr_class":
			n, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("bad nr_class %q", rest)
			}
			if n != 2 {
				return nil, fmt.Errorf("nr_class %d: only two-class models", n)
			}
		case "total_sv":
			n, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("bad total_sv %q", rest)
			}
			totalSV = n
		case "rho":
			rho, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				return nil, fmt.Errorf("bad rho %q", rest)
			}
			m.Rho, sawRho = rho, true
		case "label", "nr_sv":
			// Per-class counts are not needed for two-class models.
		case "probA":
			ps, err := parseFloats(rest)
			if err != nil {
				return nil, fmt.Errorf("bad probA %q", rest)
			}
			m.ProbA = ps
		case "probB":
			ps, err := parseFloats(rest)
			if err != nil {
				return nil, fmt.Errorf("bad probB %q", rest)
			}
			m.ProbB = ps
		default:
			return nil, fmt.Errorf("unknown model field %q", key)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !inSV {
		return nil, fmt.Errorf("missing SV section")
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		sv, err := parseSupportVector(line)
		if err != nil {
			return nil, err
		}
		m.SVs = append(m.SVs, sv)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	switch {
	case !sawType:
		return nil, fmt.Errorf("missing svm_type")
	case !sawKernel:
		return nil, fmt.Errorf("missing kernel_type")
	case !sawRho:
		return nil, fmt.Errorf("missing rho")
	case totalSV < 0:
		return nil, fmt.Errorf("missing total_sv")
	case len(m.SVs) != totalSV:
		return nil, fmt.Errorf("support vectors: want %d, got %d", totalSV, len(m.SVs))
	}
	return m, nil
}

func parseSupportVector(line string) (SupportVector, error) {
	toks := strings.Fields(line)
	coef, err := strconv.ParseFloat(toks[0], 64)
	if err != nil {
		return SupportVector{}, fmt.Errorf("bad coefficient %q", toks[0])
	}
	fs := make([]svmlight.Feature, 0, len(toks)-1)
	for _, tok := range toks[1:] {
		k := strings.IndexByte(tok, ':')
		if k < 0 {
			return SupportVector{}, fmt.Errorf("feature %q: missing ':'", tok)
		}
		idx, err := strconv.Atoi(tok[:k])
		if err != nil {
			return SupportVector{}, fmt.Errorf("feature %q: bad index", tok)
		}
		val, err := strconv.ParseFloat(tok[k+1:], 64)
		if err != nil {
			return SupportVector{}, fmt.Errorf("feature %q: bad value", tok)
		}
		fs = append(fs, svmlight.Feature{Index: idx, Value: val})
	}
	return SupportVector{Coef: coef, Features: fs}, nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	xs := make([]float64, len(fields))
	for i, field := range fields {
		x, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func formatFloats(xs []float64) string {
	var b strings.Builder
	for _, x := range xs {
		b.WriteByte(' ')
		b.WriteString(formatFloat(x))
	}
	return b.String()
}
