package svmlight

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ReadOptions selects dialect details of the sparse format.
type ReadOptions struct {
	// Comments skips lines starting with '#'. SVMlight sets may carry such
	// lines; in libsvm sets they are malformed.
	Comments bool
	// Precomputed requires every sample to begin with the pair 0:serial
	// where serial is the sample's 1-based position in the kernel matrix.
	Precomputed bool
}

// ParseError describes malformed input in a sparse training-set file.
type ParseError struct {
	// Line counts physical lines from 1, comments included.
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func parseErrf(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ReadProblem parses a sparse training set from r.
// It makes two passes over the input: the first counts samples and features
// to size storage exactly, the second fills and validates. All features
// share one backing array. Malformed input yields a *ParseError carrying
// the 1-based line number.
func ReadProblem(r io.Reader, opts ReadOptions) (*Problem, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	numSamples, numFeatures := countProblem(buf, opts)
	var (
		samples = make([]Sample, 0, numSamples)
		arena   = make([]Feature, 0, numFeatures)
		lines   []int
		maxIdx  int
		lineno  int
	)
	if opts.Precomputed {
		lines = make([]int, 0, numSamples)
	}
	for rest := buf; len(rest) > 0; {
		var line []byte
		line, rest = nextLine(rest)
		lineno++
		if opts.Comments && isComment(line) {
			continue
		}
		toks := strings.Fields(string(line))
		if len(toks) == 0 {
			return nil, parseErrf(lineno, "empty line")
		}
		label, err := strconv.ParseFloat(toks[0], 64)
		if err != nil {
			return nil, parseErrf(lineno, "bad label %q", toks[0])
		}
		// First admissible index is 1, or 0 for the serial column.
		prev := 0
		if opts.Precomputed {
			prev = -1
		}
		start := len(arena)
		for _, tok := range toks[1:] {
			k := strings.IndexByte(tok, ':')
			if k < 0 {
				return nil, parseErrf(lineno, "feature %q: missing ':'", tok)
			}
			idx, err := strconv.Atoi(tok[:k])
			if err != nil {
				return nil, parseErrf(lineno, "feature %q: bad index", tok)
			}
			if idx <= prev {
				return nil, parseErrf(lineno, "feature %q: index %d out of order", tok, idx)
			}
			val, err := strconv.ParseFloat(tok[k+1:], 64)
			if err != nil {
				return nil, parseErrf(lineno, "feature %q: bad value", tok)
			}
			arena = append(arena, Feature{Index: idx, Value: val})
			prev = idx
		}
		if prev > maxIdx {
			maxIdx = prev
		}
		samples = append(samples, Sample{
			Label:    label,
			Features: arena[start:len(arena):len(arena)],
		})
		if opts.Precomputed {
			lines = append(lines, lineno)
		}
	}
	prob := &Problem{Samples: samples, MaxIndex: maxIdx}
	if opts.Precomputed {
		if err := checkPrecomputed(prob, lines); err != nil {
			return nil, err
		}
	}
	return prob, nil
}

// ReadProblemFile parses the sparse training set in the named file.
func ReadProblemFile(path string, opts ReadOptions) (*Problem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	prob, err := ReadProblem(file, opts)
	if err != nil {
		return nil, fmt.Errorf("read problem %s: %w", path, err)
	}
	prob.Path = path
	return prob, nil
}

// countProblem sizes the sample slice and the feature array.
// Validation waits for the second pass.
func countProblem(buf []byte, opts ReadOptions) (samples, features int) {
	for rest := buf; len(rest) > 0; {
		var line []byte
		line, rest = nextLine(rest)
		if opts.Comments && isComment(line) {
			continue
		}
		samples++
		if n := len(strings.Fields(string(line))); n > 1 {
			features += n - 1
		}
	}
	return samples, features
}

// checkPrecomputed enforces the serial column of precomputed-kernel sets.
// The serial must be an integer in [1, MaxIndex].
func checkPrecomputed(prob *Problem, lines []int) error {
	for i, s := range prob.Samples {
		if len(s.Features) == 0 || s.Features[0].Index != 0 {
			return parseErrf(lines[i], "first feature must be 0:serial")
		}
		serial := s.Features[0].Value
		if serial != math.Trunc(serial) || serial < 1 || serial > float64(prob.MaxIndex) {
			return parseErrf(lines[i], "sample serial %g outside [1, %d]", serial, prob.MaxIndex)
		}
	}
	return nil
}

func nextLine(buf []byte) (line, rest []byte) {
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		line, rest = buf[:i], buf[i+1:]
	} else {
		line = buf
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, rest
}

func isComment(line []byte) bool {
	return len(line) > 0 && line[0] == '#'
}
