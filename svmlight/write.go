package svmlight

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

// WriteProblem writes the problem in the sparse training-set format.
// A non-empty comment becomes a leading '#' line. Emit comments only for
// consumers that accept them.
func WriteProblem(w io.Writer, prob *Problem, comment string) error {
	b := bufio.NewWriter(w)
	if comment != "" {
		b.WriteString("# ")
		b.WriteString(comment)
		b.WriteByte('\n')
	}
	for _, s := range prob.Samples {
		encodeSample(b, s)
	}
	return b.Flush()
}

// WriteProblemFile writes the problem to the named file.
func WriteProblemFile(path string, prob *Problem, comment string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteProblem(file, prob, comment)
}

func encodeSample(b *bufio.Writer, s Sample) {
	b.WriteString(strconv.FormatFloat(s.Label, 'g', -1, 64))
	for _, f := range s.Features {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(f.Index))
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(f.Value, 'g', -1, 64))
	}
	b.WriteByte('\n')
}
