package cli

import (
	"io"
	"testing"
)

type scriptedLines struct {
	lines []string
}

func (s *scriptedLines) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestRunSourceUsesProvidedReader(t *testing.T) {
	in := &scriptedLines{lines: []string{"hello"}}
	result, errs := runSource(`(, ())`, "<test>", DefaultConfig(), in)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %s", errs[0])
	}
	if result.Inspect() != `"hello"` {
		t.Errorf("expected %q, got %s", `"hello"`, result.Inspect())
	}
}

func TestRunSourceReaderPersistsAcrossRuns(t *testing.T) {
	// The REPL hands the same reader to every line it runs; consecutive
	// programs must consume consecutive input lines.
	in := &scriptedLines{lines: []string{"first", "second"}}

	for _, want := range []string{`"first"`, `"second"`} {
		result, errs := runSource(`(, ())`, "<test>", DefaultConfig(), in)
		if len(errs) > 0 {
			t.Fatalf("unexpected errors: %s", errs[0])
		}
		if result.Inspect() != want {
			t.Errorf("expected %s, got %s", want, result.Inspect())
		}
	}
}
