package domain

import "time"

// RunStatus is the terminal state of one interpretation.
type RunStatus string

const (
	RunOK    RunStatus = "ok"
	RunError RunStatus = "error"
)

// RunArtifact represents a persisted run for later inspection.
type RunArtifact struct {
	ProgramName string
	ProgramPath string

	StartedAt  time.Time
	FinishedAt time.Time

	Status RunStatus
	Error  string // empty when Status is RunOK

	Steps       uint64
	OutputBytes int64

	Width      CellWidth
	TapeCells  int // final tape length, after any growth
	Extensible bool

	// Profile counts executed instructions keyed by their symbol.
	Profile map[string]uint64
}

// RunRef is a lightweight reference to a stored run.
type RunRef struct {
	ID        string
	Program   string
	Status    RunStatus
	StartedAt time.Time
}

// TestCase is one entry of a Brainfuck test suite. Zero-valued settings
// inherit the workspace defaults; Extensible is a pointer because false is a
// meaningful override.
type TestCase struct {
	Name    string
	Program string
	Input   []byte
	Expect  []byte

	Cells      int
	Extensible *bool
	Width      CellWidth
	EOF        EOFMode
	MaxSteps   uint64
}

// Suite is a named set of test cases loaded from a manifest.
type Suite struct {
	Name  string
	Path  string
	Cases []TestCase
}

// CaseResult is the outcome of one suite case.
type CaseResult struct {
	Name     string
	Program  string
	Passed   bool
	Message  string // failure explanation; empty on pass
	Steps    uint64
	Duration time.Duration
}

// SuiteResult is the outcome of a whole suite run.
type SuiteResult struct {
	Name       string
	Path       string
	StartedAt  time.Time
	FinishedAt time.Time
	Cases      []CaseResult
}

// Failed counts the cases that did not pass.
func (r SuiteResult) Failed() int {
	n := 0
	for _, c := range r.Cases {
		if !c.Passed {
			n++
		}
	}
	return n
}
