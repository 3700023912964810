package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/interp"
	"github.com/maw3193/bft/internal/ports"
)

type RunSuite struct {
	suites   ports.SuiteLoader
	programs ports.ProgramLoader
}

func NewRunSuite(sl ports.SuiteLoader, pl ports.ProgramLoader) *RunSuite {
	return &RunSuite{suites: sl, programs: pl}
}

// Execute runs every case of the suite at path. Case settings override the
// defaults in spec; program paths resolve relative to the manifest. A failing
// case lands in the result, not in err: err is reserved for not being able to
// run the suite at all.
func (uc *RunSuite) Execute(ctx context.Context, path string, defaults domain.MachineSpec) (domain.SuiteResult, error) {
	suite, err := uc.suites.LoadSuite(path)
	if err != nil {
		return domain.SuiteResult{}, err
	}

	res := domain.SuiteResult{
		Name:      suite.Name,
		Path:      suite.Path,
		StartedAt: time.Now().UTC(),
		Cases:     make([]domain.CaseResult, 0, len(suite.Cases)),
	}

	baseDir := filepath.Dir(path)
	for _, tc := range suite.Cases {
		if err := ctx.Err(); err != nil {
			res.FinishedAt = time.Now().UTC()
			return res, err
		}
		res.Cases = append(res.Cases, uc.runCase(ctx, baseDir, tc, defaults))
	}

	res.FinishedAt = time.Now().UTC()
	return res, nil
}

func (uc *RunSuite) runCase(ctx context.Context, baseDir string, tc domain.TestCase, defaults domain.MachineSpec) domain.CaseResult {
	started := time.Now()
	cr := domain.CaseResult{Name: tc.Name, Program: tc.Program}

	progPath := tc.Program
	if !filepath.IsAbs(progPath) {
		progPath = filepath.Join(baseDir, progPath)
	}

	prog, err := uc.programs.Load(progPath)
	if err != nil {
		cr.Message = err.Error()
		cr.Duration = time.Since(started)
		return cr
	}
	dec, err := domain.Decorate(prog)
	if err != nil {
		cr.Message = err.Error()
		cr.Duration = time.Since(started)
		return cr
	}

	runner := interp.NewRunner(dec, resolveCaseSpec(tc, defaults))

	var out bytes.Buffer
	runErr := runner.Run(ctx, bytes.NewReader(tc.Input), &out)

	cr.Steps = runner.Steps()
	cr.Duration = time.Since(started)

	if runErr != nil {
		cr.Message = runErr.Error()
		return cr
	}
	if !bytes.Equal(out.Bytes(), tc.Expect) {
		cr.Message = diffOutput(tc.Expect, out.Bytes())
		return cr
	}

	cr.Passed = true
	return cr
}

// resolveCaseSpec layers per-case overrides on top of the workspace defaults.
func resolveCaseSpec(tc domain.TestCase, defaults domain.MachineSpec) domain.MachineSpec {
	spec := defaults
	if tc.Cells > 0 {
		spec.Cells = tc.Cells
	}
	if tc.Extensible != nil {
		spec.Extensible = *tc.Extensible
	}
	if tc.Width != 0 {
		spec.Width = tc.Width
	}
	if tc.EOF != "" {
		spec.EOF = tc.EOF
	}
	if tc.MaxSteps > 0 {
		spec.MaxSteps = tc.MaxSteps
	}
	return spec
}

// diffOutput reports where actual output diverges from the expectation,
// with a short window of context.
func diffOutput(want, got []byte) string {
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			return fmt.Sprintf("output differs at byte %d: want %q, got %q",
				i, want[i:min(i+16, len(want))], got[i:min(i+16, len(got))])
		}
	}
	return fmt.Sprintf("output has %d bytes, want %d", len(got), len(want))
}
