package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maw3193/bft/internal/domain"
)

func suitePrograms() *fakeProgramLoader {
	return &fakeProgramLoader{sources: map[string]string{
		"programs/zero.bf": "++++++[>++++++++<-]>.",
		"programs/echo.bf": ",[.,]",
		"programs/keep.bf": "+,.",
		"programs/spin.bf": "+[]",
	}}
}

func TestRunSuite_AllCasesPass(t *testing.T) {
	suite := domain.Suite{
		Name: "smoke",
		Path: "tests.toml",
		Cases: []domain.TestCase{
			{Name: "zero", Program: "programs/zero.bf", Expect: []byte("0")},
			{Name: "echo", Program: "programs/echo.bf", Input: []byte("abc"), Expect: []byte("abc")},
		},
	}
	uc := NewRunSuite(fakeSuiteLoader{suite: suite}, suitePrograms())

	res, err := uc.Execute(context.Background(), "tests.toml", domain.MachineSpec{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if len(res.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(res.Cases))
	}
	if res.Failed() != 0 {
		t.Fatalf("expected no failures, got %d: %+v", res.Failed(), res.Cases)
	}
	for _, c := range res.Cases {
		if c.Steps == 0 {
			t.Errorf("case %q: expected steps recorded", c.Name)
		}
	}
	if res.StartedAt.IsZero() || res.FinishedAt.IsZero() {
		t.Error("expected suite timestamps set")
	}
}

func TestRunSuite_ContinuesPastFailures(t *testing.T) {
	suite := domain.Suite{
		Name: "mixed",
		Path: "tests.toml",
		Cases: []domain.TestCase{
			{Name: "wrong", Program: "programs/zero.bf", Expect: []byte("1")},
			{Name: "right", Program: "programs/zero.bf", Expect: []byte("0")},
		},
	}
	uc := NewRunSuite(fakeSuiteLoader{suite: suite}, suitePrograms())

	res, err := uc.Execute(context.Background(), "tests.toml", domain.MachineSpec{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if res.Failed() != 1 {
		t.Fatalf("expected 1 failure, got %d", res.Failed())
	}
	if res.Cases[0].Passed {
		t.Error("expected first case to fail")
	}
	if !strings.Contains(res.Cases[0].Message, "output differs at byte 0") {
		t.Errorf("unexpected failure message: %q", res.Cases[0].Message)
	}
	if !res.Cases[1].Passed {
		t.Errorf("expected second case to pass: %q", res.Cases[1].Message)
	}
}

func TestRunSuite_CaseOverridesDefaults(t *testing.T) {
	// With the zero EOF default the keep program prints 0; the case override
	// flips it to keep, so the cell survives as 1.
	suite := domain.Suite{
		Name: "eof",
		Path: "tests.toml",
		Cases: []domain.TestCase{
			{Name: "keep", Program: "programs/keep.bf", Expect: []byte{1}, EOF: domain.EOFKeep},
		},
	}
	uc := NewRunSuite(fakeSuiteLoader{suite: suite}, suitePrograms())

	res, err := uc.Execute(context.Background(), "tests.toml", domain.MachineSpec{EOF: domain.EOFZero})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.Failed() != 0 {
		t.Fatalf("expected pass, got: %+v", res.Cases)
	}
}

func TestRunSuite_StepLimitGuardsInfiniteLoops(t *testing.T) {
	suite := domain.Suite{
		Name: "guard",
		Path: "tests.toml",
		Cases: []domain.TestCase{
			{Name: "spin", Program: "programs/spin.bf", MaxSteps: 100},
		},
	}
	uc := NewRunSuite(fakeSuiteLoader{suite: suite}, suitePrograms())

	res, err := uc.Execute(context.Background(), "tests.toml", domain.MachineSpec{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.Failed() != 1 {
		t.Fatalf("expected the spinning case to fail, got: %+v", res.Cases)
	}
	if !strings.Contains(res.Cases[0].Message, "step limit") {
		t.Errorf("unexpected message: %q", res.Cases[0].Message)
	}
}

func TestRunSuite_MissingProgramFailsCase(t *testing.T) {
	suite := domain.Suite{
		Name: "missing",
		Path: "tests.toml",
		Cases: []domain.TestCase{
			{Name: "gone", Program: "programs/gone.bf"},
		},
	}
	uc := NewRunSuite(fakeSuiteLoader{suite: suite}, suitePrograms())

	res, err := uc.Execute(context.Background(), "tests.toml", domain.MachineSpec{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.Failed() != 1 {
		t.Fatalf("expected 1 failure, got %d", res.Failed())
	}
	if res.Cases[0].Message == "" {
		t.Error("expected a failure message")
	}
}

func TestRunSuite_LoaderErrorFailsSuite(t *testing.T) {
	wantErr := &domain.OpError{Op: "tomlsuite.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	uc := NewRunSuite(fakeSuiteLoader{err: wantErr}, suitePrograms())

	_, err := uc.Execute(context.Background(), "tests.toml", domain.MachineSpec{})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestRunSuite_StopsOnContextCancel(t *testing.T) {
	suite := domain.Suite{
		Name: "cancel",
		Path: "tests.toml",
		Cases: []domain.TestCase{
			{Name: "zero", Program: "programs/zero.bf", Expect: []byte("0")},
		},
	}
	uc := NewRunSuite(fakeSuiteLoader{suite: suite}, suitePrograms())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := uc.Execute(ctx, "tests.toml", domain.MachineSpec{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(res.Cases) != 0 {
		t.Errorf("expected no cases run, got %d", len(res.Cases))
	}
}
