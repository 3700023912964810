package usecase

import (
	"context"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/ports"
)

type CheckProgram struct {
	programs ports.ProgramLoader
}

func NewCheckProgram(pl ports.ProgramLoader) *CheckProgram {
	return &CheckProgram{programs: pl}
}

// Execute parses and decorates the program at path without running it. It
// returns the parsed program so callers can report on it.
func (uc *CheckProgram) Execute(ctx context.Context, path string) (domain.Program, error) {
	if err := ctx.Err(); err != nil {
		return domain.Program{}, err
	}

	prog, err := uc.programs.Load(path)
	if err != nil {
		return domain.Program{}, err
	}
	if _, err := domain.Decorate(prog); err != nil {
		return domain.Program{}, err
	}
	return prog, nil
}
