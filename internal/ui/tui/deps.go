package tui

import (
	"log/slog"

	"github.com/maw3193/bft/internal/domain"
)

type Deps struct {
	Program *domain.DecoratedProgram
	Spec    domain.MachineSpec
	Input   []byte

	Logger *slog.Logger
}
