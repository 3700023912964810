package interp

import (
	"context"
	"io"

	"github.com/maw3193/bft/internal/domain"
)

// Runner is the width-erased face of a machine, for callers that choose the
// cell width from configuration rather than at compile time.
type Runner interface {
	Run(ctx context.Context, in io.Reader, out io.Writer) error
	Steps() uint64
	TapeCells() int
	Profile() map[string]uint64
}

var _ Runner = (*Machine[uint8])(nil)

// NewRunner builds a machine whose cell type matches spec.Width. An unset
// width gets 8-bit cells.
func NewRunner(prog *domain.DecoratedProgram, spec domain.MachineSpec) Runner {
	switch spec.Width {
	case domain.Width16:
		return New[uint16](prog, spec)
	case domain.Width32:
		return New[uint32](prog, spec)
	default:
		return New[uint8](prog, spec)
	}
}
