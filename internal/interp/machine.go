// Package interp executes decorated programs over a tape of unsigned cells.
// The cell width is a type parameter, so each machine pays only for the
// arithmetic it needs; NewRunner hides the parameter from callers that pick
// the width from configuration at runtime.
package interp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/maw3193/bft/internal/domain"
)

// ErrStepLimit reports that a machine reached its configured step budget
// before the program halted.
var ErrStepLimit = errors.New("step limit exceeded")

// ctxStride is how many steps run between context checks in Run. Checking on
// every step would dominate the cost of tight loops.
const ctxStride = 4096

// Machine executes one decorated program. It is not safe for concurrent use.
type Machine[C Cell] struct {
	prog *domain.DecoratedProgram
	spec domain.MachineSpec

	cells []C
	head  int
	pc    int

	steps  uint64
	counts [domain.OpCount]uint64
}

// New builds a machine for prog. A spec with zero Cells gets the default
// tape length.
func New[C Cell](prog *domain.DecoratedProgram, spec domain.MachineSpec) *Machine[C] {
	n := spec.Cells
	if n <= 0 {
		n = domain.DefaultTapeCells
	}
	return &Machine[C]{
		prog:  prog,
		spec:  spec,
		cells: make([]C, n),
	}
}

// Run interprets the whole program, reading ',' input from in and writing
// '.' output to out. Output is buffered and flushed before Run returns,
// whatever the outcome. Cancelling ctx stops the machine between steps.
func (m *Machine[C]) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	br := bufio.NewReader(in)
	bw := bufio.NewWriter(out)

	var runErr error
	for !m.Done() {
		if m.steps%ctxStride == 0 {
			if err := ctx.Err(); err != nil {
				runErr = err
				break
			}
		}
		if m.spec.MaxSteps > 0 && m.steps >= m.spec.MaxSteps {
			runErr = &domain.OpError{
				Op:   "interp.run",
				Kind: domain.KindExecution,
				Path: m.prog.Name,
				Err:  fmt.Errorf("%w after %d steps", ErrStepLimit, m.steps),
			}
			break
		}
		if _, err := m.Step(br, bw); err != nil {
			runErr = err
			break
		}
	}

	if err := bw.Flush(); err != nil && runErr == nil {
		runErr = &domain.OpError{
			Op:   "interp.run",
			Kind: domain.KindExecution,
			Path: m.prog.Name,
			Err:  fmt.Errorf("flush output: %w", err),
		}
	}
	return runErr
}

// Step executes the instruction under the program counter and reports whether
// the machine has halted. Stepping a halted machine is a no-op. Step is the
// unit the debugger drives; Run is a loop around it.
func (m *Machine[C]) Step(in io.ByteReader, out io.Writer) (bool, error) {
	if m.Done() {
		return true, nil
	}

	ins := m.prog.Instructions[m.pc]
	next := m.pc + 1

	switch ins.Op {
	case domain.OpRight:
		if m.head+1 >= len(m.cells) {
			if !m.spec.Extensible {
				return false, m.fault(ins, fmt.Errorf("head moved past cell %d", len(m.cells)-1))
			}
			m.grow()
		}
		m.head++

	case domain.OpLeft:
		if m.head == 0 {
			return false, m.fault(ins, errors.New("head moved before cell 0"))
		}
		m.head--

	case domain.OpInc:
		m.cells[m.head]++

	case domain.OpDec:
		m.cells[m.head]--

	case domain.OpPut:
		// wide cells emit their low byte
		if _, err := out.Write([]byte{byte(m.cells[m.head])}); err != nil {
			return false, m.fault(ins, fmt.Errorf("write output: %w", err))
		}

	case domain.OpGet:
		b, err := in.ReadByte()
		switch {
		case err == nil:
			m.cells[m.head] = C(b)
		case errors.Is(err, io.EOF):
			switch m.spec.EOF {
			case domain.EOFKeep:
				// cell untouched
			case domain.EOFMax:
				m.cells[m.head] = maxValue[C]()
			default:
				m.cells[m.head] = 0
			}
		default:
			return false, m.fault(ins, fmt.Errorf("read input: %w", err))
		}

	case domain.OpOpen:
		if m.cells[m.head] == 0 {
			next = m.prog.Match(m.pc) + 1
		}

	case domain.OpClose:
		if m.cells[m.head] != 0 {
			next = m.prog.Match(m.pc) + 1
		}
	}

	m.counts[ins.Op]++
	m.steps++
	m.pc = next
	return m.Done(), nil
}

func (m *Machine[C]) fault(ins domain.Instruction, err error) error {
	return &domain.OpError{
		Op:   "interp.run",
		Kind: domain.KindMachineFault,
		Path: m.prog.Name,
		Err:  fmt.Errorf("%d:%d %q: %w", ins.Line, ins.Column, ins.Op.Symbol(), err),
	}
}

func (m *Machine[C]) grow() {
	next := make([]C, len(m.cells)*2)
	copy(next, m.cells)
	m.cells = next
}

// Done reports whether the program counter has run off the end.
func (m *Machine[C]) Done() bool { return m.pc >= len(m.prog.Instructions) }

// Steps reports how many instructions have executed.
func (m *Machine[C]) Steps() uint64 { return m.steps }

// Head reports the tape position of the data head.
func (m *Machine[C]) Head() int { return m.head }

// PC reports the index of the next instruction to execute.
func (m *Machine[C]) PC() int { return m.pc }

// TapeCells reports the current tape length, after any growth.
func (m *Machine[C]) TapeCells() int { return len(m.cells) }

// Cells exposes the live tape for inspection. Callers must not mutate it.
func (m *Machine[C]) Cells() []C { return m.cells }

// Program returns the decorated program the machine executes.
func (m *Machine[C]) Program() *domain.DecoratedProgram { return m.prog }

// Profile returns how often each operation ran, keyed by its symbol.
// Operations that never ran are omitted.
func (m *Machine[C]) Profile() map[string]uint64 {
	prof := make(map[string]uint64)
	for op, n := range m.counts {
		if n > 0 {
			prof[string(domain.Op(op).Symbol())] = n
		}
	}
	return prof
}
