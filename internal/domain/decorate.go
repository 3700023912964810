package domain

import "fmt"

// DecoratedProgram is a Program whose brackets have been matched. Every loop
// instruction knows the index of its partner, so the interpreter never scans
// for a jump target.
type DecoratedProgram struct {
	Program
	jumps []int
}

// Decorate validates the bracket structure of a program and records the jump
// table. Errors are positional: an unmatched ']' reports its own position,
// an unclosed '[' reports the position of the oldest bracket left open.
func Decorate(p Program) (*DecoratedProgram, error) {
	jumps := make([]int, len(p.Instructions))
	var open []int

	for i, in := range p.Instructions {
		jumps[i] = -1
		switch in.Op {
		case OpOpen:
			open = append(open, i)
		case OpClose:
			if len(open) == 0 {
				return nil, &OpError{
					Op:   "domain.decorate",
					Kind: KindBadProgram,
					Path: p.Name,
					Err:  fmt.Errorf("unmatched ']' at %d:%d", in.Line, in.Column),
				}
			}
			j := open[len(open)-1]
			open = open[:len(open)-1]
			jumps[i] = j
			jumps[j] = i
		}
	}

	if len(open) > 0 {
		in := p.Instructions[open[0]]
		return nil, &OpError{
			Op:   "domain.decorate",
			Kind: KindBadProgram,
			Path: p.Name,
			Err:  fmt.Errorf("unclosed '[' at %d:%d", in.Line, in.Column),
		}
	}

	return &DecoratedProgram{Program: p, jumps: jumps}, nil
}

// Match returns the index of the bracket paired with the instruction at i,
// or -1 when the instruction is not a bracket.
func (d *DecoratedProgram) Match(i int) int {
	if i < 0 || i >= len(d.jumps) {
		return -1
	}
	return d.jumps[i]
}
