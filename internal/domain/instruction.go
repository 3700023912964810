package domain

import "fmt"

// Op is one of the eight Brainfuck operations.
type Op uint8

const (
	OpRight Op = iota // >
	OpLeft            // <
	OpInc             // +
	OpDec             // -
	OpPut             // .
	OpGet             // ,
	OpOpen            // [
	OpClose           // ]
	opEnd
)

// OpCount is the number of distinct operations, for profile tables.
const OpCount = int(opEnd)

// OpFromByte classifies a source byte. Most bytes in a Brainfuck file are
// commentary, so the second return reports whether b is an instruction at all.
func OpFromByte(b byte) (Op, bool) {
	switch b {
	case '>':
		return OpRight, true
	case '<':
		return OpLeft, true
	case '+':
		return OpInc, true
	case '-':
		return OpDec, true
	case '.':
		return OpPut, true
	case ',':
		return OpGet, true
	case '[':
		return OpOpen, true
	case ']':
		return OpClose, true
	default:
		return 0, false
	}
}

// Symbol returns the source byte for the operation.
func (o Op) Symbol() byte {
	switch o {
	case OpRight:
		return '>'
	case OpLeft:
		return '<'
	case OpInc:
		return '+'
	case OpDec:
		return '-'
	case OpPut:
		return '.'
	case OpGet:
		return ','
	case OpOpen:
		return '['
	case OpClose:
		return ']'
	default:
		return '?'
	}
}

// String returns the long human description of the operation.
func (o Op) String() string {
	switch o {
	case OpRight:
		return "Increment current location"
	case OpLeft:
		return "Decrement current location"
	case OpInc:
		return "Increment the byte at the current location"
	case OpDec:
		return "Decrement the byte at the current location"
	case OpPut:
		return "Output the byte at the current location"
	case OpGet:
		return "Store a byte of input at the current location"
	case OpOpen:
		return "Start looping"
	case OpClose:
		return "Stop looping"
	default:
		return fmt.Sprintf("unknown op %d", uint8(o))
	}
}

// Instruction is an operation with the source position it came from.
// Line and Column are 1-based; Column counts bytes within the line.
type Instruction struct {
	Op     Op
	Line   int
	Column int
}

func (i Instruction) String() string {
	return fmt.Sprintf("%d:%d %s", i.Line, i.Column, i.Op)
}
