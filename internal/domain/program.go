package domain

import (
	"fmt"
	"strings"
)

// Program is the ordered instruction stream parsed from one source, together
// with the name the source was loaded under (usually its file path).
type Program struct {
	Name         string
	Instructions []Instruction
}

// Parse scans source text into a Program. Every byte that is not one of the
// eight instructions is commentary and is skipped, so parsing cannot fail:
// any text is a valid, possibly empty, program.
func Parse(name string, text string) Program {
	var instructions []Instruction
	for lineIdx, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		for colIdx := 0; colIdx < len(line); colIdx++ {
			op, ok := OpFromByte(line[colIdx])
			if !ok {
				continue
			}
			instructions = append(instructions, Instruction{
				Op:     op,
				Line:   lineIdx + 1,
				Column: colIdx + 1,
			})
		}
	}
	return Program{Name: name, Instructions: instructions}
}

// String renders the positioned listing, one instruction per line:
//
//	hello.bf:1:1 Start looping
func (p Program) String() string {
	var b strings.Builder
	for _, in := range p.Instructions {
		fmt.Fprintf(&b, "%s:%s\n", p.Name, in)
	}
	return b.String()
}

// Clean strips commentary bytes from source text, keeping only instructions.
// Line breaks survive so the shape of the program stays recognizable; lines
// left empty are dropped. The result ends with a newline unless it is empty.
func Clean(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		var b strings.Builder
		for i := 0; i < len(line); i++ {
			if _, ok := OpFromByte(line[i]); ok {
				b.WriteByte(line[i])
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
