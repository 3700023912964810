package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/maw3193/bft/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// printableOutput renders raw program output for the terminal. Brainfuck
// programs emit arbitrary bytes; anything outside printable ASCII becomes a
// placeholder dot so control bytes cannot garble the screen.
func printableOutput(b []byte) string {
	if len(b) == 0 {
		return "(no output yet)"
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		switch {
		case c == '\n' || c == '\t':
			sb.WriteByte(c)
		case c < 0x20 || c > 0x7e:
			sb.WriteRune('·')
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func specSummary(spec domain.MachineSpec) string {
	cells := spec.Cells
	if cells <= 0 {
		cells = domain.DefaultTapeCells
	}
	parts := []string{fmt.Sprintf("%d cells", cells), "8-bit"}
	if spec.Extensible {
		parts = append(parts, "extensible")
	}
	eof := spec.EOF
	if eof == "" {
		eof = domain.EOFZero
	}
	parts = append(parts, "eof "+string(eof))
	if spec.MaxSteps > 0 {
		parts = append(parts, fmt.Sprintf("max %d steps", spec.MaxSteps))
	}
	return strings.Join(parts, " · ")
}

// renderSource shows a window of instructions centered on the program
// counter, one per row with its index, symbol and positioned description.
func renderSource(prog *domain.DecoratedProgram, pc, rows int, t Theme) string {
	ins := prog.Instructions
	if len(ins) == 0 {
		return "(empty program)"
	}
	if rows < 1 {
		rows = 1
	}

	start := pc - rows/2
	if start > len(ins)-rows {
		start = len(ins) - rows
	}
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(ins) {
		end = len(ins)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		row := fmt.Sprintf("%4d  %c  %s", i, ins[i].Op.Symbol(), clampString(ins[i].String(), 42))
		if i == pc {
			row = t.Current.Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if pc >= len(ins) {
		b.WriteString("\n")
		b.WriteString(t.Subtitle.Render("(halted)"))
	}
	return b.String()
}

// renderTape shows a window of cells around the head, index row over value
// row, with the head column highlighted.
func renderTape(cells []uint8, head, cols int, t Theme) string {
	if cols < 1 {
		cols = 1
	}

	start := head - cols/2
	if start > len(cells)-cols {
		start = len(cells) - cols
	}
	if start < 0 {
		start = 0
	}
	end := start + cols
	if end > len(cells) {
		end = len(cells)
	}

	var idx, val strings.Builder
	idx.WriteString("cell")
	val.WriteString(" val")
	for i := start; i < end; i++ {
		is := fmt.Sprintf("%6d", i)
		vs := fmt.Sprintf("%6d", cells[i])
		if i == head {
			is = t.Current.Render(is)
			vs = t.Current.Render(vs)
		}
		idx.WriteString(is)
		val.WriteString(vs)
	}

	cur := fmt.Sprintf("head %d = %d", head, cells[head])
	return idx.String() + "\n" + val.String() + "\n\n" + t.Subtitle.Render(cur)
}
