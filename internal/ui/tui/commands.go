package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickInterval paces run mode at roughly a terminal frame rate. Each tick
// executes up to stepsPerTick instructions, so throughput stays high while
// keypresses keep getting through.
const tickInterval = 16 * time.Millisecond

func cmdRunTick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return runTickMsg{} })
}
