package tui

// runTickMsg asks the model to execute the next batch of steps while the
// machine is in run mode. Stepping happens inside Update, never in a
// command goroutine, so the tape is only ever touched from one place.
type runTickMsg struct{}
