package tui

import (
	"errors"
	"regexp"
	"strings"

	"github.com/maw3193/bft/internal/domain"
)

var rePos = regexp.MustCompile(`\b(\d+):(\d+)\b`)

// userMessage turns an execution error into a short status-bar string. The
// full error, with its wrapped detail, still goes to the log.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindMachineFault:
			if pos := rePos.FindString(err.Error()); pos != "" {
				return "machine fault at " + pos
			}
			return "machine fault"

		case domain.KindExecution:
			if strings.Contains(err.Error(), "step limit") {
				return "step limit exceeded"
			}
			return "execution error (see logs)"

		default:
			return "unexpected error (see logs)"
		}
	}

	return "unexpected error (see logs)"
}
