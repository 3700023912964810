package fsworkspace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/maw3193/bft/internal/domain"
)

// renderString replaces {{VAR}} placeholders with vars values. Starter
// files ship inside the binary, so an unknown variable or a malformed
// placeholder is a packaging mistake, reported as invalid config.
func renderString(input string, vars map[string]string) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", &domain.OpError{
				Op:   "fsworkspace.render",
				Kind: domain.KindInvalidConfig,
				Err:  errors.New("unclosed placeholder"),
			}
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", &domain.OpError{
				Op:   "fsworkspace.render",
				Kind: domain.KindInvalidConfig,
				Err:  errors.New("empty placeholder"),
			}
		}

		value, ok := vars[key]
		if !ok {
			return "", &domain.OpError{
				Op:   "fsworkspace.render",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("unknown variable %q", key),
			}
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// templateVars maps the built-in defaults into placeholder values, so the
// generated bft.yaml always matches what the binary would assume anyway.
func templateVars(cfg domain.Config) map[string]string {
	return map[string]string{
		"CELLS":        strconv.Itoa(cfg.Defaults.Cells),
		"EXTENSIBLE":   strconv.FormatBool(cfg.Defaults.Extensible),
		"CELL_SIZE":    strconv.Itoa(int(cfg.Defaults.Width)),
		"EOF":          string(cfg.Defaults.EOF),
		"PROGRAMS_DIR": cfg.Paths.ProgramsDir,
		"RUNS_DIR":     cfg.Paths.RunsDir,
		"TESTS_FILE":   cfg.Paths.TestsFile,
	}
}
