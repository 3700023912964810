package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/infra/progfile"
	"github.com/maw3193/bft/internal/infra/tomlsuite"
	"github.com/maw3193/bft/internal/usecase"
)

func testCmd() *cobra.Command {
	var workspace string
	var manifest string

	c := &cobra.Command{
		Use:   "test",
		Short: "Run the workspace's Brainfuck test suite",
		Long: "Test runs every case of a TOML manifest: each case names a program,\n" +
			"its input and the expected output. Per-case machine settings override\n" +
			"the workspace defaults. The exit status is nonzero when any case fails.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspaceOptional(workspace)
			if err != nil {
				return err
			}

			defaults := domain.DefaultConfig().MachineSpec()
			if ws != nil {
				defaults = ws.cfg.MachineSpec()
			}

			path := manifest
			if path == "" {
				if ws == nil {
					return fmt.Errorf("no workspace found; use --manifest or run inside one (tip: bft init)")
				}
				path = filepath.Join(ws.root, ws.cfg.Paths.TestsFile)
			}

			uc := usecase.NewRunSuite(tomlsuite.NewLoader(), progfile.NewLoader())
			res, err := uc.Execute(cmd.Context(), path, defaults)
			if err != nil {
				return err
			}

			printSuiteResult(cmd.OutOrStdout(), res)
			if n := res.Failed(); n > 0 {
				return fmt.Errorf("%d of %d case(s) failed", n, len(res.Cases))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root (autodetected if omitted)")
	c.Flags().StringVarP(&manifest, "manifest", "m", "", "explicit manifest path (default: the workspace tests file)")
	return c
}

func printSuiteResult(w io.Writer, res domain.SuiteResult) {
	fmt.Fprintf(w, "suite: %s (%s)\n\n", res.Name, res.Path)

	for _, c := range res.Cases {
		mark := "✓"
		if !c.Passed {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s (%d steps, %s)\n", mark, c.Name, c.Steps, c.Duration.Round(time.Millisecond))
		if !c.Passed && c.Message != "" {
			fmt.Fprintf(w, "  %s\n", c.Message)
		}
	}

	fmt.Fprintf(w, "\n%d passed, %d failed\n", len(res.Cases)-res.Failed(), res.Failed())
}
