package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/infra/logger"
	"github.com/maw3193/bft/internal/infra/progfile"
	"github.com/maw3193/bft/internal/ports"
	"github.com/maw3193/bft/internal/usecase"
)

func runCmd() *cobra.Command {
	var (
		workspace  string
		cells      int
		extensible bool
		cellSize   int
		eofMode    string
		maxSteps   uint64
		inputFile  string
		timeout    time.Duration
		profile    bool
		noSave     bool
		watch      bool
	)

	c := &cobra.Command{
		Use:   "run PROGRAM",
		Short: "Interpret a Brainfuck program",
		Long: "Run interprets a Brainfuck program and streams its output to stdout.\n" +
			"Program input comes from stdin, or from a file with --input. Inside a\n" +
			"workspace the run is recorded under runs/ unless --no-save is set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOptional(workspace)
			if err != nil {
				return err
			}

			spec, err := resolveMachineSpec(cmd, ws, cells, extensible, cellSize, eofMode, maxSteps)
			if err != nil {
				return err
			}

			path, err := resolveProgramPath(ws, args[0])
			if err != nil {
				return err
			}

			var store ports.RunStore
			if ws != nil && !noSave {
				store = ws.store
			}
			uc := usecase.NewRunProgram(progfile.NewLoader(), store)

			doRun := func(ctx context.Context) error {
				if timeout > 0 {
					var cancel context.CancelFunc
					ctx, cancel = context.WithTimeout(ctx, timeout)
					defer cancel()
				}

				in, closeIn, err := openInput(inputFile)
				if err != nil {
					return err
				}
				defer closeIn()
				if watch && inputFile == "" {
					// stdin cannot be replayed across reruns
					in = bytes.NewReader(nil)
				}

				art, id, runErr := uc.Execute(ctx, path, spec, in, os.Stdout)
				if profile && art.Steps > 0 {
					printRunStats(os.Stderr, art)
				}
				if runErr != nil {
					logger.L().Error("run.failed", "program", path, "err", runErr, "saved_id", id)
					return runErr
				}
				logger.L().Info("run.ok", "program", path, "steps", art.Steps, "saved_id", id)
				return nil
			}

			if watch {
				return watchAndRun(cmd.Context(), path, doRun)
			}
			return doRun(cmd.Context())
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root (autodetected if omitted)")
	c.Flags().IntVar(&cells, "cells", 0, "tape length in cells (default 30000 or the workspace setting)")
	c.Flags().BoolVar(&extensible, "extensible", false, "grow the tape instead of faulting at the right edge")
	c.Flags().IntVar(&cellSize, "cell-size", 0, "cell width in bits: 8, 16 or 32")
	c.Flags().StringVar(&eofMode, "eof", "", "what ',' stores at end of input: zero, keep or max")
	c.Flags().Uint64Var(&maxSteps, "max-steps", 0, "abort after this many steps (0 = no limit)")
	c.Flags().StringVarP(&inputFile, "input", "i", "", "read program input from a file instead of stdin")
	c.Flags().DurationVar(&timeout, "timeout", 0, "abort the run after this duration")
	c.Flags().BoolVar(&profile, "profile", false, "print step counts and a per-op profile to stderr")
	c.Flags().BoolVar(&noSave, "no-save", false, "do not save a run artifact under runs/")
	c.Flags().BoolVar(&watch, "watch", false, "rerun whenever the program file changes (use --input for programs that read)")

	return c
}

var opOrder = []string{">", "<", "+", "-", ".", ",", "[", "]"}

func printRunStats(w io.Writer, art domain.RunArtifact) {
	took := art.FinishedAt.Sub(art.StartedAt).Round(time.Millisecond)
	fmt.Fprintf(w, "\nsteps: %d  tape: %d cells (%d-bit)  output: %d bytes  took: %s\n",
		art.Steps, art.TapeCells, art.Width, art.OutputBytes, took)

	for _, sym := range opOrder {
		if n, ok := art.Profile[sym]; ok {
			fmt.Fprintf(w, "  %-2s %d\n", sym, n)
		}
	}
}
