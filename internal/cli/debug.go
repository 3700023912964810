package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/infra/logger"
	"github.com/maw3193/bft/internal/infra/progfile"
	"github.com/maw3193/bft/internal/ui/tui"
)

func debugCmd() *cobra.Command {
	var (
		workspace  string
		cells      int
		extensible bool
		eofMode    string
		inputFile  string
	)

	c := &cobra.Command{
		Use:   "debug PROGRAM",
		Short: "Step through a program interactively",
		Long: "Debug opens a terminal UI that executes the program one instruction\n" +
			"at a time, showing the tape around the head, the current instruction\n" +
			"and the output so far. The debugger always uses 8-bit cells. Programs\n" +
			"that read input take it from --input; stdin belongs to the UI.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOptional(workspace)
			if err != nil {
				return err
			}
			path, err := resolveProgramPath(ws, args[0])
			if err != nil {
				return err
			}

			spec, err := resolveMachineSpec(cmd, ws, cells, extensible, 0, eofMode, 0)
			if err != nil {
				return err
			}
			// The debugger's tape view is byte-wide.
			spec.Width = domain.Width8

			prog, err := progfile.NewLoader().Load(path)
			if err != nil {
				return err
			}
			dec, err := domain.Decorate(prog)
			if err != nil {
				return err
			}

			var input []byte
			if inputFile != "" {
				input, err = os.ReadFile(inputFile)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			}

			return tui.Run(tui.Deps{
				Program: dec,
				Spec:    spec,
				Input:   input,
				Logger:  logger.L(),
			})
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root (autodetected if omitted)")
	c.Flags().IntVar(&cells, "cells", 0, "tape length in cells (default 30000 or the workspace setting)")
	c.Flags().BoolVar(&extensible, "extensible", false, "grow the tape instead of faulting at the right edge")
	c.Flags().StringVar(&eofMode, "eof", "", "what ',' stores at end of input: zero, keep or max")
	c.Flags().StringVarP(&inputFile, "input", "i", "", "read program input from a file")
	return c
}
