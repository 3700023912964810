package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/infra/progfile"
	"github.com/maw3193/bft/internal/usecase"
)

func checkCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "check PROGRAM",
		Short: "Parse a program and validate its bracket structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOptional(workspace)
			if err != nil {
				return err
			}
			path, err := resolveProgramPath(ws, args[0])
			if err != nil {
				return err
			}

			uc := usecase.NewCheckProgram(progfile.NewLoader())
			prog, err := uc.Execute(cmd.Context(), path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d instruction(s)\n", len(prog.Instructions))
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root (autodetected if omitted)")
	return c
}
