package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/domain"
)

func fmtCmd() *cobra.Command {
	var workspace string
	var write bool

	c := &cobra.Command{
		Use:   "fmt PROGRAM",
		Short: "Strip commentary bytes from a program",
		Long: "Fmt removes every byte that is not one of the eight instructions,\n" +
			"keeping line breaks so the program's shape stays recognizable.",
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

			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read program: %w", err)
			}
			cleaned := domain.Clean(string(b))

			if write {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				return os.WriteFile(path, []byte(cleaned), info.Mode().Perm())
			}

			fmt.Fprint(cmd.OutOrStdout(), cleaned)
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root (autodetected if omitted)")
	c.Flags().BoolVar(&write, "write", false, "rewrite the file in place instead of printing")
	return c
}
