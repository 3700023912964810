package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/infra/fsworkspace"
	"github.com/maw3193/bft/internal/usecase"
)

func initCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a bft workspace",
		Long: "Init writes a bft.yaml with the default machine settings and lays\n" +
			"out the programs and runs directories, plus a starter tests.toml.",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := strings.TrimSpace(path)
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolve working directory: %w", err)
				}
				root = wd
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolve workspace path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(abs, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized bft workspace at %s\n", abs)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", "", "directory to initialize (default: current directory)")
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing bft.yaml")
	return c
}
