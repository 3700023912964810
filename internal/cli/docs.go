package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/reference"
)

func docsCmd() *cobra.Command {
	var (
		raw   bool
		width int
	)

	c := &cobra.Command{
		Use:   "docs",
		Short: "Show the language reference",
		Long: "Docs prints a reference for the eight instructions, the machine\n" +
			"model and the workspace layout, rendered for the terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), reference.Markdown())
				return nil
			}
			rendered, err := reference.Render(width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	c.Flags().BoolVar(&raw, "raw", false, "print the reference as plain markdown")
	c.Flags().IntVar(&width, "width", 80, "wrap rendered output at this column")
	return c
}
