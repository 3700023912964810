package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/usecase/query"
)

func runsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved run artifacts",
	}

	c.AddCommand(runsListCmd(), runsShowCmd())
	return c
}

func runsListCmd() *cobra.Command {
	var workspace string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			refs, err := ws.store.ListRuns(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no runs recorded)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				fmt.Fprintf(out, "- %s  [%s]  %s\n", r.ID, r.Status, r.Program)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root (autodetected if omitted)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list (0 = all)")
	return cmd
}

func runsShowCmd() *cobra.Command {
	var workspace string
	var queryExpr string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one run artifact",
		Long: "Show prints a stored artifact as JSON. With --query, a JSONPath\n" +
			"expression picks a part of it, e.g. '$.Steps' or '$.Profile'.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			raw, err := ws.store.LoadRunRaw(args[0])
			if err != nil {
				return err
			}

			if queryExpr != "" {
				out, err := query.Eval(raw, queryExpr)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			// Artifacts are stored indented, so the raw bytes read fine.
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", raw)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root (autodetected if omitted)")
	cmd.Flags().StringVarP(&queryExpr, "query", "q", "", "JSONPath expression to extract from the artifact")
	return cmd
}
