package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/infra/progfile"
)

func dumpCmd() *cobra.Command {
	var workspace string
	var format string

	c := &cobra.Command{
		Use:   "dump PROGRAM",
		Short: "Print the positioned instruction listing",
		Long: "Dump lists every instruction with its source position and long\n" +
			"description. The program does not need balanced brackets; use\n" +
			"`bft check` for validation.",
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

			prog, err := progfile.NewLoader().Load(path)
			if err != nil {
				return err
			}

			return printListing(cmd.OutOrStdout(), prog, format)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root (autodetected if omitted)")
	c.Flags().StringVar(&format, "format", "pretty", "output format: pretty|json")
	return c
}

type listingEntry struct {
	Index       int
	Line        int
	Column      int
	Symbol      string
	Description string
}

func printListing(w io.Writer, prog domain.Program, format string) error {
	switch format {
	case "json":
		entries := make([]listingEntry, 0, len(prog.Instructions))
		for i, in := range prog.Instructions {
			entries = append(entries, listingEntry{
				Index:       i,
				Line:        in.Line,
				Column:      in.Column,
				Symbol:      string(in.Op.Symbol()),
				Description: in.Op.String(),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "pretty", "":
		fmt.Fprint(w, prog.String())
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
