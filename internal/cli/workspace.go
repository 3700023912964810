package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/infra/runstore"
	"github.com/maw3193/bft/internal/infra/workspacefinder"
	"github.com/maw3193/bft/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	store ports.RunStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	return &workspaceCtx{
		root:  root,
		cfg:   cfg,
		store: runstore.NewJSONStore(root, cfg, runstore.WithIndex(true)),
	}, nil
}

// loadWorkspaceOptional returns nil without error when no workspace exists
// and none was asked for explicitly. Commands then run on built-in defaults
// with no run history.
func loadWorkspaceOptional(workspaceFlag string) (*workspaceCtx, error) {
	ws, err := loadWorkspace(workspaceFlag)
	if err != nil {
		if strings.TrimSpace(workspaceFlag) == "" && domain.IsKind(err, domain.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ws, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `bft init`): %w", wd, err)
	}
	return root, nil
}

// resolveProgramPath turns a program argument into a loadable path. Bare
// names try the workspace programs directory, with and without a .bf
// extension; anything unresolved passes through so the loader reports the
// miss against the literal argument.
func resolveProgramPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("program path is required")
	}

	if looksLikePath(in) || fileExists(in) {
		return filepath.Clean(in), nil
	}

	if ws != nil {
		dir := filepath.Join(ws.root, ws.cfg.Paths.ProgramsDir)
		if p := filepath.Join(dir, in); fileExists(p) {
			return p, nil
		}
		if p := filepath.Join(dir, in+".bf"); fileExists(p) {
			return p, nil
		}
	}

	return in, nil
}

// resolveMachineSpec layers explicit flags over the workspace defaults.
// Cobra's Changed tracking keeps zero values from clobbering configured
// defaults, and flags a command never registered simply do not override.
func resolveMachineSpec(cmd *cobra.Command, ws *workspaceCtx, cells int, extensible bool, cellSize int, eofMode string, maxSteps uint64) (domain.MachineSpec, error) {
	spec := domain.DefaultConfig().MachineSpec()
	if ws != nil {
		spec = ws.cfg.MachineSpec()
	}

	flags := cmd.Flags()
	if flags.Changed("cells") {
		if cells <= 0 {
			return domain.MachineSpec{}, fmt.Errorf("cells must be positive, got %d", cells)
		}
		spec.Cells = cells
	}
	if flags.Changed("extensible") {
		spec.Extensible = extensible
	}
	if flags.Changed("cell-size") {
		w, err := domain.ParseCellWidth(cellSize)
		if err != nil {
			return domain.MachineSpec{}, err
		}
		spec.Width = w
	}
	if flags.Changed("eof") {
		m, err := domain.ParseEOFMode(eofMode)
		if err != nil {
			return domain.MachineSpec{}, err
		}
		spec.EOF = m
	}
	spec.MaxSteps = maxSteps

	return spec, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
