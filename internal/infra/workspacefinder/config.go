package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/maw3193/bft/internal/domain"
)

// LoadConfig loads bft.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, "bft.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if v := y.Bft.Defaults.Cells; v != nil {
		if *v <= 0 {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("defaults.cells must be positive, got %d", *v),
			}
		}
		cfg.Defaults.Cells = *v
	}
	if v := y.Bft.Defaults.Extensible; v != nil {
		cfg.Defaults.Extensible = *v
	}
	if v := y.Bft.Defaults.CellSize; v != nil {
		w, err := domain.ParseCellWidth(*v)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		cfg.Defaults.Width = w
	}
	if y.Bft.Defaults.EOF != "" {
		m, err := domain.ParseEOFMode(y.Bft.Defaults.EOF)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		cfg.Defaults.EOF = m
	}
	if y.Bft.Paths.ProgramsDir != "" {
		cfg.Paths.ProgramsDir = y.Bft.Paths.ProgramsDir
	}
	if y.Bft.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Bft.Paths.RunsDir
	}
	if y.Bft.Paths.TestsFile != "" {
		cfg.Paths.TestsFile = y.Bft.Paths.TestsFile
	}

	return cfg, nil
}

type yamlConfig struct {
	Bft struct {
		Defaults struct {
			Cells      *int   `yaml:"cells"`
			Extensible *bool  `yaml:"extensible"`
			CellSize   *int   `yaml:"cell_size"`
			EOF        string `yaml:"eof"`
		} `yaml:"defaults"`

		Paths struct {
			ProgramsDir string `yaml:"programs_dir"`
			RunsDir     string `yaml:"runs_dir"`
			TestsFile   string `yaml:"tests_file"`
		} `yaml:"paths"`
	} `yaml:"bft"`
}
