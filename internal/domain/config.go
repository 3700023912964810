package domain

import "fmt"

// DefaultTapeCells is the tape length used when none is configured.
const DefaultTapeCells = 30000

// CellWidth selects how wide each tape cell is, in bits.
type CellWidth int

const (
	Width8  CellWidth = 8
	Width16 CellWidth = 16
	Width32 CellWidth = 32
)

// ParseCellWidth validates a width given as a number of bits.
func ParseCellWidth(bits int) (CellWidth, error) {
	switch bits {
	case 8, 16, 32:
		return CellWidth(bits), nil
	default:
		return 0, fmt.Errorf("unsupported cell size %d (expected 8, 16 or 32): %w", bits, ErrInvalidConfig)
	}
}

// EOFMode decides what ',' stores when input is exhausted.
type EOFMode string

const (
	EOFZero EOFMode = "zero" // store 0
	EOFKeep EOFMode = "keep" // leave the cell unchanged
	EOFMax  EOFMode = "max"  // store the cell type's maximum
)

// ParseEOFMode validates an EOF mode name.
func ParseEOFMode(s string) (EOFMode, error) {
	switch EOFMode(s) {
	case EOFZero, EOFKeep, EOFMax:
		return EOFMode(s), nil
	default:
		return "", fmt.Errorf("unsupported eof mode %q (expected zero, keep or max): %w", s, ErrInvalidConfig)
	}
}

// MachineSpec is the resolved machine configuration for one run. Zero values
// mean "use the default": 30000 cells, 8-bit width, EOF mode zero, no step
// limit.
type MachineSpec struct {
	Cells      int
	Extensible bool
	Width      CellWidth
	EOF        EOFMode
	MaxSteps   uint64
}

// Config represents the bft configuration loaded from bft.yaml.
type Config struct {
	Defaults DefaultsConfig
	Paths    PathsConfig
}

type DefaultsConfig struct {
	Cells      int
	Extensible bool
	Width      CellWidth
	EOF        EOFMode
}

type PathsConfig struct {
	ProgramsDir string
	RunsDir     string
	TestsFile   string
}

// DefaultConfig provides sane defaults if bft.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Cells:      DefaultTapeCells,
			Extensible: false,
			Width:      Width8,
			EOF:        EOFZero,
		},
		Paths: PathsConfig{
			ProgramsDir: "programs",
			RunsDir:     "runs",
			TestsFile:   "tests.toml",
		},
	}
}

// MachineSpec lifts the configured defaults into a per-run spec.
func (c Config) MachineSpec() MachineSpec {
	return MachineSpec{
		Cells:      c.Defaults.Cells,
		Extensible: c.Defaults.Extensible,
		Width:      c.Defaults.Width,
		EOF:        c.Defaults.EOF,
	}
}

// WorkspaceSpec describes a workspace to be initialized.
type WorkspaceSpec struct {
	Root string
}
