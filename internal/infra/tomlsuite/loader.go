package tomlsuite

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/ports"
)

// Loader reads test suites from TOML manifests.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.SuiteLoader = (*Loader)(nil)

func (l *Loader) LoadSuite(path string) (domain.Suite, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Suite{}, &domain.OpError{
			Op:   "tomlsuite.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var ts tomlSuite
	if err := toml.Unmarshal(b, &ts); err != nil {
		return domain.Suite{}, &domain.OpError{
			Op:   "tomlsuite.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, ts)
}

type tomlSuite struct {
	Name string     `toml:"name"`
	Case []tomlCase `toml:"case"`
}

type tomlCase struct {
	Name    string `toml:"name"`
	Program string `toml:"program"`

	// Input and expected output come either as literal text or hex-encoded
	// for binary data; the two forms are mutually exclusive.
	Input     string `toml:"input"`
	InputHex  string `toml:"input_hex"`
	Expect    string `toml:"expect"`
	ExpectHex string `toml:"expect_hex"`

	Cells      int    `toml:"cells"`
	Extensible *bool  `toml:"extensible"`
	CellSize   int    `toml:"cell_size"`
	EOF        string `toml:"eof"`
	MaxSteps   uint64 `toml:"max_steps"`
}

func mapAndValidate(path string, ts tomlSuite) (domain.Suite, error) {
	if len(ts.Case) == 0 {
		return domain.Suite{}, invalidField(path, "case", "suite has no cases")
	}

	suite := domain.Suite{
		Name:  ts.Name,
		Path:  path,
		Cases: make([]domain.TestCase, 0, len(ts.Case)),
	}
	if strings.TrimSpace(suite.Name) == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	for i, c := range ts.Case {
		fieldPrefix := fmt.Sprintf("case[%d]", i)

		if strings.TrimSpace(c.Program) == "" {
			return domain.Suite{}, invalidField(path, fieldPrefix+".program", "program path is required")
		}

		tc := domain.TestCase{
			Name:       c.Name,
			Program:    c.Program,
			Extensible: c.Extensible,
			MaxSteps:   c.MaxSteps,
		}
		if strings.TrimSpace(tc.Name) == "" {
			tc.Name = c.Program
		}

		input, err := pickBytes(c.Input, c.InputHex)
		if err != nil {
			return domain.Suite{}, invalidField(path, fieldPrefix+".input", err.Error())
		}
		tc.Input = input

		expect, err := pickBytes(c.Expect, c.ExpectHex)
		if err != nil {
			return domain.Suite{}, invalidField(path, fieldPrefix+".expect", err.Error())
		}
		tc.Expect = expect

		if c.Cells < 0 {
			return domain.Suite{}, invalidField(path, fieldPrefix+".cells", fmt.Sprintf("cells must be positive, got %d", c.Cells))
		}
		tc.Cells = c.Cells

		if c.CellSize != 0 {
			w, err := domain.ParseCellWidth(c.CellSize)
			if err != nil {
				return domain.Suite{}, invalidField(path, fieldPrefix+".cell_size", err.Error())
			}
			tc.Width = w
		}
		if c.EOF != "" {
			m, err := domain.ParseEOFMode(c.EOF)
			if err != nil {
				return domain.Suite{}, invalidField(path, fieldPrefix+".eof", err.Error())
			}
			tc.EOF = m
		}

		suite.Cases = append(suite.Cases, tc)
	}

	return suite, nil
}

func pickBytes(text, hexText string) ([]byte, error) {
	if hexText == "" {
		return []byte(text), nil
	}
	if text != "" {
		return nil, errors.New("literal and hex forms are mutually exclusive")
	}
	b, err := hex.DecodeString(hexText)
	if err != nil {
		return nil, fmt.Errorf("bad hex: %v", err)
	}
	return b, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "tomlsuite.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
