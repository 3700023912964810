package tomlsuite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/maw3193/bft/internal/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tests.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadSuite_FullManifest(t *testing.T) {
	path := writeManifest(t, `name = "smoke"

[[case]]
name = "hello"
program = "programs/hello.bf"
expect = "Hello World!\n"

[[case]]
program = "programs/echo.bf"
input = "abc"
expect = "abc"
cells = 64
extensible = true
cell_size = 16
eof = "keep"
max_steps = 100000
`)

	l := NewLoader()
	suite, err := l.LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}

	if suite.Name != "smoke" {
		t.Errorf("Name = %q, want %q", suite.Name, "smoke")
	}
	if suite.Path != path {
		t.Errorf("Path = %q, want %q", suite.Path, path)
	}

	ext := true
	want := []domain.TestCase{
		{
			Name:    "hello",
			Program: "programs/hello.bf",
			Expect:  []byte("Hello World!\n"),
		},
		{
			Name:       "programs/echo.bf",
			Program:    "programs/echo.bf",
			Input:      []byte("abc"),
			Expect:     []byte("abc"),
			Cells:      64,
			Extensible: &ext,
			Width:      domain.Width16,
			EOF:        domain.EOFKeep,
			MaxSteps:   100000,
		},
	}
	if diff := cmp.Diff(want, suite.Cases, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("cases mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSuite_DecodesHexForms(t *testing.T) {
	path := writeManifest(t, `[[case]]
program = "programs/double.bf"
input_hex = "0c"
expect_hex = "18"
`)

	l := NewLoader()
	suite, err := l.LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}

	c := suite.Cases[0]
	if len(c.Input) != 1 || c.Input[0] != 0x0c {
		t.Errorf("Input = %v, want [12]", c.Input)
	}
	if len(c.Expect) != 1 || c.Expect[0] != 0x18 {
		t.Errorf("Expect = %v, want [24]", c.Expect)
	}
}

func TestLoadSuite_DefaultsSuiteNameToFileStem(t *testing.T) {
	path := writeManifest(t, "[[case]]\nprogram = \"a.bf\"\n")

	l := NewLoader()
	suite, err := l.LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}
	if suite.Name != "tests" {
		t.Errorf("Name = %q, want %q", suite.Name, "tests")
	}
}

func TestLoadSuite_RejectsInvalidManifests(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{"no cases", "name = \"empty\"\n", "suite has no cases"},
		{"missing program", "[[case]]\nname = \"x\"\n", "program path is required"},
		{"both expect forms", "[[case]]\nprogram = \"a.bf\"\nexpect = \"a\"\nexpect_hex = \"61\"\n", "mutually exclusive"},
		{"bad hex", "[[case]]\nprogram = \"a.bf\"\nexpect_hex = \"zz\"\n", "bad hex"},
		{"negative cells", "[[case]]\nprogram = \"a.bf\"\ncells = -4\n", "cells must be positive"},
		{"bad cell size", "[[case]]\nprogram = \"a.bf\"\ncell_size = 12\n", "unsupported cell size"},
		{"bad eof", "[[case]]\nprogram = \"a.bf\"\neof = \"wrap\"\n", "unsupported eof mode"},
	}

	l := NewLoader()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, tc.content)
			_, err := l.LoadSuite(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got: %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantIn) {
				t.Errorf("expected %q in error %q", tc.wantIn, err.Error())
			}
		})
	}
}

func TestLoadSuite_BadTOML(t *testing.T) {
	path := writeManifest(t, "[[case\n")

	l := NewLoader()
	_, err := l.LoadSuite(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got: %v", err)
	}
}

func TestLoadSuite_MissingFile(t *testing.T) {
	l := NewLoader()
	_, err := l.LoadSuite(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}
