package fsworkspace

import (
	"strconv"
	"testing"

	"github.com/maw3193/bft/internal/domain"
)

func TestRenderStringSingleVar(t *testing.T) {
	out, err := renderString("cells: {{CELLS}}", map[string]string{"CELLS": "30000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "cells: 30000" {
		t.Fatalf("expected replaced string, got %q", out)
	}
}

func TestRenderStringMultipleVars(t *testing.T) {
	out, err := renderString("{{A}}/{{B}}", map[string]string{
		"A": "programs",
		"B": "hello.bf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "programs/hello.bf" {
		t.Fatalf("expected replaced string, got %q", out)
	}
}

func TestRenderStringUnknownVar(t *testing.T) {
	_, err := renderString("cells: {{CELLS}}", map[string]string{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config kind, got: %v", err)
	}
}

func TestRenderStringUnclosedPlaceholder(t *testing.T) {
	if _, err := renderString("cells: {{CELLS", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestTemplateVarsTrackDefaults(t *testing.T) {
	cfg := domain.DefaultConfig()
	vars := templateVars(cfg)

	if vars["CELLS"] != strconv.Itoa(cfg.Defaults.Cells) {
		t.Errorf("expected CELLS=%d, got %s", cfg.Defaults.Cells, vars["CELLS"])
	}
	if vars["EOF"] != string(cfg.Defaults.EOF) {
		t.Errorf("expected EOF=%s, got %s", cfg.Defaults.EOF, vars["EOF"])
	}
	if vars["PROGRAMS_DIR"] != cfg.Paths.ProgramsDir {
		t.Errorf("expected PROGRAMS_DIR=%s, got %s", cfg.Paths.ProgramsDir, vars["PROGRAMS_DIR"])
	}
}
