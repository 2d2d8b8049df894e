//go:build integration
// +build integration

package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

func TestEnginePackagesAvoidTerminalImports(t *testing.T) {
	config := &packages.Config{
		Mode:  packages.NeedName | packages.NeedImports,
		Tests: false,
		Dir:   integrationRepoRoot(t),
	}
	pkgs, err := packages.Load(config, enginePurityPatterns()...)
	if err != nil {
		t.Fatalf("load engine packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("engine package load errors")
	}
	if len(pkgs) == 0 {
		t.Fatal("engine packages not found")
	}

	var violations []string
	for _, pkg := range pkgs {
		for importPath := range pkg.Imports {
			if !isEngineForbiddenImport(importPath) {
				continue
			}
			violations = append(violations, pkg.PkgPath+" imports "+importPath)
		}
	}

	if len(violations) > 0 {
		t.Fatalf("engine packages must leave terminal and process concerns to callers:\n- %s", strings.Join(violations, "\n- "))
	}
}

func TestEnginePurityScopesIncludeRound(t *testing.T) {
	patterns := enginePurityPatterns()
	if len(patterns) == 0 {
		t.Fatal("expected at least one package pattern")
	}
	found := false
	for _, pattern := range patterns {
		if pattern == "./internal/round" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected scan scope to include ./internal/round, got %v", patterns)
	}
}

func TestEngineForbiddenImports(t *testing.T) {
	for _, importPath := range []string{"os", "io", "bufio", "os/exec"} {
		if !isEngineForbiddenImport(importPath) {
			t.Fatalf("expected %s to be forbidden", importPath)
		}
	}
	for _, importPath := range []string{"fmt", "errors", "math/rand", "crypto/rand"} {
		if isEngineForbiddenImport(importPath) {
			t.Fatalf("expected %s to be allowed", importPath)
		}
	}
}

func enginePurityPatterns() []string {
	return []string{
		"./internal/deck",
		"./internal/random",
		"./internal/round",
		"./internal/score",
	}
}

func isEngineForbiddenImport(importPath string) bool {
	switch strings.TrimSpace(importPath) {
	case "os", "io", "bufio", "os/exec":
		return true
	}
	return false
}

func integrationRepoRoot(t *testing.T) string {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get working dir: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			t.Fatal("go.mod not found")
		}
		wd = parent
	}
}
