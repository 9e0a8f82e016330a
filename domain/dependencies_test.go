package domain_test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/reglet-dev/reglet-permissions/"

// TestDomainHasNoExternalDependencies verifies that the domain layer
// does not import from application or infrastructure layers.
func TestDomainHasNoExternalDependencies(t *testing.T) {
	fset := token.NewFileSet()

	for _, pkg := range []string{"entities", "errors", "flags", "policy", "ports"} {
		files, err := filepath.Glob(filepath.Join(".", pkg, "*.go"))
		require.NoError(t, err, "failed to glob %s files", pkg)

		for _, file := range files {
			// Test files may import testify and test helpers
			if strings.HasSuffix(file, "_test.go") {
				continue
			}
			checkFileImports(t, fset, file, pkg)
		}
	}
}

func checkFileImports(t *testing.T, fset *token.FileSet, filename, pkg string) {
	t.Helper()

	f, err := parser.ParseFile(fset, filename, nil, parser.ImportsOnly)
	require.NoError(t, err, "failed to parse %s", filename)

	for _, imp := range f.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)

		forbiddenPackages := []string{
			modulePath + "application",
			modulePath + "infrastructure",
			modulePath + "cmd",
			modulePath + "permtest",
		}
		for _, forbidden := range forbiddenPackages {
			assert.NotContains(t, importPath, forbidden,
				"domain/%s package (%s) must not import from %s (violates hexagonal architecture)",
				pkg, filepath.Base(filename), forbidden)
		}

		// Domain can only import:
		// - Standard library
		// - Other domain packages
		// - doublestar (policy matching)
		if strings.HasPrefix(importPath, modulePath) {
			assert.True(t,
				strings.HasPrefix(importPath, modulePath+"domain/"),
				"domain/%s package (%s) imports non-domain package: %s",
				pkg, filepath.Base(filename), importPath)
		}
	}
}

// TestEntitiesImportNothingFromModule keeps entities at the bottom of the
// import graph so errors, flags and policy can all depend on it.
func TestEntitiesImportNothingFromModule(t *testing.T) {
	fset := token.NewFileSet()
	files, err := filepath.Glob(filepath.Join(".", "entities", "*.go"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		require.NoError(t, err, "failed to parse %s", file)
		for _, imp := range f.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			assert.False(t, strings.HasPrefix(importPath, modulePath),
				"entities (%s) imports %s", filepath.Base(file), importPath)
		}
	}
}

// TestDomainPackagesExist verifies that required domain packages exist.
func TestDomainPackagesExist(t *testing.T) {
	for _, dir := range []string{"entities", "errors", "flags", "policy", "ports"} {
		files, err := filepath.Glob(filepath.Join(".", dir, "*.go"))

		require.NoError(t, err, "failed to check %s directory", dir)
		assert.NotEmpty(t, files, "domain/%s should contain Go files", dir)
	}
}
