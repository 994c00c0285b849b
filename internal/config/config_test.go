package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
)

func TestDefaultOptions(t *testing.T) {
	opts := Default()
	assert.True(t, opts.AllowVariants)
	assert.Equal(t, "safe", opts.DefaultSafety)
	assert.Equal(t, []string{".tt", ".tanit"}, opts.SourceFileExtensions)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeTemp(t, "allow_variants: false\ndefault_safety: unsafe\n")
	opts, err := Load(path)
	require.NoError(t, err)
	assert.False(t, opts.AllowVariants)
	assert.Equal(t, "unsafe", opts.DefaultSafety)
	// Omitted field falls back to the default.
	assert.Equal(t, []string{".tt", ".tanit"}, opts.SourceFileExtensions)
}

func TestLoadMalformedYAMLErrors(t *testing.T) {
	path := writeTemp(t, "allow_variants: [this is not a bool\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestSafetyResolvesRecognizedValues(t *testing.T) {
	assert.Equal(t, ast.SafetySafe, Options{DefaultSafety: "safe"}.Safety())
	assert.Equal(t, ast.SafetyUnsafe, Options{DefaultSafety: "unsafe"}.Safety())
	assert.Equal(t, ast.SafetyInherited, Options{DefaultSafety: "inherited"}.Safety())
}

func TestSafetyDefaultsToSafeForUnrecognizedValue(t *testing.T) {
	assert.Equal(t, ast.SafetySafe, Options{DefaultSafety: ""}.Safety())
	assert.Equal(t, ast.SafetySafe, Options{DefaultSafety: "bogus"}.Safety())
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tanit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
