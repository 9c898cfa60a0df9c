package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/shelf/internal/core/sorting"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/lib")
	require.NoError(t, err)

	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, sorting.DefaultState(), cfg.Sort)
	assert.Equal(t, 3, cfg.Grid.Columns)
	assert.Equal(t, "/lib", cfg.LibraryDir)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
theme: gruvbox
sort:
  field: size
  descending: true
grid:
  columns: 5
ignore:
  - "Scratch/**"
recents:
  max_entries: 50
`)

	cfg, err := Load(path, "/lib")
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, sorting.State{Field: sorting.FieldSize, Descending: true}, cfg.Sort)
	assert.Equal(t, 5, cfg.Grid.Columns)
	assert.Equal(t, []string{"Scratch/**"}, cfg.Ignore)
	assert.Equal(t, 50, cfg.Recents.MaxEntries)
	assert.Equal(t, "/lib", cfg.LibraryDir)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "theme: catppuccin\n")

	cfg, err := Load(path, "/lib")
	require.NoError(t, err)

	assert.Equal(t, "catppuccin", cfg.Theme)
	assert.Equal(t, sorting.FieldModified, cfg.Sort.Field)
	assert.Equal(t, 3, cfg.Grid.Columns)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "theme: [broken\n")

	_, err := Load(path, "/lib")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate_UnknownTheme(t *testing.T) {
	path := writeConfig(t, "theme: neon-dreams\n")

	_, err := Load(path, "/lib")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "theme", fieldErrs[0].Field)
}

func TestValidate_UnknownSortField(t *testing.T) {
	path := writeConfig(t, "sort:\n  field: color\n")

	_, err := Load(path, "/lib")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "sort.field", fieldErrs[0].Field)
}

func TestValidate_BadIgnoreGlob(t *testing.T) {
	path := writeConfig(t, "ignore:\n  - \"[unclosed\"\n")

	_, err := Load(path, "/lib")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "ignore[0]", fieldErrs[0].Field)
}

func TestValidate_EmptyLibraryDir(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.Validate()
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "library_dir", fieldErrs[0].Field)
}

func TestValidateDeep_LibraryDirMustExist(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LibraryDir = filepath.Join(t.TempDir(), "missing")

	err := cfg.ValidateDeep()
	require.Error(t, err)

	cfg.LibraryDir = t.TempDir()
	assert.NoError(t, cfg.ValidateDeep())
}

func TestRecentsFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LibraryDir = "/lib"

	assert.Equal(t, filepath.Join("/lib", ".shelf", "recents.json"), cfg.RecentsFile())
}
