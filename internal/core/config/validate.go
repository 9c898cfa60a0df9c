package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/shelf/internal/core/sorting"
	"github.com/colonyops/shelf/internal/core/styles"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("library_dir", c.LibraryDir, notEmpty),
		criterio.Run("theme", c.Theme, themeExists),
		criterio.Run("sort.field", string(c.Sort.Field), sortFieldKnown),
		criterio.Run("grid.columns", c.Grid.Columns, positive),
		c.validateIgnorePatterns(),
	)
}

// ValidateDeep performs validation including I/O checks on the library
// directory. Used by explicit validation commands, not on every startup.
func (c *Config) ValidateDeep() error {
	if err := c.Validate(); err != nil {
		return err
	}
	return criterio.ValidateStruct(
		criterio.Run("library_dir", c.LibraryDir, isDirectory),
	)
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func positive(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.Names())
	}
	return nil
}

// sortFieldKnown rejects unknown default sort fields in config. At runtime an
// unknown field degrades to a no-op sort; in config it is a typo worth
// surfacing.
func sortFieldKnown(field string) error {
	if field == "" {
		return nil // filled by applyDefaults
	}
	if sorting.Field(field).IsValid() {
		return nil
	}
	return fmt.Errorf("unknown sort field %q", field)
}

func (c *Config) validateIgnorePatterns() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("ignore[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs.ToError()
}

func isDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
