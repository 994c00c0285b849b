// Package config loads the compile-options file (tanit.yaml): the variant
// feature gate, the default scope safety new blocks inherit, and a list
// of tanit source file extensions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
)

// Options is the parsed shape of tanit.yaml.
type Options struct {
	// AllowVariants gates variant types: analyzing a VariantDef with the
	// flag off yields a feature-gating diagnostic.
	AllowVariants bool `yaml:"allow_variants"`

	// DefaultSafety is the safety ("safe", "unsafe", or "inherited") the
	// root scope starts with, before any block-level safe/unsafe
	// attribute overrides it.
	DefaultSafety string `yaml:"default_safety,omitempty"`

	// SourceFileExtensions lists the extensions of tanit source files. The
	// tanitc driver compiles exactly the paths it is given and does not
	// consult this list.
	SourceFileExtensions []string `yaml:"source_file_extensions,omitempty"`
}

// Default returns the options a run uses when no tanit.yaml is found.
func Default() Options {
	return Options{
		AllowVariants:        true,
		DefaultSafety:        "safe",
		SourceFileExtensions: []string{".tt", ".tanit"},
	}
}

// Load reads and parses path, falling back to Default for any field the
// file omits.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(opts.SourceFileExtensions) == 0 {
		opts.SourceFileExtensions = Default().SourceFileExtensions
	}
	return opts, nil
}

// Safety resolves DefaultSafety to an ast.Safety value, defaulting to
// SafetySafe for an empty or unrecognized string.
func (o Options) Safety() ast.Safety {
	switch o.DefaultSafety {
	case "unsafe":
		return ast.SafetyUnsafe
	case "inherited":
		return ast.SafetyInherited
	default:
		return ast.SafetySafe
	}
}
