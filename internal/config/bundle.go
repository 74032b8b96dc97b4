// Package config loads the bundle description (bundle.yml) and the CLI
// settings that drive a views build.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPackage is the package block used when none is selected.
const DefaultPackage = "fontello"

// Bundle is the parsed bundle.yml.
type Bundle struct {
	Packages map[string]Package `yaml:"packages"`
}

type Package struct {
	Views Views `yaml:"views"`
}

// Views selects the template files of a package.
type Views struct {
	// Root is resolved against the application root.
	Root string `yaml:"root"`
	// Include and Exclude are doublestar globs relative to Root.
	Include Patterns `yaml:"include,omitempty"`
	Exclude Patterns `yaml:"exclude,omitempty"`
}

// Patterns accepts either a single glob or a list of globs.
type Patterns []string

func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}
		if str == "" {
			*p = Patterns{}
		} else {
			*p = Patterns{str}
		}
		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		*p = arr
		return nil

	default:
		return fmt.Errorf("expected pattern or list of patterns at line %d, got %v", node.Line, node.Kind)
	}
}

func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file %s: %w", path, err)
	}

	return ParseBundle(data)
}

func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse bundle YAML: %w", err)
	}

	applyDefaults(&b)

	return &b, nil
}

func applyDefaults(b *Bundle) {
	if b.Packages == nil {
		b.Packages = map[string]Package{}
	}
	for name, pkg := range b.Packages {
		if pkg.Views.Root == "" {
			pkg.Views.Root = "views"
		}
		b.Packages[name] = pkg
	}
}

// ViewsFor returns the views block of the named package.
func (b *Bundle) ViewsFor(name string) (Views, error) {
	if name == "" {
		name = DefaultPackage
	}
	pkg, ok := b.Packages[name]
	if !ok {
		return Views{}, fmt.Errorf("package %q not found in bundle", name)
	}
	return pkg.Views, nil
}

func MarshalBundle(b *Bundle) ([]byte, error) {
	return yaml.Marshal(b)
}
