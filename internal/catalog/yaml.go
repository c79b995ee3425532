package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type file struct {
	Categories []Category `yaml:"categories"`
}

// Parse decodes a YAML catalog document:
//
//	categories:
//	  - id: structure
//	    label: Structure
//	    compatible_with: [technical_data]
//	    options: [Summary, Bullet points]
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalid)
	}
	return New(f.Categories)
}

// Load reads a YAML catalog from path. An empty path returns the built-in
// catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}
