package view

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ViewSpec declares one digest view in the manifest.
type ViewSpec struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
}

// Manifest declares the digest views rendered by the watch process.
type Manifest struct {
	Views []ViewSpec `yaml:"views"`
}

// DefaultManifest is used when no manifest file exists: one change digest and
// one ROI digest.
func DefaultManifest() *Manifest {
	return &Manifest{Views: []ViewSpec{
		{Name: "changes", Kind: KindChanges},
		{Name: "roi", Kind: KindROI},
	}}
}

// LoadManifest reads a YAML views manifest. A missing file yields
// DefaultManifest().
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultManifest(), nil
		}
		return nil, fmt.Errorf("read views manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse views manifest %s: %w", path, err)
	}
	for i, v := range m.Views {
		if v.Name == "" {
			return nil, fmt.Errorf("views manifest %s: view %d has no name", path, i)
		}
		switch v.Kind {
		case KindChanges, KindROI:
		case "":
			m.Views[i].Kind = KindChanges
		default:
			return nil, fmt.Errorf("views manifest %s: view %q has unknown kind %q", path, v.Name, v.Kind)
		}
	}
	return &m, nil
}
