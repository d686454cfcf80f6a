// Package roles holds the built-in worker role catalog. The catalog is data,
// not code: it ships embedded so every binary agrees on the roster without a
// config file on disk.
package roles

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed roles.yaml
var catalogYAML []byte

// Role describes one worker role in the catalog.
type Role struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Authority   string `yaml:"authority"`
}

type catalog struct {
	Roles []Role `yaml:"roles"`
}

// Load parses the embedded catalog. The result is a fresh slice each call so
// callers may reorder or filter freely.
func Load() ([]Role, error) {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to parse role catalog: %w", err)
	}
	if len(c.Roles) == 0 {
		return nil, fmt.Errorf("role catalog is empty")
	}
	return c.Roles, nil
}

// Lookup returns the role with the given name, or false when unknown.
func Lookup(name string) (Role, bool) {
	all, err := Load()
	if err != nil {
		return Role{}, false
	}
	for _, r := range all {
		if r.Name == name {
			return r, true
		}
	}
	return Role{}, false
}

// Names returns the catalog's role names in declaration order.
func Names() []string {
	all, err := Load()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(all))
	for _, r := range all {
		names = append(names, r.Name)
	}
	return names
}
