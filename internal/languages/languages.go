// Package languages holds the registry of languages the dashboard can
// parse, keyed by language id, together with the location of each
// driver's source code.
package languages

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Auto is the sentinel key that asks the parser service to detect the
// language of the submitted code.
const Auto = "auto"

// Descriptor describes a single registered language.
type Descriptor struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Driver is a parser backend as listed by the /drivers endpoint.
type Driver struct {
	Language string `json:"language"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

// Registry is an immutable mapping of language id to Descriptor.
type Registry struct {
	entries map[string]Descriptor
	keys    []string
}

// New builds a Registry from entries. The map is copied.
func New(entries map[string]Descriptor) *Registry {
	r := &Registry{entries: make(map[string]Descriptor, len(entries))}
	for k, d := range entries {
		r.entries[k] = d
	}
	r.keys = sortedKeys(r.entries)
	return r
}

// Default returns the registry of languages backed by the built-in
// tree-sitter grammars.
func Default() *Registry {
	return New(map[string]Descriptor{
		Auto:         {Name: "(auto)"},
		"go":         {Name: "Go", URL: "https://github.com/tree-sitter/tree-sitter-go"},
		"python":     {Name: "Python", URL: "https://github.com/tree-sitter/tree-sitter-python"},
		"rust":       {Name: "Rust", URL: "https://github.com/tree-sitter/tree-sitter-rust"},
		"typescript": {Name: "TypeScript", URL: "https://github.com/tree-sitter/tree-sitter-typescript"},
	})
}

// Lookup returns the descriptor registered under key.
func (r *Registry) Lookup(key string) (Descriptor, bool) {
	d, ok := r.entries[key]
	return d, ok
}

// Keys returns the registered ids with Auto first and the rest sorted.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of registered ids, Auto included.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Drivers returns every registered language except Auto, in key order.
func (r *Registry) Drivers() []Driver {
	drivers := make([]Driver, 0, len(r.keys))
	for _, k := range r.keys {
		if k == Auto {
			continue
		}
		d := r.entries[k]
		drivers = append(drivers, Driver{Language: k, Name: d.Name, URL: d.URL})
	}
	return drivers
}

// Merge returns a new registry with overrides layered over r. Override
// fields left empty keep the value from r.
func (r *Registry) Merge(overrides map[string]Descriptor) *Registry {
	merged := make(map[string]Descriptor, len(r.entries)+len(overrides))
	for k, d := range r.entries {
		merged[k] = d
	}
	for k, o := range overrides {
		d := merged[k]
		if o.Name != "" {
			d.Name = o.Name
		}
		if o.URL != "" {
			d.URL = o.URL
		}
		merged[k] = d
	}
	return New(merged)
}

// registryFile is the on-disk shape of a languages file.
type registryFile struct {
	Languages map[string]Descriptor `yaml:"languages"`
}

// LoadFile reads a YAML languages file and merges it over base.
func LoadFile(path string, base *Registry) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("languages: read %s: %w", path, err)
	}
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("languages: parse %s: %w", path, err)
	}
	for k, d := range f.Languages {
		if k == "" {
			return nil, fmt.Errorf("languages: %s: empty language id", path)
		}
		if _, known := base.Lookup(k); !known && d.Name == "" {
			return nil, fmt.Errorf("languages: %s: language %q needs a name", path, k)
		}
	}
	return base.Merge(f.Languages), nil
}

func sortedKeys(m map[string]Descriptor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k != Auto {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := m[Auto]; ok {
		keys = append([]string{Auto}, keys...)
	}
	return keys
}
