package policy

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFiles embed.FS

// Registry holds the resource-type catalog. It is immutable after load, so
// lookups need no locking and the policy is testable as ordinary code
// instead of configuration scattered per table.
type Registry struct {
	types map[string]ResourceType
}

// NewRegistry loads the embedded catalog and validates parent references.
func NewRegistry() (*Registry, error) {
	data, err := catalogFiles.ReadFile("catalog/resources.yaml")
	if err != nil {
		return nil, fmt.Errorf("read resource catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal resource catalog: %w", err)
	}

	r := &Registry{types: make(map[string]ResourceType, len(file.Resources))}
	for name, rt := range file.Resources {
		rt.Name = name
		if rt.Write != WritePolicyAdmin && rt.Write != WritePolicyMember {
			return nil, fmt.Errorf("resource type %q: unknown write policy %q", name, rt.Write)
		}
		r.types[name] = rt
	}

	// Parent references must point at catalog entries
	for name, rt := range r.types {
		if rt.Parent == "" {
			continue
		}
		if _, ok := r.types[rt.Parent]; !ok {
			return nil, fmt.Errorf("resource type %q: unknown parent type %q", name, rt.Parent)
		}
	}

	return r, nil
}

// Get returns the metadata for a resource type.
func (r *Registry) Get(name string) (*ResourceType, error) {
	rt, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource type: %s", name)
	}
	return &rt, nil
}

// Known reports whether the type exists in the catalog.
func (r *Registry) Known(name string) bool {
	_, ok := r.types[name]
	return ok
}

// Types returns all catalog entries sorted by name.
func (r *Registry) Types() []ResourceType {
	out := make([]ResourceType, 0, len(r.types))
	for _, rt := range r.types {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
