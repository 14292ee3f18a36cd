// Package source holds the registry of configured data sources. The
// registry preserves configuration order, which is the order sources are
// classified against and fanned out to.
package source

import (
	"strings"

	"mdb/internal/config"
)

// Profile is the routing-relevant view of one configured source.
type Profile struct {
	Name        string
	Description string
	Keywords    []string
}

// Registry is an ordered, name-indexed collection of source profiles.
type Registry struct {
	order    []string
	profiles map[string]Profile
	configs  map[string]config.SourceConfig
}

// NewRegistry builds a registry from configured sources, keeping their order.
func NewRegistry(sources []config.SourceConfig) *Registry {
	r := &Registry{
		profiles: make(map[string]Profile, len(sources)),
		configs:  make(map[string]config.SourceConfig, len(sources)),
	}
	for _, s := range sources {
		kws := make([]string, len(s.Keywords))
		for i, kw := range s.Keywords {
			kws[i] = strings.ToLower(kw)
		}
		r.order = append(r.order, s.Name)
		r.profiles[s.Name] = Profile{
			Name:        s.Name,
			Description: s.Description,
			Keywords:    kws,
		}
		r.configs[s.Name] = s
	}
	return r
}

// Names returns the source names in configuration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the profile for a named source.
func (r *Registry) Get(name string) (Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// Config returns the connection configuration for a named source.
func (r *Registry) Config(name string) (config.SourceConfig, bool) {
	c, ok := r.configs[name]
	return c, ok
}

// Has reports whether the named source exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.profiles[name]
	return ok
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	return len(r.order)
}
