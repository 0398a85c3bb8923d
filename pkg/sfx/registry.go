// ABOUTME: Clip registry
// ABOUTME: Immutable name to clip mapping with a builder for the asset loader
package sfx

import "sort"

// Registry maps clip names to clips. It is read-only once built and safe for
// concurrent lookups.
type Registry struct {
	clips map[string]*Clip
	names []string
}

// NewRegistry builds a registry from clips. When two clips share a name the
// later one wins.
func NewRegistry(clips ...*Clip) *Registry {
	b := NewRegistryBuilder()
	for _, c := range clips {
		b.Add(c)
	}
	return b.Build()
}

// Lookup returns the clip registered under name
func (r *Registry) Lookup(name string) (*Clip, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.clips[name]
	return c, ok
}

// Names returns the registered clip names in sorted order
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Len returns the number of registered clips
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.clips)
}

// RegistryBuilder collects clips before the registry is frozen
type RegistryBuilder struct {
	clips map[string]*Clip
}

// NewRegistryBuilder creates an empty builder
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{clips: make(map[string]*Clip)}
}

// Add registers clip under its name and reports whether it replaced an
// earlier clip of the same name. Nil clips are ignored.
func (b *RegistryBuilder) Add(clip *Clip) (replaced bool) {
	if clip == nil {
		return false
	}
	_, replaced = b.clips[clip.Name]
	b.clips[clip.Name] = clip
	return replaced
}

// Build freezes the collected clips into a Registry. The builder can keep
// being used; later additions do not affect registries already built.
func (b *RegistryBuilder) Build() *Registry {
	r := &Registry{
		clips: make(map[string]*Clip, len(b.clips)),
		names: make([]string, 0, len(b.clips)),
	}
	for name, c := range b.clips {
		r.clips[name] = c
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}
