package voxel

import (
	"fmt"
	"sort"
)

// Builtin material names.
const (
	MaterialAir   = "air"
	MaterialStone = "stone"
	MaterialWater = "water_source"
)

// Material is a registered material and the light level it is placed with.
type Material struct {
	Name  string
	ID    Content
	Light uint8
}

// Node returns the voxel value that places m.
func (m Material) Node() Node {
	return Node{Content: m.ID, Light: m.Light}
}

// Registry resolves symbolic material names.
type Registry interface {
	Lookup(name string) (Material, bool)
}

// MapRegistry is a Registry backed by a map. It is not safe for concurrent
// registration; lookups after setup are read-only.
type MapRegistry struct {
	byName map[string]Material
	next   Content
}

// Compile-time interface check.
var _ Registry = (*MapRegistry)(nil)

// NewRegistry returns a registry holding air, stone and water_source.
func NewRegistry() *MapRegistry {
	r := &MapRegistry{byName: make(map[string]Material)}
	r.byName[MaterialAir] = Material{Name: MaterialAir, ID: ContentAir, Light: LightSun}
	r.mustRegister(MaterialStone, LightSun)
	r.mustRegister(MaterialWater, LightSun)
	return r
}

func (r *MapRegistry) mustRegister(name string, light uint8) {
	if _, err := r.Register(name, light); err != nil {
		panic(err)
	}
}

// Register adds a material with the next free id.
func (r *MapRegistry) Register(name string, light uint8) (Material, error) {
	if name == "" {
		return Material{}, fmt.Errorf("voxel: empty material name")
	}
	if _, ok := r.byName[name]; ok {
		return Material{}, fmt.Errorf("voxel: material %q already registered", name)
	}
	if r.next == ContentAir {
		r.next = ContentIgnore + 1
	}
	m := Material{Name: name, ID: r.next, Light: light}
	r.next++
	r.byName[name] = m
	return m, nil
}

// Lookup implements Registry.
func (r *MapRegistry) Lookup(name string) (Material, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Names returns the registered names in sorted order.
func (r *MapRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
