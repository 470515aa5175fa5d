package memory

import "github.com/matzehuels/ecsdump/pkg/ecs"

// Components is a component registry keyed by name.
type Components struct {
	infos  []ecs.ComponentInfo
	byName map[string]ecs.ComponentID
}

// NewComponents creates an empty registry.
func NewComponents() *Components {
	return &Components{byName: make(map[string]ecs.ComponentID)}
}

// Register adds a component and returns its id. Registering an existing name
// returns the existing id and keeps the first kind.
func (c *Components) Register(name string, kind ecs.ComponentKind) ecs.ComponentID {
	if id, ok := c.byName[name]; ok {
		return id
	}
	id := ecs.ComponentID(len(c.infos))
	c.infos = append(c.infos, ecs.ComponentInfo{Name: name, Kind: kind})
	c.byName[name] = id
	return id
}

// Lookup returns the id registered under name.
func (c *Components) Lookup(name string) (ecs.ComponentID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// Info implements ecs.Components.
func (c *Components) Info(id ecs.ComponentID) (ecs.ComponentInfo, bool) {
	if id < 0 || int(id) >= len(c.infos) {
		return ecs.ComponentInfo{}, false
	}
	return c.infos[id], true
}

// Len returns the number of registered components.
func (c *Components) Len() int { return len(c.infos) }
