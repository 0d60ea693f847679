package graph

import (
	"fmt"
	"reflect"
)

// NodeKey uniquely identifies a registration taking part in a resolution.
type NodeKey struct {
	// ID is the registration's identifier and alone decides equality.
	ID string

	// Type is the implementation type, used for display.
	Type reflect.Type

	// Name is the registration's name, if any.
	Name string
}

// String returns a string representation of the node key
func (k NodeKey) String() string {
	if k.Name != "" {
		return fmt.Sprintf("%v[%s]", k.Type, k.Name)
	}
	return fmt.Sprintf("%v", k.Type)
}

// Path is the chain of registrations currently being constructed by one
// top-level resolution. It is threaded through recursive resolve calls and
// is not safe for concurrent use.
type Path struct {
	nodes []NodeKey
	index map[string]int
}

// NewPath creates an empty resolution path.
func NewPath() *Path {
	return &Path{
		index: make(map[string]int),
	}
}

// Enter pushes key onto the path. If key is already on the path the
// resolution would never terminate, and a CircularDependencyError describing
// the cycle is returned instead.
func (p *Path) Enter(key NodeKey) error {
	if at, exists := p.index[key.ID]; exists {
		cycle := make([]NodeKey, len(p.nodes)-at)
		copy(cycle, p.nodes[at:])
		return CircularDependencyError{
			Node: key,
			Path: cycle,
		}
	}

	p.index[key.ID] = len(p.nodes)
	p.nodes = append(p.nodes, key)
	return nil
}

// Leave pops the most recently entered key.
func (p *Path) Leave() {
	if len(p.nodes) == 0 {
		return
	}

	last := p.nodes[len(p.nodes)-1]
	delete(p.index, last.ID)
	p.nodes = p.nodes[:len(p.nodes)-1]
}

// Depth returns the number of registrations on the path.
func (p *Path) Depth() int {
	return len(p.nodes)
}
