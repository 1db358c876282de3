package scene

import (
	"fmt"

	"github.com/litescript/ls-orrery/internal/celestial"
)

// Entry ties a descriptor to the nodes built for it.
type Entry struct {
	Descriptor celestial.Descriptor
	Node       *Node
	Pivot      *Pivot
}

// Graph is the built scene: every body's render node and orbit pivot,
// reachable by name. It is created once and lives as long as the program.
type Graph struct {
	entries []Entry // Parent-before-child order
	index   map[string]int
	roots   []*Pivot
	mode    MaterialMode
}

// Build creates the node and pivot hierarchy for a validated table. Bodies
// are visited parents first: each gets a node offset by its orbital
// distance along X and tilted once, a pivot holding that node, and its pivot
// is hung under the parent's pivot (or the scene root for root bodies).
func Build(t *celestial.Table) (*Graph, error) {
	if t == nil {
		return nil, &celestial.ConfigurationError{Err: celestial.ErrEmptyTable}
	}

	descs := t.Sorted()
	g := &Graph{
		entries: make([]Entry, 0, len(descs)),
		index:   make(map[string]int, len(descs)),
	}

	for _, d := range descs {
		node := &Node{
			Name:   d.Name,
			Radius: d.Radius,
			Offset: Vec3{X: d.OrbitalDistance},
			Tilt:   degToRad(d.AxialTilt),
			Material: Material{
				Textures: d.Textures,
				Color:    d.Color,
				Emissive: d.Emissive,
			},
		}
		pivot := &Pivot{Name: d.Name, node: node}
		node.pivot = pivot

		if d.IsRoot() {
			g.roots = append(g.roots, pivot)
		} else {
			i, ok := g.index[d.Parent]
			if !ok {
				// Sorted order guarantees parents first; a miss means the
				// table was not validated.
				return nil, &celestial.ConfigurationError{
					Body:  d.Name,
					Field: "Parent",
					Err:   celestial.ErrUnresolvedParent,
				}
			}
			parent := g.entries[i]
			pivot.parent = parent.Pivot
			pivot.anchor = parent.Node
			parent.Pivot.children = append(parent.Pivot.children, pivot)
		}

		g.index[d.Name] = len(g.entries)
		g.entries = append(g.entries, Entry{Descriptor: d, Node: node, Pivot: pivot})
	}
	return g, nil
}

// BuildDescriptors validates descs as a table and builds it.
func BuildDescriptors(descs ...celestial.Descriptor) (*Graph, error) {
	t, err := celestial.NewTable(descs...)
	if err != nil {
		return nil, err
	}
	return Build(t)
}

// Len returns the number of bodies.
func (g *Graph) Len() int {
	return len(g.entries)
}

// Lookup returns the entry for the named body.
func (g *Graph) Lookup(name string) (Entry, bool) {
	i, ok := g.index[name]
	if !ok {
		return Entry{}, false
	}
	return g.entries[i], true
}

// Entries returns all entries, parents before children.
func (g *Graph) Entries() []Entry {
	return append([]Entry(nil), g.entries...)
}

// Roots returns the top-level pivots.
func (g *Graph) Roots() []*Pivot {
	return append([]*Pivot(nil), g.roots...)
}

// Walk visits pivots depth first from each root, children in table order.
// Returning false from fn skips the pivot's subtree.
func (g *Graph) Walk(fn func(p *Pivot, depth int) bool) {
	var visit func(p *Pivot, depth int)
	visit = func(p *Pivot, depth int) {
		if !fn(p, depth) {
			return
		}
		for _, c := range p.children {
			visit(c, depth+1)
		}
	}
	for _, r := range g.roots {
		visit(r, 0)
	}
}

// IsDescendant reports whether p hangs somewhere below ancestor.
func IsDescendant(p, ancestor *Pivot) bool {
	if p == nil || ancestor == nil {
		return false
	}
	for q := p.parent; q != nil; q = q.parent {
		if q == ancestor {
			return true
		}
	}
	return false
}

// WorldPosition returns the scene position of the named body.
func (g *Graph) WorldPosition(name string) (Vec3, error) {
	e, ok := g.Lookup(name)
	if !ok {
		return Vec3{}, fmt.Errorf("unknown body %q", name)
	}
	return e.Node.WorldPosition(), nil
}

// SetMaterialMode switches every node to the given debug material.
func (g *Graph) SetMaterialMode(mode MaterialMode) {
	g.mode = mode
	for _, e := range g.entries {
		e.Node.Material.Wireframe = mode == MaterialWireframe
		e.Node.Material.Normals = mode == MaterialNormals
	}
}

// MaterialMode returns the mode last applied to every node.
func (g *Graph) MaterialMode() MaterialMode {
	return g.mode
}
