// Package scene builds the transform hierarchy of the orrery: one render
// node and one orbit pivot per body, moons nested under their planets.
package scene

import "github.com/litescript/ls-orrery/internal/celestial"

// MaterialMode selects how every node is drawn.
type MaterialMode int

const (
	MaterialStandard MaterialMode = iota
	MaterialWireframe
	MaterialNormals
)

// String returns the mode name.
func (m MaterialMode) String() string {
	switch m {
	case MaterialStandard:
		return "standard"
	case MaterialWireframe:
		return "wireframe"
	case MaterialNormals:
		return "normals"
	default:
		return "unknown"
	}
}

// Material describes the surface of a node. Textures and colours are fixed
// at build time; only the debug toggles change afterwards.
type Material struct {
	Textures  celestial.TextureRefs
	Color     string
	Emissive  string
	Wireframe bool
	Normals   bool
}

// Node is the drawable body (render node). Only Spin changes per frame.
type Node struct {
	Name     string
	Radius   float64
	Offset   Vec3    // Position in the owning pivot's frame
	Tilt     float64 // Axial tilt about X, radians, set once at build
	Spin     float64 // Self-rotation about the tilted Y axis, radians
	Material Material

	pivot *Pivot
}

// Pivot returns the orbit pivot that owns the node.
func (n *Node) Pivot() *Pivot {
	return n.pivot
}

// WorldPosition returns the node's position in scene coordinates.
func (n *Node) WorldPosition() Vec3 {
	return n.pivot.ToWorld(n.Offset)
}

// SpinAxis returns the node's tilted rotation axis in scene coordinates.
func (n *Node) SpinAxis() Vec3 {
	return n.pivot.DirToWorld(Vec3{Y: 1}.RotateX(n.Tilt))
}

// Pivot is a transform-only orbit node. It turns about Y only; its body's
// node and the pivots of the bodies orbiting that body hang beneath it.
type Pivot struct {
	Name  string
	Angle float64 // Rotation about Y, radians

	parent   *Pivot
	anchor   *Node // Parent body's node; the pivot sits where it sits
	node     *Node
	children []*Pivot
}

// Position returns the pivot's origin in its parent's frame. A child pivot
// tracks its parent body's node by reference, so moving that node moves the
// pivot. Root pivots sit at the origin.
func (p *Pivot) Position() Vec3 {
	if p.anchor == nil {
		return Vec3{}
	}
	return p.anchor.Offset
}

// Parent returns the enclosing pivot, or nil for a root.
func (p *Pivot) Parent() *Pivot {
	return p.parent
}

// Node returns the body carried by the pivot.
func (p *Pivot) Node() *Node {
	return p.node
}

// Children returns the pivots of the bodies orbiting this one.
func (p *Pivot) Children() []*Pivot {
	return append([]*Pivot(nil), p.children...)
}

// Depth returns the number of ancestors.
func (p *Pivot) Depth() int {
	d := 0
	for q := p.parent; q != nil; q = q.parent {
		d++
	}
	return d
}

// ToWorld maps a point from this pivot's frame into scene coordinates.
func (p *Pivot) ToWorld(v Vec3) Vec3 {
	for q := p; q != nil; q = q.parent {
		v = q.Position().Add(v.RotateY(q.Angle))
	}
	return v
}

// DirToWorld maps a direction from this pivot's frame into scene
// coordinates, ignoring translation.
func (p *Pivot) DirToWorld(v Vec3) Vec3 {
	for q := p; q != nil; q = q.parent {
		v = v.RotateY(q.Angle)
	}
	return v
}
