package celestial

import "math"

// Table is a validated, ordered set of descriptors indexed by name.
// A Table is immutable once built.
type Table struct {
	descs  []Descriptor
	index  map[string]int
	sorted []int // parent-before-child order, ties in table order
}

// NewTable validates descs and returns them as a Table. Parents may be
// declared after their children; they only have to exist somewhere in the
// table. Any problem is reported as a *ConfigurationError and no table is
// returned.
func NewTable(descs ...Descriptor) (*Table, error) {
	t := &Table{
		descs: append([]Descriptor(nil), descs...),
		index: make(map[string]int, len(descs)),
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) validate() error {
	if len(t.descs) == 0 {
		return configErr("", "", ErrEmptyTable, "")
	}

	for i, d := range t.descs {
		if d.Name == "" {
			return configErr("", "Name", ErrInvalidValue, "entry %d has no name", i)
		}
		if _, dup := t.index[d.Name]; dup {
			return configErr(d.Name, "Name", ErrDuplicateName, "")
		}
		t.index[d.Name] = i
		if err := checkValues(d); err != nil {
			return err
		}
	}

	for _, d := range t.descs {
		if d.IsRoot() {
			continue
		}
		if d.Parent == d.Name {
			return configErr(d.Name, "Parent", ErrCycle, "body is its own parent")
		}
		if _, ok := t.index[d.Parent]; !ok {
			return configErr(d.Name, "Parent", ErrUnresolvedParent, "no body named %q", d.Parent)
		}
	}

	order, err := t.topoSort()
	if err != nil {
		return err
	}
	t.sorted = order
	return nil
}

func checkValues(d Descriptor) error {
	for _, f := range []struct {
		field string
		v     float64
	}{
		{"Radius", d.Radius},
		{"OrbitalDistance", d.OrbitalDistance},
		{"OrbitalPeriodDivisor", d.OrbitalPeriodDivisor},
		{"RotationPeriodDivisor", d.RotationPeriodDivisor},
		{"AxialTilt", d.AxialTilt},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return configErr(d.Name, f.field, ErrInvalidValue, "%v is not a finite number", f.v)
		}
	}
	if d.Radius <= 0 {
		return configErr(d.Name, "Radius", ErrInvalidValue, "radius %v must be positive", d.Radius)
	}
	if d.RotationPeriodDivisor == 0 {
		return configErr(d.Name, "RotationPeriodDivisor", ErrZeroValue, "")
	}
	if d.IsRoot() {
		// A root has nothing to orbit.
		if d.OrbitalDistance != 0 {
			return configErr(d.Name, "OrbitalDistance", ErrInvalidValue, "root body cannot be offset")
		}
		if d.OrbitalPeriodDivisor != 0 {
			return configErr(d.Name, "OrbitalPeriodDivisor", ErrInvalidValue, "root body cannot orbit")
		}
		return nil
	}
	if d.OrbitalDistance == 0 {
		return configErr(d.Name, "OrbitalDistance", ErrZeroValue, "")
	}
	if d.OrbitalPeriodDivisor == 0 {
		return configErr(d.Name, "OrbitalPeriodDivisor", ErrZeroValue, "")
	}
	return nil
}

// topoSort orders bodies so every parent precedes its children. Unrelated
// bodies keep their table order.
func (t *Table) topoSort() ([]int, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	mark := make([]int, len(t.descs))
	order := make([]int, 0, len(t.descs))

	var visit func(i int) error
	visit = func(i int) error {
		switch mark[i] {
		case done:
			return nil
		case visiting:
			return configErr(t.descs[i].Name, "Parent", ErrCycle, "body is its own ancestor")
		}
		mark[i] = visiting
		if p := t.descs[i].Parent; p != "" {
			if err := visit(t.index[p]); err != nil {
				return err
			}
		}
		mark[i] = done
		order = append(order, i)
		return nil
	}

	for i := range t.descs {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Len returns the number of bodies.
func (t *Table) Len() int {
	return len(t.descs)
}

// Lookup returns the descriptor with the given name.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	i, ok := t.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return t.descs[i], true
}

// Descriptors returns a copy of the descriptors in table order.
func (t *Table) Descriptors() []Descriptor {
	return append([]Descriptor(nil), t.descs...)
}

// Sorted returns the descriptors with every parent before its children.
func (t *Table) Sorted() []Descriptor {
	out := make([]Descriptor, len(t.sorted))
	for i, idx := range t.sorted {
		out[i] = t.descs[idx]
	}
	return out
}

// Roots returns the bodies without a parent, in table order.
func (t *Table) Roots() []Descriptor {
	var roots []Descriptor
	for _, d := range t.descs {
		if d.IsRoot() {
			roots = append(roots, d)
		}
	}
	return roots
}

// Children returns the direct children of the named body, in table order.
func (t *Table) Children(name string) []Descriptor {
	var kids []Descriptor
	for _, d := range t.descs {
		if d.Parent == name && !d.IsRoot() {
			kids = append(kids, d)
		}
	}
	return kids
}

// Without returns a new table lacking the named bodies and everything that
// orbits them. Unknown names are ignored.
func (t *Table) Without(names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	// Parents come first in sorted order, so drops propagate downwards.
	for _, idx := range t.sorted {
		d := t.descs[idx]
		if !d.IsRoot() && drop[d.Parent] {
			drop[d.Name] = true
		}
	}

	kept := make([]Descriptor, 0, len(t.descs))
	for _, d := range t.descs {
		if !drop[d.Name] {
			kept = append(kept, d)
		}
	}
	return NewTable(kept...)
}
