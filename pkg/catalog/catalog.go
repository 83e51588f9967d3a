package catalog

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// SceneID identifies a structure type as the game engine knows it.
type SceneID int

// SceneUnspecified is returned by [Catalog.Resolve] for unknown display names.
const SceneUnspecified SceneID = -1

// String returns the numeric scene id.
func (id SceneID) String() string { return strconv.Itoa(int(id)) }

// PortName names a docking port slot, e.g. "StandardDockingPortA".
type PortName string

const (
	// PortUnspecified is returned when no slot matches a lookup.
	PortUnspecified PortName = "Unspecified"

	// OrderUnspecified is returned when no slot matches a lookup.
	OrderUnspecified = -1
)

// PortSlot is one declared docking port of a structure type.
type PortSlot struct {
	Name       PortName
	OrderIndex int
}

// Definition describes one structure type.
// Definitions are immutable; callers must not modify PortSlots.
type Definition struct {
	SceneID     SceneID
	DisplayName string

	// Defaults copied onto newly added structures. Nil when the
	// definitions file carries no value.
	NominalAirVolume        *float64
	StandbyPowerRequirement *float64

	// PortSlots is sorted by OrderIndex.
	PortSlots []PortSlot
}

// PortNameFor returns the slot name declared at orderIndex, or PortUnspecified.
func (d *Definition) PortNameFor(orderIndex int) PortName {
	for _, s := range d.PortSlots {
		if s.OrderIndex == orderIndex {
			return s.Name
		}
	}
	return PortUnspecified
}

// OrderIndexFor returns the order index declared for name, or OrderUnspecified.
func (d *Definition) OrderIndexFor(name PortName) int {
	for _, s := range d.PortSlots {
		if s.Name == name {
			return s.OrderIndex
		}
	}
	return OrderUnspecified
}

// HasSlot reports whether name and orderIndex denote the same declared slot.
func (d *Definition) HasSlot(name PortName, orderIndex int) bool {
	return orderIndex != OrderUnspecified && d.OrderIndexFor(name) == orderIndex
}

// Catalog is a read-only lookup of structure definitions.
// The zero value is an empty catalog; use [New], [Read], [Load] or [Default].
type Catalog struct {
	defs   map[SceneID]*Definition
	byName map[string]SceneID
}

// New builds a catalog from definitions and checks its invariants.
// It returns an INVALID_CATALOG error if a scene id or display name is
// repeated, or if a definition repeats a port name or order index.
func New(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:   make(map[SceneID]*Definition, len(defs)),
		byName: make(map[string]SceneID, len(defs)),
	}
	for i := range defs {
		d := defs[i]
		if d.DisplayName == "" {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "definition %d has no display name", d.SceneID)
		}
		if _, dup := c.defs[d.SceneID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "duplicate scene id %d", d.SceneID)
		}
		if _, dup := c.byName[d.DisplayName]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "duplicate structure type %q", d.DisplayName)
		}
		if err := checkSlots(&d); err != nil {
			return nil, err
		}
		d.PortSlots = slices.Clone(d.PortSlots)
		slices.SortFunc(d.PortSlots, func(a, b PortSlot) int { return cmp.Compare(a.OrderIndex, b.OrderIndex) })
		c.defs[d.SceneID] = &d
		c.byName[d.DisplayName] = d.SceneID
	}
	return c, nil
}

func checkSlots(d *Definition) error {
	names := make(map[PortName]bool, len(d.PortSlots))
	orders := make(map[int]bool, len(d.PortSlots))
	for _, s := range d.PortSlots {
		if s.Name == "" || s.Name == PortUnspecified {
			return errors.New(errors.ErrCodeInvalidCatalog, "%s: port slot without a name", d.DisplayName)
		}
		if s.OrderIndex < 0 {
			return errors.New(errors.ErrCodeInvalidCatalog, "%s: port %s has negative order index", d.DisplayName, s.Name)
		}
		if names[s.Name] {
			return errors.New(errors.ErrCodeInvalidCatalog, "%s: duplicate port name %s", d.DisplayName, s.Name)
		}
		if orders[s.OrderIndex] {
			return errors.New(errors.ErrCodeInvalidCatalog, "%s: duplicate order index %d", d.DisplayName, s.OrderIndex)
		}
		names[s.Name] = true
		orders[s.OrderIndex] = true
	}
	return nil
}

// Lookup returns the definition for id and true, or nil and false.
func (c *Catalog) Lookup(id SceneID) (*Definition, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// Resolve maps a display name (the document's StructureType) to its scene id.
// Returns SceneUnspecified and false for unknown names.
func (c *Catalog) Resolve(displayName string) (SceneID, bool) {
	id, ok := c.byName[displayName]
	if !ok {
		return SceneUnspecified, false
	}
	return id, true
}

// PortNameFor returns the slot name at orderIndex for the type, or
// PortUnspecified when either the type or the slot is absent.
func (c *Catalog) PortNameFor(id SceneID, orderIndex int) PortName {
	d, ok := c.defs[id]
	if !ok {
		return PortUnspecified
	}
	return d.PortNameFor(orderIndex)
}

// OrderIndexFor returns the order index of name for the type, or
// OrderUnspecified when either the type or the slot is absent.
func (c *Catalog) OrderIndexFor(id SceneID, name PortName) int {
	d, ok := c.defs[id]
	if !ok {
		return OrderUnspecified
	}
	return d.OrderIndexFor(name)
}

// Types returns all definitions sorted by scene id.
func (c *Catalog) Types() []*Definition {
	out := make([]*Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *Definition) int { return cmp.Compare(a.SceneID, b.SceneID) })
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int { return len(c.defs) }
