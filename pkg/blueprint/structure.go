package blueprint

import (
	"maps"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
)

// Metadata holds the optional AuxData flags of a structure.
type Metadata map[string]any

// Structure is a node of the blueprint graph: one module or vessel.
//
// Structures are created by [Blueprint.AddStructure] or by [Reconstruct];
// the zero value is not usable.
type Structure struct {
	id      int
	sceneID catalog.SceneID
	def     *catalog.Definition
	ports   []*Port
	root    bool
	bp      *Blueprint

	// NominalAirVolume and StandbyPowerRequirement are informational
	// values carried through documents unchanged.
	NominalAirVolume        *float64
	StandbyPowerRequirement *float64

	// AuxData is an optional bag of flags. Nil when absent.
	AuxData Metadata
}

func newStructure(bp *Blueprint, id int, def *catalog.Definition) *Structure {
	s := &Structure{
		id:                      id,
		sceneID:                 def.SceneID,
		def:                     def,
		root:                    true,
		bp:                      bp,
		NominalAirVolume:        cloneFloat(def.NominalAirVolume),
		StandbyPowerRequirement: cloneFloat(def.StandbyPowerRequirement),
	}
	s.ports = make([]*Port, len(def.PortSlots))
	for i, slot := range def.PortSlots {
		s.ports[i] = &Port{owner: s, name: slot.Name, order: slot.OrderIndex}
	}
	return s
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// ID returns the structure id, unique within its blueprint.
func (s *Structure) ID() int { return s.id }

// SceneID returns the structure type.
func (s *Structure) SceneID() catalog.SceneID { return s.sceneID }

// Type returns the catalog display name of the structure type.
func (s *Structure) Type() string { return s.def.DisplayName }

// Definition returns the catalog definition the ports were built from.
func (s *Structure) Definition() *catalog.Definition { return s.def }

// Blueprint returns the owning blueprint, or nil after removal.
func (s *Structure) Blueprint() *Blueprint { return s.bp }

// Ports returns the ports in ascending order index.
// The returned slice must not be modified.
func (s *Structure) Ports() []*Port { return s.ports }

// Port returns the port with the given name, or nil.
func (s *Structure) Port(name catalog.PortName) *Port {
	for _, p := range s.ports {
		if p.name == name {
			return p
		}
	}
	return nil
}

// PortByOrder returns the port with the given order index, or nil.
func (s *Structure) PortByOrder(order int) *Port {
	for _, p := range s.ports {
		if p.order == order {
			return p
		}
	}
	return nil
}

// IsHierarchyRoot reports whether the structure is the root of its component.
func (s *Structure) IsHierarchyRoot() bool { return s.root }

// IsPrimaryRoot reports whether the structure is the blueprint's primary root.
func (s *Structure) IsPrimaryRoot() bool { return s.bp != nil && s.bp.primary == s }

// IsDocked reports whether any port of the structure is docked.
func (s *Structure) IsDocked() bool {
	for _, p := range s.ports {
		if p.docked != nil {
			return true
		}
	}
	return false
}

// DockedPortCount returns the number of docked ports.
func (s *Structure) DockedPortCount() int {
	n := 0
	for _, p := range s.ports {
		if p.docked != nil {
			n++
		}
	}
	return n
}

// GetDockingPort returns the port of s that is docked to other, or nil.
func (s *Structure) GetDockingPort(other *Structure) *Port {
	if other == nil {
		return nil
	}
	for _, p := range s.ports {
		if p.docked != nil && p.docked.owner == other {
			return p
		}
	}
	return nil
}

// SetAuxData replaces the AuxData flags and marks the blueprint dirty.
func (s *Structure) SetAuxData(m Metadata) {
	s.AuxData = maps.Clone(m)
	if s.bp != nil {
		s.bp.dirty = true
	}
}

// String returns "<type>#<id>", e.g. "CIR#3".
func (s *Structure) String() string {
	if s == nil {
		return "<nil structure>"
	}
	return s.def.DisplayName + "#" + itoa(s.id)
}

// neighbours returns the directly docked structures in port order.
func (s *Structure) neighbours() []*Structure {
	var out []*Structure
	for _, p := range s.ports {
		if p.docked == nil || p.docked.owner == nil {
			continue
		}
		other := p.docked.owner
		dup := false
		for _, o := range out {
			if o == other {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, other)
		}
	}
	return out
}
