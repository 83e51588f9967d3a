package blueprint

import "github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"

// Port is one docking port of a structure.
//
// A port is owned by exactly one structure. Its docked partner is a weak
// reference into another structure's port and is always mutual; it is only
// ever changed by [Blueprint.DockPorts] and [Blueprint.UndockPort].
type Port struct {
	owner  *Structure
	name   catalog.PortName
	order  int
	locked bool
	docked *Port
}

// Owner returns the structure this port belongs to.
func (p *Port) Owner() *Structure { return p.owner }

// Name returns the port name, e.g. "StandardDockingPortA".
func (p *Port) Name() catalog.PortName { return p.name }

// OrderIndex returns the canonical order index of the port.
func (p *Port) OrderIndex() int { return p.order }

// Locked reports whether the port is locked in the game.
func (p *Port) Locked() bool { return p.locked }

// SetLocked updates the lock flag and marks the owning blueprint dirty.
func (p *Port) SetLocked(locked bool) {
	if p.locked == locked {
		return
	}
	p.locked = locked
	if p.owner != nil && p.owner.bp != nil {
		p.owner.bp.dirty = true
	}
}

// IsDocked reports whether the port is docked to another port.
func (p *Port) IsDocked() bool { return p.docked != nil }

// DockedPort returns the partner port, or nil when undocked.
func (p *Port) DockedPort() *Port { return p.docked }

// DockedStructure returns the structure owning the partner port, or nil.
func (p *Port) DockedStructure() *Structure {
	if p.docked == nil {
		return nil
	}
	return p.docked.owner
}

// DockedStructureID returns the id of the docked structure and true, or
// zero and false when the port is undocked.
func (p *Port) DockedStructureID() (int, bool) {
	s := p.DockedStructure()
	if s == nil {
		return 0, false
	}
	return s.id, true
}

// DockedPortName returns the partner port name and true, or "" and false.
func (p *Port) DockedPortName() (catalog.PortName, bool) {
	if p.docked == nil {
		return "", false
	}
	return p.docked.name, true
}

// String returns "<structure>.<port>", e.g. "CIR#3.StandardDockingPortA".
func (p *Port) String() string {
	if p == nil {
		return "<nil port>"
	}
	if p.owner == nil {
		return "?." + string(p.name)
	}
	return p.owner.String() + "." + string(p.name)
}
