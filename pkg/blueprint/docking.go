package blueprint

// DockPorts docks portA to portB.
//
// Validation runs in this order and stops at the first failure:
//
//  1. both ports non-nil (InvalidPortA, InvalidPortB)
//  2. both ports owned by a structure of this blueprint
//     (InvalidStructurePortA, InvalidStructurePortB)
//  3. owners differ (PortsOnSameStructure)
//  4. neither port already docked (AlreadyDockedPortA, AlreadyDockedPortB)
//  5. both ports declared by their owner's catalog definition
//     (IncompatiblePortTypes)
//  6. owners in different components (StructuresAlreadyConnected)
//
// On success the ports reference each other and the two components merge
// under a single root: the component holding the primary root keeps it,
// otherwise portA's side keeps its root and portB's side becomes subordinate.
func (b *Blueprint) DockPorts(portA, portB *Port) Status {
	if portA == nil {
		return InvalidPortA
	}
	if portB == nil {
		return InvalidPortB
	}
	if portA.owner == nil || portA.owner.bp != b {
		return InvalidStructurePortA
	}
	if portB.owner == nil || portB.owner.bp != b {
		return InvalidStructurePortB
	}
	if portA.owner == portB.owner {
		return PortsOnSameStructure
	}
	if portA.docked != nil {
		return AlreadyDockedPortA
	}
	if portB.docked != nil {
		return AlreadyDockedPortB
	}
	if !portA.owner.def.HasSlot(portA.name, portA.order) || !portB.owner.def.HasSlot(portB.name, portB.order) {
		return IncompatiblePortTypes
	}

	rootA := portA.owner.GetStructureRoot()
	rootB := portB.owner.GetStructureRoot()
	if rootA == rootB {
		return StructuresAlreadyConnected
	}

	portA.docked = portB
	portB.docked = portA
	if rootB == b.primary {
		rootA.root = false
	} else {
		rootB.root = false
	}
	b.dirty = true
	return Success
}

// UndockPort undocks portA from whatever port it is docked to.
//
// Returns InvalidPortA or InvalidStructurePortA for a nil or orphaned port,
// PortANotDocked if it is not docked, and PortAandBNotDocked if its partner
// does not point back to it. See UndockPorts for root re-election.
func (b *Blueprint) UndockPort(portA *Port) Status {
	if portA == nil {
		return InvalidPortA
	}
	if portA.owner == nil || portA.owner.bp != b {
		return InvalidStructurePortA
	}
	if portA.docked == nil {
		return PortANotDocked
	}
	if portA.docked.docked != portA {
		return PortAandBNotDocked
	}
	return b.UndockPorts(portA, portA.docked)
}

// UndockPorts undocks an explicit pair of ports.
//
// Returns InvalidPortA/B and InvalidStructurePortA/B for nil or orphaned
// ports, PortANotDocked/PortBNotDocked when either port is free, and
// PortAandBNotDocked when the two are not docked to each other.
//
// After the cut exactly one side still holds a hierarchy root (the primary
// root or the former secondary root); the structure on the other side of the
// cut becomes a new secondary root. Both or neither side holding a root means
// the forest was already broken, and UndockPorts panics.
func (b *Blueprint) UndockPorts(portA, portB *Port) Status {
	if portA == nil {
		return InvalidPortA
	}
	if portB == nil {
		return InvalidPortB
	}
	if portA.owner == nil || portA.owner.bp != b {
		return InvalidStructurePortA
	}
	if portB.owner == nil || portB.owner.bp != b {
		return InvalidStructurePortB
	}
	if portA.docked == nil {
		return PortANotDocked
	}
	if portB.docked == nil {
		return PortBNotDocked
	}
	if portA.docked != portB || portB.docked != portA {
		return PortAandBNotDocked
	}

	portA.docked = nil
	portB.docked = nil
	b.reelect(portA.owner, portB.owner)
	b.dirty = true
	return Success
}

// reelect gives the side of a cut that lost its root a new one.
func (b *Blueprint) reelect(sa, sb *Structure) {
	rootsA := rootsIn(sa.Component())
	rootsB := rootsIn(sb.Component())

	switch {
	case len(rootsA) == 1 && len(rootsB) == 0:
		sb.root = true
	case len(rootsA) == 0 && len(rootsB) == 1:
		sa.root = true
	case sa.IsConnectedToPrimaryStructure() && sb.IsConnectedToPrimaryStructure():
		violated("%s and %s both reach the primary root after undocking", sa, sb)
	default:
		violated("undocking %s from %s left %d and %d roots on each side", sa, sb, len(rootsA), len(rootsB))
	}
}

func rootsIn(component []*Structure) []*Structure {
	var roots []*Structure
	for _, s := range component {
		if s.root {
			roots = append(roots, s)
		}
	}
	return roots
}
