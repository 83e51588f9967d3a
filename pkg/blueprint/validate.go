package blueprint

import "github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"

// Validate checks every graph invariant and returns nil if all hold.
//
// Checked, in order:
//
//  1. A non-empty blueprint has a structure with id 0 and it is the primary
//     root (MISSING_ROOT_STRUCTURE otherwise).
//  2. Each port agrees with its owner's catalog definition, and each docked
//     port is mutually docked with a port of another structure in this
//     blueprint (CORRUPT_DOCKING otherwise).
//  3. Each connected component is a tree holding exactly one hierarchy
//     root (CORRUPT_DOCKING otherwise).
//
// Validate never panics, so it is safe to run on freshly decoded data
// before any operation that relies on the invariants.
func (b *Blueprint) Validate() error {
	if len(b.structures) == 0 {
		return nil
	}
	zero := b.structures[0]
	if zero == nil {
		return errors.New(errors.ErrCodeMissingRootStructure, "no structure with id 0")
	}
	if b.primary != zero {
		return errors.New(errors.ErrCodeMissingRootStructure, "primary root is %s, want %s", b.primary, zero)
	}
	if !zero.root {
		return errors.New(errors.ErrCodeMissingRootStructure, "primary root %s is not flagged as a hierarchy root", zero)
	}

	for _, s := range b.Structures() {
		if err := b.validatePorts(s); err != nil {
			return err
		}
	}
	return b.validateForest()
}

func (b *Blueprint) validatePorts(s *Structure) error {
	for _, p := range s.ports {
		if p.owner != s {
			return errors.New(errors.ErrCodeCorruptDocking, "port %s is not owned by %s", p.name, s)
		}
		if !s.def.HasSlot(p.name, p.order) {
			return errors.New(errors.ErrCodeCorruptDocking, "port %s (order %d) is not declared by %s", p, p.order, s.def.DisplayName)
		}
		if p.docked == nil {
			continue
		}
		q := p.docked
		switch {
		case q.owner == nil:
			return errors.New(errors.ErrCodeCorruptDocking, "port %s is docked to a port without a structure", p)
		case q.owner == s:
			return errors.New(errors.ErrCodeCorruptDocking, "port %s is docked to its own structure", p)
		case b.structures[q.owner.id] != q.owner:
			return errors.New(errors.ErrCodeCorruptDocking, "port %s is docked to %s outside this blueprint", p, q)
		case q.docked != p:
			return errors.New(errors.ErrCodeCorruptDocking, "port %s is docked to %s but not the other way round", p, q)
		}
	}
	return nil
}

func (b *Blueprint) validateForest() error {
	visited := make(map[*Structure]bool, len(b.structures))
	for _, s := range b.Structures() {
		if visited[s] {
			continue
		}
		comp := append([]*Structure{s}, s.ConnectedStructures(visited)...)

		ends := 0
		for _, c := range comp {
			ends += c.DockedPortCount()
		}
		if edges := ends / 2; edges != len(comp)-1 {
			return errors.New(errors.ErrCodeCorruptDocking,
				"component of %s has %d structures and %d docked pairs: docking cycle", s, len(comp), edges)
		}

		switch roots := rootsIn(comp); len(roots) {
		case 1:
		case 0:
			return errors.New(errors.ErrCodeCorruptDocking, "component of %s has no hierarchy root", s)
		default:
			return errors.New(errors.ErrCodeCorruptDocking, "component of %s has %d hierarchy roots", s, len(roots))
		}
	}
	return nil
}
