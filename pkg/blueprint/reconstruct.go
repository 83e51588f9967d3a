package blueprint

import (
	"fmt"
	"maps"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

// Repair records one change made while reconstructing legacy or
// inconsistent port data.
type Repair struct {
	StructureID int
	Port        catalog.PortName
	Reason      string
}

// String returns "structure <id> port <name>: <reason>".
func (r Repair) String() string {
	if r.Port == "" {
		return fmt.Sprintf("structure %d: %s", r.StructureID, r.Reason)
	}
	return fmt.Sprintf("structure %d port %s: %s", r.StructureID, r.Port, r.Reason)
}

// Reconstruct rebuilds a blueprint from its flat document form.
//
// Reconstruction runs in two passes. The first creates every structure with
// the id from its record and ports instantiated from the catalog, so stale
// port lists are discarded. The second resolves each serialized port onto
// the matching catalog port and wires its docking reference by structure id
// and port name. Finally structure 0 becomes the primary root and every
// component not docked to it elects its lowest id as secondary root.
//
// Port data is repaired where the intent is clear, and every repair is
// returned:
//   - a port carrying only a name or only an order index gets the other half
//     from the catalog
//   - when name and order index disagree, the name wins
//   - ports unknown to the catalog, references to missing structures or
//     ports, and self-docking references are dropped
//   - a docking reference declared by one side only is completed
//
// Unresolvable data is an error: an unknown structure type
// (UNKNOWN_STRUCTURE_TYPE), a repeated id (DUPLICATE_STRUCTURE_ID), no
// structure 0 (MISSING_ROOT_STRUCTURE), and conflicting or cyclic docking
// (CORRUPT_DOCKING). An empty document yields an empty blueprint.
//
// The returned blueprint is dirty exactly when repairs were made.
func Reconstruct(doc *Document, cat *catalog.Catalog) (*Blueprint, []Repair, error) {
	if doc == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "nil document")
	}
	if cat == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "nil catalog")
	}

	b := New(cat)
	b.version = doc.Version
	b.name = cloneString(doc.Name)
	b.linkURI = cloneString(doc.LinkURI)

	if err := b.materialize(doc.Structures); err != nil {
		return nil, nil, err
	}
	r := &rewirer{b: b, declared: make(map[*Port]*Port)}
	if err := r.wire(doc.Structures); err != nil {
		return nil, nil, err
	}
	r.completeOneSided()
	if err := b.electRoots(); err != nil {
		return nil, nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, nil, err
	}

	b.dirty = len(r.repairs) > 0
	return b, r.repairs, nil
}

// materialize is the first pass: one structure per record.
func (b *Blueprint) materialize(records []StructureRecord) error {
	for i, rec := range records {
		if rec.StructureID == nil {
			return errors.New(errors.ErrCodeInvalidFormat, "structure record %d has no StructureID", i)
		}
		id := *rec.StructureID
		scene, ok := b.catalog.Resolve(rec.StructureType)
		if !ok {
			return errors.New(errors.ErrCodeUnknownStructureType,
				"structure %d has unknown type %q", id, rec.StructureType)
		}
		s, st := b.insertStructure(scene, id)
		if st != Success {
			return errors.New(errors.GetCode(st.Err()), "structure %d: %s", id, st)
		}
		s.NominalAirVolume = cloneFloat(rec.NominalAirVolume)
		s.StandbyPowerRequirement = cloneFloat(rec.StandbyPowerRequirement)
		if rec.AuxData != nil {
			s.AuxData = maps.Clone(Metadata(rec.AuxData))
		}
	}
	return nil
}

type rewirer struct {
	b        *Blueprint
	declared map[*Port]*Port
	repairs  []Repair
}

func (r *rewirer) repair(s *Structure, port catalog.PortName, format string, args ...any) {
	r.repairs = append(r.repairs, Repair{StructureID: s.id, Port: port, Reason: fmt.Sprintf(format, args...)})
}

// wire is the second pass: resolve ports and docking references.
func (r *rewirer) wire(records []StructureRecord) error {
	for _, rec := range records {
		s := r.b.structures[*rec.StructureID]
		seen := make(map[*Port]bool, len(rec.DockingPorts))
		for _, pr := range rec.DockingPorts {
			p := r.resolve(s, pr)
			if p == nil {
				continue
			}
			if seen[p] {
				r.repair(s, p.name, "dropped duplicate port record")
				continue
			}
			seen[p] = true
			p.locked = pr.Locked
			if err := r.link(s, p, pr); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve maps a serialized port onto the catalog port it describes.
func (r *rewirer) resolve(s *Structure, pr PortRecord) *Port {
	name := catalog.PortName(pr.PortName)

	if name != "" {
		if p := s.Port(name); p != nil {
			switch {
			case pr.OrderID == nil:
				r.repair(s, p.name, "derived order index %d from name", p.order)
			case *pr.OrderID != p.order:
				r.repair(s, p.name, "order index %d disagrees with catalog, using %d", *pr.OrderID, p.order)
			}
			return p
		}
	}

	if pr.OrderID != nil {
		if p := s.PortByOrder(*pr.OrderID); p != nil {
			if name == "" {
				r.repair(s, p.name, "derived name from order index %d", p.order)
			} else {
				r.repair(s, p.name, "unknown port name %q, resolved by order index %d", name, p.order)
			}
			return p
		}
	}

	switch {
	case name != "" && pr.OrderID != nil:
		r.repair(s, name, "dropped port unknown to catalog (order index %d)", *pr.OrderID)
	case name != "":
		r.repair(s, name, "dropped port unknown to catalog")
	case pr.OrderID != nil:
		r.repair(s, "", "dropped port with unknown order index %d", *pr.OrderID)
	default:
		r.repair(s, "", "dropped port with neither name nor order index")
	}
	return nil
}

// link wires p to the partner its record names.
func (r *rewirer) link(s *Structure, p *Port, pr PortRecord) error {
	if pr.DockedStructureID == nil {
		if pr.DockedPortName != nil {
			r.repair(s, p.name, "dropped docked port name %q without docked structure", *pr.DockedPortName)
		}
		return nil
	}
	target := r.b.structures[*pr.DockedStructureID]
	switch {
	case target == nil:
		r.repair(s, p.name, "dropped reference to missing structure %d", *pr.DockedStructureID)
		return nil
	case target == s:
		r.repair(s, p.name, "dropped reference to its own structure")
		return nil
	case pr.DockedPortName == nil:
		r.repair(s, p.name, "dropped reference to %s without port name", target)
		return nil
	}
	q := target.Port(catalog.PortName(*pr.DockedPortName))
	if q == nil {
		r.repair(s, p.name, "dropped reference to missing port %s.%s", target, *pr.DockedPortName)
		return nil
	}

	r.declared[p] = q
	switch {
	case p.docked == q && q.docked == p:
	case p.docked == nil && q.docked == nil:
		p.docked = q
		q.docked = p
	case p.docked != nil:
		return errors.New(errors.ErrCodeCorruptDocking, "%s is docked to both %s and %s", p, p.docked, q)
	default:
		return errors.New(errors.ErrCodeCorruptDocking, "%s is docked to both %s and %s", q, q.docked, p)
	}
	return nil
}

// completeOneSided reports links that only one of the two records declared.
func (r *rewirer) completeOneSided() {
	for _, s := range r.b.Structures() {
		for _, p := range s.ports {
			q, ok := r.declared[p]
			if !ok || r.declared[q] == p {
				continue
			}
			r.repair(q.owner, q.name, "completed one-sided docking with %s", p)
		}
	}
}

// electRoots makes structure 0 the primary root and gives every other
// component its lowest id as root.
func (b *Blueprint) electRoots() error {
	b.primary = nil
	for _, s := range b.structures {
		s.root = false
	}
	if len(b.structures) == 0 {
		return nil
	}

	zero := b.structures[0]
	if zero == nil {
		return errors.New(errors.ErrCodeMissingRootStructure, "no structure with id 0")
	}
	b.primary = zero
	zero.root = true

	visited := make(map[*Structure]bool, len(b.structures))
	zero.ConnectedStructures(visited)
	for _, s := range b.Structures() {
		if visited[s] {
			continue
		}
		s.root = true
		s.ConnectedStructures(visited)
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
