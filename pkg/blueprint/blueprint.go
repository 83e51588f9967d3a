package blueprint

import (
	"cmp"
	"slices"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
)

// ObjectType is the "__ObjectType" value of every blueprint document.
const ObjectType = "StationBlueprint"

// CurrentVersion is the document version written for new blueprints.
const CurrentVersion = 0.04

// Blueprint is the docking graph of one station blueprint.
//
// The zero value is not usable - use New or Reconstruct.
// Blueprint is not safe for concurrent use without external synchronization.
type Blueprint struct {
	catalog    *catalog.Catalog
	structures map[int]*Structure
	primary    *Structure
	dirty      bool

	version float64
	name    *string
	linkURI *string
}

// New creates an empty blueprint whose structures are typed by cat.
func New(cat *catalog.Catalog) *Blueprint {
	return &Blueprint{
		catalog:    cat,
		structures: make(map[int]*Structure),
		version:    CurrentVersion,
	}
}

// Catalog returns the catalog used to type structures.
func (b *Blueprint) Catalog() *catalog.Catalog { return b.catalog }

// Version returns the document version.
func (b *Blueprint) Version() float64 { return b.version }

// Name returns the blueprint name, or nil when unset.
func (b *Blueprint) Name() *string { return b.name }

// SetName sets the blueprint name. A nil name clears it.
func (b *Blueprint) SetName(name *string) {
	b.name = name
	b.dirty = true
}

// LinkURI returns the link URI, or nil when unset.
func (b *Blueprint) LinkURI() *string { return b.linkURI }

// SetLinkURI sets the link URI. A nil value clears it.
func (b *Blueprint) SetLinkURI(uri *string) {
	b.linkURI = uri
	b.dirty = true
}

// Dirty reports whether the blueprint changed since it was loaded or last
// marked clean.
func (b *Blueprint) Dirty() bool { return b.dirty }

// MarkClean clears the dirty flag, typically after a save.
func (b *Blueprint) MarkClean() { b.dirty = false }

// PrimaryRoot returns the primary root structure, or nil for an empty blueprint.
func (b *Blueprint) PrimaryRoot() *Structure { return b.primary }

// Len returns the number of structures.
func (b *Blueprint) Len() int { return len(b.structures) }

// GetStructure returns the structure with the given id, or nil.
func (b *Blueprint) GetStructure(id int) *Structure { return b.structures[id] }

// Port returns the named port of structure id, or nil when either is absent.
func (b *Blueprint) Port(id int, name catalog.PortName) *Port {
	s := b.structures[id]
	if s == nil {
		return nil
	}
	return s.Port(name)
}

// Structures returns all structures sorted by id.
func (b *Blueprint) Structures() []*Structure {
	out := make([]*Structure, 0, len(b.structures))
	for _, s := range b.structures {
		out = append(out, s)
	}
	sortByID(out)
	return out
}

// SecondaryRoots returns the hierarchy roots other than the primary root,
// sorted by id.
func (b *Blueprint) SecondaryRoots() []*Structure {
	var out []*Structure
	for _, s := range b.structures {
		if s.root && s != b.primary {
			out = append(out, s)
		}
	}
	sortByID(out)
	return out
}

// Roots returns the primary root followed by the secondary roots.
func (b *Blueprint) Roots() []*Structure {
	var out []*Structure
	if b.primary != nil {
		out = append(out, b.primary)
	}
	return append(out, b.SecondaryRoots()...)
}

// Stats summarizes the blueprint.
type Stats struct {
	Structures     int
	DockedPairs    int
	SecondaryRoots int
}

// Stats returns structure, docked pair and secondary root counts.
func (b *Blueprint) Stats() Stats {
	st := Stats{Structures: len(b.structures)}
	for _, s := range b.structures {
		st.DockedPairs += s.DockedPortCount()
		if s.root && s != b.primary {
			st.SecondaryRoots++
		}
	}
	st.DockedPairs /= 2
	return st
}

// AddStructure adds a structure of the given type with the next free id.
//
// The id is the current structure count, advanced past ids that are still
// taken. Ports are instantiated from the catalog, all undocked. The new
// structure starts as its own hierarchy root; structure 0 is also the
// primary root.
//
// Returns UnknownStructureType if the catalog has no definition for scene.
func (b *Blueprint) AddStructure(scene catalog.SceneID) (*Structure, Status) {
	id := len(b.structures)
	for b.structures[id] != nil {
		id++
	}
	return b.addStructure(scene, id)
}

// AddStructureWithID adds a structure with an explicit id.
// Returns DuplicateStructureID if the id is taken or negative,
// MissingRootStructure if the blueprint is empty and id is not 0, and
// UnknownStructureType if the catalog has no definition for scene.
func (b *Blueprint) AddStructureWithID(scene catalog.SceneID, id int) (*Structure, Status) {
	if len(b.structures) == 0 && id > 0 {
		return nil, MissingRootStructure
	}
	return b.insertStructure(scene, id)
}

// insertStructure places a structure at id without the empty-blueprint
// rule; Reconstruct materializes records in document order and elects
// roots afterwards.
func (b *Blueprint) insertStructure(scene catalog.SceneID, id int) (*Structure, Status) {
	if id < 0 || b.structures[id] != nil {
		return nil, DuplicateStructureID
	}
	return b.addStructure(scene, id)
}

func (b *Blueprint) addStructure(scene catalog.SceneID, id int) (*Structure, Status) {
	def, ok := b.catalog.Lookup(scene)
	if !ok {
		return nil, UnknownStructureType
	}
	s := newStructure(b, id, def)
	b.structures[id] = s
	if id == 0 {
		b.primary = s
	}
	b.dirty = true
	return s, Success
}

// RemoveStructure detaches s from the blueprint.
//
// Returns StructureNotFound if s is nil or belongs to another blueprint,
// StructureStillDocked if any of its ports is docked, and
// WillCauseOrphanedStructure if s is the primary root while other
// structures remain. Removal never cascades.
func (b *Blueprint) RemoveStructure(s *Structure) Status {
	if s == nil || s.bp != b || b.structures[s.id] != s {
		return StructureNotFound
	}
	if s.IsDocked() {
		return StructureStillDocked
	}
	if s == b.primary && len(b.structures) > 1 {
		return WillCauseOrphanedStructure
	}

	delete(b.structures, s.id)
	if s == b.primary {
		b.primary = nil
	}
	s.bp = nil
	s.root = false
	b.dirty = true
	return Success
}

// RemoveStructureByID removes the structure with the given id.
func (b *Blueprint) RemoveStructureByID(id int) Status {
	return b.RemoveStructure(b.structures[id])
}

func sortByID(ss []*Structure) {
	slices.SortFunc(ss, func(a, b *Structure) int { return cmp.Compare(a.id, b.id) })
}
