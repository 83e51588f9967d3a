package blueprint

import "maps"

// Document returns the serialized form of the blueprint with structures in
// Flatten order and ports in ascending order index.
func (b *Blueprint) Document() *Document {
	doc := &Document{
		ObjectType: ObjectType,
		Version:    b.version,
		Name:       cloneString(b.name),
		LinkURI:    cloneString(b.linkURI),
		Structures: make([]StructureRecord, 0, len(b.structures)),
	}
	for _, s := range b.Flatten() {
		doc.Structures = append(doc.Structures, s.record())
	}
	return doc
}

func (s *Structure) record() StructureRecord {
	id := s.id
	rec := StructureRecord{
		StructureID:             &id,
		StructureType:           s.def.DisplayName,
		NominalAirVolume:        cloneFloat(s.NominalAirVolume),
		StandbyPowerRequirement: cloneFloat(s.StandbyPowerRequirement),
		DockingPorts:            make([]PortRecord, len(s.ports)),
	}
	if s.AuxData != nil {
		rec.AuxData = maps.Clone(map[string]any(s.AuxData))
	}
	for i, p := range s.ports {
		order := p.order
		pr := PortRecord{
			PortName: string(p.name),
			OrderID:  &order,
			Locked:   p.locked,
		}
		if q := p.docked; q != nil {
			sid := q.owner.id
			name := string(q.name)
			pr.DockedStructureID = &sid
			pr.DockedPortName = &name
		}
		rec.DockingPorts[i] = pr
	}
	return rec
}
