package blueprint

// ConnectedStructures returns structures reachable from s over docked ports.
//
// With a nil visited set only the directly docked neighbours are returned,
// in port order. With a non-nil set the traversal is transitive: s is added
// to visited, and every structure reached that was not already in visited is
// added to it and returned in breadth-first order. The set guarantees
// termination on any graph, including corrupted ones with cycles.
func (s *Structure) ConnectedStructures(visited map[*Structure]bool) []*Structure {
	if s == nil {
		return nil
	}
	if visited == nil {
		return s.neighbours()
	}

	var out []*Structure
	visited[s] = true
	queue := []*Structure{s}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.neighbours() {
			if visited[n] {
				continue
			}
			visited[n] = true
			out = append(out, n)
			queue = append(queue, n)
		}
	}
	return out
}

// Component returns s followed by every structure transitively docked to it.
func (s *Structure) Component() []*Structure {
	return append([]*Structure{s}, s.ConnectedStructures(map[*Structure]bool{})...)
}

// IsConnectedToPrimaryStructure reports whether s is the primary root or is
// transitively docked to it.
func (s *Structure) IsConnectedToPrimaryStructure() bool {
	if s == nil || s.bp == nil || s.bp.primary == nil {
		return false
	}
	primary := s.bp.primary
	if s == primary {
		return true
	}
	visited := map[*Structure]bool{}
	s.ConnectedStructures(visited)
	return visited[primary]
}

// GetStructureRoot returns the hierarchy root of the component holding s.
//
// That is s itself when it is a root, the primary root when s is connected
// to it, and otherwise the single secondary root in its component. A
// structure that was removed from its blueprint has no root and yields nil.
// A component without a root, or with more than one, violates the forest
// invariant and makes GetStructureRoot panic.
func (s *Structure) GetStructureRoot() *Structure {
	if s == nil || s.bp == nil {
		return nil
	}
	if s.root {
		return s
	}
	if s.IsConnectedToPrimaryStructure() {
		return s.bp.primary
	}

	var found *Structure
	for _, c := range s.Component() {
		if !c.root {
			continue
		}
		if found != nil {
			violated("%s is reachable from both %s and %s", s, found, c)
		}
		found = c
	}
	if found == nil {
		violated("%s is not reachable from any hierarchy root", s)
	}
	return found
}
