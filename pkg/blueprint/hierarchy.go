package blueprint

// Node is one structure in the linearized hierarchy.
type Node struct {
	Structure *Structure
	// Via is the port of Structure docked to the parent node; nil for roots.
	Via   *Port
	Ports []PortNode
}

// PortNode is one port of a Node in ascending order index.
//
// Child is the structure reached through the port, nil when the port is
// undocked or leads back to the parent.
type PortNode struct {
	Port  *Port
	Child *Node
}

// Children returns the child nodes in port order.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, pn := range n.Ports {
		if pn.Child != nil {
			out = append(out, pn.Child)
		}
	}
	return out
}

// Walk visits n and its descendants in preorder. Returning false from fn
// skips the children of that node.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, pn := range n.Ports {
		if pn.Child != nil {
			pn.Child.walk(fn, depth+1)
		}
	}
}

// Tree linearizes the component rooted at root.
//
// Ports are visited in ascending order index. A docked port descends into
// the partner structure through the partner's matching port, found with
// GetDockingPort. Visiting a structure twice, a docked port without an
// owner, or a partner whose matching port is not the docked one means the
// forest invariant is broken, and Tree panics with *InvariantError.
func (b *Blueprint) Tree(root *Structure) *Node {
	if root == nil {
		return nil
	}
	return b.linearize(root, nil, make(map[*Structure]bool))
}

// Forest linearizes every component: the primary root's tree first, then
// the secondary roots' trees by ascending id. Every structure appears in
// exactly one tree; Forest panics if one is unreachable from all roots.
func (b *Blueprint) Forest() []*Node {
	visited := make(map[*Structure]bool, len(b.structures))
	var out []*Node
	for _, r := range b.Roots() {
		out = append(out, b.linearize(r, nil, visited))
	}
	if len(visited) != len(b.structures) {
		for _, s := range b.Structures() {
			if !visited[s] {
				violated("%s is not reachable from any hierarchy root", s)
			}
		}
	}
	return out
}

// Flatten returns every structure in forest preorder. This is the order
// structures are serialized in, so the display tree and the document never
// disagree.
func (b *Blueprint) Flatten() []*Structure {
	out := make([]*Structure, 0, len(b.structures))
	for _, root := range b.Forest() {
		root.Walk(func(n *Node, _ int) bool {
			out = append(out, n.Structure)
			return true
		})
	}
	return out
}

func (b *Blueprint) linearize(s *Structure, via *Port, visited map[*Structure]bool) *Node {
	if visited[s] {
		violated("%s reached twice while linearizing: docking cycle", s)
	}
	visited[s] = true

	n := &Node{Structure: s, Via: via, Ports: make([]PortNode, len(s.ports))}
	for i, p := range s.ports {
		n.Ports[i].Port = p
		if p.docked == nil || p == via {
			continue
		}
		other := p.docked.owner
		if other == nil {
			violated("%s is docked to a port without a structure", p)
		}
		back := other.GetDockingPort(s)
		if back != p.docked {
			violated("%s is docked to %s but %s links back through %s", p, p.docked, other, back)
		}
		n.Ports[i].Child = b.linearize(other, back, visited)
	}
	return n
}
