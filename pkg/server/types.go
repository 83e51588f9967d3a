package server

import (
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
)

// CreateResponse is returned by POST /blueprints.
type CreateResponse struct {
	ID         string   `json:"id"`
	Structures int      `json:"structures"`
	Repairs    []string `json:"repairs,omitempty"`
}

// ListResponse is returned by GET /blueprints.
type ListResponse struct {
	IDs []string `json:"ids"`
}

// PortRef names one port of one structure.
type PortRef struct {
	Structure int    `json:"structure"`
	Port      string `json:"port"`
}

// DockRequest is the body of POST /blueprints/{id}/dock.
type DockRequest struct {
	A PortRef `json:"a"`
	B PortRef `json:"b"`
}

// AddStructureRequest is the body of POST /blueprints/{id}/structures.
// Type is a catalog display name; ID is assigned when omitted.
type AddStructureRequest struct {
	Type string `json:"type"`
	ID   *int   `json:"id,omitempty"`
}

// StructureResponse describes one structure.
type StructureResponse struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	Root   bool   `json:"root"`
	Status string `json:"status"`
}

// StatusResponse carries the outcome of a mutation.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// TreeNode is one structure in the GET /blueprints/{id}/tree response.
type TreeNode struct {
	Structure int        `json:"structure"`
	Type      string     `json:"type"`
	Primary   bool       `json:"primary,omitempty"`
	Via       string     `json:"via,omitempty"`
	Ports     []TreePort `json:"ports"`
}

// TreePort is one port of a TreeNode in order index sequence.
type TreePort struct {
	Name     string    `json:"name"`
	Order    int       `json:"order"`
	Locked   bool      `json:"locked,omitempty"`
	DockedTo *PortRef  `json:"docked_to,omitempty"`
	Child    *TreeNode `json:"child,omitempty"`
}

func treeNode(n *blueprint.Node) *TreeNode {
	out := &TreeNode{
		Structure: n.Structure.ID(),
		Type:      n.Structure.Type(),
		Primary:   n.Structure.IsPrimaryRoot(),
		Ports:     make([]TreePort, 0, len(n.Ports)),
	}
	if n.Via != nil {
		out.Via = string(n.Via.Name())
	}
	for _, pn := range n.Ports {
		tp := TreePort{
			Name:   string(pn.Port.Name()),
			Order:  pn.Port.OrderIndex(),
			Locked: pn.Port.Locked(),
		}
		if id, ok := pn.Port.DockedStructureID(); ok {
			name, _ := pn.Port.DockedPortName()
			tp.DockedTo = &PortRef{Structure: id, Port: string(name)}
		}
		if pn.Child != nil {
			tp.Child = treeNode(pn.Child)
		}
		out.Ports = append(out.Ports, tp)
	}
	return out
}
