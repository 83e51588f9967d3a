package blueprint_test

import (
	"fmt"
	"strings"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
)

func Example() {
	cat := catalog.Default()
	hub, _ := cat.Resolve("CIR")
	dock, _ := cat.Resolve("AM")

	bp := blueprint.New(cat)
	core, _ := bp.AddStructure(hub)
	lock, _ := bp.AddStructure(dock)

	st := bp.DockPorts(core.Port("StandardDockingPortB"), lock.Port("StandardDockingPortA"))
	fmt.Println(st, lock.IsHierarchyRoot())

	for _, root := range bp.Forest() {
		root.Walk(func(n *blueprint.Node, depth int) bool {
			fmt.Printf("%s%s\n", strings.Repeat("  ", depth), n.Structure)
			return true
		})
	}
	// Output:
	// Success false
	// CIR#0
	//   AM#1
}

func ExampleBlueprint_UndockPort() {
	cat := catalog.Default()
	cir, _ := cat.Resolve("CIR")

	bp := blueprint.New(cat)
	a, _ := bp.AddStructure(cir)
	b, _ := bp.AddStructure(cir)
	bp.DockPorts(a.Port("StandardDockingPortA"), b.Port("StandardDockingPortC"))

	fmt.Println(bp.UndockPort(a.Port("StandardDockingPortA")))
	fmt.Println(b.IsHierarchyRoot(), len(bp.SecondaryRoots()))
	fmt.Println(bp.UndockPort(a.Port("StandardDockingPortA")))
	// Output:
	// Success
	// true 1
	// PortANotDocked
}
