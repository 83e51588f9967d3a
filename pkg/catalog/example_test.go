package catalog_test

import (
	"fmt"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
)

func ExampleCatalog_PortNameFor() {
	cat := catalog.Default()
	id, _ := cat.Resolve("CIR")

	fmt.Println(cat.PortNameFor(id, 2))
	fmt.Println(cat.OrderIndexFor(id, "StandardDockingPortD"))
	fmt.Println(cat.PortNameFor(id, 99))
	// Output:
	// StandardDockingPortB
	// 4
	// Unspecified
}
