package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

//go:embed data/StructureDefinitions.json
var embedded []byte

// definitionsFile mirrors the blueprint document shape. Docking state
// fields may be present but are ignored.
type definitionsFile struct {
	ObjectType string      `json:"__ObjectType"`
	Structures []structure `json:"Structures"`
}

type structure struct {
	SceneID                 *int     `json:"SceneID"`
	StructureType           string   `json:"StructureType"`
	NominalAirVolume        *float64 `json:"NominalAirVolume"`
	StandbyPowerRequirement *float64 `json:"StandbyPowerRequirement"`
	DockingPorts            []port   `json:"DockingPorts"`
}

type port struct {
	PortName string `json:"PortName"`
	OrderID  *int   `json:"OrderID"`
}

// Read decodes a definitions file from r and builds a catalog.
// Every structure must carry SceneID and StructureType, and every port
// both PortName and OrderID.
func Read(r io.Reader) (*Catalog, error) {
	var f definitionsFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode structure definitions")
	}

	defs := make([]Definition, 0, len(f.Structures))
	for i, s := range f.Structures {
		if s.SceneID == nil {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "structure %d (%s) has no SceneID", i, s.StructureType)
		}
		d := Definition{
			SceneID:                 SceneID(*s.SceneID),
			DisplayName:             s.StructureType,
			NominalAirVolume:        s.NominalAirVolume,
			StandbyPowerRequirement: s.StandbyPowerRequirement,
			PortSlots:               make([]PortSlot, 0, len(s.DockingPorts)),
		}
		for _, p := range s.DockingPorts {
			if p.OrderID == nil {
				return nil, errors.New(errors.ErrCodeInvalidCatalog, "%s: port %s has no OrderID", s.StructureType, p.PortName)
			}
			d.PortSlots = append(d.PortSlots, PortSlot{Name: PortName(p.PortName), OrderIndex: *p.OrderID})
		}
		defs = append(defs, d)
	}
	return New(defs)
}

// Load reads a definitions file from path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

var loadDefault = sync.OnceValue(func() *Catalog {
	c, err := Read(bytes.NewReader(embedded))
	if err != nil {
		panic("catalog: embedded definitions are invalid: " + err.Error())
	}
	return c
})

// Default returns the catalog decoded from the embedded definitions file.
// The same instance is returned on every call.
func Default() *Catalog { return loadDefault() }
