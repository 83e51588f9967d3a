package blueprint

// Document is the serialized form of a blueprint: a flat, id-indexed list of
// structure records whose ports reference their partners by structure id and
// port name.
//
// The struct tags drive both encoding/json and go-playground/validator.
type Document struct {
	ObjectType string            `json:"__ObjectType" validate:"eq=StationBlueprint"`
	Version    float64           `json:"Version" validate:"gte=0"`
	Name       *string           `json:"Name"`
	LinkURI    *string           `json:"LinkURI"`
	Structures []StructureRecord `json:"Structures" validate:"dive"`
}

// StructureRecord is one structure of a Document.
type StructureRecord struct {
	StructureID             *int           `json:"StructureID" validate:"required,min=0"`
	StructureType           string         `json:"StructureType" validate:"required"`
	NominalAirVolume        *float64       `json:"NominalAirVolume"`
	StandbyPowerRequirement *float64       `json:"StandbyPowerRequirement"`
	AuxData                 map[string]any `json:"AuxData,omitempty"`
	DockingPorts            []PortRecord   `json:"DockingPorts" validate:"dive"`
}

// PortRecord is one docking port of a StructureRecord.
//
// Legacy documents may carry only one of PortName and OrderID; the other half
// is derived from the catalog on reconstruction.
type PortRecord struct {
	PortName          string  `json:"PortName,omitempty"`
	OrderID           *int    `json:"OrderID,omitempty"`
	Locked            bool    `json:"Locked"`
	DockedStructureID *int    `json:"DockedStructureID"`
	DockedPortName    *string `json:"DockedPortName"`
}

// NewDocument returns an empty document of the current version.
func NewDocument() *Document {
	return &Document{
		ObjectType: ObjectType,
		Version:    CurrentVersion,
		Structures: []StructureRecord{},
	}
}
