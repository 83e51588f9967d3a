package blueprint

import "github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"

// Status is the result of a graph mutation.
type Status int

const (
	Success Status = iota
	InvalidPortA
	InvalidPortB
	InvalidStructurePortA
	InvalidStructurePortB
	AlreadyDockedPortA
	AlreadyDockedPortB
	PortAandBNotDocked
	PortANotDocked
	PortBNotDocked
	PortsOnSameStructure
	IncompatiblePortTypes
	StructuresAlreadyConnected
	WillCauseOrphanedStructure
	StructureStillDocked
	StructureNotFound
	UnknownStructureType
	DuplicateStructureID
	MissingRootStructure
)

var statusNames = [...]string{
	Success:                    "Success",
	InvalidPortA:               "InvalidPortA",
	InvalidPortB:               "InvalidPortB",
	InvalidStructurePortA:      "InvalidStructurePortA",
	InvalidStructurePortB:      "InvalidStructurePortB",
	AlreadyDockedPortA:         "AlreadyDockedPortA",
	AlreadyDockedPortB:         "AlreadyDockedPortB",
	PortAandBNotDocked:         "PortAandBNotDocked",
	PortANotDocked:             "PortANotDocked",
	PortBNotDocked:             "PortBNotDocked",
	PortsOnSameStructure:       "PortsOnSameStructure",
	IncompatiblePortTypes:      "IncompatiblePortTypes",
	StructuresAlreadyConnected: "StructuresAlreadyConnected",
	WillCauseOrphanedStructure: "WillCauseOrphanedStructure",
	StructureStillDocked:       "StructureStillDocked",
	StructureNotFound:          "StructureNotFound",
	UnknownStructureType:       "UnknownStructureType",
	DuplicateStructureID:       "DuplicateStructureID",
	MissingRootStructure:       "MissingRootStructure",
}

// String returns the status name.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "Status(" + itoa(int(s)) + ")"
}

// OK reports whether s is Success.
func (s Status) OK() bool { return s == Success }

// Err converts a failed status into a coded error. It returns nil for Success.
func (s Status) Err() error {
	switch s {
	case Success:
		return nil
	case UnknownStructureType:
		return errors.New(errors.ErrCodeUnknownStructureType, "%s", s)
	case DuplicateStructureID:
		return errors.New(errors.ErrCodeDuplicateStructureID, "%s", s)
	case MissingRootStructure:
		return errors.New(errors.ErrCodeMissingRootStructure, "%s", s)
	case StructureNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s", s)
	default:
		return errors.New(errors.ErrCodeOperationRejected, "%s", s)
	}
}

// ParseStatus returns the status with the given name.
func ParseStatus(name string) (Status, bool) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), true
		}
	}
	return 0, false
}
