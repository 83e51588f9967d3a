package blueprint

import (
	"fmt"
	"strconv"
)

// InvariantError is the panic value raised when an operation finds the
// graph already inconsistent: a docking cycle, a component with two roots,
// or a port docked to nothing. Such states cannot be produced through the
// public mutations, so they indicate a defect rather than bad user input.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "blueprint invariant violated: " + e.Message
}

func violated(format string, args ...any) {
	panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
}

func itoa(i int) string { return strconv.Itoa(i) }
