package resolve

import (
	"fmt"
	"strings"
)

// UnresolvedReferenceError reports a derivedFrom reference that names no
// peripheral in the device.
type UnresolvedReferenceError struct {
	// Peripheral is the name of the peripheral carrying the reference.
	Peripheral string

	// Reference is the derivedFrom value that failed to resolve.
	Reference string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("peripheral %s: derivedFrom %q does not resolve", e.Peripheral, e.Reference)
}

// CyclicDerivationError reports a cycle in the derivedFrom reference graph.
type CyclicDerivationError struct {
	// Cycle lists the peripheral names forming the cycle, ending where it
	// closes, e.g. [A B A].
	Cycle []string
}

func (e *CyclicDerivationError) Error() string {
	return fmt.Sprintf("cyclic derivation: %s", strings.Join(e.Cycle, " -> "))
}

// Errors aggregates every resolution failure found in one device.
type Errors []error

func (e Errors) Error() string {
	switch len(e) {
	case 0:
		return "no resolution errors"
	case 1:
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d resolution errors:", len(e))
	for _, err := range e {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
