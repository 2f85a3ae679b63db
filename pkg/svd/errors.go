package svd

import (
	"fmt"
	"strings"
)

// ParseError reports malformed XML markup. It is fatal: parsing aborts at the
// first occurrence.
type ParseError struct {
	// Line is the 1-based line of the offending markup, 0 if unknown.
	Line int

	// Offset is the byte offset the decoder had consumed when it failed.
	Offset int64

	// Msg describes the markup problem.
	Msg string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d (byte %d): malformed XML: %s", e.Line, e.Offset, e.Msg)
	}
	return fmt.Sprintf("byte %d: malformed XML: %s", e.Offset, e.Msg)
}

// SchemaError reports a structurally invalid element: a required child is
// missing or a value has an illegal form. Schema errors are collected across
// the whole document before being reported.
type SchemaError struct {
	// Path locates the offending element, e.g.
	// device/peripherals/peripheral[2]/registers/register[0].
	Path string

	// Msg describes what is wrong with the element.
	Msg string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// SchemaErrors aggregates every schema error found in one document.
type SchemaErrors []*SchemaError

func (e SchemaErrors) Error() string {
	switch len(e) {
	case 0:
		return "no schema errors"
	case 1:
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d schema errors:", len(e))
	for _, err := range e {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
