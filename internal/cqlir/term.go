package cqlir

import (
	"slices"

	"github.com/roach88/cqlb/internal/ident"
)

// Term is a value operand: the right-hand side of a relation, a tuple
// component, a collection index or a LIMIT marker.
//
// This is a sealed interface - only types in this package implement it.
type Term interface {
	termNode() // Sealed
}

// RawTerm is caller text emitted verbatim.
type RawTerm struct {
	Text string
}

func (RawTerm) termNode() {}

// TupleTerm is a parenthesized, comma-separated list of terms.
// A tuple with no components renders as "()".
type TupleTerm struct {
	Components []Term
}

func (TupleTerm) termNode() {}

// BindMarker is a placeholder bound at execution time.
// A zero Name makes it anonymous ("?"); otherwise it renders as :"name".
type BindMarker struct {
	Name ident.Identifier
}

func (BindMarker) termNode() {}

// IsAnonymous reports whether the marker renders as "?".
func (m BindMarker) IsAnonymous() bool {
	return m.Name.IsZero()
}

// Raw creates a raw term.
func Raw(text string) RawTerm {
	return RawTerm{Text: text}
}

// Tuple creates a tuple term. The component slice is copied.
func Tuple(components ...Term) TupleTerm {
	return TupleTerm{Components: slices.Clone(components)}
}

// Marker creates an anonymous bind marker.
func Marker() BindMarker {
	return BindMarker{}
}

// NamedMarker creates a named bind marker from a CQL name.
// An empty name ("" or `""`) yields the anonymous marker, rendered "?".
func NamedMarker(name string) BindMarker {
	return BindMarker{Name: ident.FromCQL(name)}
}

// NamedMarkerID creates a named bind marker from an identifier.
// The zero identifier yields the anonymous marker.
func NamedMarkerID(id ident.Identifier) BindMarker {
	return BindMarker{Name: id}
}
