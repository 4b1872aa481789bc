// Package cqlir defines the expression tree of a CQL SELECT statement.
//
// The tree is built from four closed families of node types:
//
//	Term          RawTerm, TupleTerm, BindMarker
//	Selector      AllSelector, CountAllSelector, ColumnSelector, FieldSelector,
//	              BinaryArithmeticSelector, UnaryArithmeticSelector,
//	              CellMetadataSelector, FunctionSelector, RawSelector
//	LeftHandSide  ColumnLHS, ColumnComponentLHS, TokenLHS, TupleLHS
//	Relation      DefaultRelation, CustomIndexRelation, RawRelation
//
// SEALED INTERFACES:
//
// Term, Selector, LeftHandSide and Relation are sealed with an unexported
// marker method, so only this package can add variants. Renderers switch over
// the variants exhaustively:
//
//	switch s := sel.(type) {
//	case AllSelector:
//	    // "*"
//	case ColumnSelector:
//	    // "col" [AS alias]
//	...
//	}
//
// IMMUTABILITY:
//
// Every node is a value. Constructors copy the slices they are given and no
// method modifies its receiver, so a subtree can be shared between any number
// of statements and goroutines.
//
// ESCAPE HATCHES:
//
// RawTerm, RawSelector, RawRelation and CustomIndexRelation carry caller text
// that is emitted verbatim. Validate reports them; their syntax is the
// caller's responsibility.
package cqlir
