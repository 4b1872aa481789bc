package cqlir

import (
	"slices"

	"github.com/roach88/cqlb/internal/ident"
)

// LeftHandSide is the left operand of a DefaultRelation.
//
// This is a sealed interface - only types in this package implement it.
type LeftHandSide interface {
	leftHandSideNode() // Sealed
}

// ColumnLHS is a plain column: "k".
type ColumnLHS struct {
	Column ident.Identifier
}

func (ColumnLHS) leftHandSideNode() {}

// ColumnComponentLHS addresses an element of a collection column: "m"['key'].
type ColumnComponentLHS struct {
	Column ident.Identifier
	Index  Term
}

func (ColumnComponentLHS) leftHandSideNode() {}

// TokenLHS is token("k1","k2").
type TokenLHS struct {
	Columns []ident.Identifier
}

func (TokenLHS) leftHandSideNode() {}

// TupleLHS is ("c1","c2") for multi-column comparisons.
type TupleLHS struct {
	Columns []ident.Identifier
}

func (TupleLHS) leftHandSideNode() {}

// Relation is one predicate of the WHERE clause. Relations of a statement
// are conjoined with AND.
//
// This is a sealed interface - only types in this package implement it.
type Relation interface {
	relationNode() // Sealed
}

// DefaultRelation is "lhs operator [rhs]". Right is nil for operators that
// take no right-hand term, such as IS NOT NULL.
type DefaultRelation struct {
	Left     LeftHandSide
	Operator string
	Right    Term
}

func (DefaultRelation) relationNode() {}

// CustomIndexRelation is expr("index",expression), a query on a custom
// secondary index. The expression syntax belongs to the index implementation.
type CustomIndexRelation struct {
	Index      ident.Identifier
	Expression Term
}

func (CustomIndexRelation) relationNode() {}

// RawRelation is caller text emitted verbatim.
type RawRelation struct {
	Text string
}

func (RawRelation) relationNode() {}

// Relation operator symbols.
const (
	OpEq          = "="
	OpLt          = "<"
	OpLte         = "<="
	OpGt          = ">"
	OpGte         = ">="
	OpNe          = "!="
	OpLike        = "LIKE"
	OpIsNotNull   = "IS NOT NULL"
	OpIn          = "IN"
	OpContains    = "CONTAINS"
	OpContainsKey = "CONTAINS KEY"
)

// NewTokenLHS builds a token left-hand side; the column slice is copied.
func NewTokenLHS(columns ...ident.Identifier) TokenLHS {
	return TokenLHS{Columns: slices.Clone(columns)}
}

// NewTupleLHS builds a tuple left-hand side; the column slice is copied.
func NewTupleLHS(columns ...ident.Identifier) TupleLHS {
	return TupleLHS{Columns: slices.Clone(columns)}
}
