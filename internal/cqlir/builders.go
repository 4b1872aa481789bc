package cqlir

import (
	"github.com/roach88/cqlb/internal/ident"
)

// comparisons is the relation-construction primitive shared by every
// relation builder. Each builder embeds it with its own left-hand side.
type comparisons struct {
	lhs LeftHandSide
}

// Build creates "lhs operator rhs". A nil rhs omits the right-hand term.
func (c comparisons) Build(operator string, rhs Term) DefaultRelation {
	return DefaultRelation{Left: c.lhs, Operator: operator, Right: rhs}
}

// LeftHandSide returns the builder's left operand.
func (c comparisons) LeftHandSide() LeftHandSide {
	return c.lhs
}

// Eq builds lhs = rhs.
func (c comparisons) Eq(rhs Term) DefaultRelation { return c.Build(OpEq, rhs) }

// Lt builds lhs < rhs.
func (c comparisons) Lt(rhs Term) DefaultRelation { return c.Build(OpLt, rhs) }

// Lte builds lhs <= rhs.
func (c comparisons) Lte(rhs Term) DefaultRelation { return c.Build(OpLte, rhs) }

// Gt builds lhs > rhs.
func (c comparisons) Gt(rhs Term) DefaultRelation { return c.Build(OpGt, rhs) }

// Gte builds lhs > rhs.
//
// NOTE: this emits the strict ">" symbol, not ">=". Existing callers depend
// on the emitted text; use Build(OpGte, rhs) for a real >= comparison.
func (c comparisons) Gte(rhs Term) DefaultRelation { return c.Build(OpGt, rhs) }

// Ne builds lhs != rhs.
func (c comparisons) Ne(rhs Term) DefaultRelation { return c.Build(OpNe, rhs) }

// ColumnRelationBuilder builds relations on a single column.
type ColumnRelationBuilder struct {
	comparisons
}

// Like builds lhs LIKE rhs.
func (b ColumnRelationBuilder) Like(rhs Term) DefaultRelation {
	return b.Build(OpLike, rhs)
}

// NotNull builds lhs IS NOT NULL.
func (b ColumnRelationBuilder) NotNull() DefaultRelation {
	return b.Build(OpIsNotNull, nil)
}

// In builds lhs IN rhs, where rhs is typically a bind marker or a tuple.
func (b ColumnRelationBuilder) In(rhs Term) DefaultRelation {
	return b.Build(OpIn, rhs)
}

// InValues builds lhs IN (alternatives...).
func (b ColumnRelationBuilder) InValues(alternatives ...Term) DefaultRelation {
	return b.Build(OpIn, Tuple(alternatives...))
}

// Contains builds lhs CONTAINS rhs.
func (b ColumnRelationBuilder) Contains(rhs Term) DefaultRelation {
	return b.Build(OpContains, rhs)
}

// ContainsKey builds lhs CONTAINS KEY rhs.
func (b ColumnRelationBuilder) ContainsKey(rhs Term) DefaultRelation {
	return b.Build(OpContainsKey, rhs)
}

// TupleRelationBuilder builds multi-column relations. LIKE and CONTAINS are
// not offered: they have no meaning against a tuple.
type TupleRelationBuilder struct {
	comparisons
}

// In builds (c1,c2,...) IN rhs.
func (b TupleRelationBuilder) In(rhs Term) DefaultRelation {
	return b.Build(OpIn, rhs)
}

// InValues builds (c1,c2,...) IN (alternatives...).
func (b TupleRelationBuilder) InValues(alternatives ...Term) DefaultRelation {
	return b.Build(OpIn, Tuple(alternatives...))
}

// TokenRelationBuilder builds relations on token(...).
type TokenRelationBuilder struct {
	comparisons
}

// ColumnComponentRelationBuilder builds relations on a collection element.
type ColumnComponentRelationBuilder struct {
	comparisons
}

// IsColumn starts a relation on a column given by CQL name.
func IsColumn(name string) ColumnRelationBuilder {
	return IsColumnID(ident.FromCQL(name))
}

// IsColumnID starts a relation on a column identifier.
func IsColumnID(id ident.Identifier) ColumnRelationBuilder {
	return ColumnRelationBuilder{comparisons{lhs: ColumnLHS{Column: id}}}
}

// IsColumnComponent starts a relation on column[index].
func IsColumnComponent(name string, index Term) ColumnComponentRelationBuilder {
	return IsColumnComponentID(ident.FromCQL(name), index)
}

// IsColumnComponentID starts a relation on column[index].
func IsColumnComponentID(id ident.Identifier, index Term) ColumnComponentRelationBuilder {
	return ColumnComponentRelationBuilder{comparisons{lhs: ColumnComponentLHS{Column: id, Index: index}}}
}

// IsToken starts a relation on token(names...).
func IsToken(names ...string) TokenRelationBuilder {
	return IsTokenIDs(ident.FromCQLs(names...)...)
}

// IsTokenIDs starts a relation on token(ids...).
func IsTokenIDs(ids ...ident.Identifier) TokenRelationBuilder {
	return TokenRelationBuilder{comparisons{lhs: NewTokenLHS(ids...)}}
}

// IsTuple starts a relation on (names...).
func IsTuple(names ...string) TupleRelationBuilder {
	return IsTupleIDs(ident.FromCQLs(names...)...)
}

// IsTupleIDs starts a relation on (ids...).
func IsTupleIDs(ids ...ident.Identifier) TupleRelationBuilder {
	return TupleRelationBuilder{comparisons{lhs: NewTupleLHS(ids...)}}
}

// IsCustomIndex builds expr(index,expression).
func IsCustomIndex(index string, expression Term) CustomIndexRelation {
	return CustomIndexRelation{Index: ident.FromCQL(index), Expression: expression}
}

// IsRaw wraps caller text as a relation.
func IsRaw(text string) RawRelation {
	return RawRelation{Text: text}
}
