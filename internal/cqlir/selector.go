package cqlir

import (
	"fmt"
	"slices"

	"github.com/roach88/cqlb/internal/ident"
)

// Selector is a projected expression in the SELECT clause.
//
// This is a sealed interface - only types in this package implement it.
type Selector interface {
	selectorNode() // Sealed
}

// ArithmeticOperator identifies an arithmetic selector's operation.
type ArithmeticOperator int

const (
	OpSum ArithmeticOperator = iota
	OpDifference
	OpProduct
	OpDivider
	OpRemainder
	// OpOpposite is the unary minus.
	OpOpposite
)

// Symbol returns the CQL symbol of the operator.
func (op ArithmeticOperator) Symbol() string {
	switch op {
	case OpSum:
		return "+"
	case OpDifference, OpOpposite:
		return "-"
	case OpProduct:
		return "*"
	case OpDivider:
		return "/"
	case OpRemainder:
		return "%"
	default:
		return "?"
	}
}

func (op ArithmeticOperator) String() string {
	switch op {
	case OpSum:
		return "SUM"
	case OpDifference:
		return "DIFFERENCE"
	case OpProduct:
		return "PRODUCT"
	case OpDivider:
		return "DIVIDER"
	case OpRemainder:
		return "REMAINDER"
	case OpOpposite:
		return "OPPOSITE"
	default:
		return fmt.Sprintf("ArithmeticOperator(%d)", int(op))
	}
}

// IsAdditive reports whether op is Sum or Difference, the loosest-binding
// operators.
func (op ArithmeticOperator) IsAdditive() bool {
	return op == OpSum || op == OpDifference
}

// IsMultiplicative reports whether op is Product, Divider or Remainder.
func (op ArithmeticOperator) IsMultiplicative() bool {
	return op == OpProduct || op == OpDivider || op == OpRemainder
}

// AllSelector is "*". It never carries an alias.
type AllSelector struct{}

func (AllSelector) selectorNode() {}

// CountAllSelector is count(*).
type CountAllSelector struct {
	Alias ident.Identifier
}

func (CountAllSelector) selectorNode() {}

// ColumnSelector projects a single column.
type ColumnSelector struct {
	Column ident.Identifier
	Alias  ident.Identifier
}

func (ColumnSelector) selectorNode() {}

// FieldSelector projects a field of a user-defined type value.
// Owner may itself be a FieldSelector for nested access.
type FieldSelector struct {
	Owner Selector
	Field ident.Identifier
	Alias ident.Identifier
}

func (FieldSelector) selectorNode() {}

// BinaryArithmeticSelector combines two selectors with a binary operator.
type BinaryArithmeticSelector struct {
	Operator ArithmeticOperator
	Left     Selector
	Right    Selector
	Alias    ident.Identifier
}

func (BinaryArithmeticSelector) selectorNode() {}

// UnaryArithmeticSelector negates its argument. Operator is always OpOpposite.
type UnaryArithmeticSelector struct {
	Operator ArithmeticOperator
	Argument Selector
	Alias    ident.Identifier
}

func (UnaryArithmeticSelector) selectorNode() {}

// FunctionSelector calls a native or user-defined function.
type FunctionSelector struct {
	Keyspace ident.Identifier // optional
	Name     ident.Identifier
	Args     []Selector
	Alias    ident.Identifier
}

func (FunctionSelector) selectorNode() {}

// CellFunction names a cell metadata function.
type CellFunction string

const (
	CellWriteTime CellFunction = "writetime"
	CellTTL       CellFunction = "ttl"
)

// CellMetadataSelector is writetime(col) or ttl(col). Both are grammar
// keywords rather than function names, so they render unquoted.
type CellMetadataSelector struct {
	Function CellFunction
	Column   ident.Identifier
	Alias    ident.Identifier
}

func (CellMetadataSelector) selectorNode() {}

// RawSelector is caller text emitted verbatim, optionally aliased.
type RawSelector struct {
	Expression string
	Alias      ident.Identifier
}

func (RawSelector) selectorNode() {}

// All returns the "*" selector.
func All() AllSelector {
	return AllSelector{}
}

// CountAll returns count(*).
func CountAll() CountAllSelector {
	return CountAllSelector{}
}

// Column selects a column by CQL name.
func Column(name string) ColumnSelector {
	return ColumnSelector{Column: ident.FromCQL(name)}
}

// ColumnID selects a column by identifier.
func ColumnID(id ident.Identifier) ColumnSelector {
	return ColumnSelector{Column: id}
}

// Field selects a field of a UDT column: Field("user", "name") is "user"."name".
func Field(column, field string) FieldSelector {
	return FieldOf(Column(column), field)
}

// FieldOf selects a field of any selector, allowing nested access.
func FieldOf(owner Selector, field string) FieldSelector {
	return FieldSelector{Owner: owner, Field: ident.FromCQL(field)}
}

// Sum returns left + right.
func Sum(left, right Selector) BinaryArithmeticSelector {
	return binary(OpSum, left, right)
}

// Difference returns left - right.
func Difference(left, right Selector) BinaryArithmeticSelector {
	return binary(OpDifference, left, right)
}

// Product returns left * right.
func Product(left, right Selector) BinaryArithmeticSelector {
	return binary(OpProduct, left, right)
}

// Divider returns left / right.
func Divider(left, right Selector) BinaryArithmeticSelector {
	return binary(OpDivider, left, right)
}

// Remainder returns left % right.
func Remainder(left, right Selector) BinaryArithmeticSelector {
	return binary(OpRemainder, left, right)
}

// Opposite returns -argument.
func Opposite(argument Selector) UnaryArithmeticSelector {
	return UnaryArithmeticSelector{Operator: OpOpposite, Argument: argument}
}

// Function calls name(args...). Pass a keyspace-qualified name as two
// identifiers through FunctionIn.
func Function(name string, args ...Selector) FunctionSelector {
	return FunctionSelector{Name: ident.FromCQL(name), Args: slices.Clone(args)}
}

// FunctionIn calls keyspace.name(args...).
func FunctionIn(keyspace, name string, args ...Selector) FunctionSelector {
	return FunctionSelector{
		Keyspace: ident.FromCQL(keyspace),
		Name:     ident.FromCQL(name),
		Args:     slices.Clone(args),
	}
}

// WriteTime returns writetime(column).
func WriteTime(column string) CellMetadataSelector {
	return CellMetadataSelector{Function: CellWriteTime, Column: ident.FromCQL(column)}
}

// TTL returns ttl(column).
func TTL(column string) CellMetadataSelector {
	return CellMetadataSelector{Function: CellTTL, Column: ident.FromCQL(column)}
}

// RawSelect wraps caller text as a selector.
func RawSelect(expression string) RawSelector {
	return RawSelector{Expression: expression}
}

func binary(op ArithmeticOperator, left, right Selector) BinaryArithmeticSelector {
	return BinaryArithmeticSelector{Operator: op, Left: left, Right: right}
}

// IsAll reports whether s is the "*" selector.
func IsAll(s Selector) bool {
	_, ok := s.(AllSelector)
	return ok
}

// AliasOf returns the alias of s, or the zero identifier.
func AliasOf(s Selector) ident.Identifier {
	switch sel := s.(type) {
	case CountAllSelector:
		return sel.Alias
	case ColumnSelector:
		return sel.Alias
	case FieldSelector:
		return sel.Alias
	case BinaryArithmeticSelector:
		return sel.Alias
	case UnaryArithmeticSelector:
		return sel.Alias
	case FunctionSelector:
		return sel.Alias
	case CellMetadataSelector:
		return sel.Alias
	case RawSelector:
		return sel.Alias
	default:
		return ident.Identifier{}
	}
}

// WithAlias returns a copy of s whose alias is replaced by alias.
// Aliasing "*" fails with an *AliasError.
func WithAlias(s Selector, alias ident.Identifier) (Selector, error) {
	switch sel := s.(type) {
	case AllSelector:
		return nil, &AliasError{Alias: alias, Reason: "can't alias the * selector"}
	case CountAllSelector:
		sel.Alias = alias
		return sel, nil
	case ColumnSelector:
		sel.Alias = alias
		return sel, nil
	case FieldSelector:
		sel.Alias = alias
		return sel, nil
	case BinaryArithmeticSelector:
		sel.Alias = alias
		return sel, nil
	case UnaryArithmeticSelector:
		sel.Alias = alias
		return sel, nil
	case FunctionSelector:
		sel.Alias = alias
		return sel, nil
	case CellMetadataSelector:
		sel.Alias = alias
		return sel, nil
	case RawSelector:
		sel.Alias = alias
		return sel, nil
	default:
		return nil, &AliasError{Alias: alias, Reason: fmt.Sprintf("unsupported selector type %T", s)}
	}
}

// AliasError reports an alias that cannot be applied.
type AliasError struct {
	Alias  ident.Identifier
	Reason string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("alias %s: %s", e.Alias.CQL(), e.Reason)
}
