// Package cqlrender serializes cqlir subtrees to CQL text.
//
// Every function here is pure. Each node family is handled by one
// exhaustive type switch; a variant the switch does not know about can
// only come from a nil interface value, and rendering it panics.
package cqlrender

import (
	"fmt"
	"strings"

	"github.com/roach88/cqlb/internal/cqlir"
	"github.com/roach88/cqlb/internal/ident"
)

// Term renders a value operand.
func Term(t cqlir.Term) string {
	var sb strings.Builder
	writeTerm(&sb, t)
	return sb.String()
}

// Selector renders a projected expression, including its alias.
func Selector(s cqlir.Selector) string {
	var sb strings.Builder
	writeSelector(&sb, s)
	return sb.String()
}

// LeftHandSide renders the left operand of a relation.
func LeftHandSide(lhs cqlir.LeftHandSide) string {
	var sb strings.Builder
	writeLeftHandSide(&sb, lhs)
	return sb.String()
}

// Relation renders one WHERE predicate.
func Relation(r cqlir.Relation) string {
	var sb strings.Builder
	writeRelation(&sb, r)
	return sb.String()
}

func writeTerm(sb *strings.Builder, t cqlir.Term) {
	switch term := t.(type) {
	case cqlir.BindMarker:
		if term.IsAnonymous() {
			sb.WriteByte('?')
			return
		}
		sb.WriteByte(':')
		sb.WriteString(term.Name.CQL())
	case cqlir.TupleTerm:
		sb.WriteByte('(')
		for i, c := range term.Components {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeTerm(sb, c)
		}
		sb.WriteByte(')')
	case cqlir.RawTerm:
		sb.WriteString(term.Text)
	default:
		panic(fmt.Sprintf("cqlrender: unsupported term type %T", t))
	}
}

func writeSelector(sb *strings.Builder, s cqlir.Selector) {
	switch sel := s.(type) {
	case cqlir.AllSelector:
		sb.WriteByte('*')
		return
	case cqlir.CountAllSelector:
		sb.WriteString("count(*)")
	case cqlir.ColumnSelector:
		sb.WriteString(sel.Column.CQL())
	case cqlir.FieldSelector:
		writeSelector(sb, sel.Owner)
		sb.WriteByte('.')
		sb.WriteString(sel.Field.CQL())
	case cqlir.BinaryArithmeticSelector:
		maybeParenthesize(sb, sel.Operator, sel.Left)
		sb.WriteByte(' ')
		sb.WriteString(sel.Operator.Symbol())
		sb.WriteByte(' ')
		// a - (b + c) must keep its grouping; the right operand of a
		// difference binds like a negated term.
		right := sel.Operator
		if right == cqlir.OpDifference {
			right = cqlir.OpOpposite
		}
		maybeParenthesize(sb, right, sel.Right)
	case cqlir.UnaryArithmeticSelector:
		sb.WriteString(sel.Operator.Symbol())
		maybeParenthesize(sb, cqlir.OpOpposite, sel.Argument)
	case cqlir.FunctionSelector:
		if !sel.Keyspace.IsZero() {
			sb.WriteString(sel.Keyspace.CQL())
			sb.WriteByte('.')
		}
		sb.WriteString(sel.Name.CQL())
		sb.WriteByte('(')
		for i, arg := range sel.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeSelector(sb, arg)
		}
		sb.WriteByte(')')
	case cqlir.CellMetadataSelector:
		sb.WriteString(string(sel.Function))
		sb.WriteByte('(')
		sb.WriteString(sel.Column.CQL())
		sb.WriteByte(')')
	case cqlir.RawSelector:
		sb.WriteString(sel.Expression)
	default:
		panic(fmt.Sprintf("cqlrender: unsupported selector type %T", s))
	}

	if alias := cqlir.AliasOf(s); !alias.IsZero() {
		sb.WriteString(" AS ")
		sb.WriteString(alias.CQL())
	}
}

// maybeParenthesize writes operand, wrapped in parentheses when it is an
// additive expression nested under a tighter-binding context.
func maybeParenthesize(sb *strings.Builder, context cqlir.ArithmeticOperator, operand cqlir.Selector) {
	if needsParentheses(context, operand) {
		sb.WriteByte('(')
		writeSelector(sb, operand)
		sb.WriteByte(')')
		return
	}
	writeSelector(sb, operand)
}

func needsParentheses(context cqlir.ArithmeticOperator, operand cqlir.Selector) bool {
	bin, ok := operand.(cqlir.BinaryArithmeticSelector)
	if !ok || !bin.Operator.IsAdditive() {
		return false
	}
	return context == cqlir.OpOpposite || context.IsMultiplicative()
}

func writeLeftHandSide(sb *strings.Builder, lhs cqlir.LeftHandSide) {
	switch l := lhs.(type) {
	case cqlir.ColumnLHS:
		sb.WriteString(l.Column.CQL())
	case cqlir.ColumnComponentLHS:
		sb.WriteString(l.Column.CQL())
		sb.WriteByte('[')
		writeTerm(sb, l.Index)
		sb.WriteByte(']')
	case cqlir.TokenLHS:
		sb.WriteString("token(")
		writeIdentifiers(sb, l.Columns)
		sb.WriteByte(')')
	case cqlir.TupleLHS:
		sb.WriteByte('(')
		writeIdentifiers(sb, l.Columns)
		sb.WriteByte(')')
	default:
		panic(fmt.Sprintf("cqlrender: unsupported left-hand side type %T", lhs))
	}
}

func writeIdentifiers(sb *strings.Builder, ids []ident.Identifier) {
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(id.CQL())
	}
}

func writeRelation(sb *strings.Builder, r cqlir.Relation) {
	switch rel := r.(type) {
	case cqlir.DefaultRelation:
		writeLeftHandSide(sb, rel.Left)
		sb.WriteByte(' ')
		sb.WriteString(rel.Operator)
		if rel.Right != nil {
			sb.WriteByte(' ')
			writeTerm(sb, rel.Right)
		}
	case cqlir.CustomIndexRelation:
		sb.WriteString("expr(")
		sb.WriteString(rel.Index.CQL())
		sb.WriteByte(',')
		writeTerm(sb, rel.Expression)
		sb.WriteByte(')')
	case cqlir.RawRelation:
		sb.WriteString(rel.Text)
	default:
		panic(fmt.Sprintf("cqlrender: unsupported relation type %T", r))
	}
}
