package cqlir

import (
	"fmt"
)

// ValidationResult reports whether a statement's text is covered by the
// syntactic-validity guarantee.
//
// A statement built only from structured nodes always renders to text that
// the CQL SELECT rule accepts. Escape-hatch nodes (raw terms, raw selectors,
// raw relations, custom index expressions) are emitted verbatim, so their
// validity is up to the caller.
type ValidationResult struct {
	// Checked is true when no escape-hatch node was found.
	Checked bool

	// Warnings lists each escape-hatch node with its position.
	// Empty when Checked is true.
	Warnings []string
}

// Validate walks selectors and relations and reports escape-hatch nodes.
// It has no side effects and never rejects a tree.
func Validate(selectors []Selector, relations []Relation) ValidationResult {
	v := &validator{
		warnings: []string{},
	}
	for i, s := range selectors {
		v.validateSelector(fmt.Sprintf("selectors[%d]", i), s)
	}
	for i, r := range relations {
		v.validateRelation(fmt.Sprintf("where[%d]", i), r)
	}

	return ValidationResult{
		Checked:  len(v.warnings) == 0,
		Warnings: v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateSelector(path string, s Selector) {
	switch sel := s.(type) {
	case AllSelector, CountAllSelector, ColumnSelector, CellMetadataSelector:
	case FieldSelector:
		v.validateSelector(path+".owner", sel.Owner)
	case BinaryArithmeticSelector:
		v.validateSelector(path+".left", sel.Left)
		v.validateSelector(path+".right", sel.Right)
	case UnaryArithmeticSelector:
		v.validateSelector(path+".argument", sel.Argument)
	case FunctionSelector:
		for i, arg := range sel.Args {
			v.validateSelector(fmt.Sprintf("%s.args[%d]", path, i), arg)
		}
	case RawSelector:
		v.addWarning("%s: raw selector %q is not checked", path, sel.Expression)
	case nil:
		v.addWarning("%s: nil selector", path)
	default:
		v.addWarning("%s: unknown selector type %T", path, s)
	}
}

func (v *validator) validateRelation(path string, r Relation) {
	switch rel := r.(type) {
	case DefaultRelation:
		v.validateLeftHandSide(path+".left", rel.Left)
		if rel.Right != nil {
			v.validateTerm(path+".right", rel.Right)
		}
	case CustomIndexRelation:
		v.addWarning("%s: custom index expression on %s is not checked", path, rel.Index.CQL())
		v.validateTerm(path+".expression", rel.Expression)
	case RawRelation:
		v.addWarning("%s: raw relation %q is not checked", path, rel.Text)
	case nil:
		v.addWarning("%s: nil relation", path)
	default:
		v.addWarning("%s: unknown relation type %T", path, r)
	}
}

func (v *validator) validateLeftHandSide(path string, lhs LeftHandSide) {
	switch l := lhs.(type) {
	case ColumnLHS, TokenLHS, TupleLHS:
	case ColumnComponentLHS:
		v.validateTerm(path+".index", l.Index)
	case nil:
		v.addWarning("%s: nil left-hand side", path)
	default:
		v.addWarning("%s: unknown left-hand side type %T", path, lhs)
	}
}

func (v *validator) validateTerm(path string, t Term) {
	switch term := t.(type) {
	case BindMarker:
	case TupleTerm:
		for i, c := range term.Components {
			v.validateTerm(fmt.Sprintf("%s[%d]", path, i), c)
		}
	case RawTerm:
		v.addWarning("%s: raw term %q is not checked", path, term.Text)
	case nil:
		v.addWarning("%s: nil term", path)
	default:
		v.addWarning("%s: unknown term type %T", path, t)
	}
}
