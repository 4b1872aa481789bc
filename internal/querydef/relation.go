package querydef

import (
	"github.com/roach88/cqlb/internal/cqlir"
)

// comparer is the comparison family every relation builder offers.
type comparer interface {
	Eq(cqlir.Term) cqlir.DefaultRelation
	Lt(cqlir.Term) cqlir.DefaultRelation
	Lte(cqlir.Term) cqlir.DefaultRelation
	Gt(cqlir.Term) cqlir.DefaultRelation
	Gte(cqlir.Term) cqlir.DefaultRelation
	Ne(cqlir.Term) cqlir.DefaultRelation
}

func (c *compiler) relation(field string, d RelationDef) (cqlir.Relation, error) {
	var kinds []string
	if d.Column != "" {
		kinds = append(kinds, "column")
	}
	if d.Component != nil {
		kinds = append(kinds, "component")
	}
	if d.Token != nil {
		kinds = append(kinds, "token")
	}
	if d.Tuple != nil {
		kinds = append(kinds, "tuple")
	}
	if d.CustomIndex != nil {
		kinds = append(kinds, "custom_index")
	}
	if d.Raw != "" {
		kinds = append(kinds, "raw")
	}
	if len(kinds) != 1 {
		return nil, c.exactlyOne(field, "relation", kinds)
	}

	switch kinds[0] {
	case "column":
		id, err := c.identifier(field+".column", d.Column)
		if err != nil {
			return nil, err
		}
		return c.columnRelation(field, cqlir.IsColumnID(id), d)
	case "component":
		id, err := c.identifier(field+".component.column", d.Component.Column)
		if err != nil {
			return nil, err
		}
		index, err := c.term(field+".component.index", d.Component.Index)
		if err != nil {
			return nil, err
		}
		return c.compare(field, cqlir.IsColumnComponentID(id, index), d)
	case "token":
		ids, err := c.identifiers(field+".token", d.Token)
		if err != nil {
			return nil, err
		}
		return c.compare(field, cqlir.IsTokenIDs(ids...), d)
	case "tuple":
		ids, err := c.identifiers(field+".tuple", d.Tuple)
		if err != nil {
			return nil, err
		}
		return c.tupleRelation(field, cqlir.IsTupleIDs(ids...), d)
	case "custom_index":
		if d.Op != "" || d.Value != nil || d.Values != nil {
			return nil, c.errorf(field, "custom_index takes no op, value or values")
		}
		index, err := c.identifier(field+".custom_index.index", d.CustomIndex.Index)
		if err != nil {
			return nil, err
		}
		expr, err := c.term(field+".custom_index.expression", d.CustomIndex.Expression)
		if err != nil {
			return nil, err
		}
		return cqlir.CustomIndexRelation{Index: index, Expression: expr}, nil
	default:
		if d.Op != "" || d.Value != nil || d.Values != nil {
			return nil, c.errorf(field, "raw relation takes no op, value or values")
		}
		return cqlir.IsRaw(d.Raw), nil
	}
}

func (c *compiler) columnRelation(field string, b cqlir.ColumnRelationBuilder, d RelationDef) (cqlir.Relation, error) {
	switch d.Op {
	case OpNotNull:
		if d.Value != nil || d.Values != nil {
			return nil, c.errorf(field+".op", "not_null takes no value")
		}
		return b.NotNull(), nil
	case OpIn:
		return c.in(field, b.In, b.InValues, d)
	case OpLike:
		rhs, err := c.value(field, d)
		if err != nil {
			return nil, err
		}
		return b.Like(rhs), nil
	case OpContains:
		rhs, err := c.value(field, d)
		if err != nil {
			return nil, err
		}
		return b.Contains(rhs), nil
	case OpContainsKey:
		rhs, err := c.value(field, d)
		if err != nil {
			return nil, err
		}
		return b.ContainsKey(rhs), nil
	default:
		return c.compare(field, b, d)
	}
}

func (c *compiler) tupleRelation(field string, b cqlir.TupleRelationBuilder, d RelationDef) (cqlir.Relation, error) {
	if d.Op == OpIn {
		return c.in(field, b.In, b.InValues, d)
	}
	return c.compare(field, b, d)
}

func (c *compiler) in(
	field string,
	in func(cqlir.Term) cqlir.DefaultRelation,
	inValues func(...cqlir.Term) cqlir.DefaultRelation,
	d RelationDef,
) (cqlir.Relation, error) {
	switch {
	case d.Value != nil && d.Values != nil:
		return nil, c.errorf(field, "in takes value or values, not both")
	case d.Values != nil:
		alternatives, err := c.terms(field+".values", d.Values)
		if err != nil {
			return nil, err
		}
		return inValues(alternatives...), nil
	default:
		rhs, err := c.value(field, d)
		if err != nil {
			return nil, err
		}
		return in(rhs), nil
	}
}

func (c *compiler) compare(field string, b comparer, d RelationDef) (cqlir.Relation, error) {
	var build func(cqlir.Term) cqlir.DefaultRelation
	switch d.Op {
	case OpEq:
		build = b.Eq
	case OpLt:
		build = b.Lt
	case OpLte:
		build = b.Lte
	case OpGt:
		build = b.Gt
	case OpGte:
		build = b.Gte
	case OpNe:
		build = b.Ne
	case "":
		return nil, c.errorf(field+".op", "op is required")
	default:
		return nil, c.errorf(field+".op", "operator %q is not supported here", d.Op)
	}

	rhs, err := c.value(field, d)
	if err != nil {
		return nil, err
	}
	return build(rhs), nil
}

func (c *compiler) value(field string, d RelationDef) (cqlir.Term, error) {
	if d.Values != nil {
		return nil, c.errorf(field+".values", "values is only allowed with op %q", OpIn)
	}
	if d.Value == nil {
		return nil, c.errorf(field+".value", "op %q needs a value", d.Op)
	}
	return c.term(field+".value", *d.Value)
}
