package statement

import (
	"github.com/roach88/cqlb/internal/cqlir"
)

// All selects every column, discarding prior selectors.
func (s Select) All() Select { return s.Selector(cqlir.All()) }

// CountAll adds count(*).
func (s Select) CountAll() Select { return s.Selector(cqlir.CountAll()) }

// Column adds a column by CQL name.
func (s Select) Column(name string) Select { return s.Selector(cqlir.Column(name)) }

// Columns adds several columns in order.
func (s Select) Columns(names ...string) Select {
	for _, name := range names {
		s = s.Column(name)
	}
	return s
}

// Field adds column.field for a UDT column.
func (s Select) Field(column, field string) Select { return s.Selector(cqlir.Field(column, field)) }

// FieldOf adds owner.field.
func (s Select) FieldOf(owner cqlir.Selector, field string) Select {
	return s.Selector(cqlir.FieldOf(owner, field))
}

// Sum adds left + right.
func (s Select) Sum(left, right cqlir.Selector) Select { return s.Selector(cqlir.Sum(left, right)) }

// Difference adds left - right.
func (s Select) Difference(left, right cqlir.Selector) Select {
	return s.Selector(cqlir.Difference(left, right))
}

// Product adds left * right.
func (s Select) Product(left, right cqlir.Selector) Select {
	return s.Selector(cqlir.Product(left, right))
}

// Divider adds left / right.
func (s Select) Divider(left, right cqlir.Selector) Select {
	return s.Selector(cqlir.Divider(left, right))
}

// Remainder adds left % right.
func (s Select) Remainder(left, right cqlir.Selector) Select {
	return s.Selector(cqlir.Remainder(left, right))
}

// Opposite adds -argument.
func (s Select) Opposite(argument cqlir.Selector) Select {
	return s.Selector(cqlir.Opposite(argument))
}

// Function adds name(args...).
func (s Select) Function(name string, args ...cqlir.Selector) Select {
	return s.Selector(cqlir.Function(name, args...))
}

// WriteTime adds writetime(column).
func (s Select) WriteTime(column string) Select { return s.Selector(cqlir.WriteTime(column)) }

// TTL adds ttl(column).
func (s Select) TTL(column string) Select { return s.Selector(cqlir.TTL(column)) }

// Raw adds caller text as a selector. The text is not checked.
func (s Select) Raw(expression string) Select { return s.Selector(cqlir.RawSelect(expression)) }
