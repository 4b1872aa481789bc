// Package statement builds CQL SELECT statements.
//
// A Select is an immutable snapshot. Every transition returns a new
// snapshot and leaves its receiver untouched, so a chain may be forked at
// any point and the branches used independently, including from different
// goroutines. Selector and relation sequences are persistent lists: a
// transition shares all existing elements with its predecessor instead of
// copying them.
//
// Transitions whose precondition can fail return (Select, error). On
// failure the returned Select is the zero value and the error is an *Error.
package statement

import (
	"strconv"

	"github.com/benbjohnson/immutable"

	"github.com/roach88/cqlb/internal/cqlir"
	"github.com/roach88/cqlb/internal/ident"
)

var (
	noSelectors = immutable.NewList[cqlir.Selector]()
	noRelations = immutable.NewList[cqlir.Relation]()
	onlyAll     = immutable.NewList[cqlir.Selector](cqlir.All())
)

// Select is a SELECT statement under construction.
type Select struct {
	keyspace       ident.Identifier // optional
	table          ident.Identifier
	json           bool
	distinct       bool
	selectors      *immutable.List[cqlir.Selector]
	relations      *immutable.List[cqlir.Relation]
	limit          cqlir.Term // nil, a RawTerm holding a positive integer, or a BindMarker
	allowFiltering bool
}

// SelectFrom starts a statement on an unqualified table.
func SelectFrom(table string) Select {
	return SelectFromIDs(ident.Identifier{}, ident.FromCQL(table))
}

// SelectFromKeyspace starts a statement on keyspace.table.
func SelectFromKeyspace(keyspace, table string) Select {
	return SelectFromIDs(ident.FromCQL(keyspace), ident.FromCQL(table))
}

// SelectFromIDs starts a statement from identifiers. A zero keyspace
// leaves the table unqualified.
func SelectFromIDs(keyspace, table ident.Identifier) Select {
	return Select{
		keyspace:  keyspace,
		table:     table,
		selectors: noSelectors,
		relations: noRelations,
	}
}

func (s Select) selectorList() *immutable.List[cqlir.Selector] {
	if s.selectors == nil {
		return noSelectors
	}
	return s.selectors
}

func (s Select) relationList() *immutable.List[cqlir.Relation] {
	if s.relations == nil {
		return noRelations
	}
	return s.relations
}

// JSON requests the row as a single JSON value.
func (s Select) JSON() Select {
	s.json = true
	return s
}

// Distinct requests distinct partition keys only.
func (s Select) Distinct() Select {
	s.distinct = true
	return s
}

// Selector adds one projected expression.
//
// Adding "*" discards every prior selector. Adding anything else to a
// statement that selects only "*" replaces the "*".
func (s Select) Selector(sel cqlir.Selector) Select {
	s.selectors = appendSelector(s.selectorList(), sel)
	return s
}

func appendSelector(list *immutable.List[cqlir.Selector], sel cqlir.Selector) *immutable.List[cqlir.Selector] {
	if cqlir.IsAll(sel) {
		return onlyAll
	}
	if list.Len() == 1 && cqlir.IsAll(list.Get(0)) {
		return immutable.NewList(sel)
	}
	return list.Append(sel)
}

// Selectors adds a batch of selectors in order. The batch may not contain
// "*"; use All for that.
func (s Select) Selectors(batch ...cqlir.Selector) (Select, error) {
	for i, sel := range batch {
		if cqlir.IsAll(sel) {
			return Select{}, invalidArgument("Selectors",
				"selector %d is *, which can't be mixed with other selectors; use All() instead", i)
		}
	}

	list := s.selectorList()
	for _, sel := range batch {
		list = appendSelector(list, sel)
	}
	s.selectors = list
	return s, nil
}

// As aliases the most recently added selector, replacing any alias it
// already has. An empty alias is rejected.
func (s Select) As(alias string) (Select, error) {
	return s.AsID(ident.FromCQL(alias))
}

// AsID is As with an identifier.
func (s Select) AsID(alias ident.Identifier) (Select, error) {
	if alias.IsZero() {
		return Select{}, invalidArgument("As", "alias must not be empty")
	}
	list := s.selectorList()
	if list.Len() == 0 {
		return Select{}, invalidState("As", "can't alias %s: no selector has been added yet", alias.CQL())
	}

	last := list.Len() - 1
	aliased, err := cqlir.WithAlias(list.Get(last), alias)
	if err != nil {
		return Select{}, invalidState("As", "%s", err.Error())
	}
	s.selectors = list.Set(last, aliased)
	return s, nil
}

// Where appends relations to the WHERE clause. Relations are joined with AND
// in the order they were added.
func (s Select) Where(relations ...cqlir.Relation) Select {
	list := s.relationList()
	for _, r := range relations {
		list = list.Append(r)
	}
	s.relations = list
	return s
}

// Limit sets a literal row limit. It replaces any earlier limit, literal or
// marker.
func (s Select) Limit(n int) (Select, error) {
	if n <= 0 {
		return Select{}, invalidArgument("Limit", "limit must be strictly positive, got %d", n)
	}
	s.limit = cqlir.Raw(strconv.Itoa(n))
	return s, nil
}

// LimitMarker sets the row limit to a bind marker. It replaces any earlier
// limit, literal or marker.
func (s Select) LimitMarker(marker cqlir.BindMarker) Select {
	s.limit = marker
	return s
}

// AllowFiltering adds ALLOW FILTERING. Calling it again has no effect.
func (s Select) AllowFiltering() Select {
	s.allowFiltering = true
	return s
}

// Keyspace returns the keyspace, or the zero identifier for an unqualified table.
func (s Select) Keyspace() ident.Identifier { return s.keyspace }

// Table returns the table.
func (s Select) Table() ident.Identifier { return s.table }

// IsJSON reports whether JSON was requested.
func (s Select) IsJSON() bool { return s.json }

// IsDistinct reports whether DISTINCT was requested.
func (s Select) IsDistinct() bool { return s.distinct }

// AllowsFiltering reports whether ALLOW FILTERING was requested.
func (s Select) AllowsFiltering() bool { return s.allowFiltering }

// LimitTerm returns the current limit: nil when absent, a RawTerm for a
// literal limit, or a BindMarker.
func (s Select) LimitTerm() cqlir.Term { return s.limit }

// SelectorList returns a copy of the selectors in insertion order.
func (s Select) SelectorList() []cqlir.Selector {
	return collect(s.selectorList())
}

// RelationList returns a copy of the relations in insertion order.
func (s Select) RelationList() []cqlir.Relation {
	return collect(s.relationList())
}

func collect[T any](list *immutable.List[T]) []T {
	out := make([]T, 0, list.Len())
	itr := list.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		out = append(out, v)
	}
	return out
}
