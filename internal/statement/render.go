package statement

import (
	"github.com/roach88/cqlb/internal/cqlir"
	"github.com/roach88/cqlb/internal/cqlrender"
	"github.com/roach88/cqlb/internal/script"
)

// Render produces the statement text. Compact mode is a single line;
// pretty mode puts each clause and each selector on its own line.
//
// Render is callable on any snapshot, including one with no selectors,
// and always produces the same text for the same snapshot.
func (s Select) Render(pretty bool) string {
	b := script.New(pretty)

	b.Append("SELECT")
	if s.json {
		b.Append(" JSON")
	}
	if s.distinct {
		b.Append(" DISTINCT")
	}

	b.IncreaseIndent()
	itr := s.selectorList().Iterator()
	for !itr.Done() {
		i, sel := itr.Next()
		if i > 0 {
			b.Append(",")
		}
		b.NewLine().Append(cqlrender.Selector(sel))
	}
	b.DecreaseIndent()

	b.NewLine().Append("FROM ")
	if !s.keyspace.IsZero() {
		b.Append(s.keyspace.CQL()).Append(".")
	}
	b.Append(s.table.CQL())

	relations := s.relationList().Iterator()
	for !relations.Done() {
		i, r := relations.Next()
		keyword := "AND "
		if i == 0 {
			keyword = "WHERE "
		}
		b.NewLine().Append(keyword).Append(cqlrender.Relation(r))
	}

	if s.limit != nil {
		b.NewLine().Append("LIMIT ").Append(cqlrender.Term(s.limit))
	}

	if s.allowFiltering {
		b.NewLine().Append("ALLOW FILTERING")
	}

	return b.String()
}

// String returns the compact rendering.
func (s Select) String() string {
	return s.Render(false)
}

// SimpleStatement is query text ready to hand to a driver.
type SimpleStatement struct {
	Query string
}

// Build renders the statement into a SimpleStatement.
func (s Select) Build(pretty bool) SimpleStatement {
	return SimpleStatement{Query: s.Render(pretty)}
}

// Validate reports whether the rendered text is fully structured or
// contains caller text that was not checked.
func (s Select) Validate() cqlir.ValidationResult {
	return cqlir.Validate(s.SelectorList(), s.RelationList())
}
