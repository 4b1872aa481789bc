package cqlir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/cqlb/internal/ident"
)

func TestColumnRelationBuilder_Operators(t *testing.T) {
	b := IsColumn("k")
	m := Marker()

	tests := []struct {
		name string
		rel  DefaultRelation
		op   string
	}{
		{"eq", b.Eq(m), OpEq},
		{"lt", b.Lt(m), OpLt},
		{"lte", b.Lte(m), OpLte},
		{"gt", b.Gt(m), OpGt},
		{"ne", b.Ne(m), OpNe},
		{"like", b.Like(m), OpLike},
		{"in", b.In(m), OpIn},
		{"contains", b.Contains(m), OpContains},
		{"contains key", b.ContainsKey(m), OpContainsKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.op, tc.rel.Operator)
			assert.Equal(t, ColumnLHS{Column: ident.FromCQL("k")}, tc.rel.Left)
			assert.Equal(t, m, tc.rel.Right)
		})
	}
}

// Gte has always emitted the strict symbol; callers rely on the text.
func TestGte_EmitsStrictGreaterThan(t *testing.T) {
	assert.Equal(t, OpGt, IsColumn("k").Gte(Marker()).Operator)
	assert.Equal(t, OpGt, IsTuple("a", "b").Gte(Marker()).Operator)
	assert.Equal(t, OpGt, IsToken("a").Gte(Marker()).Operator)

	// The explicit primitive still reaches the real symbol.
	assert.Equal(t, OpGte, IsColumn("k").Build(OpGte, Marker()).Operator)
}

func TestNotNull_HasNoRightHandSide(t *testing.T) {
	rel := IsColumn("v").NotNull()

	assert.Equal(t, OpIsNotNull, rel.Operator)
	assert.Nil(t, rel.Right)
}

func TestInValues_BuildsTuple(t *testing.T) {
	rel := IsColumn("k").InValues(Marker(), Marker())

	assert.Equal(t, OpIn, rel.Operator)
	assert.Equal(t, Tuple(Marker(), Marker()), rel.Right)

	tupleRel := IsTuple("a", "b").InValues(Tuple(Raw("1"), Raw("2")))
	assert.Equal(t, NewTupleLHS(ident.FromCQLs("a", "b")...), tupleRel.Left)
	assert.Equal(t, Tuple(Tuple(Raw("1"), Raw("2"))), tupleRel.Right)
}

func TestIsTupleIDs_CopiesColumns(t *testing.T) {
	ids := ident.FromCQLs("a", "b")
	b := IsTupleIDs(ids...)
	ids[0] = ident.FromCQL("z")

	lhs := b.LeftHandSide().(TupleLHS)
	assert.Equal(t, `"a"`, lhs.Columns[0].CQL())
}

func TestIsColumnComponent(t *testing.T) {
	rel := IsColumnComponent("user", Raw("'name'")).Eq(Marker())

	lhs, ok := rel.Left.(ColumnComponentLHS)
	assert.True(t, ok)
	assert.Equal(t, `"user"`, lhs.Column.CQL())
	assert.Equal(t, Raw("'name'"), lhs.Index)
}

func TestIsCustomIndex_AndRaw(t *testing.T) {
	ci := IsCustomIndex("my_index", Raw("'custom expression'"))
	assert.Equal(t, `"my_index"`, ci.Index.CQL())
	assert.Equal(t, Raw("'custom expression'"), ci.Expression)

	assert.Equal(t, RawRelation{Text: "k = 1"}, IsRaw("k = 1"))
}
