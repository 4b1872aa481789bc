package querydef

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cqlb/internal/statement"
)

func parse(t *testing.T, src string) Definition {
	t.Helper()
	var def Definition
	require.NoError(t, yaml.Unmarshal([]byte(src), &def))
	return def
}

func TestCompile_Renders(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "star",
			src:  "table: foo\nselectors: [{all: true}]",
			want: `SELECT * FROM "foo"`,
		},
		{
			name: "quoted identifiers keep case",
			src:  "keyspace: '\"Ks\"'\ntable: Foo\nselectors: [{column: '\"Bar\"'}]",
			want: `SELECT "Bar" FROM "Ks"."foo"`,
		},
		{
			name: "arithmetic",
			src: `table: foo
selectors:
  - product:
      - opposite: {column: bar}
      - sum: [{column: baz}, {raw: "1"}]`,
			want: `SELECT -"bar" * ("baz" + 1) FROM "foo"`,
		},
		{
			name: "single alias",
			src:  "table: foo\nselectors: [{count_all: true, as: total}]",
			want: `SELECT count(*) AS "total" FROM "foo"`,
		},
		{
			name: "field path",
			src:  "table: foo\nselectors: [{field: [user, address, city]}]",
			want: `SELECT "user"."address"."city" FROM "foo"`,
		},
		{
			name: "functions",
			src: `table: foo
selectors:
  - function: {name: max, args: [{column: v}]}
  - function: {keyspace: ks, name: f}
  - writetime: v
  - ttl: v
  - divider: [{column: a}, {column: b}]
  - remainder: [{column: a}, {raw: "2"}]
  - difference: [{column: a}, {column: b}]`,
			want: `SELECT "max"("v"), "ks"."f"(), writetime("v"), ttl("v"), "a" / "b", "a" % 2, "a" - "b" FROM "foo"`,
		},
		{
			name: "relations",
			src: `table: foo
selectors: [{all: true}]
where:
  - {column: k, op: in, values: [{marker: "?"}, {marker: "?"}]}
  - {column: k, op: in, value: {marker: ks}}
  - {component: {column: user, index: {raw: "'name'"}}, op: eq, value: {marker: "?"}}
  - {column: n, op: like, value: {raw: "'a%'"}}
  - {column: m, op: contains_key, value: {marker: "?"}}
  - {column: a, op: lt, value: {raw: "1"}}
  - {column: a, op: lte, value: {raw: "2"}}
  - {column: a, op: ne, value: {raw: "3"}}
  - {tuple: [c1, c2], op: in, values: [{tuple: [{raw: "1"}, {raw: "2"}]}]}
  - {custom_index: {index: my_index, expression: {raw: "'custom expression'"}}}
  - {raw: "c = 1"}`,
			want: `SELECT * FROM "foo" WHERE "k" IN (?,?) AND "k" IN :"ks" AND "user"['name'] = ? ` +
				`AND "n" LIKE 'a%' AND "m" CONTAINS KEY ? AND "a" < 1 AND "a" <= 2 AND "a" != 3 ` +
				`AND ("c1","c2") IN ((1,2)) AND expr("my_index",'custom expression') AND c = 1`,
		},
		{
			name: "anonymous limit marker",
			src:  "table: foo\nselectors: [{all: true}]\nlimit_marker: '?'\njson: true",
			want: `SELECT JSON * FROM "foo" LIMIT ?`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stmt, err := Compile(parse(t, tc.src))
			require.NoError(t, err)
			assert.Equal(t, tc.want, stmt.String())
		})
	}
}

func TestCompile_StatementErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		field    string
		argument bool
	}{
		{"zero limit", "table: foo\nselectors: [{all: true}]\nlimit: 0", "limit", true},
		{"negative limit", "table: foo\nselectors: [{all: true}]\nlimit: -3", "limit", true},
		{"star in batch", "table: foo\nselectors: [{column: a}, {all: true}]", "selectors", true},
		{"alias on star", "table: foo\nselectors: [{all: true, as: x}]", "selectors[0].as", false},
		{"alias on star in batch", "table: foo\nselectors: [{all: true, as: x}, {all: true}]", "selectors[0].as", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(parse(t, tc.src))
			require.Error(t, err)

			var ce *CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.field, ce.Field)

			assert.Equal(t, tc.argument, statement.IsInvalidArgument(err))
			assert.Equal(t, !tc.argument, statement.IsInvalidState(err))
		})
	}
}

func TestCompile_DefinitionErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"missing table", "selectors: [{all: true}]", "table"},
		{"bad table", "table: 'a b'", "table"},
		{"empty selector", "table: foo\nselectors: [{as: x}]", "selectors[0]"},
		{"two kinds", "table: foo\nselectors: [{column: a, raw: b}]", "selectors[0]"},
		{"one operand", "table: foo\nselectors: [{sum: [{column: a}]}]", "selectors[0].sum"},
		{"short field path", "table: foo\nselectors: [{field: [user]}]", "selectors[0].field"},
		{"missing op", "table: foo\nwhere: [{column: k, value: {raw: '1'}}]", "where[0].op"},
		{"unknown op", "table: foo\nwhere: [{column: k, op: between, value: {raw: '1'}}]", "where[0].op"},
		{"like on tuple", "table: foo\nwhere: [{tuple: [a, b], op: like, value: {raw: '1'}}]", "where[0].op"},
		{"contains on token", "table: foo\nwhere: [{token: [a], op: contains, value: {raw: '1'}}]", "where[0].op"},
		{"missing value", "table: foo\nwhere: [{column: k, op: eq}]", "where[0].value"},
		{"values without in", "table: foo\nwhere: [{column: k, op: eq, values: [{raw: '1'}]}]", "where[0].values"},
		{"not null with value", "table: foo\nwhere: [{column: k, op: not_null, value: {raw: '1'}}]", "where[0].op"},
		{"empty token", "table: foo\nwhere: [{token: [], op: gt, value: {raw: '1'}}]", "where[0].token"},
		{"empty term", "table: foo\nwhere: [{column: k, op: eq, value: {}}]", "where[0].value"},
		{"raw with op", "table: foo\nwhere: [{raw: 'k = 1', op: eq}]", "where[0]"},
		{"two limits", "table: foo\nlimit: 1\nlimit_marker: l", "limit"},
		{"bad marker", "table: foo\nlimit_marker: 'a-b'", "limit_marker"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(parse(t, tc.src))
			require.Error(t, err)

			var ce *CompileError
			require.True(t, errors.As(err, &ce), "got %T: %v", err, err)
			assert.Equal(t, tc.field, ce.Field)
			assert.False(t, ce.Pos.IsValid())
		})
	}
}

func TestCompileError_Format(t *testing.T) {
	err := &CompileError{Field: "limit", Message: "bad"}
	assert.Equal(t, "limit: bad", err.Error())
	assert.Nil(t, err.Unwrap())
}
