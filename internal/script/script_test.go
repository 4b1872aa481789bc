package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func write(b *Builder) string {
	b.Append("SELECT").IncreaseIndent().
		NewLine().Append("a,").
		NewLine().Append("b").
		DecreaseIndent().
		NewLine().Append("FROM t")
	return b.String()
}

func TestBuilder_Compact(t *testing.T) {
	assert.Equal(t, "SELECT a, b FROM t", write(New(false)))
}

func TestBuilder_Pretty(t *testing.T) {
	assert.Equal(t, "SELECT\n  a,\n  b\nFROM t", write(New(true)))
}

func TestBuilder_ZeroValueIsCompact(t *testing.T) {
	var b Builder
	assert.False(t, b.Pretty())
	assert.Equal(t, "SELECT a, b FROM t", write(&b))
}

func TestBuilder_NestedIndent(t *testing.T) {
	b := New(true)
	b.Append("x").IncreaseIndent().IncreaseIndent().NewLine().Append("y")

	assert.Equal(t, 2, b.Indent())
	assert.Equal(t, "x\n    y", b.String())
}

func TestBuilder_DecreaseBelowZeroIsNoop(t *testing.T) {
	b := New(true)
	b.DecreaseIndent().DecreaseIndent()
	assert.Equal(t, 0, b.Indent())

	b.IncreaseIndent()
	assert.Equal(t, 1, b.Indent())
}
