// Package script accumulates statement text with optional pretty layout.
//
// In compact mode a line break is a single space, so a statement renders
// on one line. In pretty mode a line break is "\n" followed by two spaces
// per indentation level.
package script

import (
	"strings"
)

const indentUnit = "  "

// Builder is a write-once text buffer. The zero value is a compact builder.
type Builder struct {
	sb     strings.Builder
	pretty bool
	indent int
}

// New returns a builder in compact or pretty mode.
func New(pretty bool) *Builder {
	return &Builder{pretty: pretty}
}

// Pretty reports whether the builder emits multi-line output.
func (b *Builder) Pretty() bool {
	return b.pretty
}

// Append writes s verbatim.
func (b *Builder) Append(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// NewLine emits a line break in the current layout mode.
func (b *Builder) NewLine() *Builder {
	if !b.pretty {
		b.sb.WriteByte(' ')
		return b
	}
	b.sb.WriteByte('\n')
	for range b.indent {
		b.sb.WriteString(indentUnit)
	}
	return b
}

// IncreaseIndent pushes one indentation level.
func (b *Builder) IncreaseIndent() *Builder {
	b.indent++
	return b
}

// DecreaseIndent pops one indentation level. Popping at level zero is a no-op.
func (b *Builder) DecreaseIndent() *Builder {
	if b.indent > 0 {
		b.indent--
	}
	return b
}

// Indent returns the current indentation level.
func (b *Builder) Indent() int {
	return b.indent
}

// String returns the accumulated text.
func (b *Builder) String() string {
	return b.sb.String()
}
