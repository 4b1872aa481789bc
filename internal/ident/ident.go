// Package ident normalizes and renders CQL identifiers.
//
// CQL identifiers come in two textual forms. An unquoted name such as
// users is case-insensitive and is folded to lower case. A double-quoted
// name such as "Users" keeps its exact case, with embedded quotes escaped
// by doubling them.
//
// An Identifier always stores the internal (unquoted, unescaped) form and
// always renders the quoted form, so rendering never depends on whether the
// name would have been legal unquoted.
package ident

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Identifier is a normalized CQL name.
// The zero value represents an absent identifier.
type Identifier struct {
	internal string
}

// FromCQL builds an identifier from its CQL form.
// Quoted input keeps its case; unquoted input is folded to lower case.
// FromCQL never fails; use Parse when the input comes from untrusted text.
func FromCQL(raw string) Identifier {
	if isQuoted(raw) {
		return FromInternal(unquote(raw))
	}
	return FromInternal(fold(raw))
}

// FromInternal builds an identifier from an already-normalized name.
// The name is used verbatim apart from NFC normalization.
func FromInternal(name string) Identifier {
	return Identifier{internal: norm.NFC.String(name)}
}

// Parse is the validating form of FromCQL.
//
// Rejected inputs:
//   - the empty string, or "" (an empty quoted name)
//   - a quoted name with an unescaped quote inside or a missing closing quote
//   - an unquoted name containing anything outside [A-Za-z0-9_]
func Parse(raw string) (Identifier, error) {
	if raw == "" {
		return Identifier{}, &Error{Input: raw, Reason: "identifier is empty"}
	}
	if strings.HasPrefix(raw, `"`) {
		if !isQuoted(raw) {
			return Identifier{}, &Error{Input: raw, Reason: "missing closing quote"}
		}
		body := raw[1 : len(raw)-1]
		if body == "" {
			return Identifier{}, &Error{Input: raw, Reason: "identifier is empty"}
		}
		if strings.Contains(strings.ReplaceAll(body, `""`, ""), `"`) {
			return Identifier{}, &Error{Input: raw, Reason: "unescaped quote in quoted identifier"}
		}
		return FromInternal(unquote(raw)), nil
	}
	for _, r := range raw {
		if !isUnquotedRune(r) {
			return Identifier{}, &Error{Input: raw, Reason: fmt.Sprintf("invalid character %q in unquoted identifier", r)}
		}
	}
	return FromInternal(fold(raw)), nil
}

// CQL renders the quoted, escaped form of the identifier.
func (id Identifier) CQL() string {
	return `"` + strings.ReplaceAll(id.internal, `"`, `""`) + `"`
}

// Internal returns the normalized name without quoting.
func (id Identifier) Internal() string {
	return id.internal
}

// IsZero reports whether the identifier is absent.
func (id Identifier) IsZero() bool {
	return id.internal == ""
}

// Equal compares two identifiers by normalized form.
func (id Identifier) Equal(other Identifier) bool {
	return id.internal == other.internal
}

// String implements fmt.Stringer with the rendered form.
func (id Identifier) String() string {
	return id.CQL()
}

// FromCQLs converts a list of CQL names.
func FromCQLs(raws ...string) []Identifier {
	ids := make([]Identifier, len(raws))
	for i, raw := range raws {
		ids[i] = FromCQL(raw)
	}
	return ids
}

// Error reports a name that Parse rejected.
type Error struct {
	Input  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Input, e.Reason)
}

func isQuoted(raw string) bool {
	return len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"'
}

func unquote(raw string) string {
	return strings.ReplaceAll(raw[1:len(raw)-1], `""`, `"`)
}

// fold lower-cases an unquoted name.
// cases.Caser is stateful, so a new one is built per call.
func fold(raw string) string {
	return cases.Lower(language.Und).String(raw)
}

func isUnquotedRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
