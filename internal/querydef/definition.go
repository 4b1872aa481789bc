// Package querydef loads declarative query definitions and compiles them
// into statements.
//
// Definitions can be written in YAML or CUE. Both formats share one shape:
//
//	name: orders_by_customer
//	keyspace: shop
//	table: orders
//	selectors:
//	  - column: order_id
//	  - sum: [{column: subtotal}, {column: tax}]
//	    as: total
//	where:
//	  - column: customer
//	    op: eq
//	    value: {marker: "?"}
//	limit: 10
//
// Compilation goes through the public statement API only, so a definition
// can express exactly what a Go caller can and fails the same way.
package querydef

import (
	"cuelang.org/go/cue/token"
)

// Definition describes one SELECT statement.
type Definition struct {
	Name           string        `yaml:"name" json:"name"`
	Description    string        `yaml:"description,omitempty" json:"description,omitempty"`
	Keyspace       string        `yaml:"keyspace,omitempty" json:"keyspace,omitempty"`
	Table          string        `yaml:"table" json:"table"`
	JSON           bool          `yaml:"json,omitempty" json:"json,omitempty"`
	Distinct       bool          `yaml:"distinct,omitempty" json:"distinct,omitempty"`
	Selectors      []SelectorDef `yaml:"selectors,omitempty" json:"selectors,omitempty"`
	Where          []RelationDef `yaml:"where,omitempty" json:"where,omitempty"`
	Limit          *int          `yaml:"limit,omitempty" json:"limit,omitempty"`
	LimitMarker    string        `yaml:"limit_marker,omitempty" json:"limit_marker,omitempty"`
	AllowFiltering bool          `yaml:"allow_filtering,omitempty" json:"allow_filtering,omitempty"`

	// Pos is the source position of a CUE definition. Zero for YAML.
	Pos token.Pos `yaml:"-" json:"-"`
}

// SelectorDef describes one projected expression. Exactly one of the
// expression fields must be set; As optionally aliases it.
type SelectorDef struct {
	All        bool          `yaml:"all,omitempty" json:"all,omitempty"`
	CountAll   bool          `yaml:"count_all,omitempty" json:"count_all,omitempty"`
	Column     string        `yaml:"column,omitempty" json:"column,omitempty"`
	Field      []string      `yaml:"field,omitempty" json:"field,omitempty"` // column, then one or more field names
	Sum        []SelectorDef `yaml:"sum,omitempty" json:"sum,omitempty"`
	Difference []SelectorDef `yaml:"difference,omitempty" json:"difference,omitempty"`
	Product    []SelectorDef `yaml:"product,omitempty" json:"product,omitempty"`
	Divider    []SelectorDef `yaml:"divider,omitempty" json:"divider,omitempty"`
	Remainder  []SelectorDef `yaml:"remainder,omitempty" json:"remainder,omitempty"`
	Opposite   *SelectorDef  `yaml:"opposite,omitempty" json:"opposite,omitempty"`
	Function   *FunctionDef  `yaml:"function,omitempty" json:"function,omitempty"`
	WriteTime  string        `yaml:"writetime,omitempty" json:"writetime,omitempty"`
	TTL        string        `yaml:"ttl,omitempty" json:"ttl,omitempty"`
	Raw        string        `yaml:"raw,omitempty" json:"raw,omitempty"`

	As string `yaml:"as,omitempty" json:"as,omitempty"`
}

// FunctionDef describes a function call selector.
type FunctionDef struct {
	Keyspace string        `yaml:"keyspace,omitempty" json:"keyspace,omitempty"`
	Name     string        `yaml:"name" json:"name"`
	Args     []SelectorDef `yaml:"args,omitempty" json:"args,omitempty"`
}

// RelationDef describes one WHERE predicate.
//
// The left-hand side is one of Column, Component, Token or Tuple, combined
// with Op and a Value (or Values for "in"). CustomIndex and Raw stand alone.
type RelationDef struct {
	Column    string        `yaml:"column,omitempty" json:"column,omitempty"`
	Component *ComponentDef `yaml:"component,omitempty" json:"component,omitempty"`
	Token     []string      `yaml:"token,omitempty" json:"token,omitempty"`
	Tuple     []string      `yaml:"tuple,omitempty" json:"tuple,omitempty"`

	Op     string    `yaml:"op,omitempty" json:"op,omitempty"`
	Value  *TermDef  `yaml:"value,omitempty" json:"value,omitempty"`
	Values []TermDef `yaml:"values,omitempty" json:"values,omitempty"`

	CustomIndex *CustomIndexDef `yaml:"custom_index,omitempty" json:"custom_index,omitempty"`
	Raw         string          `yaml:"raw,omitempty" json:"raw,omitempty"`
}

// ComponentDef addresses an element of a collection column.
type ComponentDef struct {
	Column string  `yaml:"column" json:"column"`
	Index  TermDef `yaml:"index" json:"index"`
}

// CustomIndexDef queries a custom secondary index.
type CustomIndexDef struct {
	Index      string  `yaml:"index" json:"index"`
	Expression TermDef `yaml:"expression" json:"expression"`
}

// TermDef describes a value operand. Exactly one field must be set.
// Marker "?" is an anonymous bind marker; any other marker is named.
type TermDef struct {
	Marker string    `yaml:"marker,omitempty" json:"marker,omitempty"`
	Raw    string    `yaml:"raw,omitempty" json:"raw,omitempty"`
	Tuple  []TermDef `yaml:"tuple,omitempty" json:"tuple,omitempty"`
}

// Relation operator names accepted in RelationDef.Op.
const (
	OpEq          = "eq"
	OpLt          = "lt"
	OpLte         = "lte"
	OpGt          = "gt"
	OpGte         = "gte"
	OpNe          = "ne"
	OpLike        = "like"
	OpNotNull     = "not_null"
	OpIn          = "in"
	OpContains    = "contains"
	OpContainsKey = "contains_key"
)
