package querydef

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/cqlb/internal/cqlir"
	"github.com/roach88/cqlb/internal/ident"
	"github.com/roach88/cqlb/internal/statement"
)

// CompileError reports a definition that cannot be turned into a statement.
type CompileError struct {
	// Field is the path of the offending element, e.g. "selectors[2].sum".
	Field   string
	Message string
	Pos     token.Pos

	// Err is the underlying statement or identifier error, if any.
	Err error
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// compiler carries the definition position into every error it reports.
type compiler struct {
	pos token.Pos
}

func (c *compiler) errorf(field, format string, args ...any) *CompileError {
	return &CompileError{Field: field, Message: fmt.Sprintf(format, args...), Pos: c.pos}
}

func (c *compiler) wrap(field string, err error) *CompileError {
	return &CompileError{Field: field, Message: err.Error(), Pos: c.pos, Err: err}
}

// Compile builds the statement a definition describes.
func Compile(def Definition) (statement.Select, error) {
	c := &compiler{pos: def.Pos}

	if def.Table == "" {
		return statement.Select{}, c.errorf("table", "table is required")
	}
	table, err := c.identifier("table", def.Table)
	if err != nil {
		return statement.Select{}, err
	}
	var keyspace ident.Identifier
	if def.Keyspace != "" {
		if keyspace, err = c.identifier("keyspace", def.Keyspace); err != nil {
			return statement.Select{}, err
		}
	}

	stmt := statement.SelectFromIDs(keyspace, table)
	if def.JSON {
		stmt = stmt.JSON()
	}
	if def.Distinct {
		stmt = stmt.Distinct()
	}

	if stmt, err = c.addSelectors(stmt, def.Selectors); err != nil {
		return statement.Select{}, err
	}

	relations := make([]cqlir.Relation, 0, len(def.Where))
	for i, rd := range def.Where {
		rel, err := c.relation(fmt.Sprintf("where[%d]", i), rd)
		if err != nil {
			return statement.Select{}, err
		}
		relations = append(relations, rel)
	}
	stmt = stmt.Where(relations...)

	switch {
	case def.Limit != nil && def.LimitMarker != "":
		return statement.Select{}, c.errorf("limit", "limit and limit_marker are mutually exclusive")
	case def.Limit != nil:
		if stmt, err = stmt.Limit(*def.Limit); err != nil {
			return statement.Select{}, c.wrap("limit", err)
		}
	case def.LimitMarker != "":
		marker, err := c.marker("limit_marker", def.LimitMarker)
		if err != nil {
			return statement.Select{}, err
		}
		stmt = stmt.LimitMarker(marker)
	}

	if def.AllowFiltering {
		stmt = stmt.AllowFiltering()
	}
	return stmt, nil
}

// addSelectors adds a single selector through Selector and As, and a list
// through the Selectors batch, so a definition obeys the same "*" rules as
// a Go caller.
func (c *compiler) addSelectors(stmt statement.Select, defs []SelectorDef) (statement.Select, error) {
	switch len(defs) {
	case 0:
		return stmt, nil
	case 1:
		sel, err := c.selector("selectors[0]", defs[0])
		if err != nil {
			return statement.Select{}, err
		}
		stmt = stmt.Selector(sel)
		if defs[0].As == "" {
			return stmt, nil
		}
		alias, err := c.identifier("selectors[0].as", defs[0].As)
		if err != nil {
			return statement.Select{}, err
		}
		if stmt, err = stmt.AsID(alias); err != nil {
			return statement.Select{}, c.wrap("selectors[0].as", err)
		}
		return stmt, nil
	}

	batch := make([]cqlir.Selector, 0, len(defs))
	for i, d := range defs {
		field := fmt.Sprintf("selectors[%d]", i)
		sel, err := c.selector(field, d)
		if err != nil {
			return statement.Select{}, err
		}
		if d.As != "" {
			alias, err := c.identifier(field+".as", d.As)
			if err != nil {
				return statement.Select{}, err
			}
			if sel, err = cqlir.WithAlias(sel, alias); err != nil {
				return statement.Select{}, c.wrap(field+".as", &statement.Error{
					Code:    statement.ErrCodeInvalidState,
					Op:      "As",
					Message: err.Error(),
				})
			}
		}
		batch = append(batch, sel)
	}

	stmt, err := stmt.Selectors(batch...)
	if err != nil {
		return statement.Select{}, c.wrap("selectors", err)
	}
	return stmt, nil
}

func (c *compiler) selector(field string, d SelectorDef) (cqlir.Selector, error) {
	kinds := selectorKinds(d)
	if len(kinds) != 1 {
		return nil, c.exactlyOne(field, "selector", kinds)
	}

	switch kinds[0] {
	case "all":
		return cqlir.All(), nil
	case "count_all":
		return cqlir.CountAll(), nil
	case "column":
		id, err := c.identifier(field+".column", d.Column)
		if err != nil {
			return nil, err
		}
		return cqlir.ColumnID(id), nil
	case "field":
		return c.fieldPath(field+".field", d.Field)
	case "sum":
		return c.binary(field+".sum", d.Sum, cqlir.Sum)
	case "difference":
		return c.binary(field+".difference", d.Difference, cqlir.Difference)
	case "product":
		return c.binary(field+".product", d.Product, cqlir.Product)
	case "divider":
		return c.binary(field+".divider", d.Divider, cqlir.Divider)
	case "remainder":
		return c.binary(field+".remainder", d.Remainder, cqlir.Remainder)
	case "opposite":
		arg, err := c.selector(field+".opposite", *d.Opposite)
		if err != nil {
			return nil, err
		}
		return cqlir.Opposite(arg), nil
	case "function":
		return c.function(field+".function", *d.Function)
	case "writetime":
		id, err := c.identifier(field+".writetime", d.WriteTime)
		if err != nil {
			return nil, err
		}
		return cqlir.CellMetadataSelector{Function: cqlir.CellWriteTime, Column: id}, nil
	case "ttl":
		id, err := c.identifier(field+".ttl", d.TTL)
		if err != nil {
			return nil, err
		}
		return cqlir.CellMetadataSelector{Function: cqlir.CellTTL, Column: id}, nil
	default:
		return cqlir.RawSelect(d.Raw), nil
	}
}

func selectorKinds(d SelectorDef) []string {
	var kinds []string
	add := func(set bool, kind string) {
		if set {
			kinds = append(kinds, kind)
		}
	}
	add(d.All, "all")
	add(d.CountAll, "count_all")
	add(d.Column != "", "column")
	add(d.Field != nil, "field")
	add(d.Sum != nil, "sum")
	add(d.Difference != nil, "difference")
	add(d.Product != nil, "product")
	add(d.Divider != nil, "divider")
	add(d.Remainder != nil, "remainder")
	add(d.Opposite != nil, "opposite")
	add(d.Function != nil, "function")
	add(d.WriteTime != "", "writetime")
	add(d.TTL != "", "ttl")
	add(d.Raw != "", "raw")
	return kinds
}

func (c *compiler) exactlyOne(field, what string, kinds []string) *CompileError {
	if len(kinds) == 0 {
		return c.errorf(field, "%s is empty", what)
	}
	return c.errorf(field, "%s sets more than one of %s", what, strings.Join(kinds, ", "))
}

func (c *compiler) fieldPath(field string, path []string) (cqlir.Selector, error) {
	if len(path) < 2 {
		return nil, c.errorf(field, "field needs a column and at least one field name, got %d element(s)", len(path))
	}
	ids := make([]ident.Identifier, len(path))
	for i, raw := range path {
		id, err := c.identifier(fmt.Sprintf("%s[%d]", field, i), raw)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	var sel cqlir.Selector = cqlir.ColumnID(ids[0])
	for _, id := range ids[1:] {
		sel = cqlir.FieldSelector{Owner: sel, Field: id}
	}
	return sel, nil
}

func (c *compiler) binary(
	field string,
	operands []SelectorDef,
	build func(left, right cqlir.Selector) cqlir.BinaryArithmeticSelector,
) (cqlir.Selector, error) {
	if len(operands) != 2 {
		return nil, c.errorf(field, "arithmetic needs exactly 2 operands, got %d", len(operands))
	}
	left, err := c.selector(field+"[0]", operands[0])
	if err != nil {
		return nil, err
	}
	right, err := c.selector(field+"[1]", operands[1])
	if err != nil {
		return nil, err
	}
	return build(left, right), nil
}

func (c *compiler) function(field string, d FunctionDef) (cqlir.Selector, error) {
	if d.Name == "" {
		return nil, c.errorf(field+".name", "function name is required")
	}
	name, err := c.identifier(field+".name", d.Name)
	if err != nil {
		return nil, err
	}
	fn := cqlir.FunctionSelector{Name: name}
	if d.Keyspace != "" {
		if fn.Keyspace, err = c.identifier(field+".keyspace", d.Keyspace); err != nil {
			return nil, err
		}
	}
	for i, a := range d.Args {
		arg, err := c.selector(fmt.Sprintf("%s.args[%d]", field, i), a)
		if err != nil {
			return nil, err
		}
		fn.Args = append(fn.Args, arg)
	}
	return fn, nil
}

func (c *compiler) identifier(field, raw string) (ident.Identifier, error) {
	id, err := ident.Parse(raw)
	if err != nil {
		return ident.Identifier{}, c.wrap(field, err)
	}
	return id, nil
}

func (c *compiler) identifiers(field string, raws []string) ([]ident.Identifier, error) {
	if len(raws) == 0 {
		return nil, c.errorf(field, "at least one column is required")
	}
	ids := make([]ident.Identifier, len(raws))
	for i, raw := range raws {
		id, err := c.identifier(fmt.Sprintf("%s[%d]", field, i), raw)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func (c *compiler) marker(field, raw string) (cqlir.BindMarker, error) {
	if raw == "?" {
		return cqlir.Marker(), nil
	}
	id, err := c.identifier(field, raw)
	if err != nil {
		return cqlir.BindMarker{}, err
	}
	return cqlir.NamedMarkerID(id), nil
}

func (c *compiler) term(field string, d TermDef) (cqlir.Term, error) {
	var kinds []string
	if d.Marker != "" {
		kinds = append(kinds, "marker")
	}
	if d.Raw != "" {
		kinds = append(kinds, "raw")
	}
	if d.Tuple != nil {
		kinds = append(kinds, "tuple")
	}
	if len(kinds) != 1 {
		return nil, c.exactlyOne(field, "term", kinds)
	}

	switch kinds[0] {
	case "marker":
		return c.marker(field+".marker", d.Marker)
	case "raw":
		return cqlir.Raw(d.Raw), nil
	default:
		components, err := c.terms(field+".tuple", d.Tuple)
		if err != nil {
			return nil, err
		}
		return cqlir.Tuple(components...), nil
	}
}

func (c *compiler) terms(field string, defs []TermDef) ([]cqlir.Term, error) {
	out := make([]cqlir.Term, 0, len(defs))
	for i, d := range defs {
		t, err := c.term(fmt.Sprintf("%s[%d]", field, i), d)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
