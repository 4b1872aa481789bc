package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/cqlb/internal/statement"
)

// ErrNotFound is returned by Get for an unknown name.
var ErrNotFound = errors.New("statement not found")

// Entry is one named statement in the catalog.
type Entry struct {
	// ID is StatementID(Query).
	ID string `json:"id"`

	// BuildID identifies the Save call that stored the current text.
	// Saving identical text again keeps the original BuildID.
	BuildID string `json:"build_id"`

	Name        string `json:"name"`
	Keyspace    string `json:"keyspace,omitempty"`
	Table       string `json:"table"`
	Query       string `json:"query"`
	PrettyQuery string `json:"pretty_query"`

	// Checked is false when the statement contains unchecked caller text.
	Checked bool `json:"checked"`
}

// NewEntry renders stmt into an unsaved entry.
func NewEntry(name string, stmt statement.Select) Entry {
	query := stmt.Render(false)
	return Entry{
		ID:          StatementID(query),
		Name:        name,
		Keyspace:    stmt.Keyspace().Internal(),
		Table:       stmt.Table().Internal(),
		Query:       query,
		PrettyQuery: stmt.Render(true),
		Checked:     stmt.Validate().Checked,
	}
}

// Save stores e under e.Name and returns the stored entry.
//
// Saving the text already stored under the name is a no-op. Saving new text
// replaces the row and assigns a fresh BuildID.
func (c *Catalog) Save(ctx context.Context, e Entry) (Entry, error) {
	e.Name = normalizeName(e.Name)
	if e.Name == "" {
		return Entry{}, fmt.Errorf("save statement: name is required")
	}
	if e.ID == "" {
		e.ID = StatementID(e.Query)
	}
	if e.BuildID == "" {
		e.BuildID = c.ids.Generate()
	}

	res, err := c.db.ExecContext(ctx, `
		INSERT INTO statements
		(name, id, build_id, keyspace, table_name, query, pretty_query, checked)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			build_id = excluded.build_id,
			keyspace = excluded.keyspace,
			table_name = excluded.table_name,
			query = excluded.query,
			pretty_query = excluded.pretty_query,
			checked = excluded.checked
		WHERE statements.id != excluded.id
	`,
		e.Name,
		e.ID,
		e.BuildID,
		e.Keyspace,
		e.Table,
		e.Query,
		e.PrettyQuery,
		e.Checked,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("save statement %q: %w", e.Name, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		c.logger.Debug("statement unchanged", "name", e.Name, "id", e.ID)
	} else {
		c.logger.Info("statement saved", "name", e.Name, "id", e.ID, "build_id", e.BuildID)
	}

	return c.Get(ctx, e.Name)
}

// Get returns the entry stored under name, or an error wrapping ErrNotFound.
func (c *Catalog) Get(ctx context.Context, name string) (Entry, error) {
	name = normalizeName(name)
	row := c.db.QueryRowContext(ctx, `
		SELECT name, id, build_id, keyspace, table_name, query, pretty_query, checked
		FROM statements
		WHERE name = ?
	`, name)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("get statement %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get statement %q: %w", name, err)
	}
	return e, nil
}

// List returns every entry ordered by name.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, id, build_id, keyspace, table_name, query, pretty_query, checked
		FROM statements
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list statements: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	return entries, nil
}

// Delete removes the entry stored under name. Deleting an unknown name
// returns an error wrapping ErrNotFound.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	name = normalizeName(name)
	res, err := c.db.ExecContext(ctx, `DELETE FROM statements WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete statement %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete statement %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete statement %q: %w", name, ErrNotFound)
	}
	c.logger.Info("statement deleted", "name", name)
	return nil
}

// normalizeName puts a name in NFC so composed and decomposed spellings of
// the same text address the same row.
func normalizeName(name string) string {
	return norm.NFC.String(name)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	err := s.Scan(&e.Name, &e.ID, &e.BuildID, &e.Keyspace, &e.Table, &e.Query, &e.PrettyQuery, &e.Checked)
	return e, err
}
