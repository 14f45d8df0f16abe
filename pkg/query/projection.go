// Package query provides SQL query building utilities with projection mapping.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view property names to qualified column references (alias.column).
// It defines the table, alias, joins, and column mappings for SQL query construction.
type ProjectionMap struct {
	schema       string
	table        string
	alias        string
	currentAlias string
	joins        []string
	columns      map[string]string
	columnList   []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:       schema,
		table:        table,
		alias:        alias,
		currentAlias: alias,
		columns:      make(map[string]string),
		columnList:   make([]string, 0),
	}
}

// Project adds a column mapping from database column to view property name.
// Columns project against the most recently joined table, or the base table
// if no Join has been declared.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.currentAlias, column)
	p.columns[viewName] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// Filter adds a column mapping for WHERE and ORDER BY use without
// adding the column to the SELECT list. Like Project, the column
// qualifies against the most recently joined table.
func (p *ProjectionMap) Filter(column, viewName string) *ProjectionMap {
	p.columns[viewName] = fmt.Sprintf("%s.%s", p.currentAlias, column)
	return p
}

// Join adds a joined table to the projection. Subsequent Project calls
// qualify columns with the joined table's alias.
func (p *ProjectionMap) Join(schema, table, alias, joinType, condition string) *ProjectionMap {
	p.joins = append(p.joins, fmt.Sprintf(
		"%s JOIN %s.%s %s ON %s",
		joinType, schema, table, alias, condition,
	))
	p.currentAlias = alias
	return p
}

// Table returns the fully qualified base table reference with alias (schema.table alias).
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// From returns the full FROM clause body: base table plus any join clauses.
func (p *ProjectionMap) From() string {
	if len(p.joins) == 0 {
		return p.Table()
	}
	return p.Table() + " " + strings.Join(p.joins, " ")
}

// Column returns the qualified column for a view property name, or the input if not mapped.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Mapped reports whether a view property name has a column mapping.
// Callers passing client-supplied field names should check this before
// building clauses, since Column falls back to the raw input.
func (p *ProjectionMap) Mapped(viewName string) bool {
	_, ok := p.columns[viewName]
	return ok
}

// Columns returns all mapped columns as a comma-separated string.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}
