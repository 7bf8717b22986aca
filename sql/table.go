package sql

import (
	"fmt"
	"strings"
)

// Qualifier says where a table lives: in an existing namespace, in a single level schema
// given by name, or nowhere.
type Qualifier struct {
	ns     *Namespace
	schema string
	kind   qualifierKind
}

type qualifierKind int

const (
	unqualified qualifierKind = iota
	inNamespace
	inSchema
)

var Unqualified = Qualifier{}

func InNamespace(ns *Namespace) Qualifier {
	if ns == nil {
		return Unqualified
	}
	return Qualifier{ns: ns, kind: inNamespace}
}

// InSchema qualifies a table by a new schema named nam which has no parent.
func InSchema(nam string) Qualifier {
	return Qualifier{schema: nam, kind: inSchema}
}

func (q Qualifier) namespace() (*Namespace, error) {
	switch q.kind {
	case unqualified:
		return nil, nil
	case inNamespace:
		return q.ns, nil
	case inSchema:
		return NewNamespace(q.schema, nil)
	}
	panic(fmt.Sprintf("unexpected qualifier kind: %d", q.kind))
}

// Table is a named object, optionally qualified by a namespace.
type Table struct {
	Identifier
	ns *Namespace
}

func NewTable(nam string, q Qualifier) (Table, error) {
	id, err := NewIdentifier(nam)
	if err != nil {
		return Table{}, fmt.Errorf("sql: table: %w", ErrInvalidName)
	}
	ns, err := q.namespace()
	if err != nil {
		return Table{}, fmt.Errorf("sql: table %s: %w", nam, err)
	}
	return Table{
		Identifier: id,
		ns:         ns,
	}, nil
}

func (tbl Table) Namespace() *Namespace {
	return tbl.ns
}

func (tbl Table) WithAlias(alias string) Table {
	tbl.Identifier = tbl.Identifier.WithAlias(alias)
	return tbl
}

// Path returns the names of the namespaces containing tbl, root first, followed by the name
// of tbl.
func (tbl Table) Path() ([]string, error) {
	if tbl.ns == nil {
		return []string{tbl.name}, nil
	}
	path, err := tbl.ns.Path()
	if err != nil {
		return nil, err
	}
	return append(path, tbl.name), nil
}

func (tbl Table) Equal(other Table) bool {
	return tbl.name == other.name && tbl.ns.Equal(other.ns)
}

func (tbl Table) render(quote, aliasQuote rune, withAlias, asKeyword bool) string {
	var buf strings.Builder
	if tbl.ns != nil {
		tbl.ns.writeTo(&buf, quote)
		buf.WriteByte('.')
	}
	writeQuoted(&buf, tbl.name, quote)
	if withAlias {
		writeAlias(&buf, tbl.alias, aliasQuote, asKeyword)
	}
	return buf.String()
}

func (tbl Table) Render(quote rune, withAlias bool) string {
	return tbl.render(quote, quote, withAlias, false)
}

func (tbl Table) String() string {
	return tbl.Render('"', false)
}
