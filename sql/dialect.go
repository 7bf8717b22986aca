package sql

import (
	"fmt"
	"sort"
	"strings"
)

// Dialect describes how a database quotes identifiers and aliases.
type Dialect struct {
	Name       string
	Quote      rune
	AliasQuote rune
	AsKeyword  bool
}

var (
	dialects = map[string]Dialect{
		"ansi":     {Name: "ansi", Quote: '"', AliasQuote: '"'},
		"mysql":    {Name: "mysql", Quote: '`', AliasQuote: '`'},
		"none":     {Name: "none"},
		"oracle":   {Name: "oracle", Quote: '"', AliasQuote: '"'},
		"postgres": {Name: "postgres", Quote: '"', AliasQuote: '"', AsKeyword: true},
		"sqlite":   {Name: "sqlite", Quote: '"', AliasQuote: '"', AsKeyword: true},
	}
)

func LookupDialect(nam string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(nam)]
	if !ok {
		return Dialect{}, fmt.Errorf("sql: dialect %s: %w", nam, ErrUnknownDialect)
	}
	return d, nil
}

func ListDialects() []string {
	var names []string
	for nam := range dialects {
		names = append(names, nam)
	}
	sort.Strings(names)
	return names
}

// WithAsKeyword returns a copy of d that puts AS between a table and its alias.
func (d Dialect) WithAsKeyword(asKeyword bool) Dialect {
	d.AsKeyword = asKeyword
	return d
}

func (d Dialect) Namespace(ns *Namespace) string {
	return ns.Render(d.Quote)
}

func (d Dialect) Table(tbl Table, withAlias bool) string {
	return tbl.render(d.Quote, d.AliasQuote, withAlias, d.AsKeyword)
}

func (d Dialect) String() string {
	return d.Name
}
