package sql

import (
	"fmt"
	"strings"
)

// Identifier is a quotable name with an optional alias. The alias is only used when rendering;
// it never takes part in equality.
type Identifier struct {
	name  string
	alias string
}

func NewIdentifier(nam string) (Identifier, error) {
	if nam == "" {
		return Identifier{}, fmt.Errorf("sql: identifier: %w", ErrInvalidName)
	}
	return Identifier{name: nam}, nil
}

func (id Identifier) Name() string {
	return id.name
}

func (id Identifier) Alias() (string, bool) {
	return id.alias, id.alias != ""
}

// WithAlias returns a copy of id carrying alias; an empty alias removes any alias.
func (id Identifier) WithAlias(alias string) Identifier {
	id.alias = alias
	return id
}

func (id Identifier) Equal(other Identifier) bool {
	return id.name == other.name
}

func (id Identifier) Render(quote rune, withAlias bool) string {
	var buf strings.Builder
	writeQuoted(&buf, id.name, quote)
	if withAlias {
		writeAlias(&buf, id.alias, quote, false)
	}
	return buf.String()
}

func (id Identifier) String() string {
	return id.Render('"', false)
}

// A quote of zero writes s unquoted.
func writeQuoted(buf *strings.Builder, s string, quote rune) {
	if quote != 0 {
		buf.WriteRune(quote)
	}
	buf.WriteString(s)
	if quote != 0 {
		buf.WriteRune(quote)
	}
}

func writeAlias(buf *strings.Builder, alias string, quote rune, asKeyword bool) {
	if alias == "" {
		return
	}
	if asKeyword {
		buf.WriteString(" AS ")
	} else {
		buf.WriteByte(' ')
	}
	writeQuoted(buf, alias, quote)
}
