package sql

import (
	"fmt"
)

// TableSpec is either a bare table name or a table name with an alias.
type TableSpec struct {
	name    string
	alias   string
	aliased bool
}

func Bare(nam string) TableSpec {
	return TableSpec{name: nam}
}

func Aliased(nam, alias string) TableSpec {
	return TableSpec{name: nam, alias: alias, aliased: true}
}

func (ts TableSpec) String() string {
	if ts.aliased {
		return fmt.Sprintf("(%s, %s)", ts.name, ts.alias)
	}
	return ts.name
}

// NewTables returns one unqualified table per spec, in the same order.
func NewTables(specs ...TableSpec) ([]Table, error) {
	tbls := make([]Table, 0, len(specs))
	for idx, ts := range specs {
		tbl, err := NewTable(ts.name, Unqualified)
		if err != nil {
			return nil, fmt.Errorf("sql: tables[%d]: %w", idx, err)
		}
		if ts.aliased {
			tbl = tbl.WithAlias(ts.alias)
		}
		tbls = append(tbls, tbl)
	}
	return tbls, nil
}
