package repl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/leftmike/pika/catalog"
	"github.com/leftmike/pika/flags"
	"github.com/leftmike/pika/parser"
	"github.com/leftmike/pika/sql"
)

type Session struct {
	Dialect sql.Dialect
	Flags   flags.Flags
	Catalog *catalog.Catalog // optional
}

func (ses *Session) columns() []string {
	cols := []string{"name", "alias", "sql"}
	if ses.Catalog != nil {
		cols = append(cols, "new")
	}
	return cols
}

func (ses *Session) row(tbl sql.Table) ([]string, error) {
	alias, _ := tbl.Alias()
	row := []string{
		tbl.Name(),
		alias,
		ses.Dialect.Table(tbl, ses.Flags.GetFlag(flags.WithAlias)),
	}

	if ses.Catalog != nil {
		added, err := ses.Catalog.Add(tbl)
		if err != nil {
			return nil, err
		}
		row = append(row, strconv.FormatBool(added))
	}
	return row, nil
}

// ReplTables renders each list of tables read by p as a table written to w. Errors are
// written to w and do not stop the session.
func ReplTables(ses *Session, p parser.Parser, w io.Writer) {
	for {
		tbls, err := p.Parse()
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}

		tw := tablewriter.NewWriter(w)
		tw.SetAutoFormatHeaders(false)
		tw.SetAutoWrapText(false)
		tw.SetHeader(ses.columns())

		for _, tbl := range tbls {
			row, err := ses.row(tbl)
			if err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			tw.Append(row)
		}

		tw.Render()
		fmt.Fprintf(w, "(%d rows)\n", tw.NumLines())
	}
}
