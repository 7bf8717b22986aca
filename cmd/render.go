package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leftmike/pika/flags"
	"github.com/leftmike/pika/parser"
	"github.com/leftmike/pika/repl"
)

var (
	renderCmd = &cobra.Command{
		Use:   "render ref...",
		Short: "Print each table reference quoted and qualified",
		Example: `  pika render x_db.x_schema.test_table
  pika --dialect mysql render "x_schema.test_table AS t, other"`,
		Args: cobra.MinimumNArgs(1),
		RunE: renderRun,
	}
)

func init() {
	pikaCmd.AddCommand(renderCmd)
}

func renderRun(cmd *cobra.Command, args []string) error {
	ses, err := newSession()
	if err != nil {
		return err
	}
	defer closeSession(ses)

	return renderArgs(ses, args, os.Stdout)
}

func renderArgs(ses *repl.Session, args []string, w io.Writer) error {
	for idx, arg := range args {
		p := parser.NewParser(strings.NewReader(arg), fmt.Sprintf("args[%d]", idx))
		for {
			tbls, err := p.Parse()
			if err == io.EOF {
				break
			} else if err != nil {
				return fmt.Errorf("pika: %s", err)
			}

			for _, tbl := range tbls {
				if ses.Catalog != nil {
					_, err = ses.Catalog.Add(tbl)
					if err != nil {
						return fmt.Errorf("pika: %s", err)
					}
				}
				fmt.Fprintln(w, ses.Dialect.Table(tbl, ses.Flags.GetFlag(flags.WithAlias)))
			}
		}
	}
	return nil
}
