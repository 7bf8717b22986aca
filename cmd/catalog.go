package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/leftmike/pika/parser"
	"github.com/leftmike/pika/repl"
	"github.com/leftmike/pika/sql"
)

var (
	catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Manage the catalog of tables",
	}

	errNoCatalog = errors.New("pika: no catalog; use --catalog-file")
)

func init() {
	catalogCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the tables in the catalog",
			Args:  cobra.NoArgs,
			RunE: withCatalog(func(ses *repl.Session, args []string) error {
				listCatalog(ses, os.Stdout)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add ref...",
			Short: "Add tables to the catalog",
			Args:  cobra.MinimumNArgs(1),
			RunE: withCatalog(func(ses *repl.Session, args []string) error {
				return eachTable(args, func(ref string, tbl sql.Table) error {
					added, err := ses.Catalog.Add(tbl)
					if err != nil {
						return err
					}
					if !added {
						fmt.Printf("%s: already in catalog\n", ref)
					}
					return nil
				})
			}),
		},
		&cobra.Command{
			Use:   "remove ref...",
			Short: "Remove tables from the catalog",
			Args:  cobra.MinimumNArgs(1),
			RunE: withCatalog(func(ses *repl.Session, args []string) error {
				return eachTable(args, func(ref string, tbl sql.Table) error {
					removed, err := ses.Catalog.Remove(tbl)
					if err != nil {
						return err
					}
					if !removed {
						fmt.Printf("%s: not in catalog\n", ref)
					}
					return nil
				})
			}),
		},
	)

	pikaCmd.AddCommand(catalogCmd)
}

func withCatalog(fn func(ses *repl.Session, args []string) error) func(cmd *cobra.Command,
	args []string) error {

	return func(cmd *cobra.Command, args []string) error {
		if catalogFile == "" {
			return errNoCatalog
		}

		ses, err := newSession()
		if err != nil {
			return err
		}
		defer closeSession(ses)

		return fn(ses, args)
	}
}

func eachTable(args []string, fn func(ref string, tbl sql.Table) error) error {
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
				err = fn(tbl.Render(0, true), tbl)
				if err != nil {
					return fmt.Errorf("pika: %s", err)
				}
			}
		}
	}
	return nil
}

func listCatalog(ses *repl.Session, w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader([]string{"namespace", "name", "alias", "sql"})

	for _, tbl := range ses.Catalog.Tables() {
		var ns string
		if tbl.Namespace() != nil {
			ns = tbl.Namespace().Render(0)
		}
		alias, _ := tbl.Alias()
		tw.Append([]string{ns, tbl.Name(), alias, ses.Dialect.Table(tbl, true)})
	}

	tw.Render()
	fmt.Fprintf(w, "(%d rows)\n", tw.NumLines())
}
