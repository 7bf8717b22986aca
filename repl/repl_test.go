package repl_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andreyvit/diff"

	"github.com/leftmike/pika/catalog"
	"github.com/leftmike/pika/flags"
	"github.com/leftmike/pika/parser"
	"github.com/leftmike/pika/repl"
	"github.com/leftmike/pika/sql"
	"github.com/leftmike/pika/testutil"
)

func runRepl(t *testing.T, ses *repl.Session, src, want string) {
	t.Helper()

	var buf bytes.Buffer
	repl.ReplTables(ses, parser.NewParser(strings.NewReader(src), "test"), &buf)
	if got := buf.String(); got != want {
		t.Errorf("ReplTables(%q):\n%s", src, diff.LineDiff(want, got))
	}
}

func TestReplTables(t *testing.T) {
	err := testutil.CleanDir("testdata", ".gitignore")
	if err != nil {
		t.Fatal(err)
	}

	d, err := sql.LookupDialect("ansi")
	if err != nil {
		t.Fatal(err)
	}
	ses := &repl.Session{
		Dialect: d,
		Flags:   flags.Default(),
		Catalog: catalog.New(testutil.SetupLogger(filepath.Join("testdata", "repl.log"))),
	}

	runRepl(t, ses, "x_schema.t1 a, t2;\nbad..;\nt2 b, t3 a;\n",
		`+------+-------+---------------------+------+
| name | alias |         sql         | new  |
+------+-------+---------------------+------+
| t1   | a     | "x_schema"."t1" "a" | true |
| t2   |       | "t2"                | true |
+------+-------+---------------------+------+
(2 rows)
parser: test:2:5: expected a name after ., got rune .
catalog: table "t3": alias a: alias already in use
+------+-------+----------+-------+
| name | alias |   sql    |  new  |
+------+-------+----------+-------+
| t2   | b     | "t2" "b" | false |
+------+-------+----------+-------+
(1 rows)
`)
}

func TestReplTablesNoCatalog(t *testing.T) {
	d, err := sql.LookupDialect("mysql")
	if err != nil {
		t.Fatal(err)
	}
	flgs := flags.Default()
	flgs[flags.WithAlias] = false
	ses := &repl.Session{
		Dialect: d,
		Flags:   flgs,
	}

	runRepl(t, ses, "x_db.x_schema.test_table AS t",
		"+------------+-------+--------------------------------+\n"+
			"|    name    | alias |              sql               |\n"+
			"+------------+-------+--------------------------------+\n"+
			"| test_table | t     | `x_db`.`x_schema`.`test_table` |\n"+
			"+------------+-------+--------------------------------+\n"+
			"(1 rows)\n")
}
