package catalog_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leftmike/pika/catalog"
	"github.com/leftmike/pika/parser"
	"github.com/leftmike/pika/sql"
	"github.com/leftmike/pika/testutil"
)

func parseTable(t *testing.T, s string) sql.Table {
	t.Helper()

	tbls, err := parser.NewParser(strings.NewReader(s), s).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) failed with %s", s, err)
	}
	if len(tbls) != 1 {
		t.Fatalf("Parse(%q) got %d tables want 1", s, len(tbls))
	}
	return tbls[0]
}

func listTables(cat *catalog.Catalog) []string {
	var lst []string
	for _, tbl := range cat.Tables() {
		lst = append(lst, tbl.Render(0, true))
	}
	return lst
}

func checkTables(t *testing.T, cat *catalog.Catalog, want []string) {
	t.Helper()

	got := listTables(cat)
	if strings.Join(got, "; ") != strings.Join(want, "; ") {
		t.Errorf("Tables() got %v want %v", got, want)
	}
	if cat.Len() != len(want) {
		t.Errorf("Len() got %d want %d", cat.Len(), len(want))
	}
}

func runCatalogTest(t *testing.T, cat *catalog.Catalog) {
	t.Helper()

	adds := []struct {
		s   string
		new bool
		err error
	}{
		{s: "t", new: true},
		{s: "a.t", new: true},
		{s: "parent.a.t x", new: true},
		{s: `"a".t`},
		{s: "a.t y", new: false},
		{s: "b.t y", err: catalog.ErrAliasCollision},
		{s: "q", new: true},
		{s: "t z", new: false},
	}

	for _, a := range adds {
		tbl := parseTable(t, a.s)
		ok, err := cat.Add(tbl)
		if a.err != nil {
			if !errors.Is(err, a.err) {
				t.Errorf("Add(%s) got %v want %s", a.s, err, a.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Add(%s) failed with %s", a.s, err)
		} else if ok != a.new {
			t.Errorf("Add(%s) got %v want %v", a.s, ok, a.new)
		}
	}

	checkTables(t, cat, []string{"a.t y", "parent.a.t x", "q", "t z"})

	tbl, ok := cat.Lookup(parseTable(t, "a.t"))
	if !ok {
		t.Errorf("Lookup(a.t) not found")
	} else if alias, _ := tbl.Alias(); alias != "y" {
		t.Errorf("Lookup(a.t).Alias() got %s want y", alias)
	}
	if _, ok := cat.Lookup(parseTable(t, "other.a.t")); ok {
		t.Errorf("Lookup(other.a.t) found")
	}

	tbl, ok = cat.ByAlias("x")
	if !ok || !tbl.Equal(parseTable(t, "parent.a.t")) {
		t.Errorf("ByAlias(x) got %s, %v want parent.a.t", tbl, ok)
	}
	if _, ok := cat.ByAlias("w"); ok {
		t.Errorf("ByAlias(w) found")
	}

	ok, err := cat.Remove(parseTable(t, "a.t w"))
	if err != nil || !ok {
		t.Errorf("Remove(a.t) got %v, %v want true", ok, err)
	}
	ok, err = cat.Remove(parseTable(t, "a.t"))
	if err != nil || ok {
		t.Errorf("Remove(a.t) got %v, %v want false", ok, err)
	}
	if _, ok := cat.ByAlias("y"); ok {
		t.Errorf("ByAlias(y) found after Remove")
	}

	ok, err = cat.Add(parseTable(t, "b.t y"))
	if err != nil || !ok {
		t.Errorf("Add(b.t y) got %v, %v want true", ok, err)
	}

	checkTables(t, cat, []string{"b.t y", "parent.a.t x", "q", "t z"})
}

func TestCatalog(t *testing.T) {
	err := testutil.CleanDir("testdata", ".gitignore")
	if err != nil {
		t.Fatal(err)
	}

	cat := catalog.New(testutil.SetupLogger(filepath.Join("testdata", "catalog.log")))
	runCatalogTest(t, cat)
	if err := cat.Close(); err != nil {
		t.Errorf("Close() failed with %s", err)
	}
}

func TestBBoltCatalog(t *testing.T) {
	err := testutil.CleanDir("testdata", ".gitignore")
	if err != nil {
		t.Fatal(err)
	}

	logger := testutil.SetupLogger(filepath.Join("testdata", "bbolt_catalog.log"))
	file := filepath.Join("testdata", "catalog.bbolt")
	cat, err := catalog.Open(file, logger)
	if err != nil {
		t.Fatal(err)
	}
	runCatalogTest(t, cat)
	if err := cat.Close(); err != nil {
		t.Fatalf("Close() failed with %s", err)
	}

	cat, err = catalog.Open(file, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	checkTables(t, cat, []string{"b.t y", "parent.a.t x", "q", "t z"})

	tbl, ok := cat.ByAlias("y")
	if !ok || !tbl.Equal(parseTable(t, "b.t")) {
		t.Errorf("ByAlias(y) got %s, %v want b.t", tbl, ok)
	}
	_, err = cat.Add(parseTable(t, "c.t x"))
	if !errors.Is(err, catalog.ErrAliasCollision) {
		t.Errorf("Add(c.t x) got %v want %s", err, catalog.ErrAliasCollision)
	}
}
