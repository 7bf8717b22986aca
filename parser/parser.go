package parser

import (
	"fmt"
	"io"
	"runtime"

	"github.com/leftmike/pika/parser/scanner"
	"github.com/leftmike/pika/parser/token"
	"github.com/leftmike/pika/sql"
)

// Parser reads lists of table references such as
//
//	x_db.x_schema.test_table AS t, other;
//
// Each reference is a dot separated path, root namespace first, followed by an optional
// alias; lists are separated by semicolons.
type Parser interface {
	Parse() ([]sql.Table, error)
}

type parser struct {
	scanner   scanner.Scanner
	sctx      *scanner.ScanCtx
	scanned   rune
	unscanned bool
}

func NewParser(rr io.RuneReader, fn string) Parser {
	var p parser
	p.scanner.Init(rr, fn)
	return &p
}

func (p *parser) Parse() (tbls []sql.Table, err error) {
	for {
		t := p.scan()
		if t == token.EOF {
			return nil, io.EOF
		} else if t != token.EndOfStatement {
			p.unscan()
			break
		}
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			err = r.(error)
			tbls = nil
			p.skipStatement()
		}
	}()

	tbls = p.parseTables()
	return tbls, nil
}

func (p *parser) error(msg string) {
	panic(fmt.Errorf("parser: %s: %s", p.sctx.Position, msg))
}

func (p *parser) scan() rune {
	if p.unscanned {
		p.unscanned = false
		return p.scanned
	}

	p.sctx = &scanner.ScanCtx{}
	p.scanner.Scan(p.sctx)
	p.scanned = p.sctx.Token
	return p.scanned
}

func (p *parser) unscan() {
	p.unscanned = true
}

func (p *parser) skipStatement() {
	for p.scanned != token.EOF && p.scanned != token.EndOfStatement {
		p.scan()
	}
}

func (p *parser) got() string {
	switch p.sctx.Token {
	case token.Error:
		return fmt.Sprintf("error %s", p.sctx.Error)
	case token.Identifier:
		return fmt.Sprintf("identifier %s", p.sctx.Identifier)
	case token.Reserved:
		return fmt.Sprintf("reserved identifier %s", p.sctx.Identifier)
	}
	return token.Format(p.sctx.Token)
}

func (p *parser) expectIdentifier(msg string) string {
	t := p.scan()
	if t == token.Error {
		p.error(p.sctx.Error.Error())
	} else if t != token.Identifier {
		p.error(fmt.Sprintf("%s, got %s", msg, p.got()))
	}
	return p.sctx.Identifier
}

// tables = table [',' ...] (';' | EOF)
func (p *parser) parseTables() []sql.Table {
	var tbls []sql.Table
	for {
		tbls = append(tbls, p.parseTable())

		switch t := p.scan(); t {
		case token.Comma:
		case token.EndOfStatement, token.EOF:
			return tbls
		case token.Error:
			p.error(p.sctx.Error.Error())
		default:
			p.error(fmt.Sprintf("expected , or ; got %s", p.got()))
		}
	}
}

// table = name ['.' name ...] [[AS] alias]
func (p *parser) parseTable() sql.Table {
	path := []string{p.expectIdentifier("expected a table")}
	for p.scan() == token.Dot {
		path = append(path, p.expectIdentifier("expected a name after ."))
	}
	p.unscan()

	var ns *sql.Namespace
	for _, nam := range path[:len(path)-1] {
		var err error
		ns, err = sql.NewNamespace(nam, ns)
		if err != nil {
			p.error(err.Error())
		}
	}

	tbl, err := sql.NewTable(path[len(path)-1], sql.InNamespace(ns))
	if err != nil {
		p.error(err.Error())
	}

	if t := p.scan(); t == token.Reserved && p.sctx.Identifier == token.AS {
		tbl = tbl.WithAlias(p.expectIdentifier("expected an alias after AS"))
	} else if t == token.Identifier {
		tbl = tbl.WithAlias(p.sctx.Identifier)
	} else {
		p.unscan()
	}
	return tbl
}
