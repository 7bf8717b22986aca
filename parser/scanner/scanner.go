package scanner

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/leftmike/pika/parser/token"
)

type Position struct {
	Filename string
	Line     int
	Column   int
}

type ScanCtx struct {
	Token      rune
	Error      error
	Identifier string // Identifier and Reserved
	Quoted     bool
	Position
}

type Scanner struct {
	initialized bool
	rr          io.RuneReader
	unread      bool
	read        rune
	failed      bool
	filename    string
	line        int
	column      int
	buffer      bytes.Buffer
}

func (pos Position) String() string {
	s := pos.Filename
	if pos.Line > 0 {
		s += fmt.Sprintf(":%d:%d", pos.Line, pos.Column)
	}
	return s
}

func (s *Scanner) Init(rr io.RuneReader, fn string) {
	if s.initialized {
		panic("scanner already initialized")
	}
	s.initialized = true

	s.rr = rr
	s.filename = fn
	s.line = 1
}

func (s *Scanner) Scan(sctx *ScanCtx) {
	s.buffer.Reset()
	sctx.Filename = s.filename
	sctx.Error = nil
	sctx.Identifier = ""
	sctx.Quoted = false
	sctx.Token = s.scan(sctx)
}

func (s *Scanner) scan(sctx *ScanCtx) rune {
SkipWhitespace:
	r := s.readRune(sctx)

	for {
		if r < 0 {
			return r
		}
		if !unicode.IsSpace(r) {
			break
		}

		r = s.readRune(sctx)
	}

	sctx.Column = s.column
	sctx.Line = s.line

	if r == ';' {
		return token.EndOfStatement
	}

	if r == '-' {
		if r2 := s.readRune(sctx); r2 == '-' {
			for {
				r2 = s.readRune(sctx)
				if r2 < 0 {
					return r2
				}

				if r2 == '\n' {
					break
				}
			}

			goto SkipWhitespace
		} else if r2 < 0 {
			if r2 != token.EOF {
				return r2
			}
		} else {
			s.unreadRune()
		}
	} else if r == '/' {
		if r2 := s.readRune(sctx); r2 == '*' {
			var p rune

			for {
				r2 = s.readRune(sctx)
				if r2 == token.EOF {
					sctx.Error = fmt.Errorf("scanner: comment missing terminating */")
					return token.Error
				} else if r2 < 0 {
					return r2
				}

				if p == '*' && r2 == '/' {
					break
				}
				p = r2
			}

			goto SkipWhitespace
		} else if r2 < 0 {
			if r2 != token.EOF {
				return r2
			}
		} else {
			s.unreadRune()
		}
	}

	if unicode.IsLetter(r) || r == '_' {
		return s.scanIdentifier(sctx, r)
	} else if r == '"' || r == '`' {
		return s.scanQuotedIdentifier(sctx, r)
	} else if r == '[' {
		return s.scanQuotedIdentifier(sctx, ']')
	} else if r == token.Dot || r == token.Comma {
		return r
	}

	sctx.Error = fmt.Errorf("scanner: unexpected character '%c'", r)
	return token.Error
}

func (s *Scanner) readRune(sctx *ScanCtx) rune {
	if s.unread {
		s.unread = false
		return s.read
	}

	if s.failed {
		s.read = token.EOF
		return token.EOF
	}

	var err error
	s.read, _, err = s.rr.ReadRune()
	if err == io.EOF {
		s.read = token.EOF
		return token.EOF
	} else if err != nil {
		// Once the reader fails, the rest of the input is treated as missing.
		s.failed = true
		sctx.Error = err
		s.read = token.Error
		return token.Error
	}

	if s.read == '\n' {
		s.line += 1
		s.column = 0
	} else {
		s.column += 1
	}

	return s.read
}

func (s *Scanner) unreadRune() {
	s.unread = true
}

func (s *Scanner) scanIdentifier(sctx *ScanCtx, r rune) rune {
	for {
		s.buffer.WriteRune(r)
		r = s.readRune(sctx)
		if r == token.EOF {
			break
		} else if r == token.Error {
			return token.Error
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			s.unreadRune()
			break
		}
	}

	sctx.Identifier = s.buffer.String()
	if token.IsReserved(strings.ToUpper(sctx.Identifier)) {
		sctx.Identifier = strings.ToUpper(sctx.Identifier)
		return token.Reserved
	}
	return token.Identifier
}

func (s *Scanner) scanQuotedIdentifier(sctx *ScanCtx, delim rune) rune {
	for {
		r := s.readRune(sctx)
		if r == token.EOF {
			sctx.Error = fmt.Errorf("scanner: quoted identifier missing terminating '%c'", delim)
			return token.Error
		} else if r == token.Error {
			return token.Error
		}
		if r == delim {
			break
		}
		s.buffer.WriteRune(r)
	}

	if s.buffer.Len() == 0 {
		sctx.Error = fmt.Errorf("scanner: zero-length quoted identifier")
		return token.Error
	}
	sctx.Identifier = s.buffer.String()
	sctx.Quoted = true
	return token.Identifier
}
