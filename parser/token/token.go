package token

import (
	"fmt"
)

const (
	EOF = -(iota + 1)
	EndOfStatement
	Error
	Identifier
	Reserved
)

const (
	Comma = ','
	Dot   = '.'
)

const (
	AS = "AS"
)

var (
	reserved = map[string]struct{}{
		AS: {},
	}

	names = map[rune]string{
		EOF:            "end of file",
		EndOfStatement: "end of statement",
		Error:          "error",
		Identifier:     "identifier",
		Reserved:       "reserved identifier",
	}
)

// IsReserved reports whether s, in upper case, is a reserved word.
func IsReserved(s string) bool {
	_, ok := reserved[s]
	return ok
}

func Format(r rune) string {
	if r > 0 {
		return fmt.Sprintf("rune %c", r)
	}
	if s, ok := names[r]; ok {
		return s
	}
	return fmt.Sprintf("token %d", r)
}
