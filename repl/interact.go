package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/leftmike/pika/parser"
)

const (
	pikaHistory = ".pika_history"
)

type lineReader struct {
	line *liner.State
	r    *strings.Reader
}

func (lr *lineReader) ReadRune() (r rune, size int, err error) {
	for {
		if lr.r == nil {
			s, err := lr.line.Prompt("pika: ")
			if err == liner.ErrPromptAborted {
				return 0, 0, io.EOF
			} else if err != nil {
				return 0, 0, err
			}
			lr.line.AppendHistory(s)
			lr.r = strings.NewReader(s + "\n")
		}

		r, sz, err := lr.r.ReadRune()
		if err == io.EOF {
			lr.r = nil
		} else if err != nil {
			return 0, 0, err
		} else {
			return r, sz, nil
		}
	}
}

// Interact runs ses on the console until end of input.
func Interact(ses *Session) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(pikaHistory); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	ReplTables(ses, parser.NewParser(&lineReader{line: line}, "console"), os.Stdout)

	if f, err := os.Create(pikaHistory); err != nil {
		fmt.Fprintf(os.Stderr, "pika: error writing history file, %s: %s\n", pikaHistory, err)
	} else {
		line.WriteHistory(f)
		f.Close()
	}
}
