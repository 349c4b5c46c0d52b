package grammar

import (
	"fmt"
	"text/scanner"
)

// Error is a diagnostic at a position in a grammar file.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", posString(e.Pos), e.Msg)
}

// posString formats pos like scanner.Position.String but leaves out an
// empty file name.
func posString(pos scanner.Position) string {
	if pos.Filename == "" {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	return pos.String()
}

// ErrorList collects every diagnostic of one read.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns l as an error, or nil when l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
