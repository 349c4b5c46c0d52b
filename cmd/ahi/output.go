package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/muesli/termenv"

	"github.com/vhotmar/mff-vector-drawing-sub001/codebase"
)

// printer writes diagnostics, colored when w is a terminal.
type printer struct {
	w   io.Writer
	out *termenv.Output
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, out: termenv.NewOutput(w)}
}

func (p *printer) diagnostic(path string, d codebase.Diagnostic) {
	loc := p.out.String(fmt.Sprintf("%s:%d:%d:", path, d.Line, d.Column)).Bold()
	color := "1"
	if d.Severity == codebase.SeverityWarning {
		color = "3"
	}
	sev := p.out.String(d.Severity.String() + ":").Foreground(p.out.Color(color))
	fmt.Fprintf(p.w, "%s %s %s\n", loc, sev, d.Message)
}

// reportedError wraps an error whose details were already printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// report prints err and marks it as printed.
func (p *printer) report(err error) error {
	p.errors(err)
	return reportedError{err}
}

// errors prints each element of an error list on its own line.
func (p *printer) errors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			p.error(v.Index(i).Interface())
		}
	} else {
		p.error(err)
	}
}

func (p *printer) error(v any) {
	fmt.Fprintln(p.w, p.out.String(fmt.Sprint(v)).Foreground(p.out.Color("1")))
}
