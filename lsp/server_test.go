package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/vhotmar/mff-vector-drawing-sub001/codebase"
)

func TestURIRoundTrip(t *testing.T) {
	tests := []struct {
		uri  string
		path string
	}{
		{"file:///home/user/g.ebnf", "/home/user/g.ebnf"},
		{"file:///tmp/a%20b/c.sum", "/tmp/a b/c.sum"},
	}
	for _, tt := range tests {
		path, err := uriToPath(tt.uri)
		if err != nil {
			t.Fatalf("uriToPath(%q): %v", tt.uri, err)
		}
		if path != tt.path {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, path, tt.path)
		}
		if got := pathToURI(path); got != tt.uri {
			t.Errorf("pathToURI(%q) = %q, want %q", path, got, tt.uri)
		}
	}

	if path, _ := uriToPath("untitled:1"); path != "untitled:1" {
		t.Errorf("non-file URI changed to %q", path)
	}
}

func TestToProtocolDiagnostics(t *testing.T) {
	diags := toProtocolDiagnostics([]codebase.Diagnostic{
		{Line: 3, Column: 11, Severity: codebase.SeverityError, Message: "expected ')'"},
		{Line: 1, Column: 1, Severity: codebase.SeverityWarning, Message: "unused"},
	})
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}

	d := diags[0]
	if d.Range.Start.Line != 2 || d.Range.Start.Character != 10 || d.Range.End.Character != 11 {
		t.Errorf("unexpected range %+v", d.Range)
	}
	if *d.Severity != protocol.DiagnosticSeverityError || d.Message != "expected ')'" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if *diags[1].Severity != protocol.DiagnosticSeverityWarning {
		t.Errorf("expected a warning, got %v", *diags[1].Severity)
	}

	if got := toProtocolDiagnostics(nil); got == nil || len(got) != 0 {
		t.Errorf("expected an empty, non-nil slice, got %#v", got)
	}
}

func TestPositionClampsAtZero(t *testing.T) {
	p := position(0, 0)
	if p.Line != 0 || p.Character != 0 {
		t.Errorf("got %+v", p)
	}
}
