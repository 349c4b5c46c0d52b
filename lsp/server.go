// Package lsp serves grammar and source diagnostics, completion and
// navigation over the Language Server Protocol.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/vhotmar/mff-vector-drawing-sub001/codebase"
	"github.com/vhotmar/mff-vector-drawing-sub001/project"
)

const lsName = "ahi"

var log = commonlog.GetLogger("ahi.lsp")

type Server struct {
	codebase *codebase.Codebase
	watcher  *codebase.FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu     sync.Mutex
	notify glsp.NotifyFunc
}

func NewServer(version string) *Server {
	ls := &Server{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentCompletion:     ls.textDocumentCompletion,
		TextDocumentDefinition:     ls.textDocumentDefinition,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	proj, err := project.LoadFrom(rootDir)
	if err != nil && !errors.Is(err, project.ErrNotFound) {
		log.Warningf("load project: %s", err)
	}
	if proj != nil {
		rootDir = proj.RootDir
	}
	ls.codebase = codebase.New(rootDir, proj)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	if err := ls.codebase.ScanAll(); err != nil {
		log.Warningf("scan: %s", err)
	}
	for _, f := range ls.codebase.Files() {
		ls.publish(f.Path, f)
	}

	w, err := codebase.NewFileWatcher(ls.codebase, ls.publish)
	if err != nil {
		log.Warningf("watch: %s", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.Warningf("watch: %s", err)
		w.Stop()
		return nil
	}
	ls.watcher = w
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		return ls.watcher.Stop()
	}
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// publish sends the diagnostics of f, or clears them when f is nil.
func (ls *Server) publish(path string, f *codebase.FileInfo) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}
	var diags []codebase.Diagnostic
	if f != nil {
		diags = f.Diagnostics
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: toProtocolDiagnostics(diags),
	})
}

func (ls *Server) update(path string, content []byte) {
	if !ls.codebase.Tracks(path) {
		return
	}
	if err := ls.codebase.UpdateFile(path, content); err != nil {
		log.Warningf("update %s: %s", path, err)
		return
	}
	ls.publish(path, ls.codebase.GetFile(path))
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.update(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.update(path, []byte(*params.Text))
	} else if ls.codebase.Tracks(path) {
		if err := ls.codebase.ScanFile(path); err == nil {
			ls.publish(path, ls.codebase.GetFile(path))
		}
	}
	return nil
}

func (ls *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	col := int(params.Position.Character) + 1

	completions := ls.codebase.CompletionsAtPoint(path, line, col)
	if len(completions) == 0 {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		detail := c.Detail
		insertText := c.InsertText

		items = append(items, protocol.CompletionItem{
			Label:      c.Label,
			Kind:       &kind,
			Detail:     &detail,
			InsertText: &insertText,
		})
	}

	return items, nil
}

func (ls *Server) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	loc, ok := ls.codebase.DefinitionAt(path, int(params.Position.Line)+1, int(params.Position.Character)+1)
	if !ok {
		return nil, nil
	}
	return protocol.Location{
		URI:   pathToURI(loc.Path),
		Range: pointRange(loc.Line, loc.Column),
	}, nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	var symbols []protocol.DocumentSymbol
	for _, s := range ls.codebase.Symbols(path) {
		kind := protocol.SymbolKindFunction
		if s.Token {
			kind = protocol.SymbolKindConstant
		}
		r := protocol.Range{
			Start: position(s.Location.Line, s.Location.Column),
			End:   position(s.Location.Line, s.Location.Column+len([]rune(s.Name))),
		}
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           s.Name,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
		})
	}
	return symbols, nil
}

func toProtocolDiagnostics(diags []codebase.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	source := lsName
	for _, d := range diags {
		severity := toProtocolSeverity(d.Severity)
		out = append(out, protocol.Diagnostic{
			Range:    pointRange(d.Line, d.Column),
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

func toProtocolSeverity(s codebase.Severity) protocol.DiagnosticSeverity {
	switch s {
	case codebase.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityError
	}
}

func toProtocolKind(kind codebase.CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case codebase.CompletionKindProduction:
		return protocol.CompletionItemKindFunction
	case codebase.CompletionKindToken:
		return protocol.CompletionItemKindConstant
	default:
		return protocol.CompletionItemKindText
	}
}

// position converts a 1-based line and column to a protocol position.
func position(line, column int) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(line-1, 0)),
		Character: protocol.UInteger(max(column-1, 0)),
	}
}

func pointRange(line, column int) protocol.Range {
	return protocol.Range{Start: position(line, column), End: position(line, column+1)}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
