// Package lsp implements a language server that reports parse failures of
// open documents as diagnostics.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/combinator/diag"
	"github.com/dhamidi/combinator/json"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "combinator"

var log = commonlog.GetLogger("combinator.lsp")

// Checker parses a whole document and returns the failure, if any.
type Checker func(src string) error

// CheckJSON is the checker installed for .json documents.
func CheckJSON(src string) error {
	_, err := json.Decode(src)
	return err
}

type Server struct {
	handler  protocol.Handler
	server   *server.Server
	version  string
	checkers map[string]Checker

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

type Option func(*Server)

// WithChecker checks documents whose path ends in ext with check.
func WithChecker(ext string, check Checker) Option {
	return func(ls *Server) {
		ls.checkers[ext] = check
	}
}

func NewServer(version string, opts ...Option) *Server {
	ls := &Server{
		version:  version,
		checkers: map[string]Checker{".json": CheckJSON},
		docs:     make(map[protocol.DocumentUri]string),
	}
	for _, opt := range opts {
		opt(ls)
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
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
	exts := make([]string, 0, len(ls.checkers))
	for ext := range ls.checkers {
		exts = append(exts, ext)
	}
	log.Infof("checking %s documents", strings.Join(exts, ", "))
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	version := protocol.UInteger(params.TextDocument.Version)
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text, &version)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			version := protocol.UInteger(params.TextDocument.Version)
			ls.update(ctx, params.TextDocument.URI, textChange.Text, &version)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.mu.Lock()
	delete(ls.docs, uri)
	ls.mu.Unlock()

	publish(ctx, uri, nil, []protocol.Diagnostic{})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		ls.update(ctx, uri, *params.Text, nil)
		return nil
	}

	ls.mu.Lock()
	src, ok := ls.docs[uri]
	ls.mu.Unlock()
	if ok {
		ls.update(ctx, uri, src, nil)
	}
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, src string, version *protocol.UInteger) {
	ls.mu.Lock()
	ls.docs[uri] = src
	ls.mu.Unlock()

	diagnostics, ok := ls.Diagnose(uri, src)
	if !ok {
		return
	}
	publish(ctx, uri, version, diagnostics)
}

// Diagnose checks src with the checker registered for uri's extension. It
// returns false when no checker applies.
func (ls *Server) Diagnose(uri protocol.DocumentUri, src string) ([]protocol.Diagnostic, bool) {
	path, err := uriToPath(uri)
	if err != nil {
		log.Errorf("document %s: %s", uri, err)
		return nil, false
	}
	check, ok := ls.checkers[filepath.Ext(path)]
	if !ok {
		return nil, false
	}

	err = check(src)
	if err == nil {
		return []protocol.Diagnostic{}, true
	}
	log.Debugf("%s: %s", path, err)

	d, ok := diag.FromError(path, src, err)
	if !ok {
		return []protocol.Diagnostic{newDiagnostic(protocol.Range{}, err.Error())}, true
	}
	return []protocol.Diagnostic{newDiagnostic(toRange(d), d.Message())}, true
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, version *protocol.UInteger, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: diagnostics,
	})
}

func newDiagnostic(r protocol.Range, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// toRange covers the character at the failure, or nothing at the end of a
// line. LSP columns count UTF-16 code units.
func toRange(d diag.Diagnostic) protocol.Range {
	col := min(d.Pos.Column-1, len(d.Line))
	start := utf16Len(d.Line[:col])
	end := start
	if col < len(d.Line) {
		r, _ := utf8.DecodeRuneInString(d.Line[col:])
		end += utf16.RuneLen(r)
	}

	line := protocol.UInteger(d.Pos.Line - 1)
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: protocol.UInteger(start)},
		End:   protocol.Position{Line: line, Character: protocol.UInteger(end)},
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
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

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
