package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/logging"
	"github.com/oxhq/javalsp/internal/lsp"
	"github.com/oxhq/javalsp/internal/progress"
)

// TextDocumentIdentifier names an open document by URI.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// TextDocumentItem is the full payload a didOpen notification carries.
type TextDocumentItem struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

// TextDocumentPositionParams is the parameter shape shared by hover,
// definition, references, completion, and signature-help requests.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     lsp.Position           `json:"position"`
}

type didOpenParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type didChangeParams struct {
	TextDocument   TextDocumentIdentifier `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type didCloseParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type publishDiagnosticsParams struct {
	URI         string          `json:"uri"`
	Diagnostics []lsp.Diagnostic `json:"diagnostics"`
}

type cancelParams struct {
	ID any `json:"id"`
}

type workspaceSymbolParams struct {
	Query string `json:"query"`
}

type executeCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

// Server is the LSP stdio server: a frame transport, a method router, and
// a Workspace holding the class/reference/document indexes the registered
// handlers read and write.
type Server struct {
	workspace *Workspace
	router    *Router
	logger    *logging.Logger

	reader *frameReader
	writer *frameWriter

	inflightMu      sync.Mutex
	inflightCancels map[string]context.CancelFunc

	// reloadDependencies is invoked by the workspace/executeCommand
	// "ReloadDependencies" command. It is injectable because the actual
	// archive/build-tool re-scan is a background task the CLI wires in
	// (internal/buildtool + internal/archive + internal/cache), outside
	// this package's transport/dispatch concern.
	reloadDependencies func(ctx context.Context, reporter progress.Reporter) error
}

// NewServer builds a Server reading from r and writing framed responses to
// w. reloadDependencies may be nil, in which case the ReloadDependencies
// command reports success without doing anything.
func NewServer(r io.Reader, w io.Writer, logger *logging.Logger, reloadDependencies func(ctx context.Context, reporter progress.Reporter) error) *Server {
	if logger == nil {
		logger = logging.New(false)
	}
	s := &Server{
		workspace:          NewWorkspace(),
		router:             NewRouter(),
		logger:             logger.WithPrefix("server"),
		reader:             newFrameReader(r),
		writer:             newFrameWriter(w),
		inflightCancels:    make(map[string]context.CancelFunc),
		reloadDependencies: reloadDependencies,
	}
	s.registerHandlers()
	return s
}

// Workspace exposes the server's index bundle, mainly for the CLI's
// `server` command to seed it with an initial indexing pass before the
// stdio loop starts serving requests.
func (s *Server) Workspace() *Workspace { return s.workspace }

// SetReloadDependencies installs the ReloadDependencies command's backing
// function after construction, for callers that need s.Workspace() to
// build the closure (the CLI's source-tree rescan operates on this same
// Workspace's class index).
func (s *Server) SetReloadDependencies(fn func(ctx context.Context, reporter progress.Reporter) error) {
	s.reloadDependencies = fn
}

func (s *Server) registerHandlers() {
	s.router.RegisterRequest("initialize", s.handleInitialize)
	s.router.RegisterRequest("shutdown", s.handleShutdown)
	s.router.RegisterRequest("ping", s.handlePing)

	s.router.RegisterRequest("textDocument/hover", s.withCancellation(s.handleHover))
	s.router.RegisterRequest("textDocument/definition", s.withCancellation(s.handleDefinition))
	s.router.RegisterRequest("textDocument/references", s.withCancellation(s.handleReferences))
	s.router.RegisterRequest("textDocument/completion", s.withCancellation(s.handleCompletion))
	s.router.RegisterRequest("textDocument/signatureHelp", s.withCancellation(s.handleSignatureHelp))
	s.router.RegisterRequest("textDocument/documentSymbol", s.withCancellation(s.handleDocumentSymbol))
	s.router.RegisterRequest("textDocument/codeAction", s.withCancellation(s.handleCodeAction))
	s.router.RegisterRequest("workspace/symbol", s.withCancellation(s.handleWorkspaceSymbol))
	s.router.RegisterRequest("workspace/executeCommand", s.withCancellation(s.handleExecuteCommand))

	s.router.RegisterNotification("initialized", func(context.Context, NotificationMessage) {})
	s.router.RegisterNotification("exit", func(context.Context, NotificationMessage) {})
	s.router.RegisterNotification("textDocument/didOpen", s.handleDidOpen)
	s.router.RegisterNotification("textDocument/didChange", s.handleDidChange)
	s.router.RegisterNotification("textDocument/didClose", s.handleDidClose)
	s.router.RegisterNotification("$/cancelRequest", s.handleCancel)
}

// Run reads frames from the transport until EOF or a fatal read error,
// dispatching each to the router. One goroutine per request would let a
// slow hover block a concurrent definition query; responses only need to
// carry their own request id, not arrive in request order, so handlers run
// concurrently here.
func (s *Server) Run() error {
	for {
		body, err := s.reader.readMessage()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		s.dispatchFrame(body)
	}
}

func (s *Server) dispatchFrame(body []byte) {
	var envelope struct {
		ID     *json.RawMessage `json:"id"`
		Method string           `json:"method"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		s.writeResponse(ErrorResponse(nil, ParseErrorCode, "invalid JSON-RPC message"))
		return
	}

	if envelope.ID == nil {
		var note NotificationMessage
		if err := json.Unmarshal(body, &note); err != nil {
			s.logger.Warn("failed to decode notification: %v", err)
			return
		}
		go s.router.DispatchNotification(context.Background(), note)
		return
	}

	var req RequestMessage
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeResponse(ErrorResponse(nil, ParseErrorCode, "invalid request"))
		return
	}
	go func() {
		s.writeResponse(s.router.DispatchRequest(context.Background(), req))
	}()
}

func (s *Server) writeResponse(resp ResponseMessage) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to marshal response: %v", err)
		return
	}
	if err := s.writer.writeMessage(data); err != nil {
		s.logger.Error("failed to write response: %v", err)
	}
}

// publish sends a textDocument/publishDiagnostics notification.
func (s *Server) publish(uri string, diags []lsp.Diagnostic) {
	if diags == nil {
		diags = []lsp.Diagnostic{}
	}
	note, err := NewNotificationMessage("textDocument/publishDiagnostics", publishDiagnosticsParams{URI: uri, Diagnostics: diags})
	if err != nil {
		s.logger.Error("failed to encode diagnostics: %v", err)
		return
	}
	data, err := json.Marshal(note)
	if err != nil {
		s.logger.Error("failed to marshal diagnostics notification: %v", err)
		return
	}
	if err := s.writer.writeMessage(data); err != nil {
		s.logger.Error("failed to write diagnostics notification: %v", err)
	}
}

// withCancellation registers req's id against a derived, cancellable
// context before running fn, and clears the registration once fn returns.
func (s *Server) withCancellation(fn func(ctx context.Context, msg RequestMessage) ResponseMessage) RequestHandler {
	return func(ctx context.Context, msg RequestMessage) ResponseMessage {
		key := stringifyID(msg.ID)
		reqCtx, cancel := context.WithCancel(ctx)
		if key != "" {
			s.inflightMu.Lock()
			s.inflightCancels[key] = cancel
			s.inflightMu.Unlock()
			defer func() {
				s.inflightMu.Lock()
				delete(s.inflightCancels, key)
				s.inflightMu.Unlock()
			}()
		}
		defer cancel()
		return fn(reqCtx, msg)
	}
}

func (s *Server) handleCancel(ctx context.Context, msg NotificationMessage) {
	var params cancelParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return
	}
	key := stringifyID(params.ID)
	if key == "" {
		return
	}
	s.inflightMu.Lock()
	cancel, ok := s.inflightCancels[key]
	if ok {
		delete(s.inflightCancels, key)
	}
	s.inflightMu.Unlock()
	if ok {
		cancel()
	}
}

func stringifyID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (s *Server) handleInitialize(ctx context.Context, msg RequestMessage) ResponseMessage {
	capabilities := map[string]any{
		"textDocumentSync": map[string]any{
			"openClose": true,
			"change":    1, // full-document sync; see ChangeDocument's Non-goal note
			"save":      map[string]any{"includeText": false},
		},
		"definitionProvider": true,
		"referencesProvider": true,
		"hoverProvider":      true,
		"completionProvider": map[string]any{"triggerCharacters": []string{" ", ".", "("}},
		"signatureHelpProvider": map[string]any{
			"triggerCharacters": []string{"(", ",", "<"},
		},
		"documentSymbolProvider":  true,
		"workspaceSymbolProvider": true,
		"codeActionProvider":      map[string]any{"codeActionKinds": []string{"quickfix"}},
		"executeCommandProvider":  map[string]any{"commands": []string{"ReloadDependencies"}},
	}
	result := map[string]any{
		"capabilities": capabilities,
		"serverInfo":   map[string]any{"name": "javalsp"},
	}
	return SuccessResponse(msg.ID, result)
}

func (s *Server) handleShutdown(ctx context.Context, msg RequestMessage) ResponseMessage {
	return SuccessResponse(msg.ID, nil)
}

func (s *Server) handlePing(ctx context.Context, msg RequestMessage) ResponseMessage {
	return SuccessResponse(msg.ID, map[string]any{"status": "ok"})
}

func (s *Server) handleDidOpen(ctx context.Context, msg NotificationMessage) {
	var params didOpenParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("didOpen: %v", err)
		return
	}
	diags := s.workspace.OpenDocument(params.TextDocument.URI, params.TextDocument.Text)
	s.publish(params.TextDocument.URI, diags)
}

func (s *Server) handleDidChange(ctx context.Context, msg NotificationMessage) {
	var params didChangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("didChange: %v", err)
		return
	}
	if len(params.ContentChanges) == 0 {
		return
	}
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	diags := s.workspace.ChangeDocument(params.TextDocument.URI, text)
	s.publish(params.TextDocument.URI, diags)
}

func (s *Server) handleDidClose(ctx context.Context, msg NotificationMessage) {
	var params didCloseParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return
	}
	s.workspace.CloseDocument(params.TextDocument.URI)
}

func decodePositionParams(raw json.RawMessage) (TextDocumentPositionParams, bool) {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return TextDocumentPositionParams{}, false
	}
	return params, true
}

func (s *Server) handleHover(ctx context.Context, msg RequestMessage) ResponseMessage {
	params, ok := decodePositionParams(msg.Params)
	if !ok {
		return ErrorResponse(msg.ID, InvalidParamsCode, "invalid hover params")
	}
	hover, ok := s.workspace.LSP().Hover(params.TextDocument.URI, lsp.ToPoint(params.Position))
	if !ok {
		return SuccessResponse(msg.ID, nil)
	}
	return SuccessResponse(msg.ID, hover)
}

func (s *Server) handleDefinition(ctx context.Context, msg RequestMessage) ResponseMessage {
	params, ok := decodePositionParams(msg.Params)
	if !ok {
		return ErrorResponse(msg.ID, InvalidParamsCode, "invalid definition params")
	}
	locs, ok := s.workspace.LSP().Definition(params.TextDocument.URI, lsp.ToPoint(params.Position))
	if !ok {
		return SuccessResponse(msg.ID, []lsp.Location{})
	}
	return SuccessResponse(msg.ID, locs)
}

func (s *Server) handleReferences(ctx context.Context, msg RequestMessage) ResponseMessage {
	params, ok := decodePositionParams(msg.Params)
	if !ok {
		return ErrorResponse(msg.ID, InvalidParamsCode, "invalid references params")
	}
	locs, ok := s.workspace.LSP().References(params.TextDocument.URI, lsp.ToPoint(params.Position))
	if !ok {
		return SuccessResponse(msg.ID, []lsp.Location{})
	}
	return SuccessResponse(msg.ID, locs)
}

func (s *Server) handleCompletion(ctx context.Context, msg RequestMessage) ResponseMessage {
	params, ok := decodePositionParams(msg.Params)
	if !ok {
		return ErrorResponse(msg.ID, InvalidParamsCode, "invalid completion params")
	}
	items := s.workspace.LSP().Completion(params.TextDocument.URI, lsp.ToPoint(params.Position))
	return SuccessResponse(msg.ID, map[string]any{"isIncomplete": false, "items": items})
}

func (s *Server) handleSignatureHelp(ctx context.Context, msg RequestMessage) ResponseMessage {
	params, ok := decodePositionParams(msg.Params)
	if !ok {
		return ErrorResponse(msg.ID, InvalidParamsCode, "invalid signatureHelp params")
	}
	help, ok := s.workspace.LSP().SignatureHelp(params.TextDocument.URI, lsp.ToPoint(params.Position))
	if !ok {
		return SuccessResponse(msg.ID, nil)
	}
	return SuccessResponse(msg.ID, help)
}

func (s *Server) handleDocumentSymbol(ctx context.Context, msg RequestMessage) ResponseMessage {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return ErrorResponse(msg.ID, InvalidParamsCode, "invalid documentSymbol params")
	}
	doc, ok := s.workspace.Documents.Get(params.TextDocument.URI)
	if !ok {
		return SuccessResponse(msg.ID, []lsp.DocumentSymbol{})
	}
	file, ok := doc.AST.(ast.File)
	if !ok {
		return SuccessResponse(msg.ID, []lsp.DocumentSymbol{})
	}
	return SuccessResponse(msg.ID, lsp.DocumentSymbols(file))
}

func (s *Server) handleWorkspaceSymbol(ctx context.Context, msg RequestMessage) ResponseMessage {
	var params workspaceSymbolParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return ErrorResponse(msg.ID, InvalidParamsCode, "invalid workspace/symbol params")
	}
	return SuccessResponse(msg.ID, s.workspace.LSP().WorkspaceSymbols(params.Query))
}

func (s *Server) handleCodeAction(ctx context.Context, msg RequestMessage) ResponseMessage {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
		Range        lsp.Range              `json:"range"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return ErrorResponse(msg.ID, InvalidParamsCode, "invalid codeAction params")
	}
	actions := s.workspace.LSP().CodeActions(params.TextDocument.URI, lsp.ToPoint(params.Range.Start))
	return SuccessResponse(msg.ID, actions)
}

func (s *Server) handleExecuteCommand(ctx context.Context, msg RequestMessage) ResponseMessage {
	var params executeCommandParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return ErrorResponse(msg.ID, InvalidParamsCode, "invalid executeCommand params")
	}
	switch params.Command {
	case "ReloadDependencies":
		if s.reloadDependencies != nil {
			token, reporter := s.BeginProgress()
			reporter.Report(progress.Update{Percentage: 0, Message: "reloading dependencies"})
			if err := s.reloadDependencies(ctx, reporter); err != nil {
				reporter.Report(progress.Update{Percentage: 100, Message: "reload failed", Err: err})
				return ErrorResponse(msg.ID, InternalErrorCode, err.Error())
			}
			reporter.Report(progress.Update{Percentage: 100, Message: "reload complete"})
			s.logger.Debug("dependency reload finished (token %s)", token)
		}
		return SuccessResponse(msg.ID, nil)
	default:
		return ErrorResponse(msg.ID, MethodNotFoundCode, "unknown command: "+params.Command)
	}
}

// reportProgress emits a $/progress notification for token, adapting a
// progress.Update into the protocol's {kind, percentage, message} payload.
// Background indexing tasks call this through a progress.Reporter built
// with NewReporter.
func (s *Server) reportProgress(token string, u progress.Update) {
	if token == "" {
		return
	}
	kind := "report"
	payload := map[string]any{"kind": kind, "percentage": u.Percentage, "message": u.Message}
	if u.Err != nil {
		payload["message"] = u.Err.Error()
	}
	if u.Percentage >= 100 {
		payload["kind"] = "end"
	}
	note, err := NewNotificationMessage("$/progress", map[string]any{"token": token, "value": payload})
	if err != nil {
		return
	}
	data, err := json.Marshal(note)
	if err != nil {
		return
	}
	_ = s.writer.writeMessage(data)
}

// NewReporter builds a progress.Reporter that forwards every update as a
// $/progress notification under token.
func (s *Server) NewReporter(token string) progress.Reporter {
	return progress.ReporterFunc(func(u progress.Update) { s.reportProgress(token, u) })
}

// BeginProgress mints a fresh progress token and a Reporter that publishes
// against it, for background work the server itself initiates (indexing
// triggered by ReloadDependencies) rather than work tied to an incoming
// request's own `_meta.progressToken`. Tokens are UUIDs.
func (s *Server) BeginProgress() (string, progress.Reporter) {
	token := uuid.NewString()
	return token, s.NewReporter(token)
}
