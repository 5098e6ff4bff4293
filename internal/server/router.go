package server

import (
	"context"
	"fmt"
	"sync"
)

// RequestHandler processes a request and returns its response.
type RequestHandler func(ctx context.Context, msg RequestMessage) ResponseMessage

// NotificationHandler processes a notification.
type NotificationHandler func(ctx context.Context, msg NotificationMessage)

// Router dispatches incoming JSON-RPC messages to registered handlers by
// method name, grounded on mcp/router.go's mutex-guarded handler maps.
type Router struct {
	mu                   sync.RWMutex
	requestHandlers      map[string]RequestHandler
	notificationHandlers map[string]NotificationHandler
}

// NewRouter builds an empty Router.
func NewRouter() *Router {
	return &Router{
		requestHandlers:      make(map[string]RequestHandler),
		notificationHandlers: make(map[string]NotificationHandler),
	}
}

// RegisterRequest associates handler with method, replacing any prior one.
func (r *Router) RegisterRequest(method string, handler RequestHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requestHandlers[method] = handler
}

// RegisterNotification associates handler with method, replacing any prior one.
func (r *Router) RegisterNotification(method string, handler NotificationHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notificationHandlers[method] = handler
}

// DispatchRequest routes msg to its handler, returning a JSON-RPC error
// response when validation fails or the method is unknown.
func (r *Router) DispatchRequest(ctx context.Context, msg RequestMessage) ResponseMessage {
	if err := ensureVersion(msg.JSONRPC); err != nil {
		return ErrorResponse(msg.ID, InvalidRequestCode, err.Error())
	}

	r.mu.RLock()
	handler, ok := r.requestHandlers[msg.Method]
	r.mu.RUnlock()
	if !ok {
		return ErrorResponse(msg.ID, MethodNotFoundCode, fmt.Sprintf("method not found: %s", msg.Method))
	}

	resp := handler(ctx, msg)
	if resp.JSONRPC == "" {
		resp.JSONRPC = JSONRPCVersion
	}
	return resp
}

// DispatchNotification routes msg to its handler. Unknown notification
// methods are silently ignored per the LSP spec (a client may send
// notifications a server doesn't support).
func (r *Router) DispatchNotification(ctx context.Context, msg NotificationMessage) {
	if err := ensureVersion(msg.JSONRPC); err != nil {
		return
	}

	r.mu.RLock()
	handler, ok := r.notificationHandlers[msg.Method]
	r.mu.RUnlock()
	if !ok {
		return
	}
	handler(ctx, msg)
}
