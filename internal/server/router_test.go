package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRequestRoutesToRegisteredHandler(t *testing.T) {
	r := NewRouter()
	r.RegisterRequest("ping", func(ctx context.Context, msg RequestMessage) ResponseMessage {
		return SuccessResponse(msg.ID, "pong")
	})

	resp := r.DispatchRequest(context.Background(), RequestMessage{JSONRPC: JSONRPCVersion, ID: "1", Method: "ping"})
	assert.Equal(t, "pong", resp.Result)
	assert.Nil(t, resp.Error)
}

func TestDispatchRequestUnknownMethod(t *testing.T) {
	r := NewRouter()
	resp := r.DispatchRequest(context.Background(), RequestMessage{JSONRPC: JSONRPCVersion, ID: "1", Method: "nope"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, MethodNotFoundCode, resp.Error.Code)
}

func TestDispatchRequestBadVersion(t *testing.T) {
	r := NewRouter()
	resp := r.DispatchRequest(context.Background(), RequestMessage{JSONRPC: "1.0", ID: "1", Method: "ping"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, InvalidRequestCode, resp.Error.Code)
}

func TestDispatchRequestFillsMissingJSONRPCOnResponse(t *testing.T) {
	r := NewRouter()
	r.RegisterRequest("ping", func(ctx context.Context, msg RequestMessage) ResponseMessage {
		return ResponseMessage{ID: msg.ID, Result: "pong"}
	})
	resp := r.DispatchRequest(context.Background(), RequestMessage{JSONRPC: JSONRPCVersion, ID: "1", Method: "ping"})
	assert.Equal(t, JSONRPCVersion, resp.JSONRPC)
}

func TestDispatchNotificationRoutesToRegisteredHandler(t *testing.T) {
	r := NewRouter()
	var got string
	r.RegisterNotification("textDocument/didOpen", func(ctx context.Context, msg NotificationMessage) {
		got = msg.Method
	})
	r.DispatchNotification(context.Background(), NotificationMessage{JSONRPC: JSONRPCVersion, Method: "textDocument/didOpen"})
	assert.Equal(t, "textDocument/didOpen", got)
}

func TestDispatchNotificationUnknownMethodIsIgnored(t *testing.T) {
	r := NewRouter()
	assert.NotPanics(t, func() {
		r.DispatchNotification(context.Background(), NotificationMessage{JSONRPC: JSONRPCVersion, Method: "nope"})
	})
}
