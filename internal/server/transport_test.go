package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameWriterThenReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := newFrameWriter(&buf)
	require.NoError(t, w.writeMessage([]byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)))

	r := newFrameReader(&buf)
	body, err := r.readMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"ping"}`, string(body))
}

func TestFrameReaderReadsMultipleMessages(t *testing.T) {
	raw := "Content-Length: 2\r\n\r\n{}Content-Length: 4\r\n\r\n[1,2]"
	r := newFrameReader(bytes.NewBufferString(raw))

	first, err := r.readMessage()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(first))

	second, err := r.readMessage()
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(second))
}

func TestFrameReaderMissingContentLengthErrors(t *testing.T) {
	r := newFrameReader(bytes.NewBufferString("X-Custom: 1\r\n\r\n{}"))
	_, err := r.readMessage()
	assert.Error(t, err)
}

func TestFrameReaderHeaderIsCaseInsensitive(t *testing.T) {
	r := newFrameReader(bytes.NewBufferString("content-length: 2\r\n\r\n{}"))
	body, err := r.readMessage()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))
}
