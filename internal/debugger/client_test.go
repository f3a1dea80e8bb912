package debugger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestClient builds a client against a test server URL with a
// short timeout. Idle connections are closed on cleanup so the leak
// detector stays quiet.
func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     zap.NewNop(),
	}
	t.Cleanup(c.httpc.CloseIdleConnections)
	return c
}

func TestCall_ObjectReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"arch":"x64","debugging":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2*time.Second)
	reply, err := c.Call(context.Background(), "/status", nil)
	require.NoError(t, err)
	require.Equal(t, ReplyObject, reply.Kind)
	assert.Equal(t, "x64", reply.Object["arch"])
	assert.Equal(t, true, reply.Object["debugging"])
}

func TestCall_ListReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"ntdll.dll"},{"name":"kernel32.dll"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2*time.Second)
	reply, err := c.Call(context.Background(), "/modules", nil)
	require.NoError(t, err)
	require.Equal(t, ReplyList, reply.Kind)
	assert.Len(t, reply.List, 2)
}

func TestCall_TextReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("command executed\n"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2*time.Second)
	reply, err := c.Call(context.Background(), "/cmd", nil)
	require.NoError(t, err)
	require.Equal(t, ReplyText, reply.Kind)
	assert.Equal(t, "command executed", reply.Text)
}

func TestCall_ScalarJSONReply(t *testing.T) {
	// A bare JSON string is treated as text, without the quotes.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"ok"`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2*time.Second)
	reply, err := c.Call(context.Background(), "/debug/run", nil)
	require.NoError(t, err)
	require.Equal(t, ReplyText, reply.Kind)
	assert.Equal(t, "ok", reply.Text)
}

func TestCall_ForwardsQueryParams(t *testing.T) {
	var gotPath, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotName = r.URL.Query().Get("name")
		w.Write([]byte(`{"value":"0x401000"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2*time.Second)
	_, err := c.Call(context.Background(), "/register/get", url.Values{"name": {"eip"}})
	require.NoError(t, err)
	assert.Equal(t, "/register/get", gotPath)
	assert.Equal(t, "eip", gotName)
}

func TestCall_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid address", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2*time.Second)
	_, err := c.Call(context.Background(), "/memory/read", nil)
	require.Error(t, err)

	callErr, ok := err.(*CallError)
	require.True(t, ok)
	assert.Equal(t, ErrHTTPStatus, callErr.Kind)
	assert.Equal(t, http.StatusBadRequest, callErr.Status)
	assert.Contains(t, callErr.Body, "invalid address")
	assert.Contains(t, callErr.Error(), "HTTP error 400")
}

func TestCall_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL, 50*time.Millisecond)
	_, err := c.Call(context.Background(), "/status", nil)
	require.Error(t, err)

	callErr, ok := err.(*CallError)
	require.True(t, ok)
	assert.Equal(t, ErrTimeout, callErr.Kind)
	assert.Equal(t, "request timed out - is x64dbg running?", callErr.Error())
}

func TestCall_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := newTestClient(t, addr, 2*time.Second)
	_, err := c.Call(context.Background(), "/status", nil)
	require.Error(t, err)

	callErr, ok := err.(*CallError)
	require.True(t, ok)
	assert.Equal(t, ErrConnRefused, callErr.Kind)
	assert.Equal(t, "cannot connect to x64dbg - is the plugin loaded?", callErr.Error())
}

func TestCall_UnexpectedError(t *testing.T) {
	c := newTestClient(t, "http://bad url with spaces", 2*time.Second)
	_, err := c.Call(context.Background(), "/status", nil)
	require.Error(t, err)

	callErr, ok := err.(*CallError)
	require.True(t, ok)
	assert.Equal(t, ErrUnexpected, callErr.Kind)
	assert.Contains(t, callErr.Error(), "unexpected error")
}

func TestCall_TimeoutAndRefusalAreDistinct(t *testing.T) {
	timeout := &CallError{Kind: ErrTimeout}
	refused := &CallError{Kind: ErrConnRefused}
	assert.NotEqual(t, timeout.Error(), refused.Error())
}

func TestReply_Value(t *testing.T) {
	tests := []struct {
		name  string
		reply Reply
		want  any
	}{
		{"object", Reply{Kind: ReplyObject, Object: map[string]any{"a": "b"}}, map[string]any{"a": "b"}},
		{"list", Reply{Kind: ReplyList, List: []any{"a"}}, []any{"a"}},
		{"text", Reply{Kind: ReplyText, Text: "hi"}, "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reply.Value())
		})
	}
}
