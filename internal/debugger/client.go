package debugger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"x64dbg-mcp/internal/config"
)

// ReplyKind tags the shape of a backend reply.
type ReplyKind int

const (
	// ReplyText is a plain-text body (or a JSON scalar), trimmed.
	ReplyText ReplyKind = iota

	// ReplyObject is a JSON object body.
	ReplyObject

	// ReplyList is a JSON array body.
	ReplyList
)

// Reply is one backend response. Exactly one of Object, List, Text is
// meaningful, selected by Kind.
type Reply struct {
	Kind   ReplyKind
	Object map[string]any
	List   []any
	Text   string
}

// Value returns the reply's native representation.
func (r Reply) Value() any {
	switch r.Kind {
	case ReplyObject:
		return r.Object
	case ReplyList:
		return r.List
	default:
		return r.Text
	}
}

// Client issues HTTP calls against the x64dbg plugin. It is stateless
// apart from its configuration and safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// NewClient builds a transport client from the resolved configuration.
func NewClient(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{Timeout: cfg.Timeout()},
		log:     log,
	}
}

// Call issues a GET against endpoint with the given query parameters
// and returns the parsed reply. Failures are always a *CallError; a
// partially read response is never returned.
func (c *Client) Call(ctx context.Context, endpoint string, params url.Values) (Reply, error) {
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Reply{}, &CallError{Kind: ErrUnexpected, Detail: err.Error()}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Reply{}, classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, classify(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Reply{}, &CallError{
			Kind:   ErrHTTPStatus,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	return parseReply(body), nil
}

// classify maps a transport failure onto the error taxonomy. Timeouts
// are checked before connection errors: an elapsed deadline on a slow
// dial must not be reported as a refusal.
func classify(err error) *CallError {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &CallError{Kind: ErrTimeout}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &CallError{Kind: ErrTimeout}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return &CallError{Kind: ErrConnRefused}
	}
	return &CallError{Kind: ErrUnexpected, Detail: err.Error()}
}

// parseReply tries JSON first and falls back to trimmed text. Some
// plugin endpoints return bare acknowledgements rather than JSON, so
// the fallback is part of the contract, not an error path.
func parseReply(body []byte) Reply {
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		switch val := v.(type) {
		case map[string]any:
			return Reply{Kind: ReplyObject, Object: val}
		case []any:
			return Reply{Kind: ReplyList, List: val}
		case string:
			return Reply{Kind: ReplyText, Text: strings.TrimSpace(val)}
		}
	}
	return Reply{Kind: ReplyText, Text: strings.TrimSpace(string(body))}
}
