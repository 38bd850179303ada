package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"data-agent/internal/answer"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

const askPath = "/api/ask"

type askRequest struct {
	Query string `json:"query"`
}

// Client submits questions to the Answer Service and holds the single
// response slot shown to the user.
//
// Overlapping submissions are allowed. Each one takes a generation number
// and only the most recent generation may publish its outcome.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger

	mu    sync.Mutex
	gen   uint64
	state State
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The default has no
// timeout; cancellation comes from the caller's context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client for the service at baseURL.
func New(baseURL string, log *slog.Logger, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
		state:   Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// State returns a snapshot of the current state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit sends one question and stores the outcome. A blank query returns
// ErrEmptyQuery without touching the state or the network. Failures are
// *RequestError or *TransportError; there are no retries.
func (c *Client) Submit(ctx context.Context, query string) (answer.Response, error) {
	if strings.TrimSpace(query) == "" {
		return answer.Response{}, ErrEmptyQuery
	}

	gen := c.begin()
	resp, err := c.ask(ctx, query)
	c.finish(gen, resp, err)
	return resp, err
}

func (c *Client) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = Busy{}
	return c.gen
}

func (c *Client) finish(gen uint64, resp answer.Response, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug("discarding stale answer", "generation", gen, "latest", c.gen)
		return
	}
	if err != nil {
		c.state = Failed{Message: err.Error()}
		return
	}
	c.state = Succeeded{Response: resp}
}

func (c *Client) ask(ctx context.Context, query string) (answer.Response, error) {
	payload, err := json.Marshal(askRequest{Query: query})
	if err != nil {
		return answer.Response{}, newTransportError(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+askPath, bytes.NewReader(payload))
	if err != nil {
		return answer.Response{}, newTransportError(err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	log := c.log.With("request_id", reqID)
	log.Info("submitting question", "url", req.URL.String())

	res, err := c.http.Do(req)
	if err != nil {
		log.Warn("ask failed", "err", err)
		return answer.Response{}, newTransportError(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		log.Warn("ask rejected", "status", res.StatusCode)
		return answer.Response{}, &RequestError{Status: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return answer.Response{}, newTransportError(err)
	}
	out, err := answer.Decode(body)
	if err != nil {
		log.Warn("undecodable answer", "err", err)
		return answer.Response{}, newTransportError(err)
	}
	log.Info("answer received", "rows", len(out.Rows), "has_sql", out.SQL != "")
	return out, nil
}
