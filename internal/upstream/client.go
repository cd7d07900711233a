// Package upstream translates request specs into HTTP calls against the
// BuildDeck API and normalizes every outcome into a Result envelope.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/builddeck/builddeck-mcp/internal/common"
)

// APIPrefix is the fixed version segment every endpoint lives under.
const APIPrefix = "/api/v1"

// Request describes one upstream exchange. Query keys with nil values are
// omitted from the encoded URL; Body is only sent for POST and PUT.
type Request struct {
	Method string
	Path   string
	Query  map[string]any
	Body   any
}

// Client performs HTTP exchanges against the configured BuildDeck API.
// One outbound call per Do; no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a client from validated configuration. The timeout is
// enforced by the shared http.Client; per-call contexts still cancel early.
func NewClient(cfg *common.Config, logger *common.Logger) *Client {
	return &Client{
		baseURL: cfg.Upstream.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Upstream.GetTimeout(),
		},
		logger: logger,
	}
}

// buildURL constructs {base}{APIPrefix}{path}?{query}. A missing leading
// slash on the path is prepended; nil query values are dropped, the rest
// string-coerced.
func (c *Client) buildURL(req Request) string {
	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	full := c.baseURL + APIPrefix + path

	q := url.Values{}
	for key, val := range req.Query {
		if val == nil {
			continue
		}
		q.Set(key, fmt.Sprint(val))
	}
	if len(q) > 0 {
		full += "?" + q.Encode()
	}
	return full
}

// Do performs the exchange and resolves it to a Result. Expected failures
// (HTTP error status, transport failure, unparseable response body) come
// back as error-flagged results, never as Go errors.
func (c *Client) Do(ctx context.Context, req Request) Result {
	fullURL := c.buildURL(req)

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", fullURL).
		Msg("Upstream request")

	var bodyReader io.Reader
	if req.Body != nil && (req.Method == http.MethodPost || req.Method == http.MethodPut) {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return NetworkErrorf("failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return NetworkError(err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error().Err(err).Str("url", fullURL).Dur("duration", duration).Msg("Upstream request failed")
		return NetworkError(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return NetworkErrorf("failed to read response: %v", err)
	}

	c.logger.Debug().
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Msg("Upstream response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return HTTPError(resp.StatusCode, prettyOrRaw(raw))
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return NetworkErrorf("invalid JSON in response: %v", err)
	}
	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return NetworkErrorf("failed to render response: %v", err)
	}
	return OK(string(pretty))
}

// prettyOrRaw pretty-prints the body when it is valid JSON and falls back
// to the raw text when it is not.
func prettyOrRaw(raw []byte) string {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return string(raw)
	}
	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(pretty)
}
