// Package wordpress implements the outbound HTTP client for the upstream
// WordPress deployment (core REST, GeoDirectory, Dokan, and the ShopLocal
// plugin routes) plus the normalizers that reduce its heterogeneous payloads
// to the app's canonical entities.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shoplocal/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// wpError is the structured error body WordPress returns for non-2xx
// responses: {"code": "...", "message": "...", "data": {"status": 401}}.
type wpError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}

// APIError carries a structured upstream error through the gateway layer so
// known codes can be mapped to fixed user-facing messages.
type APIError struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return "wordpress: " + e.Code
}

// Client is the shared HTTP transport for every WordPress gateway. There are
// no retries anywhere: every failure surfaces once and re-invocation is the
// caller's decision.
type Client struct {
	base       *url.URL
	cfg        config.WordPressConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientParams holds dependencies for Client, injected by Fx.
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewClient builds the shared WordPress client from config.
func NewClient(params ClientParams) (*Client, error) {
	wp := params.Config.WordPress
	if wp == nil || wp.BaseURL == "" {
		return nil, errors.New("wordpress base URL is not configured")
	}

	base, err := url.Parse(strings.TrimRight(wp.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse wordpress base URL")
	}

	return &Client{
		base:       base,
		cfg:        *wp,
		httpClient: &http.Client{Timeout: wp.Timeout},
		logger:     params.Logger,
	}, nil
}

// route builds an absolute wp-json route from a namespace and path.
func (c *Client) route(namespace, path string) string {
	return c.base.String() + "/wp-json/" + namespace + "/" + strings.TrimLeft(path, "/")
}

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, rawURL string, query url.Values, out any) error {
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	return c.do(req, out)
}

// post issues a POST with a JSON body and decodes the response into out.
// basicAuth, when non-empty, is sent as an HTTP Basic Authorization header.
func (c *Client) post(ctx context.Context, rawURL string, body any, out any, basicAuth string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if basicAuth != "" {
		req.Header.Set("Authorization", "Basic "+basicAuth)
	}

	return c.do(req, out)
}

// do executes the request and normalizes the three failure modes: transport
// errors, structured WordPress error bodies, and unparsable responses.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("WordPress request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.Path),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "wordpress request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read wordpress response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var wpErr wpError
		if jsonErr := json.Unmarshal(raw, &wpErr); jsonErr == nil && wpErr.Code != "" {
			return &APIError{Code: wpErr.Code, Message: wpErr.Message, Status: resp.StatusCode}
		}

		// Non-2xx without a structured body counts as a generic upstream error.
		return &APIError{Code: "http_" + strconv.Itoa(resp.StatusCode), Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "failed to decode wordpress response")
	}

	return nil
}
