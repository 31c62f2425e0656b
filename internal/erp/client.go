// internal/erp/client.go
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	xerrors "lenddesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Client is the shared HTTP client for the remote ERP backend. It carries the
// server-managed session cookie in its jar and attaches the anti-forgery token
// header on every request when one is configured. Every 401 response is logged
// for diagnostics; the client never redirects on its own.
type Client struct {
	baseURL    string
	csrfToken  string
	httpClient *http.Client
	logger     *zap.Logger
}

type Config struct {
	BaseURL   string
	CSRFToken string
	Timeout   time.Duration
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("no ERP base URL provided")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		csrfToken: cfg.CSRFToken,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// ListOptions mirror the ERP list query surface.
type ListOptions struct {
	Filters interface{}
	Fields  []string
	Limit   int
	Offset  int
	OrderBy string
}

// resourceEnvelope wraps /api/resource responses.
type resourceEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// methodEnvelope wraps /api/method responses.
type methodEnvelope struct {
	Message json.RawMessage `json:"message"`
}

// GetResource fetches a single document of the doctype by name into out.
func (c *Client) GetResource(ctx context.Context, doctype, name string, out interface{}) error {
	raw, err := c.do(ctx, http.MethodGet, c.resourcePath(doctype, name), nil, nil)
	if err != nil {
		return err
	}
	return unwrapData(raw, out)
}

// GetList fetches documents of the doctype with filters and pagination into out.
func (c *Client) GetList(ctx context.Context, doctype string, opts ListOptions, out interface{}) error {
	query := url.Values{}
	if opts.Filters != nil {
		encoded, err := json.Marshal(opts.Filters)
		if err != nil {
			return fmt.Errorf("failed to encode filters: %w", err)
		}
		query.Set("filters", string(encoded))
	}
	if len(opts.Fields) > 0 {
		encoded, err := json.Marshal(opts.Fields)
		if err != nil {
			return fmt.Errorf("failed to encode fields: %w", err)
		}
		query.Set("fields", string(encoded))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.OrderBy != "" {
		query.Set("order_by", opts.OrderBy)
	}

	raw, err := c.do(ctx, http.MethodGet, c.resourcePath(doctype, ""), query, nil)
	if err != nil {
		return err
	}
	return unwrapData(raw, out)
}

// CreateResource creates a document of the doctype from data into out.
func (c *Client) CreateResource(ctx context.Context, doctype string, data, out interface{}) error {
	raw, err := c.do(ctx, http.MethodPost, c.resourcePath(doctype, ""), nil, data)
	if err != nil {
		return err
	}
	return unwrapData(raw, out)
}

// UpdateResource updates the named document of the doctype from data into out.
func (c *Client) UpdateResource(ctx context.Context, doctype, name string, data, out interface{}) error {
	raw, err := c.do(ctx, http.MethodPut, c.resourcePath(doctype, name), nil, data)
	if err != nil {
		return err
	}
	return unwrapData(raw, out)
}

// DeleteResource deletes the named document of the doctype.
func (c *Client) DeleteResource(ctx context.Context, doctype, name string) error {
	_, err := c.do(ctx, http.MethodDelete, c.resourcePath(doctype, name), nil, nil)
	return err
}

// CallMethod invokes a whitelisted server method, unwrapping the message
// envelope into out.
func (c *Client) CallMethod(ctx context.Context, method string, args, out interface{}) error {
	raw, err := c.do(ctx, http.MethodPost, "/api/method/"+method, nil, args)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	var envelope methodEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &xerrors.NetworkError{Op: "call " + method, Err: fmt.Errorf("malformed response body: %w", err)}
	}
	if len(envelope.Message) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Message, out); err != nil {
		return &xerrors.NetworkError{Op: "call " + method, Err: fmt.Errorf("malformed message payload: %w", err)}
	}
	return nil
}

// CallMethodGet invokes a server method over GET, for read-only methods that
// the backend exposes that way (identity check, logout).
func (c *Client) CallMethodGet(ctx context.Context, method string, out interface{}) error {
	raw, err := c.do(ctx, http.MethodGet, "/api/method/"+method, nil, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	var envelope methodEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &xerrors.NetworkError{Op: "call " + method, Err: fmt.Errorf("malformed response body: %w", err)}
	}
	if len(envelope.Message) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Message, out); err != nil {
		return &xerrors.NetworkError{Op: "call " + method, Err: fmt.Errorf("malformed message payload: %w", err)}
	}
	return nil
}

// CallMethodFull invokes a server method and decodes the whole response body
// into out, for endpoints like login that put fields outside the message
// envelope.
func (c *Client) CallMethodFull(ctx context.Context, method string, args, out interface{}) error {
	raw, err := c.do(ctx, http.MethodPost, "/api/method/"+method, nil, args)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &xerrors.NetworkError{Op: "call " + method, Err: fmt.Errorf("malformed response body: %w", err)}
	}
	return nil
}

func (c *Client) resourcePath(doctype, name string) string {
	path := "/api/resource/" + url.PathEscape(doctype)
	if name != "" {
		path += "/" + url.PathEscape(name)
	}
	return path
}

// do executes the request and returns the raw response body. Non-2xx statuses
// are mapped to *xerrors.NetworkError carrying the status and the server
// message when the body contained one.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	op := fmt.Sprintf("%s %s", method, path)

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, &xerrors.NetworkError{Op: op, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.csrfToken != "" {
		req.Header.Set("X-Frappe-CSRF-Token", c.csrfToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &xerrors.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &xerrors.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Diagnostic only. Redirecting unauthorized operators is the route
		// guard's job, reached through the controller state.
		c.logger.Warn("unauthorized response from ERP",
			zap.String("path", path),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &xerrors.NetworkError{
			Op:            op,
			StatusCode:    resp.StatusCode,
			ServerMessage: serverMessage(raw),
		}
	}

	return raw, nil
}

func unwrapData(raw []byte, out interface{}) error {
	if out == nil {
		return nil
	}
	var envelope resourceEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &xerrors.NetworkError{Op: "decode response", Err: fmt.Errorf("malformed response body: %w", err)}
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &xerrors.NetworkError{Op: "decode response", Err: fmt.Errorf("malformed data payload: %w", err)}
	}
	return nil
}

// serverMessage pulls a human-readable message out of an ERP error body.
func serverMessage(raw []byte) string {
	var body struct {
		Message   string `json:"message"`
		Exception string `json:"exception"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Exception
}
