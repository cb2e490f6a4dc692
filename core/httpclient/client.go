package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"nutrient-sync/core/errors"

	"github.com/cenkalti/backoff/v5"
)

// UserAgent is sent with every request.
const UserAgent = "nutrient-sync/1.0"

// maxErrorBody caps how much of an error response is kept in the error message.
const maxErrorBody = 512

// Client performs JSON requests and maps failures onto the error taxonomy.
// GET requests are retried with exponential backoff on transport errors and
// temporary statuses (429, 5xx). Other methods are sent once.
type Client struct {
	http            *http.Client
	maxTries        uint
	initialInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithMaxTries sets how many attempts a GET gets in total. Values below one mean one.
func WithMaxTries(n uint) Option {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.maxTries = n
	}
}

// WithInitialInterval sets the first backoff delay between GET attempts.
func WithInitialInterval(d time.Duration) Option {
	return func(c *Client) {
		c.initialInterval = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a client whose transport enforces the given timeout on connection
// setup, TLS handshake and first response byte. A zero timeout defaults to 30s.
func New(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	c := &Client{
		http:            &http.Client{Transport: transport, Timeout: 2 * timeout},
		maxTries:        3,
		initialInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the body into target.
func (r *Response) Decode(url string, target any) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return &errors.ProtocolError{URL: url, Err: err}
	}
	return nil
}

// Get performs a GET with retries and returns the successful response.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	operation := func() (*Response, error) {
		resp, err := c.do(ctx, http.MethodGet, url, header, nil)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		var protoErr *errors.ProtocolError
		if errors.As(err, &protoErr) && !protoErr.Temporary() {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
	)
}

// GetJSON performs a GET and decodes the body into target. The response headers
// are returned for callers that read metadata from them.
func (c *Client) GetJSON(ctx context.Context, url string, header http.Header, target any) (http.Header, error) {
	resp, err := c.Get(ctx, url, header)
	if err != nil {
		return nil, err
	}
	if err := resp.Decode(url, target); err != nil {
		return resp.Header, err
	}
	return resp.Header, nil
}

// SendJSON encodes body and sends it once with the given method.
func (c *Client) SendJSON(ctx context.Context, method, url string, header http.Header, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.do(ctx, method, url, header, payload)
}

func (c *Client) do(ctx context.Context, method, url string, header http.Header, payload []byte) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.TransportError{Method: method, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.TransportError{Method: method, URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(data)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &errors.ProtocolError{URL: url, StatusCode: resp.StatusCode, Message: msg}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
