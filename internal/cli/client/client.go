package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	hclient "github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"

	"github.com/jmar008/dealaai/internal/cli/types"
)

// TokenStore supplies the access token and lets the client discard it
// when the server rejects it.
type TokenStore interface {
	Token() string
	ClearToken() error
}

// Client wraps a Hertz HTTP client for talking to the API server. On any
// 401 response it clears the stored token and notifies unauthorized
// listeners, so the rest of the program can drop its session state.
type Client struct {
	http   *hclient.Client
	server string
	store  TokenStore

	mu        sync.Mutex
	nextSubID int
	listeners map[int]func()
}

// New creates a client for the given server address.
func New(server string, store TokenStore) (*Client, error) {
	normalized, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	h, err := hclient.NewClient(
		hclient.WithDialTimeout(10*time.Second),
		hclient.WithMaxIdleConnDuration(60*time.Second),
		hclient.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &Client{
		http:      h,
		server:    normalized,
		store:     store,
		listeners: make(map[int]func()),
	}, nil
}

// Server returns the normalized server address.
func (c *Client) Server() string {
	return c.server
}

// OnUnauthorized registers a callback fired whenever the server answers
// 401. The returned function removes the subscription.
func (c *Client) OnUnauthorized(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Client) handleUnauthorized() {
	// Discard the rejected token before anyone retries with it.
	_ = c.store.ClearToken()

	c.mu.Lock()
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Do sends a JSON request and decodes the enveloped response. A 2xx
// answer whose body cannot be parsed still counts as success with nil
// data; the status code is what decides the outcome.
func Do[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	raw, err := c.doRaw(ctx, method, path, body, "application/json")
	if err != nil {
		return nil, err
	}

	var envelope types.APIResponse[T]
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, nil
	}
	return envelope.Data, nil
}

// doRaw performs the request and returns the body of a 2xx response.
func (c *Client) doRaw(ctx context.Context, method, path string, body any, accept string) ([]byte, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.server + path)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	if body != nil {
		bodyBytes, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(bodyBytes)
	}

	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	if err := c.http.Do(ctx, req, resp); err != nil {
		return nil, &ConnectionError{Server: c.server, Err: err}
	}

	status := resp.StatusCode()
	respBody := append([]byte(nil), resp.Body()...)

	// A 401 drops the stored token and tells listeners, on top of the
	// normal error handling below.
	if status == 401 {
		c.handleUnauthorized()
	}

	if status < 200 || status >= 300 {
		apiErr := &APIError{Status: status}
		var envelope types.APIResponse[struct{}]
		if err := sonic.Unmarshal(respBody, &envelope); err == nil {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Message
		}
		if status == 401 {
			if apiErr.Code == "" {
				apiErr.Code = "UNAUTHORIZED"
			}
			if apiErr.Message == "" {
				apiErr.Message = "session expired, please log in again"
			}
		}
		return nil, apiErr
	}

	return respBody, nil
}

// normalizeServerURL ensures the server address has a scheme and no
// trailing path.
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}
