// Package api implements the client of the Portal de Prestadores REST API
// and the gateway interceptor every portal session sends its requests through.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// LoginPath is the backend login endpoint.
	LoginPath = "/login"
	// UserPath is the backend user collection.
	UserPath = "/usuario"
	// ContractPath is the backend contract collection.
	ContractPath = "/contrato"
	// AnnouncementPath is the backend announcement feed.
	AnnouncementPath = "/aviso"
	// RecoverPasswordPath is the backend password recovery endpoint.
	RecoverPasswordPath = "/recuperar-senha"

	defaultTimeout = 30 * time.Second
	maxBodySize    = 4 << 20
)

// Client talks to the backend REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http.Client used for all calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTransport sets the transport of the default http.Client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Transport: rt, Timeout: c.httpClient.Timeout}
	}
}

// WithTimeout sets the overall timeout of a call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Login authenticates with email and password. It returns the login data and the
// backend message.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, string, error) {
	var out Envelope[LoginResult]

	err := c.do(ctx, http.MethodPost, LoginPath, LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, "", err
	}

	if out.Data.Token == "" {
		return nil, out.Message, ErrEmptyToken
	}

	return &out.Data, out.Message, nil
}

// GetUser fetches the full user record of id, including group and permissions.
// Both the enveloped and the bare record format are accepted.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var raw json.RawMessage

	if err := c.do(ctx, http.MethodGet, UserPath+"/"+strconv.FormatInt(id, 10), nil, &raw); err != nil {
		return nil, err
	}

	var env Envelope[*User]
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		return env.Data, nil
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode user %d: %w", id, err)
	}

	return &user, nil
}

// ListUsers returns all users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out Envelope[[]User]
	if err := c.do(ctx, http.MethodGet, UserPath, nil, &out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// ListContracts returns all contracts visible to the caller.
func (c *Client) ListContracts(ctx context.Context) ([]Contract, error) {
	var out Envelope[[]Contract]
	if err := c.do(ctx, http.MethodGet, ContractPath, nil, &out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// DeleteContract removes contract id and returns the backend message.
func (c *Client) DeleteContract(ctx context.Context, id int64) (string, error) {
	var out Envelope[json.RawMessage]
	if err := c.do(ctx, http.MethodDelete, ContractPath+"/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return "", err
	}

	return out.Message, nil
}

// ListAnnouncements returns the announcement feed, newest first as sent by the backend.
func (c *Client) ListAnnouncements(ctx context.Context) ([]Announcement, error) {
	var out Envelope[[]Announcement]
	if err := c.do(ctx, http.MethodGet, AnnouncementPath, nil, &out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

// RecoverPassword asks the backend to send recovery instructions to email.
func (c *Client) RecoverPassword(ctx context.Context, email string) (string, error) {
	var out Envelope[json.RawMessage]
	if err := c.do(ctx, http.MethodPost, RecoverPasswordPath, map[string]string{"email": email}, &out); err != nil {
		return "", err
	}

	return out.Message, nil
}

// do performs a JSON call. Non-2xx answers become *Error.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg MessageBody

		_ = json.Unmarshal(data, &msg)

		return &Error{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
