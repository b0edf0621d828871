// Package rest fetches table pages from a datasync service over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/config"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/logging"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/paging"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/signals"
)

const (
	DefaultAPIVersion = "3.0.0"
	APIVersionHeader  = "ZUMO-API-VERSION"

	maxErrorBody = 4 << 10
)

type Option func(*Client)

// WithTransport sets the round tripper under the observable transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		if transport != nil {
			c.base = transport
		}
	}
}

func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithTimeout bounds a whole request including reading the body. Zero
// disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

type Client struct {
	endpoint         *url.URL
	base             http.RoundTripper
	httpClient       *http.Client
	headers          http.Header
	apiVersion       string
	timeout          time.Duration
	onRequestStarted signals.Signal[RequestStartedEvent]
	onRequestEnded   signals.Signal[RequestEndedEvent]
}

// NewClient creates a client for the service at endpoint, an absolute http
// or https URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "endpoint %q", endpoint)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Errorf("endpoint %q is not an absolute http(s) URL", endpoint)
	}
	c := &Client{
		endpoint:         u,
		base:             http.DefaultTransport,
		headers:          make(http.Header),
		apiVersion:       DefaultAPIVersion,
		onRequestStarted: signals.NewSignal[RequestStartedEvent](),
		onRequestEnded:   signals.NewSignal[RequestEndedEvent](),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient = &http.Client{
		Transport: &observableTransport{base: c.base, client: c},
		Timeout:   c.timeout,
	}
	return c, nil
}

// FromConfig creates a client from loaded settings.
func FromConfig(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = append([]Option{WithAPIVersion(cfg.APIVersion), WithTimeout(cfg.Timeout)}, opts...)
	return NewClient(cfg.Endpoint, opts...)
}

func (c *Client) Endpoint() *url.URL {
	u := *c.endpoint
	return &u
}

func (c *Client) HttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) OnRequestStarted() signals.Signal[RequestStartedEvent] {
	return c.onRequestStarted
}

func (c *Client) OnRequestEnded() signals.Signal[RequestEndedEvent] {
	return c.onRequestEnded
}

// Table returns the page source of one remote table.
func (c *Client) Table(name string) *Table {
	return &Table{
		client: c,
		name:   name,
		url:    c.endpoint.JoinPath("tables", name),
	}
}

// Table fetches pages of one remote table. It implements paging.RawFetcher.
type Table struct {
	client *Client
	name   string
	url    *url.URL
}

var _ paging.RawFetcher = (*Table)(nil)

func (t *Table) Name() string {
	return t.name
}

func (t *Table) URL() *url.URL {
	u := *t.url
	return &u
}

// FetchRaw requests the table with the target's query string, or follows a
// continuation as is. Relative continuations resolve against the table URL.
func (t *Table) FetchRaw(ctx context.Context, target paging.Target) (paging.RawPage, error) {
	u, err := t.resolve(target)
	if err != nil {
		return paging.RawPage{}, err
	}
	return t.client.get(ctx, u)
}

// resolve returns the request URL. Absolute continuations come back
// byte for byte.
func (t *Table) resolve(target paging.Target) (string, error) {
	if c, ok := target.Continuation(); ok {
		ref, err := url.Parse(c.String())
		if err != nil {
			return "", errors.Wrapf(err, "continuation %q", c)
		}
		if ref.IsAbs() {
			return c.String(), nil
		}
		return t.url.ResolveReference(ref).String(), nil
	}
	u := t.URL()
	u.RawQuery = strings.TrimPrefix(target.Query(), "?")
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, u string) (paging.RawPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return paging.RawPage{}, errors.WithStack(err)
	}
	for key, values := range c.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(APIVersionHeader, c.apiVersion)
	req.Header.Set(requestIDHeader, uuid.NewString())

	logger := logging.Ctx(ctx).With().
		Str("request_id", req.Header.Get(requestIDHeader)).
		Str("url", u).
		Logger()
	logger.Debug().Msg("requesting page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("request failed")
		return paging.RawPage{}, errors.Wrap(err, "request page")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serviceErr := &ServiceError{
			StatusCode: resp.StatusCode,
			URL:        u,
			Body:       strings.TrimSpace(string(body)),
		}
		logger.Warn().Int("status", resp.StatusCode).Msg("service rejected request")
		return paging.RawPage{}, serviceErr
	}

	var page paging.RawPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return paging.RawPage{}, errors.Wrapf(err, "decode page from %s", u)
	}
	logger.Debug().
		Int("status", resp.StatusCode).
		Int("items", len(page.Items)).
		Msg("page received")
	return page, nil
}
