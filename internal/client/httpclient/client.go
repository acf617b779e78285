package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/genzclient/internal/logging"
)

// RequestTimeout is the ceiling applied to every request.
const RequestTimeout = 10 * time.Second

// HTTPDoer is the transport a Client sends requests through.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL      string
	doer         HTTPDoer
	headers      map[string]string
	interceptors []Interceptor
	timeout      time.Duration
	log          logging.Logger
	invoke       Invoker
}

type Option func(*Client)

func WithDoer(d HTTPDoer) Option {
	return func(c *Client) { c.doer = d }
}

// WithInterceptors appends interceptors; they run in the order given.
func WithInterceptors(ics ...Interceptor) Option {
	return func(c *Client) { c.interceptors = append(c.interceptors, ics...) }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHeaders adds default headers sent with every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		for k, v := range h {
			c.headers[k] = v
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    &http.Client{},
		headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		timeout: RequestTimeout,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.invoke = chain(c.interceptors, func(req *http.Request) (*http.Response, error) {
		return c.doer.Do(req)
	})
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one request. body, when not nil, is sent as JSON; an empty query
// adds no query string. The response is decoded into out unless out is nil;
// a *string receives the raw body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.url(path, query)

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.invoke(req)
	if err != nil {
		return c.ensureClassified(req, err)
	}
	if resp == nil {
		return noResponseError(req)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(req, resp)
	}
	defer resp.Body.Close()

	if err := decode(resp.Body, out); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &APIError{Kind: KindTimeout, Method: method, URL: target, Err: err}
		}
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Get, Post and Put are shorthands for Do.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// ensureClassified keeps the *APIError contract for pipelines built
// without Classify.
func (c *Client) ensureClassified(req *http.Request, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return transportError(req, err)
}

func decode(r io.Reader, out any) error {
	if out == nil {
		_, err := io.Copy(io.Discard, r)
		return err
	}
	if s, ok := out.(*string); ok {
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		*s = strings.TrimSpace(string(b))
		return nil
	}
	err := json.NewDecoder(r).Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
