package httpclient

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/genzclient/internal/client/tokens"
	"github.com/dmitrijs2005/genzclient/internal/logging"
	"github.com/google/uuid"
)

// Invoker sends a request further down the pipeline.
type Invoker func(req *http.Request) (*http.Response, error)

// Interceptor wraps one stage of the pipeline. It may modify req, call next,
// inspect the result, or return an error without calling next at all.
type Interceptor func(req *http.Request, next Invoker) (*http.Response, error)

const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"

	maxErrorBodyBytes = 64 << 10
)

func chain(interceptors []Interceptor, final Invoker) Invoker {
	next := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		ic, inner := interceptors[i], next
		next = func(req *http.Request) (*http.Response, error) {
			return ic(req, inner)
		}
	}
	return next
}

// Standard returns the default interceptor order.
func Standard(provider tokens.Provider, log logging.Logger, m *Metrics) []Interceptor {
	return []Interceptor{
		RequestID(),
		BearerToken(provider),
		Logging(log),
		Classify(log, m),
	}
}

// BearerToken attaches "Authorization: Bearer <token>" when provider holds an
// access token and strips the header otherwise.
func BearerToken(provider tokens.Provider) Interceptor {
	return func(req *http.Request, next Invoker) (*http.Response, error) {
		if token := provider.AccessToken(); token != "" {
			req.Header.Set(AuthorizationHeader, "Bearer "+token)
		} else {
			req.Header.Del(AuthorizationHeader)
		}
		return next(req)
	}
}

// RequestID tags each request with a fresh uuid unless one is already set.
func RequestID() Interceptor {
	return func(req *http.Request, next Invoker) (*http.Response, error) {
		if req.Header.Get(RequestIDHeader) == "" {
			req.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return next(req)
	}
}

// Logging records every outbound request and the status it came back with.
func Logging(log logging.Logger) Interceptor {
	return func(req *http.Request, next Invoker) (*http.Response, error) {
		ctx := req.Context()
		log.Debug(ctx, "making request", "method", req.Method, "url", req.URL.String())

		startedAt := time.Now()
		resp, err := next(req)
		if err != nil || resp == nil {
			return resp, err
		}
		log.Debug(ctx, "response received",
			"method", req.Method,
			"url", req.URL.String(),
			"status", resp.StatusCode,
			"duration_ms", time.Since(startedAt).Milliseconds(),
		)
		return resp, nil
	}
}

// Classify converts transport errors and non-2xx responses into *APIError.
// The error is logged and counted and then returned to the caller as is.
func Classify(log logging.Logger, m *Metrics) Interceptor {
	return func(req *http.Request, next Invoker) (*http.Response, error) {
		ctx := req.Context()
		startedAt := time.Now()

		resp, err := next(req)
		if err != nil {
			apiErr := transportError(req, err)
			m.observe(req.Method, apiErr.Kind.String(), time.Since(startedAt))
			logFailure(ctx, log, apiErr)
			return nil, apiErr
		}

		if resp == nil {
			apiErr := noResponseError(req)
			m.observe(req.Method, apiErr.Kind.String(), time.Since(startedAt))
			logFailure(ctx, log, apiErr)
			return nil, apiErr
		}
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			m.observe(req.Method, "ok", time.Since(startedAt))
			return resp, nil
		}

		apiErr := statusError(req, resp)
		m.observe(req.Method, apiErr.Kind.String(), time.Since(startedAt))
		logFailure(ctx, log, apiErr)
		return nil, apiErr
	}
}

// statusError consumes and closes the body of a failed response.
func statusError(req *http.Request, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	_ = resp.Body.Close()

	return &APIError{
		Kind:    KindForStatus(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: extractMessage(body),
		Method:  req.Method,
		URL:     req.URL.String(),
	}
}

// noResponseError reports an interceptor that returned neither a response
// nor an error.
func noResponseError(req *http.Request) *APIError {
	return &APIError{Kind: KindOther, Method: req.Method, URL: req.URL.String(), Err: ErrNoResponse}
}

func transportError(req *http.Request, err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	kind := KindNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindOther
	}
	return &APIError{Kind: kind, Method: req.Method, URL: req.URL.String(), Err: err}
}

func logFailure(ctx context.Context, log logging.Logger, e *APIError) {
	args := []any{"method", e.Method, "url", e.URL, "kind", e.Kind.String(), "status", e.Status}
	if e.Message != "" {
		args = append(args, "message", e.Message)
	}
	if e.Err != nil {
		args = append(args, "error", e.Err)
	}

	switch e.Kind {
	case KindServer:
		log.Error(ctx, "server error, check backend logs", args...)
	case KindNotFound:
		log.Warn(ctx, "api endpoint not found", args...)
	case KindNetwork:
		log.Error(ctx, "network error, check if backend is running", args...)
	case KindTimeout:
		log.Error(ctx, "request timed out", args...)
	case KindUnauthorized:
		log.Warn(ctx, "request unauthorized", args...)
	default:
		log.Warn(ctx, "request failed", args...)
	}
}
