package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrServer           = errors.New("server error")
	ErrUnavailable      = errors.New("server unavailable")
	ErrTimeout          = errors.New("request timed out")
	ErrValidation       = errors.New("request rejected")
	ErrUnexpectedStatus = errors.New("unexpected response")
	ErrNoResponse       = errors.New("pipeline returned no response")
)

// Kind is the classification of a failed request.
type Kind int

const (
	KindOther Kind = iota
	KindUnauthorized
	KindNotFound
	KindServer
	KindNetwork
	KindValidation
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server_error"
	case KindNetwork:
		return "network_unreachable"
	case KindValidation:
		return "validation"
	case KindTimeout:
		return "timeout"
	default:
		return "other"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindServer:
		return ErrServer
	case KindNetwork:
		return ErrUnavailable
	case KindValidation:
		return ErrValidation
	case KindTimeout:
		return ErrTimeout
	default:
		return ErrUnexpectedStatus
	}
}

// KindForStatus maps an HTTP status of a failed response to its Kind.
func KindForStatus(status int) Kind {
	switch {
	case status == 401:
		return KindUnauthorized
	case status == 404:
		return KindNotFound
	case status >= 500 && status <= 599:
		return KindServer
	case status >= 400 && status <= 499:
		return KindValidation
	default:
		return KindOther
	}
}

// APIError describes a failed request. Status is zero when no response was
// received. Err holds the transport error, if any.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Method  string
	URL     string
	Err     error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", e.Method, e.URL, e.Kind.sentinel())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	} else if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// UserMessage returns the server-provided message carried by err, or
// fallback when there is none.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// errorBody is the subset of the server's error payload we read. The
// "error" field holds only the HTTP reason phrase and is ignored.
type errorBody struct {
	Message string `json:"message"`
}

func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	return strings.TrimSpace(eb.Message)
}
