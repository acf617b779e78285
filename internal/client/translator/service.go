// Package translator translates slang through the API and falls back to a
// built-in dictionary when the server cannot be reached.
package translator

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/client/httpclient"
	"github.com/dmitrijs2005/genzclient/internal/logging"
)

var ErrEmptyText = errors.New("nothing to translate")

// Status is the last known reachability of the API.
type Status int32

const (
	StatusUnknown Status = iota
	StatusConnected
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// API is the part of api.Translation the service calls.
type API interface {
	Translate(ctx context.Context, text string) (*api.TranslationResult, error)
	Health(ctx context.Context) (string, error)
}

type Result struct {
	Original   string
	Translated string
	TermsFound []string
	// Offline is set when the built-in dictionary produced the result.
	Offline bool
}

type Service struct {
	api    API
	log    logging.Logger
	status atomic.Int32
}

func NewService(a API, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{api: a, log: log.With("component", "translator")}
}

func (s *Service) Status() Status {
	return Status(s.status.Load())
}

// Translate sends the trimmed text to the API. When the server is
// unreachable or times out the local dictionary answers instead. Other
// failures are returned.
func (s *Service) Translate(ctx context.Context, text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	res, err := s.api.Translate(ctx, text)
	s.observe(err)
	if err == nil {
		return &Result{Original: text, Translated: res.TranslatedText, TermsFound: res.TermsFound}, nil
	}
	if !unreachable(err) {
		return nil, err
	}

	s.log.Warn(ctx, "api unreachable, translating offline", "error", err)
	translated, found := Translate(text)
	return &Result{Original: text, Translated: translated, TermsFound: found, Offline: true}, nil
}

// CheckHealth probes /health and updates Status.
func (s *Service) CheckHealth(ctx context.Context) Status {
	_, err := s.api.Health(ctx)
	s.observe(err)
	return s.Status()
}

// WatchHealth calls CheckHealth every interval until ctx is done. Status
// changes are logged.
func (s *Service) WatchHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			before := s.Status()
			if after := s.CheckHealth(ctx); after != before {
				s.log.Info(ctx, "api status changed", "from", before.String(), "to", after.String())
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) observe(err error) {
	switch {
	case err == nil:
		s.status.Store(int32(StatusConnected))
	case unreachable(err):
		s.status.Store(int32(StatusDisconnected))
	default:
		// an HTTP status means the server answered
		var apiErr *httpclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status != 0 {
			s.status.Store(int32(StatusConnected))
		}
	}
}

func unreachable(err error) bool {
	return errors.Is(err, httpclient.ErrUnavailable) || errors.Is(err, httpclient.ErrTimeout)
}
