// Package community keeps a local copy of the community feed in sync with
// the server's answers.
package community

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/client/httpclient"
)

const loadFailedMessage = "Unable to load community feed"

// API is the part of api.Community the feed calls.
type API interface {
	Vibes(ctx context.Context, f api.VibeFilter) ([]api.Vibe, error)
	Share(ctx context.Context, req api.VibeRequest) (*api.Vibe, error)
	React(ctx context.Context, id int64, kind api.PulseKind) (*api.Vibe, error)
	Remix(ctx context.Context, id int64, text string) (*api.Vibe, error)
	Remixes(ctx context.Context, id int64) ([]api.Remix, error)
}

type Feed struct {
	api API

	mu     sync.RWMutex
	vibes  []api.Vibe
	filter api.VibeFilter
	err    string
}

func NewFeed(a API) *Feed {
	return &Feed{api: a}
}

// Fetch loads the feed for filter. On success the filter becomes the one
// Refresh repeats; on failure the current list and filter are kept and Err
// reports why.
func (f *Feed) Fetch(ctx context.Context, filter api.VibeFilter) ([]api.Vibe, error) {
	vibes, err := f.api.Vibes(ctx, filter)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.err = httpclient.UserMessage(err, loadFailedMessage)
		return nil, err
	}
	f.filter = filter
	f.err = ""
	f.vibes = vibes
	return append([]api.Vibe(nil), vibes...), nil
}

// Refresh repeats the last Fetch.
func (f *Feed) Refresh(ctx context.Context) ([]api.Vibe, error) {
	return f.Fetch(ctx, f.Filter())
}

// Share publishes a vibe and reloads the feed with the current filter. A
// failed reload does not fail the share.
func (f *Feed) Share(ctx context.Context, req api.VibeRequest) (*api.Vibe, error) {
	v, err := f.api.Share(ctx, req)
	if err != nil {
		return nil, err
	}
	_, _ = f.Refresh(ctx)
	return v, nil
}

func (f *Feed) Pulse(ctx context.Context, id int64, kind api.PulseKind) (*api.Vibe, error) {
	v, err := f.api.React(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	f.merge(*v)
	return v, nil
}

func (f *Feed) Remix(ctx context.Context, id int64, text string) (*api.Vibe, error) {
	v, err := f.api.Remix(ctx, id, text)
	if err != nil {
		return nil, err
	}
	f.merge(*v)
	return v, nil
}

func (f *Feed) Remixes(ctx context.Context, id int64) ([]api.Remix, error) {
	return f.api.Remixes(ctx, id)
}

// merge replaces the vibe with the same id. Unknown ids are ignored.
func (f *Feed) merge(v api.Vibe) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.vibes {
		if f.vibes[i].ID == v.ID {
			f.vibes[i] = v
			return
		}
	}
}

func (f *Feed) Vibes() []api.Vibe {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]api.Vibe(nil), f.vibes...)
}

func (f *Feed) Filter() api.VibeFilter {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter
}

// Err is the message of the last failed Fetch, or "".
func (f *Feed) Err() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

// ParseTags splits a comma-separated tag list. Tags are trimmed and
// lower-cased; empty ones are dropped.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
