package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type Community struct {
	r Requester
}

func NewCommunity(r Requester) *Community {
	return &Community{r: r}
}

// Vibes fetches the feed. Only the filter fields that are set become query
// parameters.
func (c *Community) Vibes(ctx context.Context, f VibeFilter) ([]Vibe, error) {
	var out []Vibe
	if err := c.r.Do(ctx, http.MethodGet, "/community/vibes", f.Query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Query renders the filter; an all-nil filter yields an empty url.Values.
func (f VibeFilter) Query() url.Values {
	q := url.Values{}
	if f.Persona != nil {
		q.Set("persona", *f.Persona)
	}
	if f.Tag != nil {
		q.Set("tag", *f.Tag)
	}
	if f.Visibility != nil {
		q.Set("visibility", *f.Visibility)
	}
	return q
}

func (c *Community) Share(ctx context.Context, req VibeRequest) (*Vibe, error) {
	var out Vibe
	if err := c.r.Do(ctx, http.MethodPost, "/community/vibes", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Community) React(ctx context.Context, id int64, kind PulseKind) (*Vibe, error) {
	var out Vibe
	if err := c.r.Do(ctx, http.MethodPost, vibePath(id, "react"), nil, pulseRequest{PulseType: kind}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Community) Remix(ctx context.Context, id int64, text string) (*Vibe, error) {
	var out Vibe
	if err := c.r.Do(ctx, http.MethodPost, vibePath(id, "remix"), nil, remixRequest{RemixText: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Community) Remixes(ctx context.Context, id int64) ([]Remix, error) {
	var out []Remix
	if err := c.r.Do(ctx, http.MethodGet, vibePath(id, "remixes"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func vibePath(id int64, action string) string {
	return fmt.Sprintf("/community/vibes/%d/%s", id, action)
}
