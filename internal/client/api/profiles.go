package api

import (
	"context"
	"net/http"
)

type Profiles struct {
	r Requester
}

func NewProfiles(r Requester) *Profiles {
	return &Profiles{r: r}
}

func (p *Profiles) Me(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := p.r.Do(ctx, http.MethodGet, "/profiles/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Profiles) Update(ctx context.Context, u ProfileUpdate) (*Profile, error) {
	var out Profile
	if err := p.r.Do(ctx, http.MethodPut, "/profiles/me", nil, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
