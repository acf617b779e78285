package api

import (
	"context"
	"errors"
	"net/url"
)

// ErrNoRefreshToken is returned by Auth.Refresh before any network call when
// no refresh token is held.
var ErrNoRefreshToken = errors.New("no refresh token")

// Requester is the subset of httpclient.Client used by the facades.
type Requester interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// RefreshTokenSource supplies the refresh token sent by Auth.Refresh.
type RefreshTokenSource interface {
	RefreshToken() string
}

// API bundles the four facades over one Requester.
type API struct {
	Translation *Translation
	Auth        *Auth
	Profiles    *Profiles
	Community   *Community
}

func New(r Requester, tokens RefreshTokenSource) *API {
	return &API{
		Translation: NewTranslation(r),
		Auth:        NewAuth(r, tokens),
		Profiles:    NewProfiles(r),
		Community:   NewCommunity(r),
	}
}
