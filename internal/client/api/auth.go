package api

import (
	"context"
	"net/http"
)

type Auth struct {
	r      Requester
	tokens RefreshTokenSource
}

func NewAuth(r Requester, tokens RefreshTokenSource) *Auth {
	return &Auth{r: r, tokens: tokens}
}

func (a *Auth) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return a.post(ctx, "/auth/register", req)
}

func (a *Auth) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return a.post(ctx, "/auth/login", req)
}

// Refresh exchanges the held refresh token for a new pair. Without one it
// fails with ErrNoRefreshToken and sends nothing.
func (a *Auth) Refresh(ctx context.Context) (*AuthResponse, error) {
	token := ""
	if a.tokens != nil {
		token = a.tokens.RefreshToken()
	}
	if token == "" {
		return nil, ErrNoRefreshToken
	}
	return a.post(ctx, "/auth/refresh", refreshRequest{RefreshToken: token})
}

func (a *Auth) post(ctx context.Context, path string, body any) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.r.Do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
