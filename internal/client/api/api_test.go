package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/client/apitest"
	"github.com/dmitrijs2005/genzclient/internal/client/httpclient"
	"github.com/dmitrijs2005/genzclient/internal/client/tokens"
	"github.com/dmitrijs2005/genzclient/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) (*api.API, *tokens.Store, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	store := tokens.NewStore()
	c := httpclient.New(srv.URL(),
		httpclient.WithDoer(srv.Client()),
		httpclient.WithInterceptors(httpclient.Standard(store, logging.Nop(), nil)...),
	)
	return api.New(c, store), store, srv
}

func ptr(s string) *string { return &s }

func TestCommunity_VibesQuery(t *testing.T) {
	a, _, srv := newAPI(t)
	ctx := context.Background()

	_, err := a.Community.Vibes(ctx, api.VibeFilter{Tag: ptr("hype")})
	require.NoError(t, err)
	_, err = a.Community.Vibes(ctx, api.VibeFilter{})
	require.NoError(t, err)

	reqs := srv.RequestsTo(http.MethodGet, "/community/vibes")
	require.Len(t, reqs, 2)
	assert.Equal(t, "tag=hype", reqs[0].RawQuery)
	assert.Empty(t, reqs[1].RawQuery)
}

func TestCommunity_VibesFilters(t *testing.T) {
	a, _, srv := newAPI(t)
	srv.SeedVibe(api.Vibe{Handle: "ana", PersonaTag: "Chaos Poet", Tags: []string{"hype"}})
	srv.SeedVibe(api.Vibe{Handle: "ben", PersonaTag: "sage", Tags: []string{"chill"}, Visibility: api.VisibilityPrivate})

	got, err := a.Community.Vibes(context.Background(), api.VibeFilter{Tag: ptr("HYPE")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ana", got[0].Handle)

	got, err = a.Community.Vibes(context.Background(), api.VibeFilter{Visibility: ptr("private")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ben", got[0].Handle)
}

func TestAuth_RefreshWithoutTokenSendsNothing(t *testing.T) {
	a, _, srv := newAPI(t)

	_, err := a.Auth.Refresh(context.Background())
	require.ErrorIs(t, err, api.ErrNoRefreshToken)
	assert.Empty(t, srv.Requests())
}

func TestAuth_LoginAndRefresh(t *testing.T) {
	a, store, srv := newAPI(t)
	srv.SeedUser("ana@example.com", "password1", "ana")
	ctx := context.Background()

	resp, err := a.Auth.Login(ctx, api.LoginRequest{Email: "ana@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.Profile.Handle)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	store.Set(tokens.Pair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken})

	refreshed, err := a.Auth.Refresh(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	reqs := srv.RequestsTo(http.MethodPost, "/auth/refresh")
	require.Len(t, reqs, 1)
	var body map[string]string
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	assert.Equal(t, map[string]string{"refreshToken": resp.RefreshToken}, body)
}

func TestAuth_BadCredentialsCarryServerMessage(t *testing.T) {
	a, _, srv := newAPI(t)
	srv.SeedUser("ana@example.com", "password1", "ana")

	_, err := a.Auth.Login(context.Background(), api.LoginRequest{Email: "ana@example.com", Password: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, httpclient.ErrValidation)
	assert.Equal(t, "Invalid credentials", httpclient.UserMessage(err, "fallback"))
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	a, _, _ := newAPI(t)
	req := api.RegisterRequest{Email: "ana@example.com", Password: "password1", Handle: "ana"}

	_, err := a.Auth.Register(context.Background(), req)
	require.NoError(t, err)

	req.Handle = "ana2"
	_, err = a.Auth.Register(context.Background(), req)
	assert.Equal(t, "Email already registered", httpclient.UserMessage(err, ""))
}

func TestProfiles_MeRequiresToken(t *testing.T) {
	a, store, srv := newAPI(t)
	p := srv.SeedUser("ana@example.com", "password1", "ana")

	_, err := a.Profiles.Me(context.Background())
	require.ErrorIs(t, err, httpclient.ErrUnauthorized)

	access, refresh, err := srv.IssueTokens(p.ID)
	require.NoError(t, err)
	store.Set(tokens.Pair{AccessToken: access, RefreshToken: refresh})

	me, err := a.Profiles.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p.ID, me.ID)

	updated, err := a.Profiles.Update(context.Background(), api.ProfileUpdate{Bio: ptr("hi")})
	require.NoError(t, err)
	assert.Equal(t, "hi", updated.Bio)
	assert.Equal(t, "vibe curator", updated.PersonaTag)

	put := srv.RequestsTo(http.MethodPut, "/profiles/me")
	require.Len(t, put, 1)
	assert.JSONEq(t, `{"bio":"hi"}`, string(put[0].Body))
}

func TestCommunity_ShareReactRemix(t *testing.T) {
	a, store, srv := newAPI(t)
	p := srv.SeedUser("ana@example.com", "password1", "ana")
	access, refresh, err := srv.IssueTokens(p.ID)
	require.NoError(t, err)
	store.Set(tokens.Pair{AccessToken: access, RefreshToken: refresh})
	ctx := context.Background()

	v, err := a.Community.Share(ctx, api.VibeRequest{
		OriginalText:   "no cap",
		TranslatedText: "no lie",
		Tags:           []string{"truth"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", v.Handle)
	assert.Equal(t, api.VisibilityPublic, v.Visibility)

	share := srv.RequestsTo(http.MethodPost, "/community/vibes")
	require.Len(t, share, 1)
	assert.JSONEq(t, `{"originalText":"no cap","translatedText":"no lie","tags":["truth"]}`, string(share[0].Body))

	v, err = a.Community.React(ctx, v.ID, api.PulseHype)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Pulses[api.PulseHype])

	v, err = a.Community.Remix(ctx, v.ID, "no cap fr")
	require.NoError(t, err)
	assert.Equal(t, 1, v.RemixCount)

	remixes, err := a.Community.Remixes(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, remixes, 1)
	assert.Equal(t, "no cap fr", remixes[0].RemixText)

	_, err = a.Community.Remixes(ctx, 9999)
	assert.ErrorIs(t, err, httpclient.ErrNotFound)
}

func TestTranslation_Endpoints(t *testing.T) {
	a, _, srv := newAPI(t)
	ctx := context.Background()

	res, err := a.Translation.Translate(ctx, "That pizza is bussin, no cap")
	require.NoError(t, err)
	assert.Contains(t, res.TranslatedText, "no lie")
	assert.ElementsMatch(t, []string{"no cap", "bussin"}, res.TermsFound)

	res, err = a.Translation.TranslateGet(ctx, "mid")
	require.NoError(t, err)
	assert.Equal(t, "mediocre/average", res.TranslatedText)

	hist, err := a.Translation.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
	assert.Equal(t, "limit=10", srv.RequestsTo(http.MethodGet, "/history")[0].RawQuery)

	terms, err := a.Translation.SearchTerms(ctx, "cap")
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "query=cap", srv.RequestsTo(http.MethodGet, "/terms/search")[0].RawQuery)

	popular, err := a.Translation.PopularTerms(ctx)
	require.NoError(t, err)
	assert.Equal(t, "no cap", popular[0].GenzText)

	health, err := a.Translation.Health(ctx)
	require.NoError(t, err)
	assert.Contains(t, health, "running")
}

func TestTranslation_ServerFailureIsClassified(t *testing.T) {
	a, _, srv := newAPI(t)
	srv.Fail(http.MethodGet, "/terms", http.StatusInternalServerError, "db down")

	_, err := a.Translation.Terms(context.Background())
	var apiErr *httpclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, httpclient.KindServer, apiErr.Kind)
	assert.Equal(t, "db down", apiErr.Message)

	srv.Recover(http.MethodGet, "/terms")
	terms, err := a.Translation.Terms(context.Background())
	require.NoError(t, err)
	assert.Len(t, terms, 3)
}

func TestParsePulseKind(t *testing.T) {
	tests := []struct {
		in   string
		want api.PulseKind
		ok   bool
	}{
		{"MIND_BEND", api.PulseMindBend, true},
		{"hype", api.PulseHype, true},
		{"mindbend", api.PulseMindBend, true},
		{" Cosmic ", api.PulseCosmic, true},
		{"meh", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := api.ParsePulseKind(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVisibility(t *testing.T) {
	v, ok := api.ParseVisibility("following")
	assert.True(t, ok)
	assert.Equal(t, api.VisibilityFollowing, v)

	_, ok = api.ParseVisibility("friends")
	assert.False(t, ok)
}
