package community

import (
	"context"
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

func newFeed(t *testing.T) (*Feed, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	p := srv.SeedUser("ana@example.com", "password1", "ana")
	access, refresh, err := srv.IssueTokens(p.ID)
	require.NoError(t, err)

	store := tokens.NewStore()
	store.Set(tokens.Pair{AccessToken: access, RefreshToken: refresh})
	c := httpclient.New(srv.URL(),
		httpclient.WithDoer(srv.Client()),
		httpclient.WithInterceptors(httpclient.Standard(store, logging.Nop(), nil)...),
	)
	return NewFeed(api.NewCommunity(c)), srv
}

func tag(s string) *string { return &s }

func TestFeed_FetchKeepsListOnFailure(t *testing.T) {
	f, srv := newFeed(t)
	srv.SeedVibe(api.Vibe{Handle: "ben", Tags: []string{"hype"}})
	ctx := context.Background()

	got, err := f.Fetch(ctx, api.VibeFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	srv.Fail(http.MethodGet, "/community/vibes", http.StatusServiceUnavailable, "feed is resting")
	_, err = f.Fetch(ctx, api.VibeFilter{Tag: tag("hype")})
	require.ErrorIs(t, err, httpclient.ErrServer)
	assert.Equal(t, "feed is resting", f.Err())
	assert.Len(t, f.Vibes(), 1)
	assert.Nil(t, f.Filter().Tag)

	srv.Recover(http.MethodGet, "/community/vibes")
	_, err = f.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, f.Err())
	assert.Empty(t, srv.RequestsTo(http.MethodGet, "/community/vibes")[2].RawQuery)
}

func TestFeed_ShareAfterFailedFetchUsesLastLoadedFilter(t *testing.T) {
	f, srv := newFeed(t)
	srv.SeedVibe(api.Vibe{Handle: "ben", Tags: []string{"hype"}})
	ctx := context.Background()

	_, err := f.Fetch(ctx, api.VibeFilter{Tag: tag("hype")})
	require.NoError(t, err)

	srv.Fail(http.MethodGet, "/community/vibes", http.StatusInternalServerError, "boom")
	_, err = f.Fetch(ctx, api.VibeFilter{Tag: tag("broken")})
	require.Error(t, err)
	srv.Recover(http.MethodGet, "/community/vibes")

	_, err = f.Share(ctx, api.VibeRequest{OriginalText: "bet", TranslatedText: "okay", Tags: []string{"hype"}})
	require.NoError(t, err)

	feeds := srv.RequestsTo(http.MethodGet, "/community/vibes")
	require.Len(t, feeds, 3)
	assert.Equal(t, "tag=hype", feeds[2].RawQuery)
	assert.Equal(t, "hype", *f.Filter().Tag)
	assert.Len(t, f.Vibes(), 2)
}

type failingAPI struct{ API }

func (failingAPI) Vibes(context.Context, api.VibeFilter) ([]api.Vibe, error) {
	return nil, errors.New("connection reset")
}

func TestFeed_FetchFallbackMessage(t *testing.T) {
	f := NewFeed(failingAPI{})

	_, err := f.Fetch(context.Background(), api.VibeFilter{})
	require.Error(t, err)
	assert.Equal(t, "Unable to load community feed", f.Err())
	assert.Empty(t, f.Vibes())
}

func TestFeed_ShareRefetchesWithCurrentFilter(t *testing.T) {
	f, srv := newFeed(t)
	ctx := context.Background()
	_, err := f.Fetch(ctx, api.VibeFilter{Tag: tag("slang")})
	require.NoError(t, err)

	v, err := f.Share(ctx, api.VibeRequest{OriginalText: "bet", TranslatedText: "okay", Tags: ParseTags("Slang, remix")})
	require.NoError(t, err)
	assert.Equal(t, []string{"slang", "remix"}, v.Tags)

	feeds := srv.RequestsTo(http.MethodGet, "/community/vibes")
	require.Len(t, feeds, 2)
	assert.Equal(t, "tag=slang", feeds[1].RawQuery)
	require.Len(t, f.Vibes(), 1)
	assert.Equal(t, v.ID, f.Vibes()[0].ID)
}

func TestFeed_PulseAndRemixMergeInPlace(t *testing.T) {
	f, srv := newFeed(t)
	first := srv.SeedVibe(api.Vibe{Handle: "ben"})
	second := srv.SeedVibe(api.Vibe{Handle: "cy"})
	ctx := context.Background()
	_, err := f.Fetch(ctx, api.VibeFilter{})
	require.NoError(t, err)

	_, err = f.Pulse(ctx, first.ID, api.PulseCosmic)
	require.NoError(t, err)
	_, err = f.Remix(ctx, second.ID, "sheesh")
	require.NoError(t, err)

	byID := map[int64]api.Vibe{}
	for _, v := range f.Vibes() {
		byID[v.ID] = v
	}
	assert.Len(t, byID, 2)
	assert.Equal(t, int64(1), byID[first.ID].Pulses[api.PulseCosmic])
	assert.Equal(t, 1, byID[second.ID].RemixCount)

	remixes, err := f.Remixes(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, remixes, 1)
	assert.Equal(t, "ana", remixes[0].Handle)
}

func TestFeed_VibesIsACopy(t *testing.T) {
	f, srv := newFeed(t)
	srv.SeedVibe(api.Vibe{Handle: "ben"})
	_, err := f.Fetch(context.Background(), api.VibeFilter{})
	require.NoError(t, err)

	f.Vibes()[0].Handle = "mallory"
	assert.Equal(t, "ben", f.Vibes()[0].Handle)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"slang", "remix", "hype"}, ParseTags("slang, Remix ,,hype"))
	assert.Equal(t, []string{}, ParseTags(" , "))
}
