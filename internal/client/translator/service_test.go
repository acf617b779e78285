package translator

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/client/apitest"
	"github.com/dmitrijs2005/genzclient/internal/client/httpclient"
	"github.com/dmitrijs2005/genzclient/internal/client/tokens"
	"github.com/dmitrijs2005/genzclient/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu        sync.Mutex
	Result    *api.TranslationResult
	Err       error
	HealthErr error
	LastText  string
	HealthN   int
}

func (f *fakeAPI) Translate(_ context.Context, text string) (*api.TranslationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastText = text
	return f.Result, f.Err
}

func (f *fakeAPI) Health(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HealthN++
	return "ok", f.HealthErr
}

func (f *fakeAPI) healthCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.HealthN
}

func TestService_TranslateOnline(t *testing.T) {
	f := &fakeAPI{Result: &api.TranslationResult{TranslatedText: "No lie", TermsFound: []string{"no cap"}}}
	s := NewService(f, logging.Nop())

	res, err := s.Translate(context.Background(), "  no cap  ")
	require.NoError(t, err)
	assert.Equal(t, "no cap", f.LastText)
	assert.Equal(t, &Result{Original: "no cap", Translated: "No lie", TermsFound: []string{"no cap"}}, res)
	assert.Equal(t, StatusConnected, s.Status())
}

func TestService_TranslateEmpty(t *testing.T) {
	f := &fakeAPI{}
	s := NewService(f, nil)

	_, err := s.Translate(context.Background(), " \t")
	require.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, f.LastText)
	assert.Equal(t, StatusUnknown, s.Status())
}

func TestService_FallsBackWhenUnreachable(t *testing.T) {
	for _, kind := range []httpclient.Kind{httpclient.KindNetwork, httpclient.KindTimeout} {
		t.Run(kind.String(), func(t *testing.T) {
			f := &fakeAPI{Err: &httpclient.APIError{Kind: kind}}
			s := NewService(f, logging.Nop())

			res, err := s.Translate(context.Background(), "ngl that was mid")
			require.NoError(t, err)
			assert.True(t, res.Offline)
			assert.Equal(t, "Not going to lie that was mediocre/average", res.Translated)
			assert.Equal(t, StatusDisconnected, s.Status())
		})
	}
}

func TestService_OtherErrorsPropagate(t *testing.T) {
	f := &fakeAPI{Err: &httpclient.APIError{Kind: httpclient.KindServer, Status: http.StatusInternalServerError}}
	s := NewService(f, logging.Nop())

	_, err := s.Translate(context.Background(), "bet")
	require.ErrorIs(t, err, httpclient.ErrServer)
	assert.Equal(t, StatusConnected, s.Status())

	f.Err = errors.New("weird")
	_, err = s.Translate(context.Background(), "bet")
	require.Error(t, err)
	assert.Equal(t, StatusConnected, s.Status(), "a non-HTTP failure leaves the status alone")
}

func TestService_CheckHealth(t *testing.T) {
	f := &fakeAPI{}
	s := NewService(f, logging.Nop())
	assert.Equal(t, StatusConnected, s.CheckHealth(context.Background()))

	f.HealthErr = &httpclient.APIError{Kind: httpclient.KindNetwork}
	assert.Equal(t, StatusDisconnected, s.CheckHealth(context.Background()))
}

func TestService_WatchHealthStopsWithContext(t *testing.T) {
	f := &fakeAPI{}
	s := NewService(f, logging.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.WatchHealth(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return f.healthCalls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WatchHealth did not return after cancel")
	}
	assert.Equal(t, StatusConnected, s.Status())
}

func TestService_AgainstFakeServer(t *testing.T) {
	srv := apitest.New(t)
	c := httpclient.New(srv.URL(),
		httpclient.WithDoer(srv.Client()),
		httpclient.WithInterceptors(httpclient.Standard(tokens.NewStore(), logging.Nop(), nil)...),
	)
	s := NewService(api.NewTranslation(c), logging.Nop())
	ctx := context.Background()

	res, err := s.Translate(ctx, "no cap")
	require.NoError(t, err)
	assert.False(t, res.Offline)
	assert.Equal(t, "no lie", res.Translated)

	srv.Close()
	res, err = s.Translate(ctx, "no cap")
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Equal(t, "No lie", res.Translated)
	assert.Equal(t, StatusDisconnected, s.CheckHealth(ctx))
}
