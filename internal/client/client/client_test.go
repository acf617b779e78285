package client

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/genzclient/internal/client/apitest"
	"github.com/dmitrijs2005/genzclient/internal/client/httpclient"
	"github.com/dmitrijs2005/genzclient/internal/client/tokens"
	"github.com/dmitrijs2005/genzclient/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SharesTokenStoreWithPipeline(t *testing.T) {
	srv := apitest.New(t)
	p := srv.SeedUser("ana@example.com", "password1", "ana")
	access, refresh, err := srv.IssueTokens(p.ID)
	require.NoError(t, err)

	reg := prometheus.NewPedanticRegistry()
	c := New(srv.URL(), logging.Nop(), reg, httpclient.WithDoer(srv.Client()))
	c.Tokens.Set(tokens.Pair{AccessToken: access, RefreshToken: refresh})

	me, err := c.API.Profiles.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana", me.Handle)
	assert.Equal(t, "Bearer "+access, srv.RequestsTo("GET", "/profiles/me")[0].Authorization)

	n, err := testutil.GatherAndCount(reg, "genz_client_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
