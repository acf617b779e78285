package client

import (
	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/client/httpclient"
	"github.com/dmitrijs2005/genzclient/internal/client/tokens"
	"github.com/dmitrijs2005/genzclient/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// Client is one configured connection to the API.
type Client struct {
	Tokens  *tokens.Store
	HTTP    *httpclient.Client
	API     *api.API
	Metrics *httpclient.Metrics
}

// New builds the standard pipeline against baseURL. reg may be nil, in which
// case metrics are collected but not registered. Extra options are applied
// after the standard interceptors.
func New(baseURL string, log logging.Logger, reg prometheus.Registerer, opts ...httpclient.Option) *Client {
	store := tokens.NewStore()
	m := httpclient.NewMetrics(reg)

	all := append([]httpclient.Option{
		httpclient.WithLogger(log),
		httpclient.WithInterceptors(httpclient.Standard(store, log, m)...),
	}, opts...)
	h := httpclient.New(baseURL, all...)

	return &Client{
		Tokens:  store,
		HTTP:    h,
		API:     api.New(h, store),
		Metrics: m,
	}
}
