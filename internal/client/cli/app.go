package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/genzclient/internal/client/client"
	"github.com/dmitrijs2005/genzclient/internal/client/community"
	"github.com/dmitrijs2005/genzclient/internal/client/config"
	"github.com/dmitrijs2005/genzclient/internal/client/session"
	"github.com/dmitrijs2005/genzclient/internal/client/translator"
	"github.com/dmitrijs2005/genzclient/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config     *config.Config
	log        logging.Logger
	conn       *client.Client
	store      *client.Store
	registry   *prometheus.Registry
	session    *session.Manager
	translator *translator.Service
	feed       *community.Feed
	reader     *bufio.Reader
	out        io.Writer
}

// NewApp opens the configured store and wires every component against the
// configured API base URL.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := client.OpenStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening session store", "store", c.Store, "error", err)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	conn := client.New(c.BaseURL(), log, reg)

	return newApp(c, log, conn, store, reg, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, log logging.Logger, conn *client.Client, store *client.Store, reg *prometheus.Registry, in io.Reader, out io.Writer) *App {
	return &App{
		config:     c,
		log:        log,
		conn:       conn,
		store:      store,
		registry:   reg,
		session:    session.NewManager(conn.API.Auth, conn.API.Profiles, conn.Tokens, store.Metadata, log),
		translator: translator.NewService(conn.API.Translation, log),
		feed:       community.NewFeed(conn.API.Community),
		reader:     bufio.NewReader(in),
		out:        out,
	}
}

// Run restores the session and blocks in the REPL. The store is closed on
// return.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Warn(ctx, "error closing session store", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.start(ctx)
	fmt.Fprintln(a.out, "Gen Z translator CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// start restores the stored session and launches the background workers.
func (a *App) start(ctx context.Context) {
	if err := a.session.Init(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not restore session:", err)
	}
	if snap := a.session.Snapshot(); snap.Profile != nil {
		fmt.Fprintf(a.out, "Welcome back, @%s\n", snap.Profile.Handle)
	}

	a.translator.CheckHealth(ctx)
	if a.config.HealthCheckInterval > 0 {
		go a.translator.WatchHealth(ctx, a.config.HealthCheckInterval)
	}
	if a.config.MetricsAddr != "" {
		go a.serveMetrics(ctx, a.config.MetricsAddr)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.Authenticated
}

func (a *App) getStatus() string {
	parts := []string{}
	if snap := a.session.Snapshot(); snap.Profile != nil {
		parts = append(parts, "@"+snap.Profile.Handle)
	}
	parts = append(parts, a.translator.Status().String())
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) Status(ctx context.Context) error {
	snap := a.session.Snapshot()
	fmt.Fprintf(a.out, "API:     %s (%s)\n", a.conn.HTTP.BaseURL(), a.translator.CheckHealth(ctx))
	fmt.Fprintf(a.out, "Session: %s\n", snap.State)
	if snap.Err != "" {
		fmt.Fprintf(a.out, "Last error: %s\n", snap.Err)
	}
	return nil
}
