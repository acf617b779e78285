// Package cli provides the interactive translator command-line client.
//
// NewApp opens the durable session store, builds the HTTP pipeline and the
// session, translator and feed components on top of it. Run restores the
// stored session, starts the background health watcher (and the /metrics
// endpoint when configured) and then blocks in the REPL until the user
// exits.
//
// Commands fall into three groups:
//   - account: register, login, logout, refresh, whoami, profile
//   - translation: translate, history, terms, popular, search, status
//   - community: feed, share, pulse, remix, remixes
//
// See runREPL for the dispatcher and App for the command implementations.
package cli
