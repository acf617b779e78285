// Package session owns the client's login state.
//
// A Manager is the only writer of the token store and of the durable token
// slot. Every token mutation writes the slot first and the in-memory store
// second; when the write fails the in-memory state is left alone. A crash
// between the two steps is not recovered from.
//
// The mutex guards the manager's fields only. Operations are not serialized
// against each other: two concurrent Authenticate calls both reach the
// server and the last one to write wins.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/client/httpclient"
	"github.com/dmitrijs2005/genzclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/genzclient/internal/client/tokens"
	"github.com/dmitrijs2005/genzclient/internal/logging"
)

// SlotKey names the durable slot holding the JSON token pair.
const SlotKey = "genz-auth-tokens"

type AuthAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Refresh(ctx context.Context) (*api.AuthResponse, error)
}

type ProfileAPI interface {
	Me(ctx context.Context) (*api.Profile, error)
}

type Manager struct {
	auth     AuthAPI
	profiles ProfileAPI
	tokens   *tokens.Store
	slot     metadata.Repository
	log      logging.Logger

	mu      sync.RWMutex
	state   State
	profile *api.Profile
	errMsg  string
}

func NewManager(auth AuthAPI, profiles ProfileAPI, store *tokens.Store, slot metadata.Repository, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		auth:     auth,
		profiles: profiles,
		tokens:   store,
		slot:     slot,
		log:      log.With("component", "session"),
		state:    Uninitialized,
	}
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{State: m.state, Err: m.errMsg}
	if m.profile != nil {
		p := *m.profile
		s.Profile = &p
	}
	return s
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Init restores a stored session. It runs once; later calls return
// ErrAlreadyInitialized. Only a storage read failure is returned as an error
// (and moves the session to Error). A stored pair whose profile cannot be
// fetched, for whatever reason, is discarded and the session ends Anonymous.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	if m.state != Uninitialized {
		m.mu.Unlock()
		return ErrAlreadyInitialized
	}
	m.state = Initializing
	m.mu.Unlock()

	raw, err := m.slot.Get(ctx, SlotKey)
	if err != nil {
		m.log.Error(ctx, "failed to read stored session", "error", err)
		m.setState(Error, nil, fmt.Sprintf("Unable to read stored session: %v", err))
		return fmt.Errorf("read session slot: %w", err)
	}
	if raw == nil {
		m.setState(Anonymous, nil, "")
		return nil
	}

	var pair tokens.Pair
	if err := json.Unmarshal(raw, &pair); err != nil {
		m.log.Warn(ctx, "ignoring malformed stored session", "error", err)
		m.setState(Anonymous, nil, "")
		return nil
	}
	if !pair.Complete() {
		m.log.Warn(ctx, "ignoring incomplete stored session")
		m.setState(Anonymous, nil, "")
		return nil
	}

	m.tokens.Set(pair)
	if _, err := m.BootstrapProfile(ctx); err != nil {
		m.log.Info(ctx, "stored session rejected, signing out", "error", err)
		if err := m.ClearSession(ctx); err != nil {
			m.log.Error(ctx, "failed to clear stored session", "error", err)
			m.tokens.Clear()
			m.setState(Anonymous, nil, "")
		}
	}
	return nil
}

// BootstrapProfile fetches the profile for the held tokens and moves to
// Authenticated on success.
func (m *Manager) BootstrapProfile(ctx context.Context) (*api.Profile, error) {
	p, err := m.profiles.Me(ctx)
	if err != nil {
		return nil, err
	}
	m.setState(Authenticated, p, "")
	return p, nil
}

// Authenticate logs in or registers. On failure the state is unchanged, the
// server's message (or a generic one) becomes Snapshot().Err, and the error
// is returned.
func (m *Manager) Authenticate(ctx context.Context, c Credentials) (*api.Profile, error) {
	m.mu.Lock()
	m.errMsg = ""
	m.mu.Unlock()

	var (
		resp *api.AuthResponse
		err  error
	)
	switch c.Mode {
	case ModeLogin:
		resp, err = m.auth.Login(ctx, api.LoginRequest{Email: c.Email, Password: c.Password})
	case ModeRegister:
		resp, err = m.auth.Register(ctx, api.RegisterRequest{Email: c.Email, Password: c.Password, Handle: c.Handle})
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, c.Mode)
	}
	if err != nil {
		m.fail(httpclient.UserMessage(err, authFailedMessage))
		m.log.Warn(ctx, "authentication failed", "mode", c.Mode.String(), "error", err)
		return nil, err
	}

	if err := m.adopt(ctx, resp); err != nil {
		m.fail(authFailedMessage)
		return nil, err
	}
	m.log.Info(ctx, "authenticated", "mode", c.Mode.String(), "handle", resp.Profile.Handle)
	return &resp.Profile, nil
}

// Refresh exchanges the refresh token for a new pair and profile.
func (m *Manager) Refresh(ctx context.Context) (*api.Profile, error) {
	if m.tokens.RefreshToken() == "" {
		return nil, ErrNoRefreshToken
	}
	resp, err := m.auth.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.adopt(ctx, resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

// SetProfile replaces the current profile, e.g. after the user edits it.
// It reports false and changes nothing unless the session is Authenticated.
func (m *Manager) SetProfile(p api.Profile) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Authenticated {
		return false
	}
	m.profile = &p
	return true
}

// Logout forgets the session locally. The server is not told.
func (m *Manager) Logout(ctx context.Context) error {
	return m.ClearSession(ctx)
}

// ClearSession removes the durable slot, then the in-memory tokens, and moves
// to Anonymous. It is idempotent.
func (m *Manager) ClearSession(ctx context.Context) error {
	if err := m.slot.Delete(ctx, SlotKey); err != nil {
		return fmt.Errorf("clear session slot: %w", err)
	}
	m.tokens.Clear()
	m.setState(Anonymous, nil, "")
	return nil
}

// adopt persists the tokens of resp and makes its profile current. Missing
// halves of the pair keep the previously held value.
func (m *Manager) adopt(ctx context.Context, resp *api.AuthResponse) error {
	pair := m.tokens.Pair()
	if resp.AccessToken != "" {
		pair.AccessToken = resp.AccessToken
	}
	if resp.RefreshToken != "" {
		pair.RefreshToken = resp.RefreshToken
	}

	raw, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.slot.Set(ctx, SlotKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.tokens.Set(pair)

	p := resp.Profile
	m.setState(Authenticated, &p, "")
	return nil
}

func (m *Manager) setState(s State, p *api.Profile, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	m.profile = p
	m.errMsg = errMsg
}

func (m *Manager) fail(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = msg
}
