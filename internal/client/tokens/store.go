// Package tokens holds the bearer credentials of the current session.
//
// A Store is owned by the session manager, which is the only writer. The
// HTTP pipeline reads it through the Provider interface on every request.
package tokens

import "sync"

// Pair is an access/refresh credential pair as issued by the auth service.
// It is also the JSON shape of the durable session slot.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both halves of the pair are present.
func (p Pair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// Provider is the read side of a Store.
type Provider interface {
	AccessToken() string
	RefreshToken() string
}

type Store struct {
	mu   sync.RWMutex
	pair Pair
}

func NewStore() *Store {
	return &Store{}
}

// Set replaces the held tokens. An empty field keeps the previous value for
// that slot, which lets a refresh response omit the refresh token.
func (s *Store) Set(p Pair) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.AccessToken != "" {
		s.pair.AccessToken = p.AccessToken
	}
	if p.RefreshToken != "" {
		s.pair.RefreshToken = p.RefreshToken
	}
}

// Clear drops both tokens.
func (s *Store) Clear() {
	s.mu.Lock()
	s.pair = Pair{}
	s.mu.Unlock()
}

func (s *Store) Pair() Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.AccessToken
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.RefreshToken
}

// Empty is true when no access token is held.
func (s *Store) Empty() bool {
	return s.AccessToken() == ""
}

var _ Provider = (*Store)(nil)
