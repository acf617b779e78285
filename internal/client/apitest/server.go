// Package apitest runs an in-process fake of the translator API for tests.
//
// The fake keeps users, profiles, terms, history and vibes in memory, issues
// HS256 access tokens, checks them on protected routes and records every
// request it receives. Individual routes can be forced to fail.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/timex"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

// Recorded is one request as seen by the fake.
type Recorded struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          []byte
}

type failure struct {
	status  int
	message string
}

type account struct {
	passwordHash []byte
	profile      api.Profile
}

type Server struct {
	t   testing.TB
	srv *httptest.Server
	key []byte

	mu        sync.Mutex
	nextID    int64
	accounts  map[string]*account // by email
	refresh   map[string]int64    // refresh token -> profile id
	terms     []api.Term
	history   []api.HistoryEntry
	vibes     []*api.Vibe
	remixes   map[int64][]api.Remix
	requests  []Recorded
	failures  map[string]failure
	AccessTTL time.Duration
}

// New starts a fake and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		t:         t,
		key:       []byte("apitest-signing-key"),
		nextID:    1,
		accounts:  map[string]*account{},
		refresh:   map[string]int64{},
		remixes:   map[int64][]api.Remix{},
		failures:  map[string]failure{},
		AccessTTL: 15 * time.Minute,
		terms: []api.Term{
			{ID: 1, GenzText: "no cap", Translation: "no lie", Category: "truth", PopularityScore: 42},
			{ID: 2, GenzText: "bussin", Translation: "really good (usually food)", Category: "food", PopularityScore: 17},
			{ID: 3, GenzText: "mid", Translation: "mediocre/average", PopularityScore: 5},
		},
	}
	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the API base, including the /api prefix.
func (s *Server) URL() string {
	return s.srv.URL + "/api"
}

// Origin is the server root, as a same-origin deployment would see it.
func (s *Server) Origin() string {
	return s.srv.URL
}

func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// Close stops the server early, e.g. to simulate an unreachable backend.
func (s *Server) Close() {
	s.srv.Close()
}

// Fail makes every request to "METHOD /path" (path without /api) answer
// with status and message until Recover is called.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

func (s *Server) Recover(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+path)
}

func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// RequestsTo returns recorded requests for a path without the /api prefix.
func (s *Server) RequestsTo(method, path string) []Recorded {
	var out []Recorded
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == "/api"+path {
			out = append(out, r)
		}
	}
	return out
}

// SeedUser creates an account and returns its profile.
func (s *Server) SeedUser(email, password, handle string) api.Profile {
	s.t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.createLocked(email, password, handle)
	if err != nil {
		s.t.Fatalf("seed user %s: %v", email, err)
	}
	return p
}

// PasswordHash returns the stored hash for email, nil if there is no such
// account.
func (s *Server) PasswordHash(email string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[strings.ToLower(email)]; ok {
		return append([]byte(nil), a.passwordHash...)
	}
	return nil
}

// IssueTokens mints a valid pair for an existing profile id.
func (s *Server) IssueTokens(profileID int64) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(profileID)
}

// SeedVibe stores a vibe owned by nobody in particular and returns it.
func (s *Server) SeedVibe(v api.Vibe) api.Vibe {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.nextID
	s.nextID++
	if v.Pulses == nil {
		v.Pulses = map[api.PulseKind]int64{}
	}
	if v.Visibility == "" {
		v.Visibility = api.VisibilityPublic
	}
	v.CreatedAt = timex.Time{Time: time.Now().UTC()}
	s.vibes = append(s.vibes, &v)
	return v
}

// createLocked stores a bcrypt hash of password, never the password itself.
func (s *Server) createLocked(email, password, handle string) (api.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return api.Profile{}, err
	}
	p := api.Profile{
		ID:         s.nextID,
		Email:      email,
		Handle:     handle,
		PersonaTag: "vibe curator",
		Roles:      []string{"USER"},
		CreatedAt:  timex.Time{Time: time.Now().UTC().Truncate(time.Second)},
	}
	s.nextID++
	s.accounts[strings.ToLower(email)] = &account{passwordHash: hash, profile: p}
	return p, nil
}

func (s *Server) issueLocked(profileID int64) (string, string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(profileID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.AccessTTL)),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", "", err
	}
	refresh := uuid.NewString()
	s.refresh[refresh] = profileID
	return access, refresh, nil
}

func (s *Server) profileByIDLocked(id int64) (*account, bool) {
	for _, a := range s.accounts {
		if a.profile.ID == id {
			return a, true
		}
	}
	return nil, false
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record, s.injectFailures)

	a := r.PathPrefix("/api").Subrouter()
	a.HandleFunc("/health", s.health).Methods(http.MethodGet)
	a.HandleFunc("/translate", s.translate).Methods(http.MethodPost, http.MethodGet)
	a.HandleFunc("/terms", s.listTerms).Methods(http.MethodGet)
	a.HandleFunc("/terms", s.addTerm).Methods(http.MethodPost)
	a.HandleFunc("/terms/popular", s.popularTerms).Methods(http.MethodGet)
	a.HandleFunc("/terms/search", s.searchTerms).Methods(http.MethodGet)
	a.HandleFunc("/history", s.listHistory).Methods(http.MethodGet)

	a.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	a.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	a.HandleFunc("/auth/refresh", s.refreshTokens).Methods(http.MethodPost)

	a.Handle("/profiles/me", s.authenticated(s.me)).Methods(http.MethodGet)
	a.Handle("/profiles/me", s.authenticated(s.updateMe)).Methods(http.MethodPut)

	a.HandleFunc("/community/vibes", s.feed).Methods(http.MethodGet)
	a.Handle("/community/vibes", s.authenticated(s.share)).Methods(http.MethodPost)
	a.Handle("/community/vibes/{id:[0-9]+}/react", s.authenticated(s.react)).Methods(http.MethodPost)
	a.Handle("/community/vibes/{id:[0-9]+}/remix", s.authenticated(s.remix)).Methods(http.MethodPost)
	a.HandleFunc("/community/vibes/{id:[0-9]+}/remixes", s.listRemixes).Methods(http.MethodGet)
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api")]
		s.mu.Unlock()
		if ok {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type principalHandler func(w http.ResponseWriter, r *http.Request, profileID int64)

func (s *Server) authenticated(h principalHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, reason := s.principal(r)
		if reason != "" {
			writeError(w, http.StatusUnauthorized, reason)
			return
		}
		h(w, r, id)
	})
}

// principal returns the caller's profile id, or a rejection reason.
func (s *Server) principal(r *http.Request) (int64, string) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return 0, "Full authentication is required"
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, "Invalid or expired token"
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "Invalid token subject"
	}
	return id, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"status":  status,
		"error":   http.StatusText(status),
		"message": message,
	})
}

func readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("malformed body: %w", err)
	}
	return nil
}
