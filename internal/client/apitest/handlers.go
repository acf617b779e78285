package apitest

import (
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/timex"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("Gen Z Translator API is running!"))
}

func (s *Server) translate(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if r.Method == http.MethodPost {
		var req struct {
			Text string `json:"text"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		text = req.Text
	}
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, "Text to translate cannot be empty")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	translated := strings.ToLower(text)
	found := []string{}
	for i := range s.terms {
		t := &s.terms[i]
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t.GenzText) + `\b`)
		if re.MatchString(translated) {
			found = append(found, t.GenzText)
			translated = re.ReplaceAllLiteralString(translated, t.Translation)
			t.PopularityScore++
		}
	}

	s.history = append(s.history, api.HistoryEntry{
		ID:             s.nextID,
		OriginalText:   text,
		TranslatedText: translated,
		TermsFound:     found,
		CreatedAt:      timex.Time{Time: time.Now().UTC()},
	})
	s.nextID++

	writeJSON(w, http.StatusOK, api.TranslationResult{
		OriginalText:   text,
		TranslatedText: translated,
		TermsFound:     found,
		Success:        true,
	})
}

func (s *Server) listTerms(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.terms)
}

func (s *Server) popularTerms(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := append([]api.Term(nil), s.terms...)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].PopularityScore > out[j].PopularityScore })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) searchTerms(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("query"))

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []api.Term{}
	for _, t := range s.terms {
		if strings.Contains(strings.ToLower(t.GenzText), q) || strings.Contains(strings.ToLower(t.Translation), q) {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addTerm(w http.ResponseWriter, r *http.Request) {
	var t api.Term
	if err := readJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if t.GenzText == "" || t.Translation == "" {
		writeError(w, http.StatusBadRequest, "Gen Z text and translation are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	t.CreatedAt = timex.Time{Time: time.Now().UTC()}
	s.terms = append(s.terms, t)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []api.HistoryEntry{}
	for i := len(s.history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.history[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || len(req.Password) < 8 || req.Handle == "" {
		writeError(w, http.StatusBadRequest, "Email, handle and an 8+ character password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[strings.ToLower(req.Email)]; ok {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	for _, a := range s.accounts {
		if strings.EqualFold(a.profile.Handle, req.Handle) {
			writeError(w, http.StatusBadRequest, "Handle already taken")
			return
		}
	}
	p, err := s.createLocked(req.Email, req.Password, req.Handle)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Password is too long")
		return
	}
	s.writeAuthLocked(w, p)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[strings.ToLower(req.Email)]
	if !ok || bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	s.writeAuthLocked(w, a.profile)
}

func (s *Server) refreshTokens(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.refresh[req.RefreshToken]
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid refresh token")
		return
	}
	delete(s.refresh, req.RefreshToken)
	a, ok := s.profileByIDLocked(id)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid refresh token")
		return
	}
	s.writeAuthLocked(w, a.profile)
}

func (s *Server) writeAuthLocked(w http.ResponseWriter, p api.Profile) {
	access, refresh, err := s.issueLocked(p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, api.AuthResponse{AccessToken: access, RefreshToken: refresh, Profile: p})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.profileByIDLocked(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, a.profile)
}

func (s *Server) updateMe(w http.ResponseWriter, r *http.Request, id int64) {
	var u api.ProfileUpdate
	if err := readJSON(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if u.Bio != nil && len(*u.Bio) > 280 {
		writeError(w, http.StatusBadRequest, "Bio must be at most 280 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.profileByIDLocked(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if u.Bio != nil {
		a.profile.Bio = *u.Bio
	}
	if u.PersonaTag != nil {
		a.profile.PersonaTag = *u.PersonaTag
	}
	if u.AccentColor != nil {
		a.profile.AccentColor = *u.AccentColor
	}
	writeJSON(w, http.StatusOK, a.profile)
}

func (s *Server) feed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	persona, tag, visibility := q.Get("persona"), q.Get("tag"), q.Get("visibility")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []api.Vibe{}
	for i := len(s.vibes) - 1; i >= 0; i-- {
		v := s.vibes[i]
		if visibility != "" && !strings.EqualFold(string(v.Visibility), visibility) {
			continue
		}
		if persona != "" && !strings.EqualFold(v.PersonaTag, persona) {
			continue
		}
		if tag != "" && !hasTag(v.Tags, tag) {
			continue
		}
		out = append(out, *v)
	}
	writeJSON(w, http.StatusOK, out)
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (s *Server) share(w http.ResponseWriter, r *http.Request, id int64) {
	var req api.VibeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.OriginalText == "" || req.TranslatedText == "" {
		writeError(w, http.StatusBadRequest, "Original and translated text are required")
		return
	}
	if req.Visibility == "" {
		req.Visibility = api.VisibilityPublic
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.profileByIDLocked(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	tags := []string{}
	for _, t := range req.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	v := &api.Vibe{
		ID:             s.nextID,
		Handle:         a.profile.Handle,
		PersonaTag:     a.profile.PersonaTag,
		AccentColor:    a.profile.AccentColor,
		OriginalText:   req.OriginalText,
		TranslatedText: req.TranslatedText,
		Insight:        req.Insight,
		Tags:           tags,
		Visibility:     req.Visibility,
		Pulses:         map[api.PulseKind]int64{},
		CreatedAt:      timex.Time{Time: time.Now().UTC()},
	}
	s.nextID++
	s.vibes = append(s.vibes, v)
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) vibeLocked(w http.ResponseWriter, r *http.Request) (*api.Vibe, bool) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	for _, v := range s.vibes {
		if v.ID == id {
			return v, true
		}
	}
	writeError(w, http.StatusNotFound, "Vibe not found")
	return nil, false
}

func (s *Server) react(w http.ResponseWriter, r *http.Request, _ int64) {
	var req struct {
		PulseType api.PulseKind `json:"pulseType"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, ok := api.ParsePulseKind(string(req.PulseType))
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown pulse type")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, found := s.vibeLocked(w, r)
	if !found {
		return
	}
	v.Pulses[kind]++
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) remix(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		RemixText string `json:"remixText"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.RemixText) == "" || len(req.RemixText) > 400 {
		writeError(w, http.StatusBadRequest, "Remix text must be 1-400 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vibeLocked(w, r)
	if !ok {
		return
	}
	a, _ := s.profileByIDLocked(id)
	rm := api.Remix{ID: s.nextID, RemixText: req.RemixText, CreatedAt: timex.Time{Time: time.Now().UTC()}}
	if a != nil {
		rm.Handle, rm.PersonaTag = a.profile.Handle, a.profile.PersonaTag
	}
	s.nextID++
	s.remixes[v.ID] = append(s.remixes[v.ID], rm)
	v.RemixCount++
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) listRemixes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vibeLocked(w, r)
	if !ok {
		return
	}
	out := append([]api.Remix{}, s.remixes[v.ID]...)
	writeJSON(w, http.StatusOK, out)
}
