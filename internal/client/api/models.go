package api

import (
	"strings"

	"github.com/dmitrijs2005/genzclient/internal/timex"
)

type Profile struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email,omitempty"`
	Handle      string     `json:"handle"`
	PersonaTag  string     `json:"personaTag"`
	AccentColor string     `json:"accentColor,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	StreakCount int        `json:"streakCount"`
	Roles       []string   `json:"roles,omitempty"`
	CreatedAt   timex.Time `json:"createdAt"`
}

// ProfileUpdate is the PUT /profiles/me payload. Nil fields are omitted.
type ProfileUpdate struct {
	Bio         *string `json:"bio,omitempty"`
	PersonaTag  *string `json:"personaTag,omitempty"`
	AccentColor *string `json:"accentColor,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Handle   string `json:"handle"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	Profile      Profile `json:"profile"`
}

type translateRequest struct {
	Text string `json:"text"`
}

type TranslationResult struct {
	OriginalText   string   `json:"originalText,omitempty"`
	TranslatedText string   `json:"translatedText"`
	TermsFound     []string `json:"termsFound"`
	Success        bool     `json:"success,omitempty"`
}

type Term struct {
	ID              int64      `json:"id,omitempty"`
	GenzText        string     `json:"genzText"`
	Translation     string     `json:"translation"`
	Category        string     `json:"category,omitempty"`
	PopularityScore int        `json:"popularityScore"`
	CreatedAt       timex.Time `json:"createdAt"`
}

type HistoryEntry struct {
	ID             int64      `json:"id"`
	OriginalText   string     `json:"originalText"`
	TranslatedText string     `json:"translatedText"`
	TermsFound     []string   `json:"termsFound,omitempty"`
	CreatedAt      timex.Time `json:"createdAt"`
}

type Visibility string

const (
	VisibilityPublic    Visibility = "PUBLIC"
	VisibilityFollowing Visibility = "FOLLOWING"
	VisibilityPrivate   Visibility = "PRIVATE"
)

// ParseVisibility accepts any casing of a known visibility.
func ParseVisibility(s string) (Visibility, bool) {
	v := Visibility(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case VisibilityPublic, VisibilityFollowing, VisibilityPrivate:
		return v, true
	}
	return "", false
}

type Vibe struct {
	ID             int64               `json:"id"`
	Handle         string              `json:"handle"`
	PersonaTag     string              `json:"personaTag"`
	AccentColor    string              `json:"accentColor,omitempty"`
	OriginalText   string              `json:"originalText"`
	TranslatedText string              `json:"translatedText"`
	Insight        string              `json:"insight,omitempty"`
	Tags           []string            `json:"tags"`
	Visibility     Visibility          `json:"visibility"`
	RemixCount     int                 `json:"remixCount"`
	Pulses         map[PulseKind]int64 `json:"pulses"`
	CreatedAt      timex.Time          `json:"createdAt"`
}

type VibeRequest struct {
	OriginalText   string     `json:"originalText"`
	TranslatedText string     `json:"translatedText"`
	Insight        string     `json:"insight,omitempty"`
	Tags           []string   `json:"tags"`
	Visibility     Visibility `json:"visibility,omitempty"`
}

// VibeFilter selects the community feed. A nil field is not sent at all;
// a pointer to "" is sent as an empty parameter.
type VibeFilter struct {
	Persona    *string
	Tag        *string
	Visibility *string
}

type pulseRequest struct {
	PulseType PulseKind `json:"pulseType"`
}

type remixRequest struct {
	RemixText string `json:"remixText"`
}

type Remix struct {
	ID         int64      `json:"id"`
	Handle     string     `json:"handle"`
	PersonaTag string     `json:"personaTag"`
	RemixText  string     `json:"remixText"`
	CreatedAt  timex.Time `json:"createdAt"`
}
