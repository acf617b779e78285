package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultHistoryLimit is sent when History is called with a non-positive limit.
const DefaultHistoryLimit = 10

type Translation struct {
	r Requester
}

func NewTranslation(r Requester) *Translation {
	return &Translation{r: r}
}

// Translate posts text for translation. Callers are expected to pass
// non-blank text; it is sent as given.
func (t *Translation) Translate(ctx context.Context, text string) (*TranslationResult, error) {
	var out TranslationResult
	if err := t.r.Do(ctx, http.MethodPost, "/translate", nil, translateRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranslateGet is the query-string variant of Translate.
func (t *Translation) TranslateGet(ctx context.Context, text string) (*TranslationResult, error) {
	var out TranslationResult
	if err := t.r.Do(ctx, http.MethodGet, "/translate", url.Values{"text": {text}}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *Translation) Terms(ctx context.Context) ([]Term, error) {
	return t.terms(ctx, "/terms", nil)
}

func (t *Translation) PopularTerms(ctx context.Context) ([]Term, error) {
	return t.terms(ctx, "/terms/popular", nil)
}

func (t *Translation) SearchTerms(ctx context.Context, query string) ([]Term, error) {
	return t.terms(ctx, "/terms/search", url.Values{"query": {query}})
}

func (t *Translation) terms(ctx context.Context, path string, q url.Values) ([]Term, error) {
	var out []Term
	if err := t.r.Do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddTerm creates a dictionary term (admin use).
func (t *Translation) AddTerm(ctx context.Context, term Term) (*Term, error) {
	var out Term
	if err := t.r.Do(ctx, http.MethodPost, "/terms", nil, term, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns prior translations in server order.
func (t *Translation) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var out []HistoryEntry
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := t.r.Do(ctx, http.MethodGet, "/history", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health returns the plain-text liveness payload.
func (t *Translation) Health(ctx context.Context) (string, error) {
	var out string
	if err := t.r.Do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return "", err
	}
	return out, nil
}
