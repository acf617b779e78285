package translator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Entry is one slang term and its plain meaning.
type Entry struct {
	Term    string
	Meaning string
}

// Dictionary is the built-in offline vocabulary. Terms are applied in order.
var Dictionary = []Entry{
	{"no cap", "no lie"},
	{"fr fr", "for real, for real"},
	{"periodt", "period (end of discussion)"},
	{"bestie", "best friend"},
	{"sus", "suspicious"},
	{"lowkey", "somewhat/kind of"},
	{"highkey", "very much/obviously"},
	{"it's giving", "it shows/displays"},
	{"main character energy", "confident, self-assured behavior"},
	{"slay", "do something excellently"},
	{"bet", "okay/yes/sounds good"},
	{"mid", "mediocre/average"},
	{"bussin", "really good (usually food)"},
	{"sheesh", "wow/impressive"},
	{"ngl", "not going to lie"},
	{"iykyk", "if you know, you know"},
	{"say less", "I understand/agreed"},
	{"vibe check", "assessing someone's mood or energy"},
	{"hits different", "is uniquely good or special"},
	{"rent free", "constantly thinking about something"},
}

type compiledEntry struct {
	Entry
	re *regexp.Regexp
}

var compiled = compile(Dictionary)

func compile(entries []Entry) []compiledEntry {
	out := make([]compiledEntry, len(entries))
	for i, e := range entries {
		out[i] = compiledEntry{Entry: e, re: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(e.Term) + `\b`)}
	}
	return out
}

// Translate rewrites text with the built-in dictionary. The text is
// lower-cased, every whole-word term is replaced in dictionary order, and the
// first letter is capitalized. It returns the translation and the terms that
// matched. Blank input yields "".
func Translate(text string) (string, []string) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	translated := strings.ToLower(text)
	var found []string
	for _, e := range compiled {
		if !e.re.MatchString(translated) {
			continue
		}
		found = append(found, e.Term)
		translated = e.re.ReplaceAllLiteralString(translated, e.Meaning)
	}
	return capitalize(translated), found
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
