package api

import "strings"

// PulseKind is one of the fixed reactions a vibe can receive.
type PulseKind string

const (
	PulseMindBend PulseKind = "MIND_BEND"
	PulseChill    PulseKind = "CHILL"
	PulseHype     PulseKind = "HYPE"
	PulseSage     PulseKind = "SAGE"
	PulseCosmic   PulseKind = "COSMIC"
)

var pulseLabels = map[PulseKind]string{
	PulseMindBend: "🌀 mindbend",
	PulseChill:    "🧊 chill",
	PulseHype:     "⚡ hype",
	PulseSage:     "🌿 sage",
	PulseCosmic:   "✨ cosmic",
}

// PulseKinds lists every kind in display order.
func PulseKinds() []PulseKind {
	return []PulseKind{PulseMindBend, PulseChill, PulseHype, PulseSage, PulseCosmic}
}

func (k PulseKind) Label() string {
	if l, ok := pulseLabels[k]; ok {
		return l
	}
	return string(k)
}

// ParsePulseKind accepts the kind ("MIND_BEND", "hype") or the label word
// ("mindbend").
func ParsePulseKind(s string) (PulseKind, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for _, k := range PulseKinds() {
		if string(k) == norm {
			return k, true
		}
		word := strings.Fields(pulseLabels[k])
		if len(word) == 2 && strings.EqualFold(word[1], norm) {
			return k, true
		}
	}
	return "", false
}
