package httpclient

import "strings"

// DefaultBaseURL is used when neither an explicit base URL nor a runtime
// origin is known: a local development backend.
const DefaultBaseURL = "http://localhost:8080/api"

// ResolveBaseURL picks the API base: the explicit value verbatim, else the
// runtime origin with an "/api" suffix, else DefaultBaseURL.
func ResolveBaseURL(explicit, origin string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if o := strings.TrimRight(strings.TrimSpace(origin), "/"); o != "" {
		return o + "/api"
	}
	return DefaultBaseURL
}
