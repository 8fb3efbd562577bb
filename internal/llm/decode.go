package llm

import (
	"encoding/json"
	"strings"
)

// StripFences removes a surrounding markdown code fence from model output.
// Tolerates a ```json or bare ``` opener, a trailing ``` closer, or neither.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodeInto fence-strips raw and parses it as strict JSON into out.
// On success the parsed payload passes through untouched: no schema
// validation happens here, so a misbehaving model propagates missing or
// extra keys to the caller (a documented gap, not silently repaired).
// On failure it returns the sentinel ParseFailure instead of an error;
// decode failure is data, never a panic or a request-killing error.
func DecodeInto(raw string, out any) *ParseFailure {
	cleaned := StripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &ParseFailure{
			Message: "Failed to parse response",
			Details: err.Error(),
		}
	}
	return nil
}
