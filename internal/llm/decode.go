package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError indicates the provider's free-text reply could not
// be decoded into the expected structure. Raw preserves the original text
// for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed upstream response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// DecodeObject performs a best-effort structured decode of a model reply.
// Models frequently wrap JSON in markdown fences or prose; this strips the
// fences, locates the outermost object, and unmarshals into v.
func DecodeObject(raw string, v any) error {
	candidate := stripFences(raw)

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start < 0 || end <= start {
		return &MalformedResponseError{Raw: raw, Err: fmt.Errorf("no JSON object found")}
	}
	candidate = candidate[start : end+1]

	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}
	return nil
}

func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
