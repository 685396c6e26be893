package inference

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
)

// ExtractJSON returns the JSON object inside a completion. A surrounding
// markdown fence is stripped, then everything from the first '{' to the last
// '}' is taken.
func ExtractJSON(text string) (json.RawMessage, error) {
	t := strings.TrimSpace(text)
	t = fenceOpen.ReplaceAllString(t, "")
	t = fenceClose.ReplaceAllString(t, "")

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedJSON)
	}
	raw := json.RawMessage(t[start : end+1])
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid object", ErrMalformedJSON)
	}
	return raw, nil
}

func decodeInto(text string, out any) (json.RawMessage, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return raw, nil
}
