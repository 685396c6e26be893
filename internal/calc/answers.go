package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// AnsweredQuestion pairs a question's text with the user's typed answer.
type AnsweredQuestion struct {
	Question string
	Value    any
}

// Answers is the ordered set of answers calculators read inputs from.
type Answers []AnsweredQuestion

// Lookup returns the first answer whose question text contains key, or is
// contained in key, ignoring case.
func (a Answers) Lookup(key string) (any, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return nil, false
	}
	for _, qa := range a {
		q := strings.ToLower(strings.TrimSpace(qa.Question))
		if q == "" {
			continue
		}
		if strings.Contains(q, k) || strings.Contains(k, q) {
			return qa.Value, true
		}
	}
	return nil, false
}

// Text returns the answer as a string, or def when missing or empty.
func (a Answers) Text(key, def string) string {
	v, ok := a.Lookup(key)
	if !ok || v == nil {
		return def
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return def
	}
	return s
}

// Number returns the answer as a float64 when it holds a number or a
// numeric string.
func (a Answers) Number(key string) (float64, bool) {
	v, ok := a.Lookup(key)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
