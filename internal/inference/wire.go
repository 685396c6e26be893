package inference

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Completions are model output, so scalar fields are decoded leniently:
// numbers may arrive as strings and booleans as "true"/"false".

type flexFloat struct {
	v   float64
	set bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		f.v, f.set = n, true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected number, got %s", b)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %q", s)
	}
	f.v, f.set = n, true
	return nil
}

// or mirrors "value or default": unset and zero both fall back.
func (f flexFloat) or(def float64) float64 {
	if !f.set || f.v == 0 {
		return def
	}
	return f.v
}

type flexBool struct {
	v   bool
	set bool
}

func (f *flexBool) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		f.v = t
	case float64:
		f.v = t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			f.v = true
		case "false", "no", "n", "0", "":
			f.v = false
		default:
			return fmt.Errorf("expected boolean, got %q", t)
		}
	default:
		return fmt.Errorf("expected boolean, got %s", b)
	}
	f.set = true
	return nil
}

type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	var items []any
	if err := json.Unmarshal(b, &items); err != nil {
		// a scalar or object where a list belongs is treated as empty
		*f = nil
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(it))
		if s != "" {
			out = append(out, s)
		}
	}
	*f = out
	return nil
}

type wireImageCheck struct {
	ImageType string      `json:"image_type"`
	Valid     flexBool    `json:"valid"`
	Issues    flexStrings `json:"issues"`
	Summary   string      `json:"summary"`
}

type wireQuestion struct {
	Question   string      `json:"question"`
	AnswerType string      `json:"answer_type"`
	Unit       string      `json:"unit"`
	Options    flexStrings `json:"options"`
	Required   flexBool    `json:"required"`
}

type wireQuestions []wireQuestion

func (w *wireQuestions) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		*w = nil
		return nil
	}
	out := make([]wireQuestion, 0, len(items))
	for _, raw := range items {
		var q wireQuestion
		if err := json.Unmarshal(raw, &q); err != nil {
			continue
		}
		out = append(out, q)
	}
	*w = out
	return nil
}

type wireIdentification struct {
	ObjectLabel   string        `json:"object_label"`
	ObjectSummary string        `json:"object_summary"`
	Questions     wireQuestions `json:"questions"`
}

type wireWeight struct {
	Value flexFloat `json:"value"`
	Unit  string    `json:"unit"`
	Min   flexFloat `json:"min"`
	Max   flexFloat `json:"max"`
}

type wireEstimation struct {
	EstimatedWeight *wireWeight `json:"estimated_weight"`
	Confidence      flexFloat   `json:"confidence"`
	Rationale       string      `json:"rationale"`
	KeyFactors      flexStrings `json:"key_factors"`
}

// validator is implemented by wire types with semantic checks beyond
// decoding. A failed check counts as a malformed completion.
type validator interface {
	validate() error
}

func (w wireEstimation) validate() error {
	if w.EstimatedWeight == nil || !w.EstimatedWeight.Value.set {
		return errors.New("estimated_weight.value missing")
	}
	if v := w.EstimatedWeight.Value.v; v <= 0 {
		return fmt.Errorf("estimated_weight.value must be positive, got %g", v)
	}
	return nil
}
