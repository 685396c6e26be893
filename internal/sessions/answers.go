package sessions

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"pixweight-backend/internal/category"
)

// AnswerInput is one submitted answer before it is typed against its question.
type AnswerInput struct {
	QuestionID string
	Value      any
}

// typeAnswers validates the whole batch and converts it to stored answers.
// Nothing is returned unless every item is valid.
func typeAnswers(sessionID string, questions []Question, in []AnswerInput, now time.Time) ([]Answer, error) {
	if len(in) == 0 {
		return nil, invalid("answers", "answers must be a non-empty list")
	}
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	out := make([]Answer, 0, len(in))
	for i, item := range in {
		qid := strings.TrimSpace(item.QuestionID)
		if qid == "" || item.Value == nil {
			return nil, invalid(fmt.Sprintf("answers[%d]", i), "each answer needs question_id and value")
		}
		q, ok := byID[qid]
		if !ok {
			return nil, invalid("question_id", "Unknown question_id: %s", qid)
		}
		a := Answer{
			ID:         uuid.NewString(),
			SessionID:  sessionID,
			QuestionID: q.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		switch q.AnswerType {
		case category.AnswerNumber:
			n, ok := toNumber(item.Value)
			if !ok {
				return nil, invalid("value", "Invalid number for question %s", q.ID)
			}
			a.ValueNumber = &n
		case category.AnswerBoolean:
			b := toBool(item.Value)
			a.ValueBoolean = &b
		default:
			switch v := item.Value.(type) {
			case map[string]any, []any:
				raw, err := json.Marshal(v)
				if err != nil {
					return nil, invalid("value", "Invalid value for question %s", q.ID)
				}
				a.ValueJSON = raw
				a.ValueText = string(raw)
			default:
				a.ValueText = fmt.Sprint(v)
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// toBool applies string keywords to strings and truthiness to everything else.
func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return parseBool(b)
	case float64:
		return b != 0
	case int:
		return b != 0
	case nil:
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	}
	return true
}
