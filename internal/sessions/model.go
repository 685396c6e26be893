package sessions

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusQuestionsAsked Status = "QUESTIONS_ASKED"
	StatusInProgress     Status = "IN_PROGRESS"
	StatusEstimated      Status = "ESTIMATED"
	StatusFailed         Status = "FAILED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusQuestionsAsked, StatusInProgress, StatusEstimated, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusEstimated || s == StatusFailed
}

// ObjectInfo is the structured identification stored with a session.
type ObjectInfo struct {
	DetectedCategory string          `json:"detected_category"`
	ImageType        string          `json:"image_type,omitempty"`
	UserHint         string          `json:"user_hint,omitempty"`
	Identification   json.RawMessage `json:"identification,omitempty"`
}

// Session is one image-to-estimate interaction.
type Session struct {
	ID            string
	UserID        string
	ImageID       string
	ObjectLabel   string
	ObjectSummary string
	Object        ObjectInfo
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Question is one follow-up question, ordered by Seq starting at 1.
type Question struct {
	ID         string
	SessionID  string
	Seq        int
	Text       string
	AnswerType string
	Unit       string
	Options    []string
	Required   bool
}

// Answer holds one typed value per question; only the field matching the
// question's answer type is set.
type Answer struct {
	ID           string
	SessionID    string
	QuestionID   string
	ValueText    string
	ValueNumber  *float64
	ValueBoolean *bool
	ValueJSON    json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Value returns the meaningful value for the given answer type.
func (a Answer) Value(answerType string) any {
	switch answerType {
	case "number":
		if a.ValueNumber == nil {
			return nil
		}
		return *a.ValueNumber
	case "boolean":
		if a.ValueBoolean == nil {
			return nil
		}
		return *a.ValueBoolean
	default:
		return a.ValueText
	}
}

// Aggregate is a session with its questions and answers.
type Aggregate struct {
	Session   Session
	Questions []Question
	Answers   []Answer
}

// ListFilter narrows a user's sessions. Zero values mean no filter.
type ListFilter struct {
	Search   string
	Status   Status
	Category string
	From     *time.Time
	To       *time.Time
}
