package sessions

import (
	"encoding/json"
	"time"

	"pixweight-backend/internal/estimates"
)

type QuestionResponse struct {
	ID         string   `json:"id"`
	Order      int      `json:"order"`
	Text       string   `json:"text"`
	AnswerType string   `json:"answer_type"`
	Unit       string   `json:"unit"`
	Options    []string `json:"options"`
	Required   bool     `json:"required"`
}

type AnswerResponse struct {
	ID           string          `json:"id"`
	QuestionID   string          `json:"question_id"`
	ValueText    string          `json:"value_text"`
	ValueNumber  *float64        `json:"value_number"`
	ValueBoolean *bool           `json:"value_boolean"`
	ValueJSON    json.RawMessage `json:"value_json"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SessionResponse is the outward representation of a session.
type SessionResponse struct {
	ID            string                      `json:"id"`
	ImageID       string                      `json:"image_id"`
	ObjectLabel   string                      `json:"object_label"`
	ObjectSummary string                      `json:"object_summary"`
	ObjectJSON    ObjectInfo                  `json:"object_json"`
	Status        Status                      `json:"status"`
	Questions     []QuestionResponse          `json:"questions"`
	Answers       []AnswerResponse            `json:"answers"`
	Estimate      *estimates.EstimateResponse `json:"estimate,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// ToResponse renders a session with its questions, answers and estimate.
func ToResponse(d Detail) SessionResponse {
	s := d.Session
	out := SessionResponse{
		ID:            s.ID,
		ImageID:       s.ImageID,
		ObjectLabel:   s.ObjectLabel,
		ObjectSummary: s.ObjectSummary,
		ObjectJSON:    s.Object,
		Status:        s.Status,
		Questions:     make([]QuestionResponse, 0, len(d.Questions)),
		Answers:       make([]AnswerResponse, 0, len(d.Answers)),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	for _, q := range d.Questions {
		options := q.Options
		if options == nil {
			options = []string{}
		}
		out.Questions = append(out.Questions, QuestionResponse{
			ID:         q.ID,
			Order:      q.Seq,
			Text:       q.Text,
			AnswerType: q.AnswerType,
			Unit:       q.Unit,
			Options:    options,
			Required:   q.Required,
		})
	}
	for _, a := range d.Answers {
		raw := a.ValueJSON
		if len(raw) == 0 {
			raw = json.RawMessage("{}")
		}
		out.Answers = append(out.Answers, AnswerResponse{
			ID:           a.ID,
			QuestionID:   a.QuestionID,
			ValueText:    a.ValueText,
			ValueNumber:  a.ValueNumber,
			ValueBoolean: a.ValueBoolean,
			ValueJSON:    raw,
			CreatedAt:    a.CreatedAt,
		})
	}
	if d.Estimate != nil {
		est := estimates.ToResponse(*d.Estimate)
		out.Estimate = &est
	}
	return out
}

// SubmitResponse is returned by the answers endpoint.
type SubmitResponse struct {
	Message  string                      `json:"message,omitempty"`
	Session  SessionResponse             `json:"session"`
	Estimate *estimates.EstimateResponse `json:"estimate,omitempty"`
}

// ListItemResponse is a session row in the list view.
type ListItemResponse struct {
	ID            string    `json:"id"`
	ImageID       string    `json:"image_id"`
	ObjectLabel   string    `json:"object_label"`
	ObjectSummary string    `json:"object_summary"`
	Category      string    `json:"category"`
	Status        Status    `json:"status"`
	EstimateID    *string   `json:"estimate_id"`
	ValueGrams    *float64  `json:"value_grams"`
	Confidence    *float64  `json:"confidence"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type StatisticsResponse struct {
	TotalSessions     int            `json:"total_sessions"`
	CompletedSessions int            `json:"completed_sessions"`
	PendingSessions   int            `json:"pending_sessions"`
	AverageConfidence float64        `json:"average_confidence"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}

type ListResponse struct {
	Sessions   []ListItemResponse `json:"sessions"`
	Statistics StatisticsResponse `json:"statistics"`
}

func toListResponse(r ListResult) ListResponse {
	out := ListResponse{
		Sessions: make([]ListItemResponse, 0, len(r.Sessions)),
		Statistics: StatisticsResponse{
			TotalSessions:     r.Statistics.TotalSessions,
			CompletedSessions: r.Statistics.CompletedSessions,
			PendingSessions:   r.Statistics.PendingSessions,
			AverageConfidence: r.Statistics.AverageConfidence,
			CategoryBreakdown: make(map[string]int, len(r.Statistics.CategoryBreakdown)),
		},
	}
	for _, c := range r.Statistics.CategoryBreakdown {
		out.Statistics.CategoryBreakdown[c.Category] = c.Count
	}
	for _, it := range r.Sessions {
		row := ListItemResponse{
			ID:            it.Session.ID,
			ImageID:       it.Session.ImageID,
			ObjectLabel:   it.Session.ObjectLabel,
			ObjectSummary: it.Session.ObjectSummary,
			Category:      it.Session.Object.DetectedCategory,
			Status:        it.Session.Status,
			CreatedAt:     it.Session.CreatedAt,
			UpdatedAt:     it.Session.UpdatedAt,
		}
		if e := it.Estimate; e != nil {
			id, value, conf := e.ID, e.ValueGrams, e.Confidence
			row.EstimateID, row.ValueGrams, row.Confidence = &id, &value, &conf
		}
		out.Sessions = append(out.Sessions, row)
	}
	return out
}
