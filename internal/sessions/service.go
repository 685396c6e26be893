package sessions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pixweight-backend/internal/calc"
	"pixweight-backend/internal/category"
	"pixweight-backend/internal/estimates"
	"pixweight-backend/internal/images"
	"pixweight-backend/internal/inference"
	"pixweight-backend/internal/shared/metrics"
)

const (
	maxHintChars      = 200
	maxLabelChars     = 200
	maxRationale      = 2000
	defaultLabel      = "Unknown object"

	// PendingMessage is returned while required questions are unanswered.
	PendingMessage = "Answers saved. More required questions remain."
)

// ImageSource loads a stored image as a data URL.
type ImageSource interface {
	DataURL(ctx context.Context, userID, imageID string) (string, error)
}

// Inference is the subset of the gateway the session flow calls.
type Inference interface {
	ValidateImageQuality(ctx context.Context, imageDataURL string) (inference.ImageCheck, error)
	Identify(ctx context.Context, imageDataURL, hint string) (inference.Identification, error)
	Estimate(ctx context.Context, label, summary string, items []inference.QAItem) (inference.Estimation, error)
}

// Service sequences a session from image to estimate.
type Service struct {
	Repo      Repo
	Estimates *estimates.Service
	Images    ImageSource
	Gateway   Inference
	Enricher  *Enricher
	Log       *zap.Logger
	Now       func() time.Time
}

// CreateInput starts a session from an uploaded image.
type CreateInput struct {
	ImageID  string
	UserHint string
}

// Detail is a session with its estimate, when one exists.
type Detail struct {
	Aggregate
	Estimate *estimates.View
}

// SubmitResult describes what an answer submission did.
type SubmitResult struct {
	Detail
	// Pending is set when required questions remain unanswered.
	Pending bool
	// Existing is set when the session already had an estimate.
	Existing       bool
	PreviousStatus Status
	Enrichment     *EnrichmentResult
}

// Create validates the image, identifies the object and stores the session
// with its questions. Nothing is stored when the image is rejected.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Detail, error) {
	imageID := strings.TrimSpace(in.ImageID)
	if imageID == "" {
		return Detail{}, invalid("image_id", "image_id is required")
	}
	hint := strings.TrimSpace(in.UserHint)
	if utf8.RuneCountInString(hint) > maxHintChars {
		return Detail{}, invalid("user_hint", "must be at most %d characters", maxHintChars)
	}

	dataURL, err := s.Images.DataURL(ctx, userID, imageID)
	if err != nil {
		if errors.Is(err, images.ErrNotFound) {
			return Detail{}, invalid("image_id", "image not found")
		}
		return Detail{}, err
	}

	check, err := s.Gateway.ValidateImageQuality(ctx, dataURL)
	if err != nil {
		metrics.IncSessionRejected(rejectReason(err))
		return Detail{}, err
	}
	ident, err := s.Gateway.Identify(ctx, dataURL, hint)
	if err != nil {
		metrics.IncSessionRejected(rejectReason(err))
		return Detail{}, err
	}

	label := truncate(strings.TrimSpace(ident.Label), maxLabelChars)
	if label == "" {
		label = defaultLabel
	}
	cat := category.Detect(label)
	now := s.now()
	sess := Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		ImageID:       imageID,
		ObjectLabel:   label,
		ObjectSummary: ident.Summary,
		Object: ObjectInfo{
			DetectedCategory: cat,
			ImageType:        check.ImageType,
			UserHint:         hint,
			Identification:   ident.Raw,
		},
		Status:    StatusQuestionsAsked,
		CreatedAt: now,
		UpdatedAt: now,
	}
	questions := buildQuestions(sess.ID, ident.Questions, category.Templates(cat))

	if err := s.Repo.Create(ctx, sess, questions); err != nil {
		return Detail{}, fmt.Errorf("create session: %w", err)
	}
	metrics.IncSessionCreated()
	s.logger().Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("category", cat),
		zap.Int("questions", len(questions)),
	)
	return Detail{Aggregate: Aggregate{Session: sess, Questions: questions, Answers: []Answer{}}}, nil
}

func rejectReason(err error) string {
	var rejected *inference.ImageRejectedError
	if errors.As(err, &rejected) {
		return "image_rejected"
	}
	return "upstream_error"
}

func buildQuestions(sessionID string, generated []inference.Question, templates []category.QuestionTemplate) []Question {
	base := make([]Question, 0, len(generated))
	for _, q := range generated {
		base = append(base, Question{Text: q.Text, AnswerType: q.AnswerType, Unit: q.Unit, Options: q.Options, Required: q.Required})
	}
	extra := make([]Question, 0, len(templates))
	for _, t := range templates {
		extra = append(extra, Question{Text: t.Text, AnswerType: t.AnswerType, Unit: t.Unit, Options: t.Options, Required: t.Required})
	}

	out := make([]Question, 0, category.MaxQuestions)
	for _, q := range category.Combine(base, extra) {
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			continue
		}
		if q.AnswerType == "" {
			q.AnswerType = category.AnswerText
		}
		if q.Options == nil {
			q.Options = []string{}
		}
		q.ID = uuid.NewString()
		q.SessionID = sessionID
		q.Seq = len(out) + 1
		out = append(out, q)
	}
	return out
}

// Get returns the user's session with its estimate.
func (s *Service) Get(ctx context.Context, userID, sessionID string) (Detail, error) {
	agg, err := s.Repo.Get(ctx, userID, sessionID)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{Aggregate: agg}
	view, err := s.Estimates.ForSession(ctx, sessionID)
	switch {
	case err == nil:
		d.Estimate = &view
	case !errors.Is(err, estimates.ErrNotFound):
		return Detail{}, err
	}
	return d, nil
}

// SubmitAnswers upserts answers and, once every required question is
// answered, runs the estimate and category enrichment. A session that
// already has an estimate returns it without writing anything.
func (s *Service) SubmitAnswers(ctx context.Context, userID, sessionID string, in []AnswerInput) (SubmitResult, error) {
	current, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return SubmitResult{}, err
	}
	if current.Estimate != nil {
		metrics.IncEstimate("existing")
		return SubmitResult{Detail: current, Existing: true, PreviousStatus: current.Session.Status}, nil
	}
	if current.Session.Status == StatusFailed {
		return SubmitResult{}, ErrSessionFailed
	}

	now := s.now()
	answers, err := typeAnswers(sessionID, current.Questions, in, now)
	if err != nil {
		return SubmitResult{}, err
	}
	if err := s.Repo.SaveAnswers(ctx, sessionID, answers, StatusInProgress, now); err != nil {
		if errors.Is(err, ErrSessionClosed) {
			res, cerr := s.closed(ctx, userID, sessionID)
			res.PreviousStatus = current.Session.Status
			return res, cerr
		}
		return SubmitResult{}, fmt.Errorf("save answers: %w", err)
	}

	agg, err := s.Repo.Get(ctx, userID, sessionID)
	if err != nil {
		return SubmitResult{}, err
	}
	if requiredPending(agg) {
		metrics.IncEstimate("pending")
		return SubmitResult{Detail: Detail{Aggregate: agg}, Pending: true, PreviousStatus: current.Session.Status}, nil
	}
	res, err := s.estimate(ctx, agg)
	res.PreviousStatus = current.Session.Status
	return res, err
}

func requiredPending(agg Aggregate) bool {
	answered := make(map[string]bool, len(agg.Answers))
	for _, a := range agg.Answers {
		answered[a.QuestionID] = true
	}
	for _, q := range agg.Questions {
		if q.Required && !answered[q.ID] {
			return true
		}
	}
	return false
}

func (s *Service) estimate(ctx context.Context, agg Aggregate) (SubmitResult, error) {
	sess := agg.Session
	items, answers := qaItems(agg)

	out, err := s.Gateway.Estimate(ctx, sess.ObjectLabel, sess.ObjectSummary, items)
	if err != nil {
		return s.fail(ctx, sess, err)
	}

	cat := sess.Object.DetectedCategory
	if !category.Valid(cat) {
		cat = category.Detect(sess.ObjectLabel)
	}
	est := estimates.WeightEstimate{
		ID:          uuid.NewString(),
		SessionID:   sess.ID,
		UserID:      sess.UserID,
		ValueGrams:  out.ValueGrams,
		MinGrams:    out.MinGrams,
		MaxGrams:    out.MaxGrams,
		Confidence:  out.Confidence,
		UnitDisplay: out.Unit,
		Rationale:   truncate(out.Rationale, maxRationale),
		RawJSON:     out.Raw,
		Category:    cat,
		CreatedAt:   s.now(),
	}
	if est.UnitDisplay == "" {
		est.UnitDisplay = "g"
	}

	if err := s.Estimates.Repo.Create(ctx, est); err != nil {
		if errors.Is(err, estimates.ErrAlreadyExists) {
			return s.existing(ctx, sess.UserID, sess.ID)
		}
		return SubmitResult{}, fmt.Errorf("create estimate: %w", err)
	}

	enriched := s.Enricher.Enrich(ctx, cat, est, sess.ObjectLabel, answers)
	if len(enriched.Metadata) > 0 {
		if err := s.Estimates.Repo.UpdateMetadata(ctx, est.ID, enriched.Metadata); err != nil {
			s.logger().Warn("store category metadata", zap.String("estimate_id", est.ID), zap.Error(err))
		}
	}
	if !enriched.Details.Empty() {
		if err := s.Estimates.Repo.SaveDetails(ctx, est.ID, enriched.Details); err != nil {
			s.logger().Warn("store category details", zap.String("estimate_id", est.ID), zap.Error(err))
		}
	}

	if err := s.Repo.SetStatus(ctx, sess.ID, StatusEstimated, s.now()); err != nil {
		if !errors.Is(err, ErrSessionClosed) {
			return SubmitResult{}, fmt.Errorf("mark session estimated: %w", err)
		}
		s.logger().Warn("session closed before estimate was recorded",
			zap.String("session_id", sess.ID), zap.String("estimate_id", est.ID))
	}
	metrics.IncEstimate("estimated")

	detail, err := s.Get(ctx, sess.UserID, sess.ID)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Detail: detail, Enrichment: &enriched}, nil
}

// fail records an estimate failure. A concurrent submission that already
// produced an estimate wins, and its result is returned instead of cause.
func (s *Service) fail(ctx context.Context, sess Session, cause error) (SubmitResult, error) {
	log := s.logger().With(zap.String("session_id", sess.ID))
	if _, err := s.Estimates.Repo.GetBySession(ctx, sess.ID); err == nil {
		log.Info("estimate failed after a concurrent submission succeeded", zap.Error(cause))
		return s.existing(ctx, sess.UserID, sess.ID)
	}
	metrics.IncEstimate("failed")
	err := s.Repo.SetStatus(ctx, sess.ID, StatusFailed, s.now())
	switch {
	case errors.Is(err, ErrSessionClosed):
		if res, cerr := s.closed(ctx, sess.UserID, sess.ID); cerr == nil {
			return res, nil
		}
	case err != nil:
		log.Error("mark session failed", zap.Error(err))
	}
	log.Warn("estimate failed", zap.Error(cause))
	return SubmitResult{}, cause
}

// closed resolves a write refused because the session reached a terminal
// status in the meantime.
func (s *Service) closed(ctx context.Context, userID, sessionID string) (SubmitResult, error) {
	detail, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return SubmitResult{}, err
	}
	if detail.Estimate != nil {
		metrics.IncEstimate("existing")
		return SubmitResult{Detail: detail, Existing: true}, nil
	}
	if detail.Session.Status == StatusFailed {
		return SubmitResult{}, ErrSessionFailed
	}
	return SubmitResult{}, ErrSessionClosed
}

func (s *Service) existing(ctx context.Context, userID, sessionID string) (SubmitResult, error) {
	detail, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return SubmitResult{}, err
	}
	metrics.IncEstimate("existing")
	return SubmitResult{Detail: detail, Existing: true}, nil
}

// qaItems pairs every question, in order, with its typed answer or nil.
func qaItems(agg Aggregate) ([]inference.QAItem, calc.Answers) {
	byQuestion := make(map[string]Answer, len(agg.Answers))
	for _, a := range agg.Answers {
		byQuestion[a.QuestionID] = a
	}
	items := make([]inference.QAItem, 0, len(agg.Questions))
	answers := make(calc.Answers, 0, len(agg.Questions))
	for _, q := range agg.Questions {
		var value any
		if a, ok := byQuestion[q.ID]; ok {
			value = a.Value(q.AnswerType)
		}
		items = append(items, inference.QAItem{
			Question:   q.Text,
			AnswerType: q.AnswerType,
			Unit:       q.Unit,
			Answer:     value,
			Options:    q.Options,
			Required:   q.Required,
		})
		if value != nil {
			answers = append(answers, calc.AnsweredQuestion{Question: q.Text, Value: value})
		}
	}
	return items, answers
}

// Sort keys accepted by List.
const (
	SortDate       = "date"
	SortConfidence = "confidence"
	SortWeight     = "weight"
)

// ListItem is a session row with its estimate, when one exists.
type ListItem struct {
	Session  Session
	Estimate *estimates.WeightEstimate
}

// CategoryCount is one entry of the category breakdown.
type CategoryCount struct {
	Category string
	Count    int
}

// Statistics summarize all of a user's sessions, ignoring filters.
type Statistics struct {
	TotalSessions     int
	CompletedSessions int
	PendingSessions   int
	AverageConfidence float64
	CategoryBreakdown []CategoryCount
}

// ListResult is the filtered and sorted sessions plus statistics.
type ListResult struct {
	Sessions   []ListItem
	Statistics Statistics
}

// List returns the user's sessions matching f, sorted by sortBy.
func (s *Service) List(ctx context.Context, userID string, f ListFilter, sortBy string) (ListResult, error) {
	filtered, err := s.Repo.List(ctx, userID, f)
	if err != nil {
		return ListResult{}, err
	}
	all, err := s.Repo.List(ctx, userID, ListFilter{})
	if err != nil {
		return ListResult{}, err
	}
	ests, err := s.Estimates.Repo.ListByUser(ctx, userID)
	if err != nil {
		return ListResult{}, err
	}
	bySession := make(map[string]*estimates.WeightEstimate, len(ests))
	for i := range ests {
		bySession[ests[i].SessionID] = &ests[i]
	}

	items := make([]ListItem, 0, len(filtered))
	for _, sess := range filtered {
		items = append(items, ListItem{Session: sess, Estimate: bySession[sess.ID]})
	}
	sortItems(items, sortBy)

	return ListResult{Sessions: items, Statistics: statistics(all, bySession)}, nil
}

func sortItems(items []ListItem, sortBy string) {
	var key func(*estimates.WeightEstimate) float64
	switch sortBy {
	case SortConfidence:
		key = func(e *estimates.WeightEstimate) float64 { return e.Confidence }
	case SortWeight:
		key = func(e *estimates.WeightEstimate) float64 { return e.ValueGrams }
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if key != nil {
			switch {
			case a.Estimate != nil && b.Estimate == nil:
				return true
			case a.Estimate == nil && b.Estimate != nil:
				return false
			case a.Estimate != nil && b.Estimate != nil:
				if ka, kb := key(a.Estimate), key(b.Estimate); ka != kb {
					return ka > kb
				}
			}
		}
		return a.Session.CreatedAt.After(b.Session.CreatedAt)
	})
}

func statistics(all []Session, bySession map[string]*estimates.WeightEstimate) Statistics {
	st := Statistics{TotalSessions: len(all), CategoryBreakdown: []CategoryCount{}}
	counts := make(map[string]int)
	var confSum float64
	var confN int
	for _, sess := range all {
		if sess.Status == StatusEstimated {
			st.CompletedSessions++
		}
		if est, ok := bySession[sess.ID]; ok {
			confSum += est.Confidence
			confN++
		}
		cat := sess.Object.DetectedCategory
		if !category.Valid(cat) {
			cat = category.Detect(sess.ObjectLabel)
		}
		counts[cat]++
	}
	st.PendingSessions = st.TotalSessions - st.CompletedSessions
	if confN > 0 {
		st.AverageConfidence = math.Round(confSum/float64(confN)*100*10) / 10
	}
	for _, cat := range category.All() {
		if n := counts[cat]; n > 0 {
			st.CategoryBreakdown = append(st.CategoryBreakdown, CategoryCount{Category: cat, Count: n})
		}
	}
	return st
}

// ParseDate accepts RFC 3339 or YYYY-MM-DD. With endOfDay a bare date
// covers the whole day. Unparsable input yields nil.
func ParseDate(raw string, endOfDay bool) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
