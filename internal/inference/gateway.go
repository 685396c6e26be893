package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"pixweight-backend/internal/shared/metrics"
)

const (
	OpValidate = "validate_image"
	OpIdentify = "identify"
	OpEstimate = "estimate"

	maxRationaleChars = 2000
	defaultConfidence = 0.3
)

// Image types reported by validation.
const (
	ImagePerson          = "person"
	ImageSingleObject    = "single_object"
	ImageCompositeObject = "composite_object"
	ImageUnknown         = "unknown"
)

var criticalIssueKeywords = []string{
	"blurry", "too dark", "obscured", "cannot see", "unusable", "completely hidden",
}

// Config controls model selection and the retry policy.
type Config struct {
	VisionModel string
	TextModel   string
	Temperature float32
	// MaxRetries is the number of attempts after the first.
	MaxRetries int
	// Backoff is multiplied by the attempt number before each retry.
	Backoff time.Duration
	// Timeout bounds each attempt.
	Timeout time.Duration
}

// DefaultConfig returns the production retry policy.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.2,
		MaxRetries:  2,
		Backoff:     1200 * time.Millisecond,
		Timeout:     90 * time.Second,
	}
}

// ImageCheck is the outcome of image quality validation.
type ImageCheck struct {
	ImageType string   `json:"image_type"`
	Valid     bool     `json:"valid"`
	Issues    []string `json:"issues"`
	Summary   string   `json:"summary"`
}

// Question is a model-proposed question, normalized.
type Question struct {
	Text       string   `json:"question"`
	AnswerType string   `json:"answer_type"`
	Unit       string   `json:"unit,omitempty"`
	Options    []string `json:"options,omitempty"`
	Required   bool     `json:"required"`
}

// Identification is what the vision model saw.
type Identification struct {
	Label     string
	Summary   string
	Questions []Question
	Raw       json.RawMessage
}

// QAItem is one question with its typed answer, sent to the estimate call.
type QAItem struct {
	Question   string   `json:"question"`
	AnswerType string   `json:"answer_type"`
	Unit       string   `json:"unit"`
	Answer     any      `json:"answer"`
	Options    []string `json:"options"`
	Required   bool     `json:"required"`
}

// Estimation is a weight estimate normalized to grams, with min <= value <= max.
type Estimation struct {
	ValueGrams float64
	MinGrams   float64
	MaxGrams   float64
	Unit       string
	Confidence float64
	Rationale  string
	KeyFactors []string
	Raw        json.RawMessage
}

// Gateway issues the three pipeline calls against a Provider.
type Gateway struct {
	provider Provider
	cfg      Config
	log      *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithSleep replaces the backoff sleep.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Gateway) { g.sleep = fn }
}

// NewGateway builds a Gateway. A nil provider fails every call with ErrNotConfigured.
func NewGateway(p Provider, cfg Config, log *zap.Logger, opts ...Option) *Gateway {
	if p == nil {
		p = Unconfigured{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	g := &Gateway{provider: p, cfg: cfg, log: log, sleep: sleepCtx}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ValidateImageQuality asks the vision model whether the image is usable.
// Composite subjects are only rejected for critical issues. A rejection is
// returned as *ImageRejectedError; call failures as *UpstreamError.
func (g *Gateway) ValidateImageQuality(ctx context.Context, imageDataURL string) (ImageCheck, error) {
	req := CompletionRequest{
		Model:        g.cfg.VisionModel,
		System:       validateSystem,
		Prompt:       buildValidatePrompt(),
		ImageDataURL: imageDataURL,
		Temperature:  g.cfg.Temperature,
	}
	w, _, err := call[wireImageCheck](ctx, g, OpValidate, req)
	if err != nil {
		return ImageCheck{}, err
	}

	check := ImageCheck{
		ImageType: strings.TrimSpace(w.ImageType),
		Valid:     w.Valid.v,
		Issues:    []string(w.Issues),
		Summary:   strings.TrimSpace(w.Summary),
	}
	if check.ImageType == "" {
		check.ImageType = ImageUnknown
	}
	if check.Issues == nil {
		check.Issues = []string{}
	}

	if check.ImageType == ImageCompositeObject && len(check.Issues) > 0 && !hasCriticalIssue(check.Issues) {
		check.Valid = true
	}
	if !check.Valid && len(check.Issues) > 0 {
		summary := check.Summary
		if summary == "" {
			summary = "Image does not meet quality requirements"
		}
		g.log.Info("image rejected", zap.String("image_type", check.ImageType), zap.Strings("issues", check.Issues))
		return check, &ImageRejectedError{Summary: summary, Issues: check.Issues}
	}
	return check, nil
}

func hasCriticalIssue(issues []string) bool {
	for _, issue := range issues {
		lower := strings.ToLower(issue)
		for _, kw := range criticalIssueKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// Identify names the main object and proposes questions. Category templates
// are not merged here.
func (g *Gateway) Identify(ctx context.Context, imageDataURL, hint string) (Identification, error) {
	req := CompletionRequest{
		Model:        g.cfg.VisionModel,
		System:       identifySystem,
		Prompt:       buildIdentifyPrompt(hint),
		ImageDataURL: imageDataURL,
		Temperature:  g.cfg.Temperature,
	}
	w, raw, err := call[wireIdentification](ctx, g, OpIdentify, req)
	if err != nil {
		return Identification{}, err
	}

	out := Identification{
		Label:     strings.TrimSpace(w.ObjectLabel),
		Summary:   strings.TrimSpace(w.ObjectSummary),
		Questions: make([]Question, 0, len(w.Questions)),
		Raw:       raw,
	}
	for _, q := range w.Questions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		required := true
		if q.Required.set {
			required = q.Required.v
		}
		out.Questions = append(out.Questions, Question{
			Text:       text,
			AnswerType: normalizeAnswerType(q.AnswerType),
			Unit:       strings.TrimSpace(q.Unit),
			Options:    []string(q.Options),
			Required:   required,
		})
	}
	return out, nil
}

func normalizeAnswerType(raw string) string {
	switch t := strings.ToLower(strings.TrimSpace(raw)); t {
	case "text", "number", "boolean", "select":
		return t
	default:
		return "text"
	}
}

// Estimate asks the text model for a weight given the answered questions.
func (g *Gateway) Estimate(ctx context.Context, label, summary string, items []QAItem) (Estimation, error) {
	req := CompletionRequest{
		Model:       g.cfg.TextModel,
		System:      estimateSystem,
		Prompt:      buildEstimatePrompt(label, summary, items),
		Temperature: g.cfg.Temperature,
	}
	w, raw, err := call[wireEstimation](ctx, g, OpEstimate, req)
	if err != nil {
		return Estimation{}, err
	}

	ew := wireWeight{}
	if w.EstimatedWeight != nil {
		ew = *w.EstimatedWeight
	}
	unit := strings.TrimSpace(ew.Unit)
	if unit == "" {
		unit = "g"
	}
	value := ew.Value.or(0)
	minV := ew.Min.or(value)
	maxV := ew.Max.or(value)

	est := Estimation{
		ValueGrams: ToGrams(value, unit),
		MinGrams:   ToGrams(minV, unit),
		MaxGrams:   ToGrams(maxV, unit),
		Unit:       unit,
		Confidence: clamp01(w.Confidence.or(defaultConfidence)),
		Rationale:  truncateRunes(strings.TrimSpace(w.Rationale), maxRationaleChars),
		KeyFactors: []string(w.KeyFactors),
		Raw:        raw,
	}
	if est.MinGrams > est.ValueGrams {
		est.MinGrams = est.ValueGrams
	}
	if est.MaxGrams < est.ValueGrams {
		est.MaxGrams = est.ValueGrams
	}
	return est, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// call runs one completion with retries and decodes the JSON answer into T.
// Malformed JSON and transient transport failures are retried with a linear
// backoff; anything else stops immediately.
func call[T any](ctx context.Context, g *Gateway, op string, req CompletionRequest) (T, json.RawMessage, error) {
	var zero T
	start := time.Now()
	attempts := 0
	var lastErr error

	for attempt := 0; attempt <= g.cfg.MaxRetries; attempt++ {
		attempts++
		out, raw, err := attemptOnce[T](ctx, g, req)
		if err == nil {
			metrics.ObserveInference(op, "ok", time.Since(start))
			g.log.Debug("inference ok", zap.String("op", op), zap.Int("attempts", attempts))
			return out, raw, nil
		}
		lastErr = err
		if attempt == g.cfg.MaxRetries || !retryable(err) || ctx.Err() != nil {
			break
		}

		metrics.IncInferenceRetry(op)
		wait := g.cfg.Backoff * time.Duration(attempt+1)
		g.log.Warn("inference retry",
			zap.String("op", op),
			zap.Int("attempt", attempts),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
		if err := g.sleep(ctx, wait); err != nil {
			lastErr = err
			break
		}
	}

	metrics.ObserveInference(op, "error", time.Since(start))
	g.log.Error("inference failed", zap.String("op", op), zap.Int("attempts", attempts), zap.Error(lastErr))
	return zero, nil, &UpstreamError{Op: op, Attempts: attempts, Err: lastErr}
}

func attemptOnce[T any](ctx context.Context, g *Gateway, req CompletionRequest) (T, json.RawMessage, error) {
	var out T
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}
	text, err := g.provider.Complete(ctx, req)
	if err != nil {
		return out, nil, err
	}
	raw, err := decodeInto(text, &out)
	if err != nil {
		return out, nil, err
	}
	if v, ok := any(out).(validator); ok {
		if err := v.validate(); err != nil {
			return out, nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
	}
	return out, raw, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
