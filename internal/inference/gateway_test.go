package inference

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedProvider struct {
	replies []string
	errs    []error
	calls   []CompletionRequest
}

func (p *scriptedProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	i := len(p.calls)
	p.calls = append(p.calls, req)
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(p.replies) {
		return p.replies[i], nil
	}
	return p.replies[len(p.replies)-1], nil
}

type sleepRecorder struct {
	waits []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

func newTestGateway(p Provider) (*Gateway, *sleepRecorder) {
	rec := &sleepRecorder{}
	cfg := DefaultConfig()
	cfg.VisionModel = "vision-model"
	cfg.TextModel = "text-model"
	return NewGateway(p, cfg, nil, WithSleep(rec.sleep)), rec
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "fenced upper", in: "```JSON {\"a\":1} ```", want: `{"a":1}`},
		{name: "prose around", in: "Sure! Here it is: {\"a\":{\"b\":2}} hope that helps", want: `{"a":{"b":2}}`},
		{name: "no object", in: "no json here", wantErr: true},
		{name: "broken", in: `{"a":}`, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedJSON)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestToGrams(t *testing.T) {
	tests := []struct {
		unit string
		want float64
	}{
		{"g", 1},
		{"Grams", 1},
		{"kg", 1000},
		{"KILOGRAMS", 1000},
		{"lb", 453.59237},
		{"lbs", 453.59237},
		{"pounds", 453.59237},
		{"oz", 28.349523125},
		{"ounce", 28.349523125},
		{"stone", 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.unit, func(t *testing.T) {
			got := ToGrams(1, tt.unit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ToGrams(got, "g"))
		})
	}
}

func TestIdentifyNormalizesQuestions(t *testing.T) {
	p := &scriptedProvider{replies: []string{"```json\n" + `{
		"object_label": " apple ",
		"object_summary": "a red apple",
		"questions": [
			{"question": "How big is it?", "answer_type": "Select", "options": ["small", "large"]},
			{"question": "Diameter?", "answer_type": "number", "unit": "cm", "required": false},
			{"question": "   "},
			{"question": "Color?", "answer_type": "color"}
		]
	}` + "\n```"}}
	g, _ := newTestGateway(p)

	out, err := g.Identify(context.Background(), "data:image/png;base64,AAAA", "fruit")
	require.NoError(t, err)

	assert.Equal(t, "apple", out.Label)
	require.Len(t, out.Questions, 3)
	assert.Equal(t, "select", out.Questions[0].AnswerType)
	assert.True(t, out.Questions[0].Required)
	assert.Equal(t, []string{"small", "large"}, out.Questions[0].Options)
	assert.False(t, out.Questions[1].Required)
	assert.Equal(t, "cm", out.Questions[1].Unit)
	assert.Equal(t, "text", out.Questions[2].AnswerType)

	require.Len(t, p.calls, 1)
	assert.Equal(t, "vision-model", p.calls[0].Model)
	assert.Equal(t, "data:image/png;base64,AAAA", p.calls[0].ImageDataURL)
	assert.Contains(t, p.calls[0].Prompt, `"user_hint":"fruit"`)
}

func TestIdentifyTreatsNonListQuestionsAsEmpty(t *testing.T) {
	p := &scriptedProvider{replies: []string{`{"object_label":"rock","questions":"none"}`}}
	g, _ := newTestGateway(p)

	out, err := g.Identify(context.Background(), "data:x", "")
	require.NoError(t, err)
	assert.Empty(t, out.Questions)
}

func TestEstimateNormalizesToGrams(t *testing.T) {
	p := &scriptedProvider{replies: []string{`{
		"estimated_weight": {"value": 2, "unit": "lb", "min": "1.5", "max": 0},
		"confidence": 0,
		"rationale": "looks like two pounds",
		"key_factors": ["size"]
	}`}}
	g, _ := newTestGateway(p)

	est, err := g.Estimate(context.Background(), "melon", "", []QAItem{{Question: "Size?", AnswerType: "text", Answer: "big"}})
	require.NoError(t, err)

	assert.InDelta(t, 907.18474, est.ValueGrams, 1e-9)
	assert.InDelta(t, 680.388555, est.MinGrams, 1e-6)
	assert.InDelta(t, 907.18474, est.MaxGrams, 1e-9)
	assert.Equal(t, "lb", est.Unit)
	assert.Equal(t, defaultConfidence, est.Confidence)
	assert.Equal(t, []string{"size"}, est.KeyFactors)

	require.Len(t, p.calls, 1)
	assert.Equal(t, "text-model", p.calls[0].Model)
	assert.Empty(t, p.calls[0].ImageDataURL)
	assert.Contains(t, p.calls[0].Prompt, `"task":"estimate_weight"`)
}

func TestEstimateClampsRange(t *testing.T) {
	p := &scriptedProvider{replies: []string{`{"estimated_weight":{"value":100,"min":150,"max":80},"confidence":1.7,"rationale":"` + strings.Repeat("x", 2500) + `"}`}}
	g, _ := newTestGateway(p)

	est, err := g.Estimate(context.Background(), "thing", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, est.MinGrams)
	assert.Equal(t, 100.0, est.MaxGrams)
	assert.Equal(t, "g", est.Unit)
	assert.Equal(t, 1.0, est.Confidence)
	assert.Len(t, est.Rationale, maxRationaleChars)
}

func TestRetryOnMalformedJSONThenSucceed(t *testing.T) {
	p := &scriptedProvider{replies: []string{"not json", "still not", `{"estimated_weight":{"value":10,"unit":"g"}}`}}
	g, rec := newTestGateway(p)

	est, err := g.Estimate(context.Background(), "pebble", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 10.0, est.ValueGrams)
	assert.Len(t, p.calls, 3)
	assert.Equal(t, []time.Duration{1200 * time.Millisecond, 2400 * time.Millisecond}, rec.waits)
}

func TestEstimateRetriesNonPositiveValue(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		`{"estimated_weight":{"value":0,"unit":"g"}}`,
		`{"estimated_weight":{"value":"-5","unit":"kg"}}`,
		`{"estimated_weight":{"value":0.2,"unit":"kg"},"confidence":0.6}`,
	}}
	g, rec := newTestGateway(p)

	est, err := g.Estimate(context.Background(), "brick", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 200.0, est.ValueGrams)
	assert.Len(t, p.calls, 3)
	assert.Len(t, rec.waits, 2)
}

func TestEstimateRejectsMissingValue(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "no weight object", reply: `{"confidence":0.5}`},
		{name: "no value", reply: `{"estimated_weight":{"unit":"g"}}`},
		{name: "zero", reply: `{"estimated_weight":{"value":0}}`},
		{name: "negative", reply: `{"estimated_weight":{"value":-1,"unit":"g"}}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedProvider{replies: []string{tt.reply}}
			g, _ := newTestGateway(p)

			_, err := g.Estimate(context.Background(), "brick", "", nil)
			var up *UpstreamError
			require.ErrorAs(t, err, &up)
			require.ErrorIs(t, err, ErrMalformedJSON)
			assert.Equal(t, 3, up.Attempts)
		})
	}
}

func TestRetriesExhausted(t *testing.T) {
	transient := &TransportError{Status: 503, Err: errors.New("unavailable")}
	p := &scriptedProvider{errs: []error{transient, transient, transient}, replies: []string{""}}
	g, _ := newTestGateway(p)

	_, err := g.Estimate(context.Background(), "pebble", "", nil)
	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, OpEstimate, up.Op)
	assert.Equal(t, 3, up.Attempts)
	assert.Len(t, p.calls, 3)
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	p := &scriptedProvider{errs: []error{&TransportError{Status: 401, Err: errors.New("bad key")}}, replies: []string{""}}
	g, rec := newTestGateway(p)

	_, err := g.Identify(context.Background(), "data:x", "")
	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, 1, up.Attempts)
	assert.Empty(t, rec.waits)
}

func TestRateLimitIsRetried(t *testing.T) {
	p := &scriptedProvider{
		errs:    []error{&TransportError{Status: 429, Err: errors.New("slow down")}},
		replies: []string{"", `{"object_label":"cup"}`},
	}
	g, _ := newTestGateway(p)

	out, err := g.Identify(context.Background(), "data:x", "")
	require.NoError(t, err)
	assert.Equal(t, "cup", out.Label)
}

func TestUnconfiguredFailsFast(t *testing.T) {
	g, rec := newTestGateway(nil)

	_, err := g.Estimate(context.Background(), "x", "", nil)
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, rec.waits)
}

func TestValidateImageQuality(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantReject bool
		wantValid  bool
	}{
		{
			name:      "valid",
			reply:     `{"image_type":"single_object","valid":true,"issues":[],"summary":"ok"}`,
			wantValid: true,
		},
		{
			name:       "invalid with issues",
			reply:      `{"image_type":"single_object","valid":false,"issues":["no reference object"],"summary":"poor"}`,
			wantReject: true,
		},
		{
			name:      "composite with minor issues passes",
			reply:     `{"image_type":"composite_object","valid":false,"issues":["busy background"],"summary":"meh"}`,
			wantValid: true,
		},
		{
			name:       "composite with critical issue rejected",
			reply:      `{"image_type":"composite_object","valid":false,"issues":["Image is too dark"],"summary":"dark"}`,
			wantReject: true,
		},
		{
			name:      "invalid without issues passes",
			reply:     `{"image_type":"person","valid":"false","issues":[]}`,
			wantValid: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGateway(&scriptedProvider{replies: []string{tt.reply}})
			check, err := g.ValidateImageQuality(context.Background(), "data:x")
			if tt.wantReject {
				var rej *ImageRejectedError
				require.ErrorAs(t, err, &rej)
				assert.True(t, strings.HasPrefix(err.Error(), "Image validation failed: "))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, check.Valid)
		})
	}
}

func TestImageRejectedMessage(t *testing.T) {
	err := &ImageRejectedError{Summary: "too blurry", Issues: []string{"blurry", "too dark"}}
	assert.Equal(t, "Image validation failed: too blurry. Issues: blurry; too dark", err.Error())
}
