package category

const (
	// MaxBaseQuestions caps the model-generated questions kept before templates are appended.
	MaxBaseQuestions = 8
	// MaxQuestions caps the combined list.
	MaxQuestions = 12
)

// Answer types a question may declare.
const (
	AnswerText    = "text"
	AnswerNumber  = "number"
	AnswerBoolean = "boolean"
	AnswerSelect  = "select"
)

// QuestionTemplate is a fixed follow-up question asked for a category.
type QuestionTemplate struct {
	Text       string
	AnswerType string
	Unit       string
	Options    []string
	Required   bool
}

var templates = map[string][]QuestionTemplate{
	Food: {
		{Text: "Is this food raw or cooked?", AnswerType: AnswerSelect, Options: []string{"Raw", "Cooked", "Processed"}, Required: true},
		{Text: "Is any portion missing or already eaten?", AnswerType: AnswerSelect, Options: []string{"No, it's whole", "Partially eaten", "Just a portion"}, Required: true},
		{Text: "Does it have skin, peel, or shell on?", AnswerType: AnswerBoolean, Required: false},
	},
	Package: {
		{Text: "Estimated length in cm?", AnswerType: AnswerNumber, Unit: "cm", Required: true},
		{Text: "Estimated width in cm?", AnswerType: AnswerNumber, Unit: "cm", Required: true},
		{Text: "Estimated height in cm?", AnswerType: AnswerNumber, Unit: "cm", Required: true},
		{Text: "Is the package fragile?", AnswerType: AnswerBoolean, Required: false},
		{Text: "Shipping destination?", AnswerType: AnswerSelect, Options: []string{"Domestic", "International"}, Required: false},
	},
	Pet: {
		{Text: "What breed is this pet? (if known)", AnswerType: AnswerText, Required: false},
		{Text: "What is the pet's age category?", AnswerType: AnswerSelect, Options: []string{"Puppy/Kitten (< 1 year)", "Adult (1-7 years)", "Senior (7+ years)"}, Required: true},
		{Text: "Is the pet male or female?", AnswerType: AnswerSelect, Options: []string{"Male", "Female", "Unknown"}, Required: false},
		{Text: "Is the pet spayed or neutered?", AnswerType: AnswerSelect, Options: []string{"Yes", "No", "Unknown"}, Required: false},
	},
	Person: {
		{Text: "What is the person's height in cm?", AnswerType: AnswerNumber, Unit: "cm", Required: true},
		{Text: "What is the person's age? (optional)", AnswerType: AnswerNumber, Unit: "years", Required: false},
		{Text: "Gender?", AnswerType: AnswerSelect, Options: []string{"Male", "Female", "Prefer not to say"}, Required: false},
		{Text: "Activity level?", AnswerType: AnswerSelect, Options: []string{"Sedentary", "Lightly active", "Moderately active", "Very active"}, Required: false},
	},
}

// Templates returns a copy of the follow-up questions for a category.
// General has none.
func Templates(category string) []QuestionTemplate {
	src := templates[category]
	out := make([]QuestionTemplate, len(src))
	for i, q := range src {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Combine keeps at most MaxBaseQuestions of base, appends extra and caps the
// result at MaxQuestions.
func Combine[T any](base, extra []T) []T {
	if len(base) > MaxBaseQuestions {
		base = base[:MaxBaseQuestions]
	}
	out := make([]T, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	if len(out) > MaxQuestions {
		out = out[:MaxQuestions]
	}
	return out
}
