package inference

import "encoding/json"

const (
	validateSystem = "You validate images for weight estimation. Check if the image meets quality requirements. " +
		"Be lenient with composite objects (like food items with multiple ingredients, salads, meals). " +
		"For composite objects, focus on visibility and clarity rather than requiring reference objects or plain backgrounds. " +
		"Return ONLY valid JSON (no markdown)."

	identifySystem = "You identify the main object in an image and generate the minimum set of questions " +
		"needed to estimate its weight. Return ONLY valid JSON (no markdown)."

	estimateSystem = "You estimate object weight from user answers. Return ONLY valid JSON (no markdown). " +
		"If uncertain, give a realistic range and lower confidence."
)

type validationRules struct {
	Person          []string `json:"person"`
	SingleObject    []string `json:"single_object"`
	CompositeObject []string `json:"composite_object"`
}

type validatePrompt struct {
	Task            string          `json:"task"`
	ValidationRules validationRules `json:"validation_rules"`
	Instructions    []string        `json:"instructions"`
	OutputSchema    map[string]any  `json:"output_schema"`
}

func buildValidatePrompt() string {
	return mustJSON(validatePrompt{
		Task: "validate_image_quality",
		ValidationRules: validationRules{
			Person: []string{
				"Full Body Clear View - person should be fully visible from head to toe",
				"Minimal Clothing - person should wear minimal clothing",
				"Standard standing pose - person should be in a standard standing position",
				"Plain Background - background should be simple and uniform",
			},
			SingleObject: []string{
				"Reference Object Inclusion - image should include a reference object (coin, ruler, etc.) - OPTIONAL but recommended",
				"Visibility and Clarity - object should be clearly visible and distinct",
				"Uniform Lighting - lighting should be even across the image - OPTIONAL",
				"Plain Contrasting Background - background should be plain and contrast with object - OPTIONAL",
				"Sharp Focus - image should be in sharp focus",
			},
			CompositeObject: []string{
				"Visibility and Clarity - main object(s) should be clearly visible",
				"Sharp Focus - image should be in sharp focus",
				"Multiple items are acceptable - composite objects like salads, meals, or collections are valid",
				"Reference objects are OPTIONAL - not required for composite objects",
				"Plain background is OPTIONAL - natural backgrounds are acceptable",
			},
		},
		Instructions: []string{
			"First, determine if the image contains a single object, composite object (multiple items together like a salad), or a person",
			"For composite objects (food items with multiple ingredients, salads, meals, collections), use 'composite_object' rules",
			"For single distinct objects, use 'single_object' rules",
			"Be lenient - only reject images that are truly unusable (blurry, too dark, completely obscured)",
			"Accept images with multiple objects if they form a cohesive whole (like a salad with ingredients)",
		},
		OutputSchema: map[string]any{
			"image_type": "person|single_object|composite_object|unknown",
			"valid":      "boolean",
			"issues":     []string{"array of strings describing validation failures - only include critical issues"},
			"summary":    "short string summarizing validation result",
		},
	})
}

type identifyPrompt struct {
	Objectives   []string       `json:"objectives"`
	OutputSchema map[string]any `json:"output_schema"`
	UserHint     string         `json:"user_hint"`
}

func buildIdentifyPrompt(hint string) string {
	return mustJSON(identifyPrompt{
		Objectives: []string{
			"Identify the main object in the image (simple label).",
			"Provide a short summary of what you see that matters for weight.",
			"Ask 4-8 practical questions that a user can answer.",
		},
		OutputSchema: map[string]any{
			"object_label":   "string",
			"object_summary": "string",
			"questions": []map[string]string{{
				"question":    "string",
				"answer_type": "text|number|boolean|select",
				"unit":        "optional string",
				"options":     "optional list of strings (select only)",
				"required":    "boolean",
			}},
		},
		UserHint: hint,
	})
}

type estimatePrompt struct {
	Task          string         `json:"task"`
	ObjectLabel   string         `json:"object_label"`
	ObjectSummary string         `json:"object_summary"`
	QA            qaPayload      `json:"qa"`
	OutputSchema  map[string]any `json:"output_schema"`
	Constraints   []string       `json:"constraints"`
}

type qaPayload struct {
	Items []QAItem `json:"items"`
}

func buildEstimatePrompt(label, summary string, items []QAItem) string {
	if items == nil {
		items = []QAItem{}
	}
	return mustJSON(estimatePrompt{
		Task:          "estimate_weight",
		ObjectLabel:   label,
		ObjectSummary: summary,
		QA:            qaPayload{Items: items},
		OutputSchema: map[string]any{
			"estimated_weight": map[string]string{"value": "number", "unit": "g|kg|lb|oz", "min": "number", "max": "number"},
			"confidence":       "number between 0 and 1",
			"rationale":        "short string",
			"key_factors":      []string{"string"},
		},
		Constraints: []string{
			"min <= value <= max",
			"do not invent facts not supported by user answers",
			"if dimensions are missing, widen range and reduce confidence",
		},
	})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
