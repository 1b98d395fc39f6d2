package gen

import "github.com/google/generative-ai-go/genai"

// Output-shape contracts sent with each structured request. The backend is
// constrained to these shapes; parsing still validates every item because
// schema enforcement is best-effort on the model side.

var quizSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": {Type: genai.TypeString},
			"type": {
				Type: genai.TypeString,
				Enum: []string{"multiple_choice", "true_false"},
			},
			"options": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"answer":      {Type: genai.TypeString},
			"explanation": {Type: genai.TypeString},
		},
		Required: []string{"question", "type", "options", "answer"},
	},
}

var subjectiveSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": {Type: genai.TypeString},
		},
		Required: []string{"question"},
	},
}

var flashcardSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"term":       {Type: genai.TypeString},
			"definition": {Type: genai.TypeString},
		},
		Required: []string{"term", "definition"},
	},
}

var gradeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":    {Type: genai.TypeInteger},
		"feedback": {Type: genai.TypeString},
	},
	Required: []string{"score", "feedback"},
}
