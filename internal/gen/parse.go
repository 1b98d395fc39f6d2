package gen

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/kpauljoseph/studykit/pkg/models"
)

// Wire shapes the backend responds with. Validation happens after parsing;
// items that fail it are dropped, never shown.

type quizPayload struct {
	Question    string   `json:"question"`
	Type        string   `json:"type"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type subjectivePayload struct {
	Question string `json:"question"`
}

type flashcardPayload struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type gradePayload struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// extractJSON strips markdown code fences and surrounding prose so the
// remainder can be unmarshalled. Backends occasionally wrap JSON in
// ```json fences even when asked for a bare payload.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		start := 3
		if newlineIdx := strings.Index(content[start:], "\n"); newlineIdx != -1 {
			start += newlineIdx + 1
		}
		if endIdx := strings.Index(content[start:], "```"); endIdx != -1 {
			content = content[start : start+endIdx]
		} else {
			content = content[start:]
		}
	}

	content = strings.TrimSpace(content)

	// Trim any prose around the outermost JSON value.
	objStart := strings.Index(content, "{")
	arrStart := strings.Index(content, "[")
	switch {
	case arrStart != -1 && (objStart == -1 || arrStart < objStart):
		if end := strings.LastIndex(content, "]"); end > arrStart {
			content = content[arrStart : end+1]
		}
	case objStart != -1:
		if end := strings.LastIndex(content, "}"); end > objStart {
			content = content[objStart : end+1]
		}
	}

	return strings.TrimSpace(content)
}

func (p quizPayload) toItem() models.QuizItem {
	item := models.QuizItem{
		Prompt:        strings.TrimSpace(p.Question),
		Kind:          normalizeKind(p.Type),
		Options:       p.Options,
		CorrectAnswer: strings.TrimSpace(p.Answer),
		Explanation:   strings.TrimSpace(p.Explanation),
	}

	// True/false items always present the literal True/False pair, whatever
	// wording the backend chose.
	if item.Kind == models.KindTrueFalse {
		item.Options = append([]string(nil), models.TrueFalseOptions...)
		switch strings.ToLower(item.CorrectAnswer) {
		case "true", "t":
			item.CorrectAnswer = "True"
		case "false", "f":
			item.CorrectAnswer = "False"
		}
	}

	return item
}

func normalizeKind(kind string) models.QuestionKind {
	switch strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(kind, "-", "_"), " ", "_")) {
	case "multiple_choice", "multiplechoice", "mc":
		return models.KindMultipleChoice
	case "true_false", "truefalse", "tf":
		return models.KindTrueFalse
	}
	return models.QuestionKind(kind)
}

// parseFlashcardLines parses the delimited-line flashcard encoding: one
// "Term: Definition" pair per line. The first colon splits the line; any
// further colons belong to the definition. Lines without a colon, or with a
// blank side, are discarded.
func parseFlashcardLines(text string) []models.FlashcardItem {
	var cards []models.FlashcardItem

	for _, line := range strings.Split(text, "\n") {
		term, definition, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		term = strings.TrimSpace(term)
		definition = strings.TrimSpace(definition)
		if term == "" || definition == "" {
			continue
		}

		cards = append(cards, models.FlashcardItem{Term: term, Definition: definition})
	}

	return cards
}

func parseFlashcardJSON(raw string) ([]models.FlashcardItem, error) {
	var payload []flashcardPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, err
	}

	var cards []models.FlashcardItem
	for _, p := range payload {
		term := strings.TrimSpace(p.Term)
		definition := strings.TrimSpace(p.Definition)
		if term == "" || definition == "" {
			continue
		}
		cards = append(cards, models.FlashcardItem{Term: term, Definition: definition})
	}

	return cards, nil
}

func (p gradePayload) toGrade() models.Grade {
	return models.Grade{
		Score:    models.ClampScore(int(math.Round(p.Score))),
		Feedback: strings.TrimSpace(p.Feedback),
	}
}
