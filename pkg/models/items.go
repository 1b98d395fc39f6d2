package models

import (
	"fmt"
	"strings"
)

type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple_choice"
	KindTrueFalse      QuestionKind = "true_false"
)

// TrueFalseOptions is the canonical option pair every true/false item is
// normalized to, regardless of how the backend phrased them.
var TrueFalseOptions = []string{"True", "False"}

type QuizItem struct {
	Prompt        string       `json:"question"`
	Kind          QuestionKind `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"answer"`
	Explanation   string       `json:"explanation,omitempty"`
}

// Validate checks the invariants a quiz item must satisfy before it is shown
// to the user. An item whose answer matches no option would be displayable
// but never answerable correctly, so it is rejected here instead.
func (q QuizItem) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("quiz item has empty prompt")
	}

	switch q.Kind {
	case KindMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple choice item %q has %d options, need at least 2", q.Prompt, len(q.Options))
		}
	case KindTrueFalse:
		if len(q.Options) != 2 {
			return fmt.Errorf("true/false item %q has %d options, need exactly 2", q.Prompt, len(q.Options))
		}
	default:
		return fmt.Errorf("quiz item %q has unrecognized kind %q", q.Prompt, q.Kind)
	}

	if !q.HasOption(q.CorrectAnswer) {
		return fmt.Errorf("quiz item %q: answer %q matches no option", q.Prompt, q.CorrectAnswer)
	}

	return nil
}

// HasOption reports whether answer matches one of the item's options,
// compared case-insensitively.
func (q QuizItem) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(answer)) {
			return true
		}
	}
	return false
}

// IsCorrect reports whether the given selection is the item's correct answer.
func (q QuizItem) IsCorrect(selection string) bool {
	return strings.EqualFold(strings.TrimSpace(selection), strings.TrimSpace(q.CorrectAnswer))
}

const (
	MinGradeScore = 0
	MaxGradeScore = 5
)

type Grade struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type SubjectiveItem struct {
	Prompt     string `json:"question"`
	UserAnswer string `json:"-"`
	Grade      *Grade `json:"-"`
}

// Graded reports whether the item has already received its immutable grade.
func (s SubjectiveItem) Graded() bool {
	return s.Grade != nil
}

type FlashcardItem struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`

	// Revealed is ephemeral flip state, never part of generated content.
	Revealed bool `json:"-"`
}

// ClampScore bounds a backend-supplied score to the valid grade range.
// Out-of-range scores are a backend defect we normalize rather than fail on.
func ClampScore(score int) int {
	if score < MinGradeScore {
		return MinGradeScore
	}
	if score > MaxGradeScore {
		return MaxGradeScore
	}
	return score
}
