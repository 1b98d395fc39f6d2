// Package controller implements the three study modes as explicit state
// machines over the shared session: quiz, subjective questions, and
// flashcards.
package controller

import (
	"context"
	"errors"

	"github.com/kpauljoseph/studykit/pkg/models"
)

// Generator is the generation client the controllers drive.
type Generator interface {
	GenerateQuiz(ctx context.Context, text string) ([]models.QuizItem, error)
	GenerateSubjective(ctx context.Context, text string) ([]models.SubjectiveItem, error)
	GenerateFlashcards(ctx context.Context, text string) ([]models.FlashcardItem, error)
	GradeAnswer(ctx context.Context, question string, answer string) (models.Grade, error)
}

// ErrStale marks a result that arrived after the session had moved on (new
// upload or mode switch). It is safe to ignore: nothing was applied.
var ErrStale = errors.New("result discarded: session changed while request was in flight")
