// Package gen is the typed client for study-aid generation: it owns the
// prompts, the output-shape contracts, and the validation that turns raw
// backend payloads into displayable items.
package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/kpauljoseph/studykit/pkg/logger"
	"github.com/kpauljoseph/studykit/pkg/models"
)

const (
	DefaultMinQuestions    = 8
	DefaultMaxQuestions    = 10
	DefaultSubjectiveCount = 5
)

// Backend is the generative-model collaborator: prompt in, text or a
// schema-conformant payload out.
type Backend interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	MinQuestions    int
	MaxQuestions    int
	SubjectiveCount int
}

type Service struct {
	backend Backend
	opts    Options
	logger  *logger.Logger
}

func NewService(backend Backend, opts Options, log *logger.Logger) *Service {
	if opts.MinQuestions == 0 {
		opts.MinQuestions = DefaultMinQuestions
	}
	if opts.MaxQuestions == 0 {
		opts.MaxQuestions = DefaultMaxQuestions
	}
	if opts.SubjectiveCount == 0 {
		opts.SubjectiveCount = DefaultSubjectiveCount
	}

	return &Service{
		backend: backend,
		opts:    opts,
		logger:  log,
	}
}

// GenerateQuiz requests a mixed multiple-choice/true-false quiz for the
// document text. Items that fail validation are dropped; if none survive the
// result is ErrNoUsableContent.
func (s *Service) GenerateQuiz(ctx context.Context, text string) ([]models.QuizItem, error) {
	raw, err := s.backend.GenerateJSON(ctx, quizPrompt(s.opts.MinQuestions, s.opts.MaxQuestions, text), quizSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	var payload []quizPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: quiz payload: %v", ErrMalformedResponse, err)
	}

	var items []models.QuizItem
	for _, p := range payload {
		item := p.toItem()
		if err := item.Validate(); err != nil {
			s.logger.Warn("Dropping invalid quiz item: %v", err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: quiz", ErrNoUsableContent)
	}

	s.logger.Debug("Generated %d quiz questions (%d dropped)", len(items), len(payload)-len(items))
	return items, nil
}

// GenerateSubjective requests open-ended critical-thinking questions.
func (s *Service) GenerateSubjective(ctx context.Context, text string) ([]models.SubjectiveItem, error) {
	raw, err := s.backend.GenerateJSON(ctx, subjectivePrompt(s.opts.SubjectiveCount, text), subjectiveSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	var payload []subjectivePayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: subjective payload: %v", ErrMalformedResponse, err)
	}

	var items []models.SubjectiveItem
	for _, p := range payload {
		prompt := strings.TrimSpace(p.Question)
		if prompt == "" {
			continue
		}
		items = append(items, models.SubjectiveItem{Prompt: prompt})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: subjective questions", ErrNoUsableContent)
	}

	s.logger.Debug("Generated %d subjective questions", len(items))
	return items, nil
}

// GenerateFlashcards requests term/definition pairs. Backends answer in one
// of two encodings, so the structured parse is attempted first and the
// delimited-line format is the fallback.
func (s *Service) GenerateFlashcards(ctx context.Context, text string) ([]models.FlashcardItem, error) {
	raw, err := s.backend.GenerateJSON(ctx, flashcardPrompt(text), flashcardSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	cards, jsonErr := parseFlashcardJSON(raw)
	if jsonErr != nil {
		s.logger.Debug("Structured flashcard parse failed (%v), trying line format", jsonErr)
		cards = parseFlashcardLines(raw)
		if len(cards) == 0 {
			return nil, fmt.Errorf("%w: flashcard payload: %v", ErrMalformedResponse, jsonErr)
		}
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: flashcards", ErrNoUsableContent)
	}

	s.logger.Debug("Generated %d flashcards", len(cards))
	return cards, nil
}

// GradeAnswer asks the backend to grade a subjective answer. Out-of-range or
// fractional scores are normalized to the 0-5 scale, never treated as a
// failure on their own.
func (s *Service) GradeAnswer(ctx context.Context, question, answer string) (models.Grade, error) {
	raw, err := s.backend.GenerateJSON(ctx, gradePrompt(question, answer), gradeSchema)
	if err != nil {
		return models.Grade{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	var payload gradePayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return models.Grade{}, fmt.Errorf("%w: grade payload: %v", ErrMalformedResponse, err)
	}

	return payload.toGrade(), nil
}
