package controller

import (
	"context"

	"github.com/kpauljoseph/studykit/internal/session"
	"github.com/kpauljoseph/studykit/pkg/logger"
	"github.com/kpauljoseph/studykit/pkg/models"
)

type QuizState int

const (
	QuizAwaitingAnswer QuizState = iota
	QuizAnswered
	QuizComplete
)

// Selection is the outcome of answering the current question. The view
// marks the chosen option and, when the choice was wrong, the true answer.
type Selection struct {
	Chosen        string
	Correct       bool
	CorrectAnswer string
	Explanation   string
}

type QuizController struct {
	session   *session.Session
	generator Generator
	logger    *logger.Logger
	state     QuizState
}

func NewQuizController(sess *session.Session, generator Generator, log *logger.Logger) *QuizController {
	return &QuizController{
		session:   sess,
		generator: generator,
		logger:    log,
		state:     QuizAwaitingAnswer,
	}
}

// Start generates a fresh quiz for the session document and installs it.
// Returns session.ErrBusy while another request is in flight.
func (c *QuizController) Start(ctx context.Context) error {
	tok, err := c.session.Begin()
	if err != nil {
		return err
	}
	defer c.session.End(tok)

	items, err := c.generator.GenerateQuiz(ctx, c.session.Document())
	if err != nil {
		return err
	}

	if !c.session.InstallQuiz(tok, items) {
		c.logger.Warn("Quiz result arrived for a stale session, discarding")
		return ErrStale
	}

	c.state = QuizAwaitingAnswer
	c.logger.Info("Quiz started with %d questions", len(items))
	return nil
}

// Restart throws the current run away and generates a new quiz. Score and
// position reset as part of installing the new item set.
func (c *QuizController) Restart(ctx context.Context) error {
	return c.Start(ctx)
}

func (c *QuizController) State() QuizState {
	return c.state
}

// Current returns the question being shown and its index.
func (c *QuizController) Current() (models.QuizItem, int) {
	items := c.session.Quiz()
	i := c.session.Index()
	if i >= len(items) {
		return models.QuizItem{}, i
	}
	return items[i], i
}

// Select answers the current question. The first selection is final:
// repeated calls after answering report ok=false and change nothing.
func (c *QuizController) Select(option string) (Selection, bool) {
	if c.state != QuizAwaitingAnswer {
		return Selection{}, false
	}

	item, _ := c.Current()
	sel := Selection{
		Chosen:        option,
		Correct:       item.IsCorrect(option),
		CorrectAnswer: item.CorrectAnswer,
		Explanation:   item.Explanation,
	}

	if sel.Correct {
		c.session.IncrementScore()
	}

	c.state = QuizAnswered
	return sel, true
}

// Next moves on after an answered question; on the last question it
// completes the quiz. Calling it in any other state is a no-op.
func (c *QuizController) Next() QuizState {
	if c.state != QuizAnswered {
		return c.state
	}

	if c.session.Index()+1 >= len(c.session.Quiz()) {
		c.state = QuizComplete
		score, total := c.Score()
		c.logger.Info("Quiz complete: %d/%d", score, total)
		return c.state
	}

	c.session.Advance()
	c.state = QuizAwaitingAnswer
	return c.state
}

// Score returns correct answers so far and the quiz length.
func (c *QuizController) Score() (int, int) {
	return c.session.Score(), len(c.session.Quiz())
}
