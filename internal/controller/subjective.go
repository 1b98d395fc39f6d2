package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/kpauljoseph/studykit/internal/session"
	"github.com/kpauljoseph/studykit/pkg/logger"
	"github.com/kpauljoseph/studykit/pkg/models"
)

type SubjectiveState int

const (
	SubjectiveUnanswered SubjectiveState = iota
	SubjectiveGraded
	SubjectiveComplete
)

// ErrBlankAnswer rejects an empty or whitespace-only submission locally,
// before any backend call.
var ErrBlankAnswer = errors.New("answer is blank")

type SubjectiveController struct {
	session   *session.Session
	generator Generator
	logger    *logger.Logger
	state     SubjectiveState
}

func NewSubjectiveController(sess *session.Session, generator Generator, log *logger.Logger) *SubjectiveController {
	return &SubjectiveController{
		session:   sess,
		generator: generator,
		logger:    log,
		state:     SubjectiveUnanswered,
	}
}

// Start generates the open-ended question set and installs it.
func (c *SubjectiveController) Start(ctx context.Context) error {
	tok, err := c.session.Begin()
	if err != nil {
		return err
	}
	defer c.session.End(tok)

	items, err := c.generator.GenerateSubjective(ctx, c.session.Document())
	if err != nil {
		return err
	}

	if !c.session.InstallSubjective(tok, items) {
		c.logger.Warn("Subjective questions arrived for a stale session, discarding")
		return ErrStale
	}

	c.state = SubjectiveUnanswered
	c.logger.Info("Subjective round started with %d questions", len(items))
	return nil
}

func (c *SubjectiveController) State() SubjectiveState {
	return c.state
}

// Current returns the question being shown and its index.
func (c *SubjectiveController) Current() (models.SubjectiveItem, int) {
	items := c.session.Subjective()
	i := c.session.Index()
	if i >= len(items) {
		return models.SubjectiveItem{}, i
	}
	return items[i], i
}

// IsLast reports whether the current question is the final one; the view
// labels the advance control "Finish" instead of "Next" in that case.
func (c *SubjectiveController) IsLast() bool {
	return c.session.Index()+1 >= len(c.session.Subjective())
}

// Submit grades the user's answer to the current question. Blank answers
// are rejected without a backend call; while a grading request is pending,
// further submissions fail with session.ErrBusy. On backend failure nothing
// is stored and the user may submit again.
func (c *SubjectiveController) Submit(ctx context.Context, answer string) (models.Grade, error) {
	if c.state != SubjectiveUnanswered {
		return models.Grade{}, errors.New("current question is already graded")
	}

	if strings.TrimSpace(answer) == "" {
		return models.Grade{}, ErrBlankAnswer
	}

	tok, err := c.session.Begin()
	if err != nil {
		return models.Grade{}, err
	}
	defer c.session.End(tok)

	item, i := c.Current()
	if err := c.session.SetUserAnswer(i, answer); err != nil {
		return models.Grade{}, err
	}

	grade, err := c.generator.GradeAnswer(ctx, item.Prompt, answer)
	if err != nil {
		return models.Grade{}, err
	}

	if err := c.session.AttachGrade(tok, i, grade); err != nil {
		c.logger.Warn("Grade arrived for a stale session, discarding: %v", err)
		return models.Grade{}, ErrStale
	}

	c.state = SubjectiveGraded
	c.logger.Debug("Question %d graded %d/%d", i+1, grade.Score, models.MaxGradeScore)
	return grade, nil
}

// Next moves on after a graded question; after the last one the round is
// complete and the view returns to mode selection.
func (c *SubjectiveController) Next() SubjectiveState {
	if c.state != SubjectiveGraded {
		return c.state
	}

	if c.IsLast() {
		c.state = SubjectiveComplete
		return c.state
	}

	c.session.Advance()
	c.state = SubjectiveUnanswered
	return c.state
}
