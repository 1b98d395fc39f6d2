package controller

import (
	"context"

	"github.com/kpauljoseph/studykit/internal/session"
	"github.com/kpauljoseph/studykit/pkg/logger"
	"github.com/kpauljoseph/studykit/pkg/models"
)

// FlashcardController has no sequencing state of its own: every card is
// independently flippable, in generation order, with no scoring.
type FlashcardController struct {
	session   *session.Session
	generator Generator
	logger    *logger.Logger
}

func NewFlashcardController(sess *session.Session, generator Generator, log *logger.Logger) *FlashcardController {
	return &FlashcardController{
		session:   sess,
		generator: generator,
		logger:    log,
	}
}

// Start generates the flashcard set and installs it.
func (c *FlashcardController) Start(ctx context.Context) error {
	tok, err := c.session.Begin()
	if err != nil {
		return err
	}
	defer c.session.End(tok)

	cards, err := c.generator.GenerateFlashcards(ctx, c.session.Document())
	if err != nil {
		return err
	}

	if !c.session.InstallFlashcards(tok, cards) {
		c.logger.Warn("Flashcards arrived for a stale session, discarding")
		return ErrStale
	}

	c.logger.Info("Flashcard deck started with %d cards", len(cards))
	return nil
}

// Cards returns the deck in generation order.
func (c *FlashcardController) Cards() []models.FlashcardItem {
	return c.session.Flashcards()
}

// Toggle flips card i between term and definition and reports whether the
// definition is now showing.
func (c *FlashcardController) Toggle(i int) (bool, error) {
	return c.session.ToggleCard(i)
}
