// Package view is the finite state machine over the application's named
// views. Transitions are gated on content availability: a mode view is
// reachable only once its item set has been generated.
package view

import (
	"fmt"

	"github.com/kpauljoseph/studykit/internal/session"
	"github.com/kpauljoseph/studykit/pkg/logger"
)

type View int

const (
	Upload View = iota
	ModeSelect
	Quiz
	Subjective
	Flashcard
)

func (v View) String() string {
	switch v {
	case Upload:
		return "upload"
	case ModeSelect:
		return "mode-select"
	case Quiz:
		return "quiz"
	case Subjective:
		return "subjective"
	case Flashcard:
		return "flashcard"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

type Navigator struct {
	current View
	session *session.Session
	logger  *logger.Logger
}

// NewNavigator starts at the upload view.
func NewNavigator(sess *session.Session, log *logger.Logger) *Navigator {
	return &Navigator{
		current: Upload,
		session: sess,
		logger:  log,
	}
}

func (n *Navigator) Current() View {
	return n.current
}

// CompleteUpload moves from Upload to ModeSelect once extraction has
// populated the session document.
func (n *Navigator) CompleteUpload() error {
	if n.current != Upload {
		return fmt.Errorf("cannot complete upload from %s view", n.current)
	}
	if !n.session.HasDocument() {
		return fmt.Errorf("no document has been extracted")
	}

	n.transition(ModeSelect)
	return nil
}

// EnterMode moves from ModeSelect into a mode view. The matching item set
// must already be installed, i.e. the generation call succeeded.
func (n *Navigator) EnterMode(target View) error {
	if n.current != ModeSelect {
		return fmt.Errorf("cannot enter %s from %s view", target, n.current)
	}

	var required session.ItemSetKind
	switch target {
	case Quiz:
		required = session.SetQuiz
	case Subjective:
		required = session.SetSubjective
	case Flashcard:
		required = session.SetFlashcards
	default:
		return fmt.Errorf("%s is not a mode view", target)
	}

	if n.session.Kind() != required {
		return fmt.Errorf("no %s content has been generated", target)
	}

	n.transition(target)
	return nil
}

// Back returns to ModeSelect from any non-Upload view, discarding the
// active item set and any progress in it. Upload has no back affordance.
func (n *Navigator) Back() View {
	if n.current == Upload {
		return n.current
	}

	n.session.ClearItems()
	n.transition(ModeSelect)
	return n.current
}

func (n *Navigator) transition(target View) {
	n.logger.Debug("View transition: %s -> %s", n.current, target)
	n.current = target
}
