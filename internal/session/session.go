// Package session holds the single mutable state record for a study
// session: the extracted document, the active item set, progress, and the
// in-flight-request guard.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kpauljoseph/studykit/pkg/models"
)

// ErrBusy is returned when an extraction or generation request is already in
// flight; triggering controls are disabled while it stands.
var ErrBusy = errors.New("an operation is already in flight")

type ItemSetKind int

const (
	SetNone ItemSetKind = iota
	SetQuiz
	SetSubjective
	SetFlashcards
)

// Token tags an asynchronous request with the session epoch it was issued
// for. Results carrying a stale token are discarded instead of being applied
// to state that has since moved on.
type Token struct {
	epoch uint64
}

type Session struct {
	mu sync.Mutex

	document   string
	kind       ItemSetKind
	quiz       []models.QuizItem
	subjective []models.SubjectiveItem
	cards      []models.FlashcardItem
	index      int
	score      int
	busy       bool
	epoch      uint64
}

func New() *Session {
	return &Session{}
}

// SetDocument replaces the document wholesale and discards any active item
// set. In-flight results issued against the previous document become stale.
func (s *Session) SetDocument(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.document = text
	s.clearItemsLocked()
}

func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

func (s *Session) HasDocument() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document != ""
}

// Begin marks the start of an extraction/generation request. It fails with
// ErrBusy while another request is in flight.
func (s *Session) Begin() (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return Token{}, ErrBusy
	}

	s.busy = true
	return Token{epoch: s.epoch}, nil
}

// End marks the request as finished, whatever its outcome.
func (s *Session) End(Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// InstallQuiz replaces the active item set with a fresh quiz. It reports
// false, changing nothing, when the token is stale.
func (s *Session) InstallQuiz(tok Token, items []models.QuizItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.epoch != s.epoch {
		return false
	}

	s.clearItemsLocked()
	s.kind = SetQuiz
	s.quiz = items
	return true
}

func (s *Session) InstallSubjective(tok Token, items []models.SubjectiveItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.epoch != s.epoch {
		return false
	}

	s.clearItemsLocked()
	s.kind = SetSubjective
	s.subjective = items
	return true
}

func (s *Session) InstallFlashcards(tok Token, items []models.FlashcardItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.epoch != s.epoch {
		return false
	}

	s.clearItemsLocked()
	s.kind = SetFlashcards
	s.cards = items
	return true
}

// ClearItems discards the active item set and resets progress. The document
// is untouched; in-flight results become stale.
func (s *Session) ClearItems() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearItemsLocked()
}

// clearItemsLocked resets everything tied to item-set identity. Callers hold
// the mutex.
func (s *Session) clearItemsLocked() {
	s.kind = SetNone
	s.quiz = nil
	s.subjective = nil
	s.cards = nil
	s.index = 0
	s.score = 0
	s.epoch++
}

func (s *Session) Kind() ItemSetKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

func (s *Session) Quiz() []models.QuizItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}

func (s *Session) Subjective() []models.SubjectiveItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subjective
}

func (s *Session) Flashcards() []models.FlashcardItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards
}

func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Advance moves to the next item and returns the new index.
func (s *Session) Advance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index++
	return s.index
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) IncrementScore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score++
}

// SetUserAnswer records the user's answer on a subjective item.
func (s *Session) SetUserAnswer(i int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kind != SetSubjective || i < 0 || i >= len(s.subjective) {
		return fmt.Errorf("no subjective item at index %d", i)
	}

	s.subjective[i].UserAnswer = answer
	return nil
}

// AttachGrade sets a subjective item's grade. A grade, once attached, is
// immutable for that item.
func (s *Session) AttachGrade(tok Token, i int, grade models.Grade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.epoch != s.epoch {
		return fmt.Errorf("stale grade result discarded")
	}
	if s.kind != SetSubjective || i < 0 || i >= len(s.subjective) {
		return fmt.Errorf("no subjective item at index %d", i)
	}
	if s.subjective[i].Grade != nil {
		return fmt.Errorf("item %d is already graded", i)
	}

	s.subjective[i].Grade = &grade
	return nil
}

// ToggleCard flips a flashcard's reveal state and reports the new state.
func (s *Session) ToggleCard(i int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kind != SetFlashcards || i < 0 || i >= len(s.cards) {
		return false, fmt.Errorf("no flashcard at index %d", i)
	}

	s.cards[i].Revealed = !s.cards[i].Revealed
	return s.cards[i].Revealed, nil
}
