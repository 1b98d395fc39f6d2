package controller_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/studykit/internal/controller"
	"github.com/kpauljoseph/studykit/internal/session"
	"github.com/kpauljoseph/studykit/pkg/models"
)

var _ = Describe("Flashcard controller", func() {
	var (
		sess       *session.Session
		generator  *fakeGenerator
		flashcards *controller.FlashcardController
		ctx        context.Context
	)

	BeforeEach(func() {
		sess = session.New()
		sess.SetDocument("chemistry notes")
		generator = &fakeGenerator{
			cards: []models.FlashcardItem{
				{Term: "Catalyst", Definition: "Speeds a reaction without being consumed."},
				{Term: "Entropy", Definition: "A measure of disorder."},
				{Term: "Mole", Definition: "6.022e23 of anything."},
			},
		}
		flashcards = controller.NewFlashcardController(sess, generator, controllerTestLogger())
		ctx = context.Background()
	})

	It("presents cards in generation order", func() {
		Expect(flashcards.Start(ctx)).To(Succeed())

		cards := flashcards.Cards()
		Expect(cards).To(HaveLen(3))
		Expect(cards[0].Term).To(Equal("Catalyst"))
		Expect(cards[1].Term).To(Equal("Entropy"))
		Expect(cards[2].Term).To(Equal("Mole"))
	})

	It("toggles each card independently", func() {
		Expect(flashcards.Start(ctx)).To(Succeed())

		revealed, err := flashcards.Toggle(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(revealed).To(BeTrue())

		cards := flashcards.Cards()
		Expect(cards[0].Revealed).To(BeFalse())
		Expect(cards[1].Revealed).To(BeTrue())
		Expect(cards[2].Revealed).To(BeFalse())

		revealed, err = flashcards.Toggle(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(revealed).To(BeFalse())
	})

	It("rejects out-of-range card indexes", func() {
		Expect(flashcards.Start(ctx)).To(Succeed())

		_, err := flashcards.Toggle(-1)
		Expect(err).To(HaveOccurred())
		_, err = flashcards.Toggle(3)
		Expect(err).To(HaveOccurred())
	})

	It("surfaces generation failure and installs nothing", func() {
		generator.err = fmt.Errorf("quota exceeded")
		Expect(flashcards.Start(ctx)).To(HaveOccurred())
		Expect(sess.Kind()).To(Equal(session.SetNone))
	})
})
