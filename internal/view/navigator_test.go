package view_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/studykit/internal/session"
	"github.com/kpauljoseph/studykit/internal/view"
	"github.com/kpauljoseph/studykit/pkg/logger"
	"github.com/kpauljoseph/studykit/pkg/models"
)

func navigatorTestLogger() *logger.Logger {
	return logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[view-test] "),
		logger.WithFlags(0),
	)
}

func installQuiz(sess *session.Session) {
	tok, err := sess.Begin()
	Expect(err).NotTo(HaveOccurred())
	defer sess.End(tok)
	Expect(sess.InstallQuiz(tok, []models.QuizItem{
		{
			Prompt:        "Water boils at 100C at sea level.",
			Kind:          models.KindTrueFalse,
			Options:       []string{"True", "False"},
			CorrectAnswer: "True",
		},
	})).To(BeTrue())
}

func installSubjective(sess *session.Session) {
	tok, err := sess.Begin()
	Expect(err).NotTo(HaveOccurred())
	defer sess.End(tok)
	Expect(sess.InstallSubjective(tok, []models.SubjectiveItem{
		{Prompt: "Explain the water cycle."},
	})).To(BeTrue())
}

func installFlashcards(sess *session.Session) {
	tok, err := sess.Begin()
	Expect(err).NotTo(HaveOccurred())
	defer sess.End(tok)
	Expect(sess.InstallFlashcards(tok, []models.FlashcardItem{
		{Term: "Evaporation", Definition: "Liquid water becoming vapor."},
	})).To(BeTrue())
}

var _ = Describe("Navigator", func() {
	var (
		sess *session.Session
		nav  *view.Navigator
	)

	BeforeEach(func() {
		sess = session.New()
		nav = view.NewNavigator(sess, navigatorTestLogger())
	})

	It("starts at the upload view", func() {
		Expect(nav.Current()).To(Equal(view.Upload))
	})

	Describe("completing upload", func() {
		It("refuses to leave upload without an extracted document", func() {
			Expect(nav.CompleteUpload()).To(HaveOccurred())
			Expect(nav.Current()).To(Equal(view.Upload))
		})

		It("moves to mode-select once a document exists", func() {
			sess.SetDocument("geography notes")
			Expect(nav.CompleteUpload()).To(Succeed())
			Expect(nav.Current()).To(Equal(view.ModeSelect))
		})

		It("cannot be completed twice", func() {
			sess.SetDocument("geography notes")
			Expect(nav.CompleteUpload()).To(Succeed())
			Expect(nav.CompleteUpload()).To(HaveOccurred())
		})
	})

	Describe("entering a mode", func() {
		BeforeEach(func() {
			sess.SetDocument("geography notes")
			Expect(nav.CompleteUpload()).To(Succeed())
		})

		DescribeTable("requires the matching item set",
			func(target view.View, install func(*session.Session)) {
				Expect(nav.EnterMode(target)).To(HaveOccurred())
				Expect(nav.Current()).To(Equal(view.ModeSelect))

				install(sess)
				Expect(nav.EnterMode(target)).To(Succeed())
				Expect(nav.Current()).To(Equal(target))
			},
			Entry("quiz", view.Quiz, installQuiz),
			Entry("subjective", view.Subjective, installSubjective),
			Entry("flashcards", view.Flashcard, installFlashcards),
		)

		It("rejects a mismatched item set", func() {
			installQuiz(sess)
			Expect(nav.EnterMode(view.Subjective)).To(HaveOccurred())
			Expect(nav.Current()).To(Equal(view.ModeSelect))
		})

		It("rejects non-mode targets", func() {
			Expect(nav.EnterMode(view.Upload)).To(HaveOccurred())
			Expect(nav.EnterMode(view.ModeSelect)).To(HaveOccurred())
		})

		It("cannot be entered from a mode view", func() {
			installQuiz(sess)
			Expect(nav.EnterMode(view.Quiz)).To(Succeed())
			Expect(nav.EnterMode(view.Quiz)).To(HaveOccurred())
		})
	})

	Describe("going back", func() {
		BeforeEach(func() {
			sess.SetDocument("geography notes")
			Expect(nav.CompleteUpload()).To(Succeed())
		})

		It("stays put at the upload view", func() {
			fresh := view.NewNavigator(session.New(), navigatorTestLogger())
			Expect(fresh.Back()).To(Equal(view.Upload))
		})

		DescribeTable("returns to mode-select and discards the item set",
			func(target view.View, install func(*session.Session)) {
				install(sess)
				Expect(nav.EnterMode(target)).To(Succeed())
				sess.Advance()

				Expect(nav.Back()).To(Equal(view.ModeSelect))
				Expect(sess.Kind()).To(Equal(session.SetNone))
				Expect(sess.Index()).To(BeZero())
			},
			Entry("from quiz", view.Quiz, installQuiz),
			Entry("from subjective", view.Subjective, installSubjective),
			Entry("from flashcards", view.Flashcard, installFlashcards),
		)

		It("keeps the document so a new mode can be generated", func() {
			installQuiz(sess)
			Expect(nav.EnterMode(view.Quiz)).To(Succeed())
			nav.Back()

			Expect(sess.HasDocument()).To(BeTrue())
			installFlashcards(sess)
			Expect(nav.EnterMode(view.Flashcard)).To(Succeed())
		})
	})
})
