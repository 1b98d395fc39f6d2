package controller_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/studykit/internal/controller"
	"github.com/kpauljoseph/studykit/internal/session"
	"github.com/kpauljoseph/studykit/pkg/logger"
	"github.com/kpauljoseph/studykit/pkg/models"
)

func controllerTestLogger() *logger.Logger {
	return logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[controller-test] "),
		logger.WithFlags(0),
	)
}

func twoQuestionQuiz() []models.QuizItem {
	return []models.QuizItem{
		{
			Prompt:        "Mitochondria produce ATP.",
			Kind:          models.KindTrueFalse,
			Options:       []string{"True", "False"},
			CorrectAnswer: "True",
		},
		{
			Prompt:        "Which organelle holds DNA?",
			Kind:          models.KindMultipleChoice,
			Options:       []string{"Nucleus", "Ribosome", "Lysosome", "Vacuole"},
			CorrectAnswer: "Nucleus",
			Explanation:   "Chromosomes live in the nucleus.",
		},
	}
}

var _ = Describe("Quiz controller", func() {
	var (
		sess      *session.Session
		generator *fakeGenerator
		quiz      *controller.QuizController
		ctx       context.Context
	)

	BeforeEach(func() {
		sess = session.New()
		sess.SetDocument("cell biology notes")
		generator = &fakeGenerator{quizItems: twoQuestionQuiz()}
		quiz = controller.NewQuizController(sess, generator, controllerTestLogger())
		ctx = context.Background()
	})

	It("installs a generated quiz and starts awaiting an answer", func() {
		Expect(quiz.Start(ctx)).To(Succeed())
		Expect(quiz.State()).To(Equal(controller.QuizAwaitingAnswer))

		item, i := quiz.Current()
		Expect(i).To(BeZero())
		Expect(item.Prompt).To(Equal("Mitochondria produce ATP."))
	})

	It("surfaces generation failure and installs nothing", func() {
		generator.err = fmt.Errorf("model overloaded")
		Expect(quiz.Start(ctx)).To(HaveOccurred())
		Expect(sess.Kind()).To(Equal(session.SetNone))
	})

	It("refuses to start while another request is in flight", func() {
		tok, err := sess.Begin()
		Expect(err).NotTo(HaveOccurred())
		defer sess.End(tok)

		Expect(errors.Is(quiz.Start(ctx), session.ErrBusy)).To(BeTrue())
		Expect(generator.quizCalls).To(BeZero())
	})

	It("discards a quiz that finishes after the session moved on", func() {
		generator.onGenerate = func() {
			sess.SetDocument("a different document")
		}

		Expect(errors.Is(quiz.Start(ctx), controller.ErrStale)).To(BeTrue())
		Expect(sess.Kind()).To(Equal(session.SetNone))
	})

	Context("answering", func() {
		BeforeEach(func() {
			Expect(quiz.Start(ctx)).To(Succeed())
		})

		It("scores a correct first selection", func() {
			sel, ok := quiz.Select("True")
			Expect(ok).To(BeTrue())
			Expect(sel.Correct).To(BeTrue())

			score, total := quiz.Score()
			Expect(score).To(Equal(1))
			Expect(total).To(Equal(2))
			Expect(quiz.State()).To(Equal(controller.QuizAnswered))
		})

		It("compares selections case-insensitively", func() {
			sel, ok := quiz.Select("true")
			Expect(ok).To(BeTrue())
			Expect(sel.Correct).To(BeTrue())
		})

		It("reveals the correct answer on a wrong selection", func() {
			sel, ok := quiz.Select("False")
			Expect(ok).To(BeTrue())
			Expect(sel.Correct).To(BeFalse())
			Expect(sel.CorrectAnswer).To(Equal("True"))

			score, _ := quiz.Score()
			Expect(score).To(BeZero())
		})

		It("makes the first selection final", func() {
			_, ok := quiz.Select("False")
			Expect(ok).To(BeTrue())

			// Further selections are no-ops: no state change, no score change.
			_, ok = quiz.Select("True")
			Expect(ok).To(BeFalse())

			score, _ := quiz.Score()
			Expect(score).To(BeZero())
			Expect(quiz.State()).To(Equal(controller.QuizAnswered))
		})

		It("ignores Next before the question is answered", func() {
			Expect(quiz.Next()).To(Equal(controller.QuizAwaitingAnswer))
			_, i := quiz.Current()
			Expect(i).To(BeZero())
		})

		It("walks through every question to completion", func() {
			_, ok := quiz.Select("True")
			Expect(ok).To(BeTrue())
			Expect(quiz.Next()).To(Equal(controller.QuizAwaitingAnswer))

			item, i := quiz.Current()
			Expect(i).To(Equal(1))
			Expect(item.CorrectAnswer).To(Equal("Nucleus"))

			_, ok = quiz.Select("Ribosome")
			Expect(ok).To(BeTrue())
			Expect(quiz.Next()).To(Equal(controller.QuizComplete))

			score, total := quiz.Score()
			Expect(score).To(Equal(1))
			Expect(total).To(Equal(2))
		})
	})

	Context("restarting", func() {
		It("generates a fresh quiz and resets score and position", func() {
			Expect(quiz.Start(ctx)).To(Succeed())

			_, ok := quiz.Select("True")
			Expect(ok).To(BeTrue())
			quiz.Next()
			_, ok = quiz.Select("Nucleus")
			Expect(ok).To(BeTrue())
			quiz.Next()
			Expect(quiz.State()).To(Equal(controller.QuizComplete))

			Expect(quiz.Restart(ctx)).To(Succeed())
			Expect(generator.quizCalls).To(Equal(2))
			Expect(quiz.State()).To(Equal(controller.QuizAwaitingAnswer))

			score, _ := quiz.Score()
			Expect(score).To(BeZero())
			_, i := quiz.Current()
			Expect(i).To(BeZero())
		})
	})
})
