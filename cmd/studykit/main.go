package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kpauljoseph/studykit/internal/config"
	"github.com/kpauljoseph/studykit/internal/controller"
	"github.com/kpauljoseph/studykit/internal/extract"
	"github.com/kpauljoseph/studykit/internal/gemini"
	"github.com/kpauljoseph/studykit/internal/gen"
	"github.com/kpauljoseph/studykit/internal/session"
	"github.com/kpauljoseph/studykit/internal/view"
	"github.com/kpauljoseph/studykit/pkg/logger"
	"github.com/kpauljoseph/studykit/pkg/version"
)

type app struct {
	log        *logger.Logger
	input      *bufio.Scanner
	extractor  *extract.Service
	sess       *session.Session
	nav        *view.Navigator
	quiz       *controller.QuizController
	subjective *controller.SubjectiveController
	flashcards *controller.FlashcardController

	pendingFiles []string
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(logger.WithPrefix("[studykit] "))
	log.SetVerbose(*verbose)
	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal("failed to load config: %v", err)
		}
		log.Debug("No config file at %s, using defaults", *configPath)
		cfg = config.Default()
	}

	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		log.Fatal("no API key found: set %s", cfg.APIKeyEnv)
	}

	ctx := context.Background()

	backend, err := gemini.NewClient(ctx, apiKey, cfg.Model, cfg.Temperature, log)
	if err != nil {
		log.Fatal("failed to initialize backend: %v", err)
	}
	defer backend.Close()

	generator := gen.NewService(backend, gen.Options{
		MinQuestions:    cfg.Quiz.MinQuestions,
		MaxQuestions:    cfg.Quiz.MaxQuestions,
		SubjectiveCount: cfg.SubjectiveCount,
	}, log)

	sess := session.New()

	a := &app{
		log:          log,
		input:        bufio.NewScanner(os.Stdin),
		extractor:    extract.NewService(backend, log),
		sess:         sess,
		nav:          view.NewNavigator(sess, log),
		quiz:         controller.NewQuizController(sess, generator, log),
		subjective:   controller.NewSubjectiveController(sess, generator, log),
		flashcards:   controller.NewFlashcardController(sess, generator, log),
		pendingFiles: flag.Args(),
	}

	fmt.Println(version.GetVersionInfo())
	a.run(ctx)
}

func (a *app) run(ctx context.Context) {
	for {
		switch a.nav.Current() {
		case view.Upload:
			if !a.uploadView(ctx) {
				return
			}
		case view.ModeSelect:
			if !a.modeSelectView(ctx) {
				return
			}
		case view.Quiz:
			a.quizView(ctx)
		case view.Subjective:
			a.subjectiveView(ctx)
		case view.Flashcard:
			a.flashcardView()
		}
	}
}

// uploadView collects file paths, extracts their text, and advances to mode
// selection. Returns false when the user quits.
func (a *app) uploadView(ctx context.Context) bool {
	if len(a.pendingFiles) == 0 {
		fmt.Println("\nEnter document paths (space separated), or q to quit:")
		line, ok := a.readLine("> ")
		if !ok || line == "q" {
			return false
		}
		a.pendingFiles = strings.Fields(line)
		if len(a.pendingFiles) == 0 {
			return true
		}
	}

	files, ok := a.loadFiles(a.pendingFiles)
	if !ok {
		// Unsupported or unreadable selection: discard and re-prompt.
		a.pendingFiles = nil
		return true
	}

	var (
		text string
		err  error
	)
	if len(files) == 1 {
		text, err = a.extractor.Extract(ctx, files[0])
	} else {
		text, err = a.extractor.ExtractAll(ctx, files)
	}
	if err != nil {
		fmt.Printf("Could not extract text: %v\n", err)
		if len(files) == 1 {
			// Single-file flow starts over; the multi-file list is kept for
			// correction.
			a.pendingFiles = nil
		}
		return true
	}

	a.pendingFiles = nil
	a.sess.SetDocument(text)
	if err := a.nav.CompleteUpload(); err != nil {
		fmt.Printf("Upload failed: %v\n", err)
		return true
	}

	fmt.Printf("Extracted %d characters of text.\n", len(text))
	return true
}

func (a *app) loadFiles(paths []string) ([]extract.File, bool) {
	var files []extract.File
	for _, path := range paths {
		mimeType := mimeTypeFor(path)
		if !extract.Supported(mimeType) {
			fmt.Printf("Unsupported file type: %s (use PDF, PNG, JPEG, WebP, or plain text)\n", path)
			return nil, false
		}

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("Could not read %s: %v\n", path, err)
			return nil, false
		}

		files = append(files, extract.File{
			Name:     filepath.Base(path),
			MIMEType: mimeType,
			Bytes:    data,
		})
	}
	return files, true
}

func (a *app) modeSelectView(ctx context.Context) bool {
	fmt.Println("\nChoose a study mode:")
	fmt.Println("  1) Quiz")
	fmt.Println("  2) Subjective questions")
	fmt.Println("  3) Flashcards")
	fmt.Println("  q) Quit")

	choice, ok := a.readLine("> ")
	if !ok || choice == "q" {
		return false
	}

	var (
		target view.View
		err    error
	)

	switch choice {
	case "1":
		target, err = view.Quiz, a.quiz.Start(ctx)
	case "2":
		target, err = view.Subjective, a.subjective.Start(ctx)
	case "3":
		target, err = view.Flashcard, a.flashcards.Start(ctx)
	default:
		return true
	}

	if err != nil {
		// Generation failure keeps the document: the user stays here and may
		// simply try again.
		if !errors.Is(err, controller.ErrStale) {
			fmt.Printf("Generation failed: %v\n", err)
		}
		return true
	}

	if err := a.nav.EnterMode(target); err != nil {
		fmt.Printf("Could not open %s: %v\n", target, err)
	}
	return true
}

func (a *app) quizView(ctx context.Context) {
	switch a.quiz.State() {
	case controller.QuizComplete:
		score, total := a.quiz.Score()
		fmt.Printf("\nQuiz complete! Final score: %d/%d\n", score, total)
		fmt.Println("  r) Restart with new questions")
		fmt.Println("  b) Back to mode select")
		choice, _ := a.readLine("> ")
		if choice == "r" {
			if err := a.quiz.Restart(ctx); err != nil && !errors.Is(err, controller.ErrStale) {
				fmt.Printf("Generation failed: %v\n", err)
				a.nav.Back()
			}
			return
		}
		a.nav.Back()

	case controller.QuizAwaitingAnswer:
		item, i := a.quiz.Current()
		_, total := a.quiz.Score()
		fmt.Printf("\nQuestion %d of %d: %s\n", i+1, total, item.Prompt)
		for n, opt := range item.Options {
			fmt.Printf("  %d) %s\n", n+1, opt)
		}
		fmt.Println("  b) Back to mode select")

		choice, ok := a.readLine("> ")
		if !ok || choice == "b" {
			a.nav.Back()
			return
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(item.Options) {
			fmt.Println("Pick an option number.")
			return
		}

		sel, answered := a.quiz.Select(item.Options[n-1])
		if !answered {
			return
		}
		if sel.Correct {
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Wrong. The correct answer is: %s\n", sel.CorrectAnswer)
		}
		if sel.Explanation != "" {
			fmt.Printf("Explanation: %s\n", sel.Explanation)
		}

	case controller.QuizAnswered:
		fmt.Println("  n) Next question   b) Back to mode select")
		choice, _ := a.readLine("> ")
		if choice == "b" {
			a.nav.Back()
			return
		}
		a.quiz.Next()
	}
}

func (a *app) subjectiveView(ctx context.Context) {
	switch a.subjective.State() {
	case controller.SubjectiveComplete:
		fmt.Println("\nAll questions answered. Nice work!")
		a.nav.Back()

	case controller.SubjectiveUnanswered:
		item, i := a.subjective.Current()
		fmt.Printf("\nQuestion %d: %s\n", i+1, item.Prompt)
		fmt.Println("Type your answer (or b to go back):")

		answer, ok := a.readLine("> ")
		if !ok || answer == "b" {
			a.nav.Back()
			return
		}

		grade, err := a.subjective.Submit(ctx, answer)
		switch {
		case errors.Is(err, controller.ErrBlankAnswer):
			fmt.Println("Please write an answer before submitting.")
		case errors.Is(err, controller.ErrStale):
			// Nothing applied; nothing to show.
		case err != nil:
			fmt.Printf("Grading failed: %v. Your answer was not graded, try again.\n", err)
		default:
			fmt.Printf("Score: %d/5\nFeedback: %s\n", grade.Score, grade.Feedback)
		}

	case controller.SubjectiveGraded:
		label := "Next"
		if a.subjective.IsLast() {
			label = "Finish"
		}
		fmt.Printf("  n) %s   b) Back to mode select\n", label)
		choice, _ := a.readLine("> ")
		if choice == "b" {
			a.nav.Back()
			return
		}
		a.subjective.Next()
	}
}

func (a *app) flashcardView() {
	cards := a.flashcards.Cards()
	fmt.Printf("\nFlashcards (%d cards). Enter a card number to flip it, b to go back.\n", len(cards))
	for i, card := range cards {
		if card.Revealed {
			fmt.Printf("  %2d) %s: %s\n", i+1, card.Term, card.Definition)
		} else {
			fmt.Printf("  %2d) %s\n", i+1, card.Term)
		}
	}

	choice, ok := a.readLine("> ")
	if !ok || choice == "b" {
		a.nav.Back()
		return
	}

	n, err := strconv.Atoi(choice)
	if err != nil {
		return
	}
	if _, err := a.flashcards.Toggle(n - 1); err != nil {
		fmt.Println("No such card.")
	}
}

func (a *app) readLine(prompt string) (string, bool) {
	fmt.Print(prompt)
	if !a.input.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.input.Text()), true
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	}
	return "application/octet-stream"
}
