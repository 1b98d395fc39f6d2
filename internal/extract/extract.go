// Package extract turns uploaded files into plain document text. PDFs are
// read page by page, images go through the generative backend's vision
// input, and plain text passes straight through.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kpauljoseph/studykit/pkg/logger"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyResult     = errors.New("no text could be extracted")
	ErrBackendFailure  = errors.New("extraction backend failure")
)

// PageSeparator joins extracted pages and batched files: one blank line.
const PageSeparator = "\n\n"

// File is an uploaded document: raw bytes plus the declared MIME type.
type File struct {
	Name     string
	MIMEType string
	Bytes    []byte
}

// ImageDescriber is the optical-extraction collaborator.
type ImageDescriber interface {
	DescribeImage(ctx context.Context, data []byte, format string, instruction string) (string, error)
}

const imageExtractionInstruction = "Extract all readable text from this image. " +
	"Preserve the structure and paragraph breaks of the original where possible. " +
	"Respond with the extracted text only, no commentary."

type Service struct {
	vision ImageDescriber
	logger *logger.Logger
}

func NewService(vision ImageDescriber, log *logger.Logger) *Service {
	return &Service{
		vision: vision,
		logger: log,
	}
}

// Extract returns the text content of a single file. Unrecognized MIME types
// are rejected locally before any backend call.
func (s *Service) Extract(ctx context.Context, file File) (string, error) {
	s.logger.Debug("Extracting %s (%s, %d bytes)", file.Name, file.MIMEType, len(file.Bytes))

	var (
		text string
		err  error
	)

	switch {
	case isPDF(file.MIMEType):
		text, err = s.extractPDF(ctx, file)
	case isImage(file.MIMEType):
		text, err = s.extractImage(ctx, file)
	case isPlainText(file.MIMEType):
		text = string(file.Bytes)
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, file.Name, file.MIMEType)
	}

	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyResult, file.Name)
	}

	return text, nil
}

// ExtractAll extracts every file concurrently and joins the successful
// results in the original input order. The batch fails only when every file
// fails or the joined text is blank; per-file failures are logged and
// skipped.
func (s *Service) ExtractAll(ctx context.Context, files []File) (string, error) {
	if len(files) == 0 {
		return "", ErrEmptyResult
	}

	texts := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)

	for i, file := range files {
		g.Go(func() error {
			text, err := s.Extract(gctx, file)
			if err != nil {
				s.logger.Warn("Skipping %s: %v", file.Name, err)
				return nil
			}
			texts[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}

	var parts []string
	for _, text := range texts {
		if text != "" {
			parts = append(parts, text)
		}
	}

	joined := strings.Join(parts, PageSeparator)
	if strings.TrimSpace(joined) == "" {
		return "", fmt.Errorf("%w: all %d files failed", ErrEmptyResult, len(files))
	}

	return joined, nil
}

func (s *Service) extractImage(ctx context.Context, file File) (string, error) {
	format := strings.TrimPrefix(file.MIMEType, "image/")

	text, err := s.vision.DescribeImage(ctx, file.Bytes, format, imageExtractionInstruction)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrBackendFailure, file.Name, err)
	}

	return text, nil
}

func isPDF(mimeType string) bool {
	return mimeType == "application/pdf"
}

func isImage(mimeType string) bool {
	switch mimeType {
	case "image/png", "image/jpeg", "image/webp":
		return true
	}
	return false
}

func isPlainText(mimeType string) bool {
	switch mimeType {
	case "text/plain", "text/markdown":
		return true
	}
	return false
}

// Supported reports whether a file of this MIME type can be extracted at
// all. The upload flow uses it to reject files before any work happens.
func Supported(mimeType string) bool {
	return isPDF(mimeType) || isImage(mimeType) || isPlainText(mimeType)
}
