package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// extractPDF pulls per-page text out of a PDF in page order and joins the
// pages with a blank line. A failure on any page aborts the whole
// extraction; there is no partial-document fallback.
func (s *Service) extractPDF(ctx context.Context, file File) (string, error) {
	// Sanity-check the document structure before handing it to fitz.
	pageCount, err := api.PageCount(bytes.NewReader(file.Bytes), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not a readable PDF: %v", ErrUnsupportedType, file.Name, err)
	}
	s.logger.Trace("%s: %d pages", file.Name, pageCount)

	doc, err := fitz.NewFromMemory(file.Bytes)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", file.Name, err)
	}
	defer doc.Close()

	var pages []string

	// Page numbers are zero indexed in the fitz package.
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		text, err := doc.Text(pageNum)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d of %s: %w", pageNum+1, file.Name, err)
		}

		pages = append(pages, strings.TrimSpace(text))
	}

	return strings.Join(pages, PageSeparator), nil
}
