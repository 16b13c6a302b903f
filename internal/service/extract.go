package service

import (
	"fmt"
	"strings"

	"cardsight/internal/models"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// ExtractResult holds the per-page text of one PDF. Pages keeps document
// order; consumers see exactly what the prompt builder will see.
type ExtractResult struct {
	Pages     []string
	PageCount int
}

type ExtractService struct {
	logger *zap.Logger
}

func NewExtractService(logger *zap.Logger) *ExtractService {
	return &ExtractService{logger: logger}
}

// ExtractPages extracts text from an in-memory PDF, one string per page.
// The input bytes are not retained past this call. An encrypted or corrupt
// document, or one with no extractable text at all, yields
// models.ErrDocumentUnreadable.
func (s *ExtractService) ExtractPages(data []byte) (*ExtractResult, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		s.logger.Warn("Failed to open PDF", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrDocumentUnreadable, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([]string, 0, pageCount)
	hasText := false

	for i := 0; i < pageCount; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.Error(err),
			)
			pages = append(pages, "")
			continue
		}

		pageText = strings.TrimSpace(pageText)
		if pageText != "" {
			hasText = true
		}
		pages = append(pages, pageText)
	}

	if !hasText {
		return nil, fmt.Errorf("%w: no text found in PDF", models.ErrDocumentUnreadable)
	}

	s.logger.Info("PDF text extracted",
		zap.Int("pages", pageCount),
		zap.Int("text_length", totalLength(pages)),
	)

	return &ExtractResult{Pages: pages, PageCount: pageCount}, nil
}

func totalLength(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(p)
	}
	return n
}
