package service

import (
	"context"
	"fmt"
	"time"

	"cardsight/internal/models"
	"cardsight/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatementService runs the whole pipeline for one uploaded statement:
// extract text -> build prompt -> call the model -> decode and validate ->
// stash the result in the session store. Everything is synchronous; one
// document is processed end-to-end per request.
type StatementService struct {
	extractor      *ExtractService
	parser         *ParserService
	model          ModelClient
	store          *repository.SessionStore
	maxPromptChars int
	logger         *zap.Logger
}

func NewStatementService(
	extractor *ExtractService,
	parser *ParserService,
	model ModelClient,
	store *repository.SessionStore,
	maxPromptChars int,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		extractor:      extractor,
		parser:         parser,
		model:          model,
		store:          store,
		maxPromptChars: maxPromptChars,
		logger:         logger,
	}
}

// ParseStatement processes one uploaded PDF. The document bytes are only
// needed for extraction and are released when this function returns. On a
// decode failure the model is re-prompted once with a stricter instruction;
// a second failure aborts with models.ErrExtractionFailed.
func (s *StatementService) ParseStatement(ctx context.Context, data []byte, fileName string) (*models.ParsedStatement, error) {
	extracted, err := s.extractor.ExtractPages(data)
	if err != nil {
		return nil, err
	}

	prompt, meta := BuildExtractionPrompt(extracted.Pages, s.maxPromptChars)
	if meta.Truncated {
		s.logger.Warn("Statement text truncated for prompt",
			zap.String("file", fileName),
			zap.Int("statement_chars", meta.StatementChars),
			zap.Int("max_chars", s.maxPromptChars),
		)
	}

	content, err := s.model.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	raw, decodeErr := s.parser.Decode(content)
	if decodeErr != nil {
		s.logger.Warn("Model response undecodable, retrying with strict prompt",
			zap.String("file", fileName),
			zap.Error(decodeErr),
		)

		retryPrompt, _ := BuildStrictRetryPrompt(extracted.Pages, s.maxPromptChars)
		content, err = s.model.Generate(ctx, retryPrompt)
		if err != nil {
			return nil, fmt.Errorf("model retry failed: %w", err)
		}

		raw, decodeErr = s.parser.Decode(content)
		if decodeErr != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrExtractionFailed, decodeErr)
		}
	}

	record, report := s.parser.Validate(raw)

	st := &models.ParsedStatement{
		ID:        uuid.New(),
		FileName:  fileName,
		FileSize:  int64(len(data)),
		PageCount: extracted.PageCount,
		Truncated: meta.Truncated,
		Record:    record,
		Report:    report,
		CreatedAt: time.Now(),
	}
	s.store.Put(st)

	s.logger.Info("Statement parsed",
		zap.String("id", st.ID.String()),
		zap.String("file", fileName),
		zap.Int("transactions", len(record.Transactions)),
		zap.Int("warnings", len(report.Entries)),
	)

	return st, nil
}

// GetStatement fetches a previously parsed result while the session lives.
func (s *StatementService) GetStatement(id uuid.UUID) (*models.ParsedStatement, error) {
	return s.store.Get(id)
}

// DeleteStatement discards a session result before its TTL expires.
func (s *StatementService) DeleteStatement(id uuid.UUID) error {
	return s.store.Delete(id)
}
