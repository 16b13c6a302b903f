package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cardsight/internal/models"
	"cardsight/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeModel struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func (f *fakeModel) Close() error { return nil }

// minimalPDF builds a valid one-page PDF containing the given text, with a
// correct xref table, so extraction tests need no fixture files.
func minimalPDF(text string) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 6)

	buf.WriteString("%PDF-1.4\n")
	write := func(n int, s string) {
		offsets[n] = buf.Len()
		buf.WriteString(s)
	}

	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	write(1, "1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	write(2, "2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	write(3, "3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")
	write(4, fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))
	write(5, "5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefPos := buf.Len()
	buf.WriteString("xref\n0 6\n")
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefPos)

	return buf.Bytes()
}

func newTestPipeline(t *testing.T, model ModelClient, maxPromptChars int) (*StatementService, *repository.SessionStore) {
	t.Helper()
	logger := zap.NewNop()
	store := repository.NewSessionStore(time.Minute, logger)
	t.Cleanup(store.Close)

	svc := NewStatementService(
		NewExtractService(logger),
		NewParserService(logger),
		model,
		store,
		maxPromptChars,
		logger,
	)
	return svc, store
}

func TestParseStatementPipeline(t *testing.T) {
	model := &fakeModel{responses: []string{sampleResponse}}
	svc, store := newTestPipeline(t, model, 20000)

	pdf := minimalPDF("03/14/2024  COFFEE SHOP  $4.75")
	st, err := svc.ParseStatement(context.Background(), pdf, "statement.pdf")
	require.NoError(t, err)

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, "statement.pdf", st.FileName)
	assert.Equal(t, 1, st.PageCount)
	assert.False(t, st.Truncated)

	require.NotNil(t, st.Record.Card.Issuer)
	assert.Equal(t, "Chase", *st.Record.Card.Issuer)
	assert.Len(t, st.Record.Transactions, 3)

	// The result is retrievable from the session store.
	got, err := store.Get(st.ID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)
}

func TestParseStatementRetriesOnceOnDecodeFailure(t *testing.T) {
	model := &fakeModel{responses: []string{"sorry, I cannot help with that", sampleResponse}}
	svc, _ := newTestPipeline(t, model, 20000)

	st, err := svc.ParseStatement(context.Background(), minimalPDF("some statement"), "statement.pdf")
	require.NoError(t, err)

	assert.Equal(t, 2, model.calls)
	assert.Len(t, st.Record.Transactions, 3)
}

func TestParseStatementExtractionFailed(t *testing.T) {
	model := &fakeModel{responses: []string{"no json here", "still no json"}}
	svc, _ := newTestPipeline(t, model, 20000)

	_, err := svc.ParseStatement(context.Background(), minimalPDF("some statement"), "statement.pdf")
	require.Error(t, err)

	assert.ErrorIs(t, err, models.ErrExtractionFailed)
	// The retry budget is exactly one: two calls total, never more.
	assert.Equal(t, 2, model.calls)
}

func TestParseStatementUnreadableBeforeModelCall(t *testing.T) {
	model := &fakeModel{responses: []string{sampleResponse}}
	svc, _ := newTestPipeline(t, model, 20000)

	_, err := svc.ParseStatement(context.Background(), []byte("this is not a pdf"), "broken.pdf")
	require.Error(t, err)

	assert.ErrorIs(t, err, models.ErrDocumentUnreadable)
	assert.Equal(t, 0, model.calls, "no network call may happen for an unreadable document")
}

func TestParseStatementMissingAPIKey(t *testing.T) {
	model := &fakeModel{err: models.ErrConfigurationMissing}
	svc, _ := newTestPipeline(t, model, 20000)

	_, err := svc.ParseStatement(context.Background(), minimalPDF("some statement"), "statement.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConfigurationMissing))
}

func TestParseStatementFlagsTruncation(t *testing.T) {
	model := &fakeModel{responses: []string{sampleResponse}}
	svc, _ := newTestPipeline(t, model, 10)

	st, err := svc.ParseStatement(context.Background(), minimalPDF("a considerably longer statement text"), "statement.pdf")
	require.NoError(t, err)

	assert.True(t, st.Truncated)
}
