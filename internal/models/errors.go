package models

import "errors"

var (
	// ErrDocumentUnreadable means the uploaded PDF is encrypted, corrupt,
	// or contains no extractable text. Surfaced before any model call.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrConfigurationMissing means no API key is configured for the
	// extraction model. Surfaced before any network call.
	ErrConfigurationMissing = errors.New("model API key missing")

	// ErrExtractionFailed means the model response could not be decoded
	// into a statement, even after the strict retry.
	ErrExtractionFailed = errors.New("extraction failed: no structured data returned")

	// ErrStatementNotFound means the requested parse result is not in the
	// session store (never existed, or its TTL expired).
	ErrStatementNotFound = errors.New("statement not found")
)
