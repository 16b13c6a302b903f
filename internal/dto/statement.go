package dto

import "cardsight/internal/models"

// StatementResponse is returned by the parse and get endpoints. The
// statement object uses the same {card, billing, transactions, summary}
// shape as the JSON export.
type StatementResponse struct {
	ID        string                   `json:"id"`
	FileName  string                   `json:"file_name"`
	FileSize  int64                    `json:"file_size"`
	PageCount int                      `json:"page_count"`
	Truncated bool                     `json:"truncated"`
	CreatedAt string                   `json:"created_at"`
	Statement models.StatementRecord   `json:"statement"`
	Report    []models.ValidationEntry `json:"validation_report"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
