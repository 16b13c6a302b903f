package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"cardsight/internal/models"

	"github.com/gocarina/gocsv"
)

// MarshalStatementJSON serializes the full record as the canonical
// {card, billing, transactions, summary} object. Absent fields come out as
// null rather than being omitted, so the schema is stable across documents.
func MarshalStatementJSON(record *models.StatementRecord) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize statement: %w", err)
	}
	return data, nil
}

// MarshalTransactionsCSV writes the flattened transaction table
// (date, description, amount), then a blank line and a summary block.
func MarshalTransactionsCSV(record *models.StatementRecord) ([]byte, error) {
	var buf bytes.Buffer

	txWriter := csv.NewWriter(&buf)
	if err := gocsv.MarshalCSV(&record.Transactions, gocsv.NewSafeCSVWriter(txWriter)); err != nil {
		return nil, fmt.Errorf("failed to serialize transactions: %w", err)
	}

	buf.WriteString("\n")

	sumWriter := csv.NewWriter(&buf)
	rows := [][]string{
		{"total_spent", "total_credits", "average", "count"},
		{
			record.Summary.TotalSpent.StringFixed(2),
			record.Summary.TotalCredits.StringFixed(2),
			record.Summary.Average.StringFixed(2),
			strconv.Itoa(record.Summary.Count),
		},
	}
	if err := sumWriter.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to serialize summary: %w", err)
	}

	return buf.Bytes(), nil
}
