package service

import (
	"encoding/json"
	"strings"
	"testing"

	"cardsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() models.StatementRecord {
	issuer := "Chase"
	lastFour := "1234"
	balance := decimal.RequireFromString("1234.56")

	record := models.StatementRecord{
		Card: models.CardInfo{
			Issuer:   &issuer,
			LastFour: &lastFour,
		},
		Billing: models.BillingInfo{
			TotalBalance: &balance,
		},
		Transactions: []models.TransactionRecord{
			{Date: "2024-03-14", Description: "COFFEE SHOP", Amount: decimal.RequireFromString("4.75")},
			{Date: "2024-03-02", Description: "PAYMENT RECEIVED", Amount: decimal.RequireFromString("-200")},
		},
	}
	record.RecomputeSummary()
	return record
}

func TestMarshalStatementJSONStableSchema(t *testing.T) {
	record := testRecord()

	data, err := MarshalStatementJSON(&record)
	require.NoError(t, err)

	out := string(data)
	// Top-level schema keys are always present.
	for _, key := range []string{`"card"`, `"billing"`, `"transactions"`, `"summary"`} {
		assert.Contains(t, out, key)
	}
	// Absent fields serialize as null, never disappearing.
	assert.Contains(t, out, `"card_type": null`)
	assert.Contains(t, out, `"credit_limit": null`)
	// Amounts are JSON numbers, not strings.
	assert.Contains(t, out, `"amount": 4.75`)
	assert.Contains(t, out, `"total_balance": 1234.56`)
}

func TestStatementJSONRoundTrip(t *testing.T) {
	record := testRecord()

	data, err := MarshalStatementJSON(&record)
	require.NoError(t, err)

	var decoded models.StatementRecord
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Transactions, len(record.Transactions))
	for i, tx := range record.Transactions {
		assert.Equal(t, tx.Date, decoded.Transactions[i].Date)
		assert.Equal(t, tx.Description, decoded.Transactions[i].Description)
		assert.True(t, tx.Amount.Equal(decoded.Transactions[i].Amount))
	}

	require.NotNil(t, decoded.Card.Issuer)
	assert.Equal(t, "Chase", *decoded.Card.Issuer)
	assert.Nil(t, decoded.Card.CardType)
	assert.Equal(t, record.Summary.Count, decoded.Summary.Count)
	assert.True(t, record.Summary.TotalSpent.Equal(decoded.Summary.TotalSpent))
}

func TestMarshalTransactionsCSV(t *testing.T) {
	record := testRecord()

	data, err := MarshalTransactionsCSV(&record)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "date,description,amount", lines[0])
	assert.Equal(t, "2024-03-14,COFFEE SHOP,4.75", lines[1])
	assert.Equal(t, "2024-03-02,PAYMENT RECEIVED,-200", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "total_spent,total_credits,average,count", lines[4])
	assert.Equal(t, "4.75,200.00,4.75,2", lines[5])
}

func TestMarshalTransactionsCSVEmpty(t *testing.T) {
	record := models.StatementRecord{Transactions: []models.TransactionRecord{}}
	record.RecomputeSummary()

	data, err := MarshalTransactionsCSV(&record)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "date,description,amount")
	assert.Contains(t, out, "total_spent,total_credits,average,count")
	assert.Contains(t, out, "0.00,0.00,0.00,0")
}
