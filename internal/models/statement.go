package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields serialize as JSON numbers, matching the export schema.
	decimal.MarshalJSONWithoutQuotes = true
}

// CardInfo identifies the card the statement belongs to. Fields the model
// could not find stay nil and serialize as null, never disappearing from
// the schema.
type CardInfo struct {
	Issuer   *string `json:"issuer"`
	CardType *string `json:"card_type"`
	LastFour *string `json:"last_four"`
}

// BillingInfo carries the billing-cycle fields of a statement. Dates are
// normalized to YYYY-MM-DD.
type BillingInfo struct {
	CycleStart      *string          `json:"cycle_start"`
	CycleEnd        *string          `json:"cycle_end"`
	PaymentDueDate  *string          `json:"payment_due_date"`
	TotalBalance    *decimal.Decimal `json:"total_balance"`
	MinimumPayment  *decimal.Decimal `json:"minimum_payment"`
	PreviousBalance *decimal.Decimal `json:"previous_balance"`
	NewCharges      *decimal.Decimal `json:"new_charges"`
	CreditLimit     *decimal.Decimal `json:"credit_limit"`
	AvailableCredit *decimal.Decimal `json:"available_credit"`
}

// TransactionRecord is a single statement line. Amount sign convention:
// positive = charge, negative = credit. Date holds YYYY-MM-DD when it
// parsed, or the raw extracted value when it did not (the validation
// report flags those).
type TransactionRecord struct {
	Date        string          `json:"date" csv:"date"`
	Description string          `json:"description" csv:"description"`
	Amount      decimal.Decimal `json:"amount" csv:"amount"`
}

// DerivedSummary is computed from the transaction list, never supplied by
// the model.
type DerivedSummary struct {
	TotalSpent   decimal.Decimal `json:"total_spent"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Average      decimal.Decimal `json:"average"`
	Count        int             `json:"count"`
}

// StatementRecord is the validated result of one parsed statement and the
// exact shape of the JSON export.
type StatementRecord struct {
	Card         CardInfo            `json:"card"`
	Billing      BillingInfo         `json:"billing"`
	Transactions []TransactionRecord `json:"transactions"`
	Summary      DerivedSummary      `json:"summary"`
}

// RecomputeSummary rebuilds Summary from Transactions. Total spent sums the
// charges, total credits is the absolute sum of credits, and the average is
// total spent over the number of charges (zero when there are none),
// rounded to two decimal places.
func (r *StatementRecord) RecomputeSummary() {
	var spent, credits decimal.Decimal
	charges := 0
	for _, tx := range r.Transactions {
		if tx.Amount.IsNegative() {
			credits = credits.Add(tx.Amount.Abs())
		} else {
			spent = spent.Add(tx.Amount)
			charges++
		}
	}

	average := decimal.Zero
	if charges > 0 {
		average = spent.DivRound(decimal.NewFromInt(int64(charges)), 2)
	}

	r.Summary = DerivedSummary{
		TotalSpent:   spent,
		TotalCredits: credits,
		Average:      average,
		Count:        len(r.Transactions),
	}
}

type ValidationAction string

const (
	ActionCoerced   ValidationAction = "coerced"
	ActionDefaulted ValidationAction = "defaulted"
	ActionRejected  ValidationAction = "rejected"
)

// ValidationEntry records one non-fatal cleaning decision made while
// validating a model response.
type ValidationEntry struct {
	Field  string           `json:"field"`
	Action ValidationAction `json:"action"`
	Detail string           `json:"detail"`
}

type ValidationReport struct {
	Entries []ValidationEntry `json:"entries"`
}

func (r *ValidationReport) Add(field string, action ValidationAction, detail string) {
	r.Entries = append(r.Entries, ValidationEntry{Field: field, Action: action, Detail: detail})
}

// ParsedStatement is the session-scoped parse result. It lives in the
// in-memory store until the session TTL expires; nothing is persisted.
type ParsedStatement struct {
	ID        uuid.UUID
	FileName  string
	FileSize  int64
	PageCount int
	Truncated bool
	Record    StatementRecord
	Report    ValidationReport
	CreatedAt time.Time
}
