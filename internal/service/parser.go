package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cardsight/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// rawStatement mirrors the flat JSON shape the extraction prompt asks the
// model for. Fields are loosely typed because the model may answer with
// numbers, strings, or null interchangeably; unknown extra fields are
// ignored.
type rawStatement struct {
	CardIssuer        any              `json:"card_issuer"`
	CardVariant       any              `json:"card_variant"`
	CardLast4         any              `json:"card_last_4"`
	BillingCycleStart any              `json:"billing_cycle_start"`
	BillingCycleEnd   any              `json:"billing_cycle_end"`
	PaymentDueDate    any              `json:"payment_due_date"`
	TotalBalance      any              `json:"total_balance"`
	MinimumPayment    any              `json:"minimum_payment"`
	PreviousBalance   any              `json:"previous_balance"`
	NewCharges        any              `json:"new_charges"`
	CreditLimit       any              `json:"credit_limit"`
	AvailableCredit   any              `json:"available_credit"`
	Transactions      []rawTransaction `json:"transactions"`
}

type rawTransaction struct {
	Date        any `json:"date"`
	Description any `json:"description"`
	Amount      any `json:"amount"`
}

// dateLayouts are the accepted input date formats, tried in order. The US
// layout wins over the day-first one when both could apply.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

// ParserService decodes raw model responses and cleans them into validated
// statement records. It is stateless: the same response always yields the
// same record and report.
type ParserService struct {
	logger *zap.Logger
}

func NewParserService(logger *zap.Logger) *ParserService {
	return &ParserService{logger: logger}
}

// Decode extracts the JSON object from a raw model response. Models tend to
// wrap answers in markdown fences or surround them with commentary, so the
// outermost {...} is sliced out before unmarshaling.
func (p *ParserService) Decode(content string) (*rawStatement, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var raw rawStatement
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &raw, nil
}

// Validate coerces a decoded response into a StatementRecord, accumulating
// every cleaning decision in the validation report. Individual field
// failures are absorbed (field nulled, entry recorded), never fatal.
func (p *ParserService) Validate(raw *rawStatement) (models.StatementRecord, models.ValidationReport) {
	var record models.StatementRecord
	var report models.ValidationReport

	record.Card = models.CardInfo{
		Issuer:   coerceText(raw.CardIssuer),
		CardType: coerceText(raw.CardVariant),
		LastFour: coerceLastFour(raw.CardLast4, &report),
	}
	if record.Card.Issuer == nil {
		report.Add("card.issuer", models.ActionDefaulted, "could not identify card issuer")
	}

	record.Billing = models.BillingInfo{
		CycleStart:      coerceDate("billing.cycle_start", raw.BillingCycleStart, &report),
		CycleEnd:        coerceDate("billing.cycle_end", raw.BillingCycleEnd, &report),
		PaymentDueDate:  coerceDate("billing.payment_due_date", raw.PaymentDueDate, &report),
		TotalBalance:    coerceAmount("billing.total_balance", raw.TotalBalance, &report),
		MinimumPayment:  coerceAmount("billing.minimum_payment", raw.MinimumPayment, &report),
		PreviousBalance: coerceAmount("billing.previous_balance", raw.PreviousBalance, &report),
		NewCharges:      coerceAmount("billing.new_charges", raw.NewCharges, &report),
		CreditLimit:     coerceAmount("billing.credit_limit", raw.CreditLimit, &report),
		AvailableCredit: coerceAmount("billing.available_credit", raw.AvailableCredit, &report),
	}
	if record.Billing.TotalBalance == nil {
		report.Add("billing.total_balance", models.ActionDefaulted, "could not find total balance")
	}

	record.Transactions = make([]models.TransactionRecord, 0, len(raw.Transactions))
	if raw.Transactions == nil {
		report.Add("transactions", models.ActionDefaulted, "no transactions array in model response")
	}

	for i, tx := range raw.Transactions {
		field := fmt.Sprintf("transactions[%d]", i)

		desc := coerceText(tx.Description)
		if desc == nil {
			report.Add(field, models.ActionRejected, "transaction without description dropped")
			continue
		}

		amount := coerceAmount(field+".amount", tx.Amount, &report)
		if amount == nil {
			report.Add(field, models.ActionRejected, "transaction without numeric amount dropped")
			continue
		}

		date := coerceDate(field+".date", tx.Date, &report)
		rec := models.TransactionRecord{
			Description: *desc,
			Amount:      *amount,
		}
		if date != nil {
			rec.Date = *date
		} else if rawDate := coerceText(tx.Date); rawDate != nil {
			// Invalid dates stay visible as extracted; the report entry
			// from coerceDate flags them.
			rec.Date = *rawDate
		}

		record.Transactions = append(record.Transactions, rec)
	}

	record.RecomputeSummary()
	return record, report
}

// coerceText returns a trimmed non-empty string, or nil.
func coerceText(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// coerceLastFour validates that the value contains exactly 4 digits once
// everything else is stripped. Anything else is rejected to null.
func coerceLastFour(v any, report *models.ValidationReport) *string {
	var s string
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		s = val
	case float64:
		s = fmt.Sprintf("%.0f", val)
	default:
		report.Add("card.last_four", models.ActionRejected, fmt.Sprintf("unexpected type %T", v))
		return nil
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() != 4 {
		report.Add("card.last_four", models.ActionRejected, fmt.Sprintf("not exactly 4 digits: %q", s))
		return nil
	}

	out := digits.String()
	return &out
}

// coerceAmount converts a currency value to a decimal. Strings are cleaned
// of symbols and separators; accounting-style parentheses become a negative
// sign. Non-numeric residue rejects the field (nulled, not fatal).
func coerceAmount(field string, v any, report *models.ValidationReport) *decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		d := decimal.NewFromFloat(val)
		return &d
	case string:
		cleaned := strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(strings.TrimSpace(val))
		if strings.Contains(cleaned, "(") && strings.Contains(cleaned, ")") {
			cleaned = "-" + strings.NewReplacer("(", "", ")", "").Replace(cleaned)
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			report.Add(field, models.ActionRejected, fmt.Sprintf("non-numeric amount: %q", val))
			return nil
		}
		report.Add(field, models.ActionCoerced, fmt.Sprintf("%q -> %s", val, d.String()))
		return &d
	default:
		report.Add(field, models.ActionRejected, fmt.Sprintf("unexpected type %T", v))
		return nil
	}
}

// coerceDate normalizes a date to YYYY-MM-DD, trying the accepted layouts
// in order. Unparseable values reject the field.
func coerceDate(field string, v any, report *models.ValidationReport) *string {
	s, ok := v.(string)
	if !ok {
		if v != nil {
			report.Add(field, models.ActionRejected, fmt.Sprintf("unexpected type %T", v))
		}
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			normalized := t.Format("2006-01-02")
			if normalized != s {
				report.Add(field, models.ActionCoerced, fmt.Sprintf("%q -> %s", s, normalized))
			}
			return &normalized
		}
	}

	report.Add(field, models.ActionRejected, fmt.Sprintf("unparseable date: %q", s))
	return nil
}
