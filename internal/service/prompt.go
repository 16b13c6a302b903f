package service

import (
	"fmt"
	"strings"
)

// PromptMetadata tells downstream consumers how the prompt was assembled,
// in particular whether statement text was truncated and results may be
// incomplete.
type PromptMetadata struct {
	Truncated      bool
	StatementChars int
	PromptChars    int
}

const extractionSchema = `Return ONLY a valid JSON object with these fields (use null if not found):

{
  "card_issuer": "Bank/issuer name (Chase, Amex, Citi, etc.)",
  "card_variant": "Card type (Platinum, Gold, Rewards, etc.)",
  "card_last_4": "Last 4 digits",
  "billing_cycle_start": "Start date",
  "billing_cycle_end": "End date",
  "payment_due_date": "Due date in YYYY-MM-DD",
  "total_balance": "Total amount due (number only)",
  "minimum_payment": "Minimum payment (number only)",
  "previous_balance": "Previous balance (number only)",
  "new_charges": "New charges amount (number only)",
  "credit_limit": "Credit limit (number only)",
  "available_credit": "Available credit (number only)",
  "transactions": [
    {
      "date": "MM/DD/YYYY",
      "description": "Transaction description",
      "amount": "Amount (number, negative for credits)"
    }
  ]
}

Instructions:
- Extract ALL transactions you can find
- Convert amounts to numbers (remove $ and commas)
- Use null for missing data
- Return ONLY valid JSON, without markdown fences or commentary`

// BuildExtractionPrompt assembles the model prompt from per-page statement
// text. Pages are joined with page markers so the model can see document
// structure. Text beyond maxChars is cut deterministically (first maxChars
// characters kept) and flagged in the returned metadata.
func BuildExtractionPrompt(pages []string, maxChars int) (string, PromptMetadata) {
	text, meta := statementText(pages, maxChars)

	prompt := fmt.Sprintf(`Analyze this credit card statement and extract key information.

%s

STATEMENT TEXT:
%s`, extractionSchema, text)

	meta.PromptChars = len(prompt)
	return prompt, meta
}

// BuildStrictRetryPrompt is the single-retry re-prompt used when the first
// model response could not be decoded.
func BuildStrictRetryPrompt(pages []string, maxChars int) (string, PromptMetadata) {
	text, meta := statementText(pages, maxChars)

	prompt := fmt.Sprintf(`Your previous answer was not valid JSON and could not be parsed.

Analyze this credit card statement again. Respond with a single valid JSON object and nothing else: no markdown fences, no commentary, no text before or after the JSON.

%s

STATEMENT TEXT:
%s`, extractionSchema, text)

	meta.PromptChars = len(prompt)
	return prompt, meta
}

func statementText(pages []string, maxChars int) (string, PromptMetadata) {
	var b strings.Builder
	for i, page := range pages {
		if page == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- Page %d ---\n%s", i+1, page)
	}

	text := b.String()
	meta := PromptMetadata{StatementChars: len(text)}

	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
		meta.Truncated = true
	}

	return text, meta
}
