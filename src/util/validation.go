package util

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack-server/src/models"
)

// ValidationError marks client-supplied data that fails a precondition.
// Handlers map it to a 400 response; everything else is a 500.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// ValidateCreateTransaction checks a create payload and builds the transaction
// to persist. Checks run in a fixed order: required fields, amount, type, date.
// No side effects happen before this returns nil error.
func ValidateCreateTransaction(req models.CreateTransactionRequest, now time.Time) (*models.Transaction, error) {
	required := []struct {
		name  string
		empty bool
	}{
		{"userId", strings.TrimSpace(req.UserID) == ""},
		{"amount", len(req.Amount) == 0 || string(req.Amount) == "null"},
		{"description", strings.TrimSpace(req.Description) == ""},
		{"category", strings.TrimSpace(req.Category) == ""},
		{"type", req.Type == ""},
		{"date", req.Date == ""},
	}
	for _, f := range required {
		if f.empty {
			return nil, NewValidationError("missing required field: " + f.name)
		}
	}

	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		return nil, NewValidationError("invalid type")
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	txnTime := req.Time
	if txnTime == "" {
		txnTime = now.Format("15:04")
	}

	return &models.Transaction{
		UserID:      req.UserID,
		Amount:      amount,
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Type:        req.Type,
		Date:        date,
		Time:        txnTime,
	}, nil
}

// ParseAmount coerces a raw JSON amount (string or number) into a decimal
// strictly greater than zero.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	var amount decimal.Decimal
	if err := json.Unmarshal(raw, &amount); err != nil {
		return decimal.Zero, NewValidationError("invalid amount")
	}
	if !amount.IsPositive() {
		return decimal.Zero, NewValidationError("invalid amount")
	}
	return amount, nil
}

// ParseDate accepts the form's plain date or a full RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", value); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, value); err == nil {
		return d, nil
	}
	return time.Time{}, NewValidationError("invalid date")
}
