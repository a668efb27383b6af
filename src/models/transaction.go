package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
	Time        string          `json:"time"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateTransactionRequest is the raw create payload. Amount stays raw JSON
// because clients send it either as a string ("50.5") or a number (50.5).
type CreateTransactionRequest struct {
	UserID      string          `json:"userId"`
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
}

// MonthlyBucket holds one month's income and expense totals for the chart.
type MonthlyBucket struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
