package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category tells which side of the ledger a transaction sits on.
// Direction is always carried here, never by the sign of the amount.
type Category string

const (
	CategoryCredit   Category = "credit"
	CategoryDebit    Category = "debit"
	CategoryTransfer Category = "transfer"
)

// Transaction is the common shape every transaction source is
// normalized into for the accounts transactions report. It is
// transient: built per request, never stored.
type Transaction struct {
	ID          int64           `json:"id"`
	Date        time.Time       `json:"date"`
	Kind        string          `json:"type"`
	Category    Category        `json:"category"`
	AccountID   *int64          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"` // source currency, always >= 0
	CurrencyID  int64           `json:"currency_id"`
	Remarks     string          `json:"remarks,omitempty"`
	ReferenceID *int64          `json:"reference_id,omitempty"`
	StaffName   string          `json:"staff_name,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ReportFilter carries the effective filters for one report run.
// FromDate is clamped by the aggregator so it never precedes the
// reset date.
type ReportFilter struct {
	FromDate  time.Time
	ToDate    time.Time
	AccountID *int64
	Type      string // empty, a Category, or a source subtype tag
}
