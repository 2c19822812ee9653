package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency id 1 is the reference currency (AED); every other currency
// must resolve a rate to it.
type Currency struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ExchangeRate stores the conversion rate from a currency to the
// reference currency as of an effective date. Multiple historical rows
// may exist per pair; the most recent active one is authoritative.
type ExchangeRate struct {
	ID             int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	FromCurrencyID int64           `json:"from_currency_id" gorm:"not null;index" validate:"required"`
	ToCurrencyID   int64           `json:"to_currency_id" gorm:"not null;index" validate:"required"`
	Rate           decimal.Decimal `json:"rate" gorm:"not null;type:numeric(18,6)" validate:"required"`
	EffectiveDate  time.Time       `json:"effective_date" gorm:"not null;index" validate:"required"`
	IsActive       bool            `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
}
