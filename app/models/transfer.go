package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is an internal movement between two accounts. It surfaces in
// the transactions report as exactly two ledger entries: Transfer Out
// at the source account and Transfer In at the destination.
type Transfer struct {
	ID            int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	TransferDate  time.Time       `json:"transfer_date" gorm:"not null;index" validate:"required"`
	FromAccountID int64           `json:"from_account_id" gorm:"not null;index" validate:"required"`
	ToAccountID   int64           `json:"to_account_id" gorm:"not null;index" validate:"required"`
	Amount        decimal.Decimal `json:"amount" gorm:"not null;type:numeric(18,2)" validate:"required,gt=0"`
	Remarks       string          `json:"remarks,omitempty" gorm:"type:text"`
	AddedBy       *string         `json:"added_by,omitempty" gorm:"type:uuid"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
}
