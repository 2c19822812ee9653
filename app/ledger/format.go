package ledger

import (
	"time"

	"github.com/matti7866/api-sub001/app/models"
)

// TransactionView is the external shape of one report row. Amounts are
// presented in the source currency; direction decides which of the
// credit/debit columns is filled.
type TransactionView struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	AccountName  string `json:"account_name"`
	Credit       string `json:"credit"`
	Debit        string `json:"debit"`
	CurrencyInfo string `json:"currency_info"`
	Remarks      string `json:"remarks"`
	ReferenceID  *int64 `json:"reference_id,omitempty"`
	StaffName    string `json:"staff_name"`
	Description  string `json:"description"`
}

type SummaryView struct {
	TotalCredits   string `json:"total_credits"`
	TotalDebits    string `json:"total_debits"`
	TotalTransfers string `json:"total_transfers"`
	NetBalance     string `json:"net_balance"`
}

type MetaView struct {
	FromDate         string `json:"from_date"`
	ToDate           string `json:"to_date"`
	AccountFilter    *int64 `json:"account_filter"`
	TypeFilter       string `json:"type_filter"`
	ResetDate        string `json:"reset_date"`
	FromDateAdjusted bool   `json:"from_date_adjusted"`
	TotalCount       int    `json:"total_count"`
	Timestamp        string `json:"timestamp"`
}

type ReportResponse struct {
	Success      bool              `json:"success"`
	Transactions []TransactionView `json:"transactions"`
	Summary      SummaryView       `json:"summary"`
	Meta         MetaView          `json:"meta"`
}

// FormatReport maps an aggregated report onto the external JSON
// contract using the lookup maps preloaded by the aggregator.
func FormatReport(rep *Report, referenceCurrencyName string) *ReportResponse {
	views := make([]TransactionView, 0, len(rep.Transactions))
	for _, t := range rep.Transactions {
		views = append(views, formatTransaction(t, rep.AccountNames, rep.CurrencyNames, referenceCurrencyName))
	}

	suffix := " " + referenceCurrencyName
	return &ReportResponse{
		Success:      true,
		Transactions: views,
		Summary: SummaryView{
			TotalCredits:   rep.Summary.TotalCredits.StringFixed(2) + suffix,
			TotalDebits:    rep.Summary.TotalDebits.StringFixed(2) + suffix,
			TotalTransfers: rep.Summary.TotalTransfers.StringFixed(2) + suffix,
			NetBalance:     rep.Summary.NetBalance.StringFixed(2) + suffix,
		},
		Meta: MetaView{
			FromDate:         rep.Meta.FromDate.Format("2006-01-02"),
			ToDate:           rep.Meta.ToDate.Format("2006-01-02"),
			AccountFilter:    rep.Meta.AccountID,
			TypeFilter:       rep.Meta.TypeFilter,
			ResetDate:        rep.Meta.ResetDate.Format("2006-01-02"),
			FromDateAdjusted: rep.Meta.FromDateAdjusted,
			TotalCount:       rep.Meta.TotalCount,
			Timestamp:        rep.Meta.GeneratedAt.Format(time.RFC3339),
		},
	}
}

func formatTransaction(t models.Transaction, accountNames, currencyNames map[int64]string, referenceCurrencyName string) TransactionView {
	view := TransactionView{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		Type:        t.Kind,
		Category:    string(t.Category),
		AccountName: "Unknown Account",
		Remarks:     t.Remarks,
		ReferenceID: t.ReferenceID,
		StaffName:   t.StaffName,
		Description: t.Description,
	}

	if t.AccountID != nil {
		if name, ok := accountNames[*t.AccountID]; ok {
			view.AccountName = name
		}
	}

	amount := t.Amount.StringFixed(2)
	switch t.Category {
	case models.CategoryCredit:
		view.Credit = amount
	case models.CategoryDebit:
		view.Debit = amount
	case models.CategoryTransfer:
		// Transfer In reads as money arriving, Transfer Out as leaving
		if t.Kind == "Transfer In" {
			view.Credit = amount
		} else {
			view.Debit = amount
		}
	}

	currencyName := currencyNames[t.CurrencyID]
	if currencyName != "" && currencyName != referenceCurrencyName {
		view.CurrencyInfo = "Originally in " + currencyName
	}

	return view
}
