package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/matti7866/api-sub001/app/models"
)

func TestFormatTransactionColumns(t *testing.T) {
	accountNames := map[int64]string{2: "Main Cash"}
	currencyNames := map[int64]string{1: "AED", 2: "USD"}

	cases := []struct {
		name       string
		txn        models.Transaction
		wantCredit string
		wantDebit  string
	}{
		{
			name:       "credit fills the credit column",
			txn:        models.Transaction{Category: models.CategoryCredit, Amount: dec("100"), CurrencyID: 1, AccountID: acct(2)},
			wantCredit: "100.00",
		},
		{
			name:      "debit fills the debit column",
			txn:       models.Transaction{Category: models.CategoryDebit, Amount: dec("40.5"), CurrencyID: 1, AccountID: acct(2)},
			wantDebit: "40.50",
		},
		{
			name:       "transfer in reads as credit",
			txn:        models.Transaction{Kind: "Transfer In", Category: models.CategoryTransfer, Amount: dec("25"), CurrencyID: 1, AccountID: acct(2)},
			wantCredit: "25.00",
		},
		{
			name:      "transfer out reads as debit",
			txn:       models.Transaction{Kind: "Transfer Out", Category: models.CategoryTransfer, Amount: dec("25"), CurrencyID: 1, AccountID: acct(2)},
			wantDebit: "25.00",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := formatTransaction(tc.txn, accountNames, currencyNames, "AED")
			if view.Credit != tc.wantCredit {
				t.Errorf("credit = %q, want %q", view.Credit, tc.wantCredit)
			}
			if view.Debit != tc.wantDebit {
				t.Errorf("debit = %q, want %q", view.Debit, tc.wantDebit)
			}
		})
	}
}

func TestFormatTransactionAccountAndCurrency(t *testing.T) {
	accountNames := map[int64]string{2: "Main Cash"}
	currencyNames := map[int64]string{1: "AED", 2: "USD"}

	known := formatTransaction(models.Transaction{Category: models.CategoryCredit, Amount: dec("10"), CurrencyID: 2, AccountID: acct(2)},
		accountNames, currencyNames, "AED")
	if known.AccountName != "Main Cash" {
		t.Errorf("account name = %q", known.AccountName)
	}
	if known.CurrencyInfo != "Originally in USD" {
		t.Errorf("currency info = %q", known.CurrencyInfo)
	}

	unknown := formatTransaction(models.Transaction{Category: models.CategoryCredit, Amount: dec("10"), CurrencyID: 1},
		accountNames, currencyNames, "AED")
	if unknown.AccountName != "Unknown Account" {
		t.Errorf("missing account should fall back, got %q", unknown.AccountName)
	}
	if unknown.CurrencyInfo != "" {
		t.Errorf("reference currency rows carry no currency info, got %q", unknown.CurrencyInfo)
	}
}

func TestFormatReport(t *testing.T) {
	rep := &Report{
		Transactions: []models.Transaction{
			{ID: 1, Date: day("2025-11-01"), Kind: "Customer Payment", Category: models.CategoryCredit, Amount: dec("100"), CurrencyID: 1, AccountID: acct(2)},
		},
		Summary: Summary{
			TotalCredits:   dec("100"),
			TotalDebits:    dec("40"),
			TotalTransfers: dec("0"),
			NetBalance:     dec("60"),
		},
		Meta: Meta{
			FromDate:         day("2025-10-01"),
			ToDate:           day("2025-12-31"),
			TypeFilter:       "",
			ResetDate:        day("2025-10-01"),
			FromDateAdjusted: true,
			TotalCount:       1,
			GeneratedAt:      time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC),
		},
		AccountNames:  map[int64]string{2: "Main Cash"},
		CurrencyNames: map[int64]string{1: "AED"},
	}

	resp := FormatReport(rep, "AED")
	if !resp.Success {
		t.Error("formatted report should carry success=true")
	}
	if len(resp.Transactions) != 1 {
		t.Fatalf("expected 1 transaction view, got %d", len(resp.Transactions))
	}

	for field, value := range map[string]string{
		"total_credits":   resp.Summary.TotalCredits,
		"total_debits":    resp.Summary.TotalDebits,
		"total_transfers": resp.Summary.TotalTransfers,
		"net_balance":     resp.Summary.NetBalance,
	} {
		if !strings.HasSuffix(value, " AED") {
			t.Errorf("%s = %q, want the reference currency suffix", field, value)
		}
	}
	if resp.Summary.NetBalance != "60.00 AED" {
		t.Errorf("net balance = %q", resp.Summary.NetBalance)
	}

	if resp.Meta.FromDate != "2025-10-01" || resp.Meta.ToDate != "2025-12-31" {
		t.Errorf("meta dates = %q..%q", resp.Meta.FromDate, resp.Meta.ToDate)
	}
	if !resp.Meta.FromDateAdjusted {
		t.Error("meta must surface the clamped from date")
	}
	if resp.Meta.TotalCount != 1 {
		t.Errorf("meta count = %d", resp.Meta.TotalCount)
	}
}
