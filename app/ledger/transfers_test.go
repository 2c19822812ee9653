package ledger

import (
	"testing"
	"time"

	"github.com/matti7866/api-sub001/app/models"
)

func TestTransfersMatch(t *testing.T) {
	cases := []struct {
		filter string
		want   bool
	}{
		{"", true},
		{"transfer", true},
		{"credit", false},
		{"debit", false},
		{"salary", false},
	}
	for _, tc := range cases {
		if got := transfersMatch(tc.filter); got != tc.want {
			t.Errorf("transfersMatch(%q) = %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestMaterializeTransferPairsEntries(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2025-11-05")
	transfer := models.Transfer{
		ID:            42,
		TransferDate:  date,
		FromAccountID: 2,
		ToAccountID:   3,
		Amount:        dec("500.00"),
		Remarks:       "month-end move",
	}
	names := map[int64]string{2: "Main Cash", 3: "Emirates NBD"}

	pair := materializeTransfer(transfer, names, 1, "Sara Khan")
	out, in := pair[0], pair[1]

	if out.Kind != "Transfer Out" || in.Kind != "Transfer In" {
		t.Fatalf("expected Out then In, got %q then %q", out.Kind, in.Kind)
	}
	if out.Category != models.CategoryTransfer || in.Category != models.CategoryTransfer {
		t.Fatal("both legs must carry the transfer category")
	}
	if !out.Amount.Equal(in.Amount) {
		t.Fatalf("leg amounts must reconcile: %s vs %s", out.Amount, in.Amount)
	}
	if *out.AccountID != 2 || *out.ReferenceID != 3 {
		t.Errorf("out leg endpoints wrong: account %d, reference %d", *out.AccountID, *out.ReferenceID)
	}
	if *in.AccountID != 3 || *in.ReferenceID != 2 {
		t.Errorf("in leg endpoints wrong: account %d, reference %d", *in.AccountID, *in.ReferenceID)
	}
	if out.Description != "Transfer to Emirates NBD" {
		t.Errorf("out description = %q", out.Description)
	}
	if in.Description != "Transfer from Main Cash" {
		t.Errorf("in description = %q", in.Description)
	}
	if out.StaffName != "Sara Khan" || in.StaffName != "Sara Khan" {
		t.Error("both legs should carry the staff name")
	}
	if out.CurrencyID != 1 || in.CurrencyID != 1 {
		t.Error("transfers are recorded in the reference currency")
	}
}

func TestMaterializeTransferUnknownAccountName(t *testing.T) {
	transfer := models.Transfer{ID: 1, FromAccountID: 8, ToAccountID: 9, Amount: dec("10")}
	pair := materializeTransfer(transfer, map[int64]string{}, 1, "")

	if pair[0].Description != "Transfer to Unknown Account" {
		t.Errorf("out description = %q", pair[0].Description)
	}
	if pair[1].Description != "Transfer from Unknown Account" {
		t.Errorf("in description = %q", pair[1].Description)
	}
}
