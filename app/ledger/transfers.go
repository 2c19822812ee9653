package ledger

import (
	"context"
	"fmt"

	"github.com/matti7866/api-sub001/app/models"
)

// transfersMatch reports whether the transfer materializer participates
// for a type filter. Subtype tags never activate it.
func transfersMatch(typeFilter string) bool {
	return typeFilter == "" || typeFilter == string(models.CategoryTransfer)
}

// materializeTransfer expands one stored transfer into its two ledger
// entries: Transfer Out at the source account, then Transfer In at the
// destination. Account names come from the preloaded lookup map.
func materializeTransfer(t models.Transfer, accountNames map[int64]string, referenceCurrencyID int64, staffName string) [2]models.Transaction {
	from := t.FromAccountID
	to := t.ToAccountID

	out := models.Transaction{
		ID:          t.ID,
		Date:        t.TransferDate,
		Kind:        "Transfer Out",
		Category:    models.CategoryTransfer,
		AccountID:   &from,
		Amount:      t.Amount,
		CurrencyID:  referenceCurrencyID,
		Remarks:     t.Remarks,
		ReferenceID: &to,
		StaffName:   staffName,
		Description: "Transfer to " + accountNameOr(accountNames, to),
	}
	in := models.Transaction{
		ID:          t.ID,
		Date:        t.TransferDate,
		Kind:        "Transfer In",
		Category:    models.CategoryTransfer,
		AccountID:   &to,
		Amount:      t.Amount,
		CurrencyID:  referenceCurrencyID,
		Remarks:     t.Remarks,
		ReferenceID: &from,
		StaffName:   staffName,
		Description: "Transfer from " + accountNameOr(accountNames, from),
	}

	return [2]models.Transaction{out, in}
}

func accountNameOr(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "Unknown Account"
}

// FetchTransfers pulls transfers in range and materializes the paired
// entries. The account filter matches either endpoint; transfers
// touching the reserved account are excluded entirely.
func (r *Registry) FetchTransfers(ctx context.Context, f models.ReportFilter, accountNames map[int64]string) ([]models.Transaction, error) {
	query := `SELECT t.id, t.transfer_date, t.from_account_id, t.to_account_id, t.amount,
			  COALESCE(t.remarks, ''), COALESCE(u.first_name || ' ' || u.last_name, '')
			  FROM account_transfers t
			  LEFT JOIN users u ON u.id = t.added_by
			  WHERE t.transfer_date BETWEEN $1 AND $2
			  AND t.from_account_id <> $3 AND t.to_account_id <> $3`
	args := []interface{}{f.FromDate, f.ToDate, r.settings.ReservedAccountID}

	if f.AccountID != nil {
		query += " AND (t.from_account_id = $4 OR t.to_account_id = $4)"
		args = append(args, *f.AccountID)
	}
	query += " ORDER BY t.transfer_date DESC, t.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transfers: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transfer
		var staffName string
		if err := rows.Scan(&t.ID, &t.TransferDate, &t.FromAccountID, &t.ToAccountID,
			&t.Amount, &t.Remarks, &staffName); err != nil {
			return nil, fmt.Errorf("transfers: %w", err)
		}
		pair := materializeTransfer(t, accountNames, r.settings.ReferenceCurrencyID, staffName)
		txns = append(txns, pair[0], pair[1])
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transfers: %w", err)
	}
	return txns, nil
}
