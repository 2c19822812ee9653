package transfers

import (
	"database/sql"

	"github.com/matti7866/api-sub001/app/models"
)

func GetAllTransfers(db *sql.DB) ([]*models.Transfer, error) {
	query := `SELECT id, transfer_date, from_account_id, to_account_id, amount, COALESCE(remarks, ''), added_by, created_at
			  FROM account_transfers
			  ORDER BY transfer_date DESC, id DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Transfer{}
	for rows.Next() {
		t := &models.Transfer{}
		var addedBy sql.NullString
		if err := rows.Scan(&t.ID, &t.TransferDate, &t.FromAccountID, &t.ToAccountID,
			&t.Amount, &t.Remarks, &addedBy, &t.CreatedAt); err != nil {
			return nil, err
		}
		if addedBy.Valid {
			t.AddedBy = &addedBy.String
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func CreateTransfer(db *sql.DB, t *models.Transfer) error {
	query := `INSERT INTO account_transfers (transfer_date, from_account_id, to_account_id, amount, remarks, added_by)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`
	return db.QueryRow(query, t.TransferDate, t.FromAccountID, t.ToAccountID, t.Amount, t.Remarks, t.AddedBy).
		Scan(&t.ID, &t.CreatedAt)
}

func DeleteTransfer(db *sql.DB, id int64) error {
	_, err := db.Exec(`DELETE FROM account_transfers WHERE id = $1`, id)
	return err
}
