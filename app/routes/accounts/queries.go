package accounts

import (
	"database/sql"

	"github.com/matti7866/api-sub001/app/models"
)

func GetAllAccounts(db *sql.DB) ([]*models.Account, error) {
	query := `SELECT id, name, is_active, created_at, updated_at
			  FROM accounts
			  WHERE deleted_at IS NULL
			  ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*models.Account{} // Initialize to empty slice for non-null JSON
	for rows.Next() {
		a := &models.Account{}
		if err := rows.Scan(&a.ID, &a.Name, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func CreateAccount(db *sql.DB, a *models.Account) error {
	query := `INSERT INTO accounts (name, is_active) VALUES ($1, true)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, a.Name).Scan(&a.ID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
}

func UpdateAccount(db *sql.DB, a *models.Account) error {
	query := `UPDATE accounts SET name = $1, is_active = $2, updated_at = NOW()
			  WHERE id = $3 AND deleted_at IS NULL`
	_, err := db.Exec(query, a.Name, a.IsActive, a.ID)
	return err
}

func DeleteAccount(db *sql.DB, id int64) error {
	query := `UPDATE accounts SET deleted_at = NOW() WHERE id = $1`
	_, err := db.Exec(query, id)
	return err
}
