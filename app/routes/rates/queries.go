package rates

import (
	"database/sql"
	"fmt"

	"github.com/matti7866/api-sub001/app/models"
)

func GetAllRates(db *sql.DB) ([]*models.ExchangeRate, error) {
	query := `SELECT id, from_currency_id, to_currency_id, rate, effective_date, is_active, created_at
			  FROM exchange_rates
			  ORDER BY effective_date DESC, id DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.ExchangeRate{}
	for rows.Next() {
		r := &models.ExchangeRate{}
		if err := rows.Scan(&r.ID, &r.FromCurrencyID, &r.ToCurrencyID, &r.Rate,
			&r.EffectiveDate, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// CreateRate inserts a new active rate and retires any prior active
// rates for the same pair in one transaction, so the "most recent
// active rate" lookup stays unambiguous.
func CreateRate(db *sql.DB, r *models.ExchangeRate) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE exchange_rates SET is_active = false
					  WHERE from_currency_id = $1 AND to_currency_id = $2 AND is_active = true`,
		r.FromCurrencyID, r.ToCurrencyID)
	if err != nil {
		return fmt.Errorf("failed to retire previous rates: %v", err)
	}

	err = tx.QueryRow(`INSERT INTO exchange_rates (from_currency_id, to_currency_id, rate, effective_date, is_active)
					   VALUES ($1, $2, $3, $4, true)
					   RETURNING id, is_active, created_at`,
		r.FromCurrencyID, r.ToCurrencyID, r.Rate, r.EffectiveDate,
	).Scan(&r.ID, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert rate: %v", err)
	}

	return tx.Commit()
}

func DeactivateRate(db *sql.DB, id int64) error {
	_, err := db.Exec(`UPDATE exchange_rates SET is_active = false WHERE id = $1`, id)
	return err
}
