package ledger

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// RateStore resolves the most recent active exchange rate for a
// currency pair.
type RateStore interface {
	LatestActiveRate(ctx context.Context, fromCurrencyID, toCurrencyID int64) (decimal.Decimal, bool, error)
}

type sqlRateStore struct {
	db *sql.DB
}

func NewSQLRateStore(db *sql.DB) RateStore {
	return &sqlRateStore{db: db}
}

func (s *sqlRateStore) LatestActiveRate(ctx context.Context, fromCurrencyID, toCurrencyID int64) (decimal.Decimal, bool, error) {
	var rate decimal.Decimal
	err := s.db.QueryRowContext(ctx, `SELECT rate FROM exchange_rates
		WHERE from_currency_id = $1 AND to_currency_id = $2 AND is_active = true AND rate > 0
		ORDER BY effective_date DESC, id DESC
		LIMIT 1`, fromCurrencyID, toCurrencyID).Scan(&rate)
	if err == sql.ErrNoRows {
		return decimal.Decimal{}, false, nil
	}
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return rate, true, nil
}

// referenceAliases are the names under which the reference currency may
// appear in the currencies table.
var referenceAliases = []string{"aed", "dirham", "dhs", "uae dirham"}

// fallbackRates are the pre-agreed default rates to AED used when no
// active stored rate exists for a currency.
var fallbackRates = map[string]decimal.Decimal{
	"USD": decimal.RequireFromString("3.6725"),
	"EUR": decimal.RequireFromString("4.02"),
	"GBP": decimal.RequireFromString("4.65"),
	"SAR": decimal.RequireFromString("0.98"),
	"OMR": decimal.RequireFromString("9.54"),
	"CNY": decimal.RequireFromString("0.51"),
	"INR": decimal.RequireFromString("0.044"),
	"PKR": decimal.RequireFromString("0.0132"),
	"PHP": decimal.RequireFromString("0.0635"),
}

// Normalizer converts amounts into the reference currency. Resolution
// never fails: stored rate, then static fallback, then 1.0 with a
// logged warning. One instance is built per report run so all rows in
// a run see the same rates.
type Normalizer struct {
	store         RateStore
	referenceID   int64
	currencyNames map[int64]string
	cache         map[int64]decimal.Decimal
}

func NewNormalizer(store RateStore, referenceID int64, currencyNames map[int64]string) *Normalizer {
	return &Normalizer{
		store:         store,
		referenceID:   referenceID,
		currencyNames: currencyNames,
		cache:         make(map[int64]decimal.Decimal),
	}
}

// RateToReference resolves the rate from a currency to the reference
// currency.
func (n *Normalizer) RateToReference(ctx context.Context, currencyID int64) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if currencyID == n.referenceID {
		return one
	}
	if rate, ok := n.cache[currencyID]; ok {
		return rate
	}

	name := n.currencyNames[currencyID]
	if isReferenceAlias(name) {
		n.cache[currencyID] = one
		return one
	}

	rate, found, err := n.store.LatestActiveRate(ctx, currencyID, n.referenceID)
	if err != nil {
		// Treated as "no rate found"; resolution must never abort a report
		log.Printf("Exchange rate lookup failed for currency %d: %v", currencyID, err)
		found = false
	}
	if found && rate.IsPositive() {
		n.cache[currencyID] = rate
		return rate
	}

	if fb, ok := fallbackRate(name); ok {
		log.Printf("No active exchange rate for currency %d (%s), using default rate %s", currencyID, name, fb)
		n.cache[currencyID] = fb
		return fb
	}

	log.Printf("Warning: no exchange rate resolved for currency %d (%q), assuming 1.0", currencyID, name)
	n.cache[currencyID] = one
	return one
}

// Convert returns the amount expressed in the reference currency. Zero
// and negative amounts short-circuit without a rate lookup.
func (n *Normalizer) Convert(ctx context.Context, amount decimal.Decimal, currencyID int64) decimal.Decimal {
	if amount.Sign() <= 0 {
		return decimal.Zero
	}
	return amount.Mul(n.RateToReference(ctx, currencyID))
}

func isReferenceAlias(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return false
	}
	for _, alias := range referenceAliases {
		if lower == alias {
			return true
		}
	}
	return false
}

// fallbackRate matches the currency name against the static table:
// exact match first, then substring in both directions.
func fallbackRate(name string) (decimal.Decimal, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		return decimal.Decimal{}, false
	}
	if rate, ok := fallbackRates[upper]; ok {
		return rate, true
	}
	for key, rate := range fallbackRates {
		if strings.Contains(upper, key) || strings.Contains(key, upper) {
			return rate, true
		}
	}
	return decimal.Decimal{}, false
}
