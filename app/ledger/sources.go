package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/matti7866/api-sub001/app/config"
	"github.com/matti7866/api-sub001/app/database"
	"github.com/matti7866/api-sub001/app/models"
)

// sourceSpec describes one transaction source declaratively. One
// generic executor builds and runs the query for every source; no
// per-source SQL is written by hand.
type sourceSpec struct {
	Name            string // stable identifier, used in logs
	Kind            string // human label on emitted transactions
	Table           string
	DateColumn      string
	AccountColumn   string // empty = source has no account column
	AmountColumn    string
	CurrencyColumn  string // empty = amounts recorded in the reference currency
	RemarksColumn   string
	ReferenceColumn string // points at the originating domain entity
	DescColumn      string
	StaffColumn     string // user id column joined to users for the staff name
	Category        models.Category
	Subtypes        []string // type filter values that activate this source
	ExtraWhere      string   // fixed per-source predicate on alias s
	HardResetFloor  bool     // source data is only valid from the reset date onward
	Optional        bool     // table may not exist in a given deployment
}

// Matches reports whether this source participates for a type filter:
// empty filter, the source's own category, or one of its subtype tags.
func (s sourceSpec) Matches(typeFilter string) bool {
	if typeFilter == "" || typeFilter == string(s.Category) {
		return true
	}
	for _, t := range s.Subtypes {
		if t == typeFilter {
			return true
		}
	}
	return false
}

var baseSources = []sourceSpec{
	{
		Name: "customer_payments", Kind: "Customer Payment", Table: "customer_payments",
		DateColumn: "payment_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
	},
	{
		Name: "account_deposits", Kind: "Deposit", Table: "account_deposits",
		DateColumn: "deposit_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
	},
	{
		Name: "cheques_received", Kind: "Cheque Received", Table: "cheques",
		DateColumn: "cheque_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"cheque"}, ExtraWhere: "s.direction = 'incoming'",
	},
	{
		Name: "tawjeeh_payments", Kind: "Tawjeeh Payment", Table: "tawjeeh_payments",
		DateColumn: "payment_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"tawjeeh_payment"},
	},
	{
		Name: "insurance_payments", Kind: "Insurance Payment", Table: "insurance_payments",
		DateColumn: "payment_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"insurance_payment"},
	},
	{
		Name: "cancellation_charges", Kind: "Cancellation Charge", Table: "cancellation_charges",
		DateColumn: "charge_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"cancellation"},
	},
	{
		Name: "amer_transactions", Kind: "Amer Transaction", Table: "amer_transactions",
		DateColumn: "transaction_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"amer_transaction"}, HardResetFloor: true,
	},
	{
		Name: "tasheel_transactions", Kind: "Tasheel Transaction", Table: "tasheel_transactions",
		DateColumn: "transaction_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"tasheel_transaction"}, HardResetFloor: true,
	},
	{
		Name: "family_residences", Kind: "Family Residence Payment", Table: "family_residences",
		DateColumn: "payment_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "residence_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"family_residence"},
	},
	{
		Name: "residence_extras", Kind: "Residence Extra Charge", Table: "residence_extras",
		DateColumn: "charge_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "residence_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"residence_extra"},
	},
	{
		Name: "tawjeeh_operations", Kind: "Tawjeeh Operation", Table: "tawjeeh_operations",
		DateColumn: "operation_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"tawjeeh_operation"}, HardResetFloor: true,
	},
	{
		Name: "iloe_operations", Kind: "ILOE Operation", Table: "iloe_operations",
		DateColumn: "operation_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryCredit,
		Subtypes: []string{"iloe_operation"}, HardResetFloor: true, Optional: true,
	},
	{
		Name: "expenses", Kind: "Expense", Table: "expenses",
		DateColumn: "expense_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "category_id",
		DescColumn: "title", StaffColumn: "added_by", Category: models.CategoryDebit,
	},
	{
		Name: "loans", Kind: "Loan", Table: "loans",
		DateColumn: "loan_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryDebit,
	},
	{
		Name: "supplier_payments", Kind: "Supplier Payment", Table: "supplier_payments",
		DateColumn: "payment_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "supplier_id",
		StaffColumn: "added_by", Category: models.CategoryDebit,
	},
	{
		Name: "cheques_issued", Kind: "Cheque Issued", Table: "cheques",
		DateColumn: "cheque_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryDebit,
		Subtypes: []string{"cheque"}, ExtraWhere: "s.direction = 'outgoing'",
	},
	{
		Name: "salaries", Kind: "Salary", Table: "salaries",
		DateColumn: "payment_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "employee_id",
		DescColumn: "employee_name", StaffColumn: "added_by", Category: models.CategoryDebit,
		Subtypes: []string{"salary"},
	},
	{
		Name: "residence_fines", Kind: "Residence Fine", Table: "residence_fines",
		DateColumn: "fine_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "residence_id",
		StaffColumn: "added_by", Category: models.CategoryDebit,
		Subtypes: []string{"residence_fine"},
	},
	{
		Name: "cancellation_transactions", Kind: "Cancellation Refund", Table: "cancellation_transactions",
		DateColumn: "refund_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryDebit,
		Subtypes: []string{"cancellation_transaction"},
	},
	{
		Name: "evisa_charges", Kind: "E-Visa Charge", Table: "evisa_charges",
		DateColumn: "charge_date", AccountColumn: "account_id", AmountColumn: "amount",
		CurrencyColumn: "currency_id", RemarksColumn: "remarks", ReferenceColumn: "customer_id",
		StaffColumn: "added_by", Category: models.CategoryDebit,
		Subtypes: []string{"evisa_charge"}, HardResetFloor: true, Optional: true,
	},
}

// Registry holds the transaction sources active in this deployment.
// Optional sources whose tables are absent are dropped at construction,
// never at query time.
type Registry struct {
	db       *sql.DB
	settings config.ReportSettings
	specs    []sourceSpec
}

func NewRegistry(db *sql.DB, settings config.ReportSettings) *Registry {
	all := make([]sourceSpec, 0, len(baseSources)+16)
	all = append(all, baseSources...)
	all = append(all, stepSources()...)

	specs := make([]sourceSpec, 0, len(all))
	for _, s := range all {
		if s.Optional {
			exists, err := database.TableExists(db, s.Table)
			if err != nil {
				log.Printf("Table probe failed for %s, skipping source %s: %v", s.Table, s.Name, err)
				continue
			}
			if !exists {
				log.Printf("Table %s not present, source %s disabled", s.Table, s.Name)
				continue
			}
		}
		specs = append(specs, s)
	}

	return &Registry{db: db, settings: settings, specs: specs}
}

// ActiveSpecs returns the sources participating for a type filter, in
// declaration order.
func (r *Registry) ActiveSpecs(typeFilter string) []sourceSpec {
	var active []sourceSpec
	for _, s := range r.specs {
		if s.Matches(typeFilter) {
			active = append(active, s)
		}
	}
	return active
}

// buildSourceQuery assembles the query and bindings for one source.
// The third return value is false when the source cannot contribute
// under the filter (account filter on a source without an account
// column) and no query should run.
func buildSourceQuery(spec sourceSpec, f models.ReportFilter, settings config.ReportSettings) (string, []interface{}, bool) {
	if f.AccountID != nil && spec.AccountColumn == "" {
		return "", nil, false
	}

	sel := []string{"s.id", "s." + spec.DateColumn}
	if spec.AccountColumn != "" {
		sel = append(sel, "s."+spec.AccountColumn)
	} else {
		sel = append(sel, "NULL::bigint")
	}
	sel = append(sel, "s."+spec.AmountColumn)
	if spec.CurrencyColumn != "" {
		sel = append(sel, "s."+spec.CurrencyColumn)
	} else {
		sel = append(sel, fmt.Sprintf("CAST(%d AS bigint)", settings.ReferenceCurrencyID))
	}
	if spec.RemarksColumn != "" {
		sel = append(sel, "COALESCE(s."+spec.RemarksColumn+", '')")
	} else {
		sel = append(sel, "''")
	}
	if spec.ReferenceColumn != "" {
		sel = append(sel, "s."+spec.ReferenceColumn)
	} else {
		sel = append(sel, "NULL::bigint")
	}
	if spec.DescColumn != "" {
		sel = append(sel, "COALESCE(s."+spec.DescColumn+", '')")
	} else {
		sel = append(sel, "''")
	}
	if spec.StaffColumn != "" {
		sel = append(sel, "COALESCE(u.first_name || ' ' || u.last_name, '')")
	} else {
		sel = append(sel, "''")
	}

	query := "SELECT " + strings.Join(sel, ", ") + " FROM " + spec.Table + " s"
	if spec.StaffColumn != "" {
		query += " LEFT JOIN users u ON u.id = s." + spec.StaffColumn
	}

	args := []interface{}{f.FromDate, f.ToDate}
	conds := []string{fmt.Sprintf("s.%s BETWEEN $1 AND $2", spec.DateColumn)}
	argIndex := 3

	if spec.HardResetFloor {
		// Unconditional lower bound on top of the generic clamp; this
		// source's data only became valid at the reset date
		conds = append(conds, fmt.Sprintf("s.%s >= $%d", spec.DateColumn, argIndex))
		args = append(args, settings.ResetDate)
		argIndex++
	}
	if spec.AccountColumn != "" {
		conds = append(conds, fmt.Sprintf("s.%s IS DISTINCT FROM $%d", spec.AccountColumn, argIndex))
		args = append(args, settings.ReservedAccountID)
		argIndex++
		if f.AccountID != nil {
			conds = append(conds, fmt.Sprintf("s.%s = $%d", spec.AccountColumn, argIndex))
			args = append(args, *f.AccountID)
			argIndex++
		}
	}
	if spec.ExtraWhere != "" {
		conds = append(conds, spec.ExtraWhere)
	}

	query += " WHERE " + strings.Join(conds, " AND ")
	query += fmt.Sprintf(" ORDER BY s.%s DESC, s.id DESC", spec.DateColumn)

	return query, args, true
}

// Fetch runs one source and normalizes its rows into transactions.
func (r *Registry) Fetch(ctx context.Context, spec sourceSpec, f models.ReportFilter) ([]models.Transaction, error) {
	query, args, runnable := buildSourceQuery(spec, f, r.settings)
	if !runnable {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", spec.Name, err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var (
			t          models.Transaction
			accountID  sql.NullInt64
			refID      sql.NullInt64
			amount     decimal.Decimal
			currencyID int64
		)
		if err := rows.Scan(&t.ID, &t.Date, &accountID, &amount, &currencyID,
			&t.Remarks, &refID, &t.Description, &t.StaffName); err != nil {
			return nil, fmt.Errorf("source %s: %w", spec.Name, err)
		}
		t.Kind = spec.Kind
		t.Category = spec.Category
		t.Amount = amount
		t.CurrencyID = currencyID
		if accountID.Valid {
			id := accountID.Int64
			t.AccountID = &id
		}
		if refID.Valid {
			id := refID.Int64
			t.ReferenceID = &id
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source %s: %w", spec.Name, err)
	}
	return txns, nil
}
