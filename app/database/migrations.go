package database

import (
	"database/sql"
	"fmt"
	"log"
)

// transactionSourceTables are the financial event tables the accounts
// transactions report reads. They share the same core columns (date,
// account, amount, currency, remarks, added_by) plus a per-source
// reference column. iloe_operations and evisa_charges are intentionally
// not created here: the newer visa module owns them and older
// deployments run without them.
var transactionSourceTables = []struct {
	name    string
	dateCol string
	refCol  string
	extra   string
}{
	{"customer_payments", "payment_date", "customer_id", ""},
	{"account_deposits", "deposit_date", "customer_id", ""},
	{"loans", "loan_date", "customer_id", ""},
	{"expenses", "expense_date", "category_id", "title VARCHAR(255),"},
	{"supplier_payments", "payment_date", "supplier_id", ""},
	{"cheques", "cheque_date", "customer_id", "direction VARCHAR(10) NOT NULL DEFAULT 'incoming',"},
	{"salaries", "payment_date", "employee_id", "employee_name VARCHAR(255),"},
	{"tawjeeh_payments", "payment_date", "customer_id", ""},
	{"insurance_payments", "payment_date", "customer_id", ""},
	{"residence_fines", "fine_date", "residence_id", ""},
	{"cancellation_charges", "charge_date", "customer_id", ""},
	{"cancellation_transactions", "refund_date", "customer_id", ""},
	{"amer_transactions", "transaction_date", "customer_id", ""},
	{"tasheel_transactions", "transaction_date", "customer_id", ""},
	{"family_residences", "payment_date", "residence_id", ""},
	{"residence_extras", "charge_date", "residence_id", ""},
	{"tawjeeh_operations", "operation_date", "customer_id", ""},
}

// RunMigrations ensures necessary tables, columns and seed rows exist.
func RunMigrations(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS role_permissions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			resource VARCHAR(100) NOT NULL,
			can_select BOOLEAN DEFAULT false,
			can_insert BOOLEAN DEFAULT false,
			can_update BOOLEAN DEFAULT false,
			can_delete BOOLEAN DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (role_id, resource)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20),
			role_id UUID REFERENCES roles(id),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS currencies (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(50) UNIQUE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS exchange_rates (
			id BIGSERIAL PRIMARY KEY,
			from_currency_id BIGINT NOT NULL REFERENCES currencies(id),
			to_currency_id BIGINT NOT NULL REFERENCES currencies(id),
			rate NUMERIC(18,6) NOT NULL,
			effective_date DATE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS account_transfers (
			id BIGSERIAL PRIMARY KEY,
			transfer_date DATE NOT NULL,
			from_account_id BIGINT NOT NULL REFERENCES accounts(id),
			to_account_id BIGINT NOT NULL REFERENCES accounts(id),
			amount NUMERIC(18,2) NOT NULL,
			remarks TEXT,
			added_by UUID REFERENCES users(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	}

	for _, src := range transactionSourceTables {
		queries = append(queries, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			%s DATE NOT NULL,
			account_id BIGINT REFERENCES accounts(id),
			amount NUMERIC(18,2) NOT NULL,
			currency_id BIGINT NOT NULL DEFAULT 1,
			%s
			remarks TEXT,
			%s BIGINT,
			added_by UUID REFERENCES users(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`, src.name, src.dateCol, src.extra, src.refCol))
	}

	// Residence workflow tables carry one cost/date/account/supplier
	// column group per billable step.
	queries = append(queries,
		`CREATE TABLE IF NOT EXISTS residences (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT,
			employee_name VARCHAR(255),
			remarks TEXT,
			added_by UUID REFERENCES users(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS dependents (
			id BIGSERIAL PRIMARY KEY,
			residence_id BIGINT REFERENCES residences(id),
			dependent_name VARCHAR(255),
			remarks TEXT,
			added_by UUID REFERENCES users(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	)

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating tables: %v", err)
			return err
		}
	}

	// Step cost column groups (migrations for existing tables too)
	residenceSteps := []string{"offer_letter", "insurance", "labor_card", "visa_stamping", "medical", "emirates_id", "change_status", "evisa"}
	dependentSteps := []string{"insurance", "visa_stamping", "medical", "emirates_id", "evisa"}

	var migrations []string
	for _, step := range residenceSteps {
		migrations = append(migrations,
			fmt.Sprintf(`ALTER TABLE residences ADD COLUMN IF NOT EXISTS %s_cost NUMERIC(18,2)`, step),
			fmt.Sprintf(`ALTER TABLE residences ADD COLUMN IF NOT EXISTS %s_date DATE`, step),
			fmt.Sprintf(`ALTER TABLE residences ADD COLUMN IF NOT EXISTS %s_account_id BIGINT REFERENCES accounts(id)`, step),
			fmt.Sprintf(`ALTER TABLE residences ADD COLUMN IF NOT EXISTS %s_supplier_id BIGINT REFERENCES suppliers(id)`, step),
		)
	}
	for _, step := range dependentSteps {
		migrations = append(migrations,
			fmt.Sprintf(`ALTER TABLE dependents ADD COLUMN IF NOT EXISTS %s_cost NUMERIC(18,2)`, step),
			fmt.Sprintf(`ALTER TABLE dependents ADD COLUMN IF NOT EXISTS %s_date DATE`, step),
			fmt.Sprintf(`ALTER TABLE dependents ADD COLUMN IF NOT EXISTS %s_account_id BIGINT REFERENCES accounts(id)`, step),
			fmt.Sprintf(`ALTER TABLE dependents ADD COLUMN IF NOT EXISTS %s_supplier_id BIGINT REFERENCES suppliers(id)`, step),
		)
	}
	for _, src := range transactionSourceTables {
		migrations = append(migrations,
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)`, src.name, src.dateCol, src.name, src.dateCol),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_account_id ON %s(account_id)`, src.name, src.name),
		)
	}
	migrations = append(migrations,
		`CREATE INDEX IF NOT EXISTS idx_exchange_rates_pair ON exchange_rates(from_currency_id, to_currency_id, effective_date)`,
		`CREATE INDEX IF NOT EXISTS idx_account_transfers_date ON account_transfers(transfer_date)`,
	)

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			log.Printf("Error running migration: %v", err)
			// Continue as some might be duplicate index errors depending on PG version
		}
	}

	// Seed default data
	seeds := []string{
		`INSERT INTO currencies (id, name) VALUES (1, 'AED') ON CONFLICT (id) DO NOTHING`,
		`SELECT setval('currencies_id_seq', GREATEST((SELECT MAX(id) FROM currencies), 1))`,
		`INSERT INTO roles (name, is_active) VALUES ('admin', true) ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO role_permissions (role_id, resource, can_select, can_insert, can_update, can_delete)
		 SELECT r.id, res.name, true, true, true, true
		 FROM roles r, (VALUES ('accounts'), ('transfers'), ('exchange_rates')) AS res(name)
		 WHERE r.name = 'admin'
		 ON CONFLICT (role_id, resource) DO NOTHING`,
	}

	for _, s := range seeds {
		if _, err := db.Exec(s); err != nil {
			log.Printf("Error seeding data: %v", err)
		}
	}

	return nil
}
