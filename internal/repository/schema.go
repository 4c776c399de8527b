package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Constraint names are referenced by translateError to build client messages.
const (
	constraintDebtorTaxID        = "debtors_tax_id_key"
	constraintInstrumentDebtor   = "instruments_debtor_id_fkey"
	constraintPaymentInstrument  = "payments_instrument_id_fkey"
	constraintStageInstrument    = "process_stages_instrument_id_fkey"
	constraintInstrumentAmount   = "instruments_amount_check"
	constraintPaymentAmount      = "payments_amount_check"
	constraintInstrumentInterest = "instruments_accrued_interest_check"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS debtors (
		id         BIGSERIAL PRIMARY KEY,
		tax_id     TEXT NOT NULL,
		name       TEXT NOT NULL,
		address    TEXT,
		phone      TEXT,
		email      TEXT,
		created_on DATE NOT NULL DEFAULT CURRENT_DATE,
		active     BOOLEAN NOT NULL DEFAULT TRUE,
		CONSTRAINT ` + constraintDebtorTaxID + ` UNIQUE (tax_id)
	)`,
	`CREATE TABLE IF NOT EXISTS instruments (
		id               BIGSERIAL PRIMARY KEY,
		debtor_id        BIGINT NOT NULL,
		type             TEXT NOT NULL,
		number           TEXT NOT NULL,
		amount           NUMERIC(14, 2) NOT NULL,
		issue_date       DATE NOT NULL,
		due_date         DATE NOT NULL,
		interest_rate    NUMERIC(6, 2) NOT NULL DEFAULT 5.0,
		accrued_interest NUMERIC(14, 2) NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'PENDING',
		CONSTRAINT ` + constraintInstrumentAmount + ` CHECK (amount > 0),
		CONSTRAINT ` + constraintInstrumentInterest + ` CHECK (accrued_interest >= 0),
		CONSTRAINT ` + constraintInstrumentDebtor + ` FOREIGN KEY (debtor_id)
			REFERENCES debtors (id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS instruments_due_date_idx ON instruments (due_date)`,
	`CREATE INDEX IF NOT EXISTS instruments_debtor_id_idx ON instruments (debtor_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id            BIGSERIAL PRIMARY KEY,
		instrument_id BIGINT NOT NULL,
		payment_date  DATE NOT NULL,
		amount        NUMERIC(14, 2) NOT NULL,
		method        TEXT,
		receipt       TEXT,
		CONSTRAINT ` + constraintPaymentAmount + ` CHECK (amount > 0),
		CONSTRAINT ` + constraintPaymentInstrument + ` FOREIGN KEY (instrument_id)
			REFERENCES instruments (id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS payments_instrument_id_idx ON payments (instrument_id)`,
	`CREATE TABLE IF NOT EXISTS process_stages (
		id               BIGSERIAL PRIMARY KEY,
		instrument_id    BIGINT NOT NULL,
		stage            TEXT NOT NULL,
		stage_date       DATE NOT NULL,
		observations     TEXT,
		responsible      TEXT,
		next_action_date DATE,
		CONSTRAINT ` + constraintStageInstrument + ` FOREIGN KEY (instrument_id)
			REFERENCES instruments (id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS process_stages_instrument_id_idx ON process_stages (instrument_id)`,
}

// Migrate creates the four tables and their indexes when absent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

const seedDebtorsQuery = `
	INSERT INTO debtors (tax_id, name)
	SELECT v.tax_id, v.name
	FROM (VALUES
		('30-12345678-9', 'Empresa Ejemplo S.A.'),
		('20-98765432-1', 'Comercio López Hnos.')
	) AS v (tax_id, name)
	WHERE NOT EXISTS (SELECT 1 FROM debtors)
	ON CONFLICT (tax_id) DO NOTHING
`

// Seed inserts demo debtors into an empty debtors table and reports how many were added.
func Seed(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx, seedDebtorsQuery)
	if err != nil {
		return 0, fmt.Errorf("seed debtors: %w", err)
	}
	return res.RowsAffected()
}
