package repository

import (
	"context"
	"database/sql"

	"debtster-collections/internal/domain"
)

type InstrumentRepository struct {
	db *sql.DB
}

func NewInstrumentRepository(db *sql.DB) *InstrumentRepository {
	return &InstrumentRepository{db: db}
}

const instrumentSelect = `
	SELECT
		i.id,
		i.debtor_id,
		i.type,
		i.number,
		i.amount,
		i.issue_date,
		i.due_date,
		i.interest_rate,
		i.accrued_interest,
		i.status,

		d.name   AS debtor_name,
		d.tax_id AS debtor_tax_id
	FROM instruments i
	LEFT JOIN debtors d ON d.id = i.debtor_id
`

func scanInstrument(s rowScanner) (domain.Instrument, error) {
	var in domain.Instrument
	err := s.Scan(
		&in.ID,
		&in.DebtorID,
		&in.Type,
		&in.Number,
		&in.Amount,
		&in.IssueDate,
		&in.DueDate,
		&in.InterestRate,
		&in.AccruedInterest,
		&in.Status,

		&in.DebtorName,
		&in.DebtorTaxID,
	)
	return in, err
}

func (r *InstrumentRepository) Create(ctx context.Context, in domain.InstrumentInput) (int64, error) {
	const query = `
		INSERT INTO instruments (
			debtor_id, type, number, amount, issue_date, due_date, interest_rate, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		in.DebtorID, in.Type, in.Number, in.Amount,
		in.IssueDate, in.DueDate, in.InterestRate, string(in.Status),
	).Scan(&id)
	if err != nil {
		return 0, translateError(err, "failed to create instrument")
	}
	return id, nil
}

func (r *InstrumentRepository) Get(ctx context.Context, id int64) (*domain.Instrument, error) {
	query := instrumentSelect + ` WHERE i.id = $1`

	in, err := scanInstrument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "instrument not found", "failed to get instrument")
	}
	return &in, nil
}

func (r *InstrumentRepository) List(ctx context.Context) ([]domain.Instrument, error) {
	query := instrumentSelect + ` ORDER BY i.due_date, i.id`
	return r.query(ctx, "failed to list instruments", query)
}

func (r *InstrumentRepository) query(ctx context.Context, fallback, query string, args ...any) ([]domain.Instrument, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, fallback)
	}
	defer rows.Close()

	result := []domain.Instrument{}
	for rows.Next() {
		in, err := scanInstrument(rows)
		if err != nil {
			return nil, translateError(err, fallback)
		}
		result = append(result, in)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError(err, fallback)
	}
	return result, nil
}

// Update never touches accrued_interest; only SetAccruedInterest writes it.
// A nil rate or empty status keeps the stored value.
func (r *InstrumentRepository) Update(ctx context.Context, id int64, in domain.InstrumentInput) (int64, error) {
	const query = `
		UPDATE instruments
		SET debtor_id = $2,
			type = $3,
			number = $4,
			amount = $5,
			issue_date = $6,
			due_date = $7,
			interest_rate = COALESCE($8, interest_rate),
			status = COALESCE(NULLIF($9, ''), status)
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		id, in.DebtorID, in.Type, in.Number, in.Amount,
		in.IssueDate, in.DueDate, in.InterestRate, string(in.Status),
	)
	if err != nil {
		return 0, translateError(err, "failed to update instrument")
	}
	return rowsAffected(res, "failed to update instrument")
}

func (r *InstrumentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM instruments WHERE id = $1`, id)
	if err != nil {
		return 0, translateDeleteError(err, "failed to delete instrument")
	}
	return rowsAffected(res, "failed to delete instrument")
}

// SetAccruedInterest stores amount only while the instrument is overdue on
// today, so a stale caller cannot write interest for a not-yet-due instrument.
func (r *InstrumentRepository) SetAccruedInterest(ctx context.Context, id int64, amount float64, today domain.Date) (int64, error) {
	const query = `
		UPDATE instruments
		SET accrued_interest = $2
		WHERE id = $1 AND due_date < $3
	`

	res, err := r.db.ExecContext(ctx, query, id, amount, today)
	if err != nil {
		return 0, translateError(err, "failed to update accrued interest")
	}
	return rowsAffected(res, "failed to update accrued interest")
}
