package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"debtster-collections/internal/domain"
)

type PaymentsFilter struct {
	InstrumentID *int64
}

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, in domain.PaymentInput) (int64, error) {
	const query = `
		INSERT INTO payments (instrument_id, payment_date, amount, method, receipt)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		in.InstrumentID, in.PaymentDate, in.Amount, in.Method, in.Receipt,
	).Scan(&id)
	if err != nil {
		return 0, translateError(err, "failed to create payment")
	}
	return id, nil
}

func (r *PaymentRepository) List(ctx context.Context, f PaymentsFilter) ([]domain.Payment, error) {
	base := `SELECT p.id, p.instrument_id, p.payment_date, p.amount, p.method, p.receipt FROM payments p`

	where := []string{"1=1"}
	args := []any{}
	i := 1

	if f.InstrumentID != nil {
		where = append(where, fmt.Sprintf("p.instrument_id = $%d", i))
		args = append(args, *f.InstrumentID)
		i++
	}

	query := base + " WHERE " + strings.Join(where, " AND ") + " ORDER BY p.payment_date DESC, p.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list payments")
	}
	defer rows.Close()

	out := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID,
			&p.InstrumentID,
			&p.PaymentDate,
			&p.Amount,
			&p.Method,
			&p.Receipt,
		); err != nil {
			return nil, translateError(err, "failed to list payments")
		}
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to list payments")
	}
	return out, nil
}
