package repository

import (
	"context"
	"database/sql"

	"debtster-collections/internal/domain"
)

type DebtorRepository struct {
	db *sql.DB
}

func NewDebtorRepository(db *sql.DB) *DebtorRepository {
	return &DebtorRepository{db: db}
}

const debtorColumns = `id, tax_id, name, address, phone, email, created_on, active`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDebtor(s rowScanner) (domain.Debtor, error) {
	var d domain.Debtor
	err := s.Scan(
		&d.ID,
		&d.TaxID,
		&d.Name,
		&d.Address,
		&d.Phone,
		&d.Email,
		&d.CreatedOn,
		&d.Active,
	)
	return d, err
}

func (r *DebtorRepository) Create(ctx context.Context, in domain.DebtorInput) (int64, error) {
	const query = `
		INSERT INTO debtors (tax_id, name, address, phone, email, active)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, TRUE))
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		in.TaxID, in.Name, in.Address, in.Phone, in.Email, in.Active,
	).Scan(&id)
	if err != nil {
		return 0, translateError(err, "failed to create debtor")
	}
	return id, nil
}

func (r *DebtorRepository) Get(ctx context.Context, id int64) (*domain.Debtor, error) {
	query := `SELECT ` + debtorColumns + ` FROM debtors WHERE id = $1`

	d, err := scanDebtor(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "debtor not found", "failed to get debtor")
	}
	return &d, nil
}

func (r *DebtorRepository) List(ctx context.Context) ([]domain.Debtor, error) {
	query := `SELECT ` + debtorColumns + ` FROM debtors ORDER BY name, id`
	return r.query(ctx, "failed to list debtors", query)
}

func (r *DebtorRepository) query(ctx context.Context, fallback, query string, args ...any) ([]domain.Debtor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, fallback)
	}
	defer rows.Close()

	result := []domain.Debtor{}
	for rows.Next() {
		d, err := scanDebtor(rows)
		if err != nil {
			return nil, translateError(err, fallback)
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError(err, fallback)
	}
	return result, nil
}

// Update rewrites the debtor and returns the number of rows changed; zero
// means the id does not exist.
func (r *DebtorRepository) Update(ctx context.Context, id int64, in domain.DebtorInput) (int64, error) {
	const query = `
		UPDATE debtors
		SET tax_id = $2,
			name = $3,
			address = $4,
			phone = $5,
			email = $6,
			active = COALESCE($7, active)
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		id, in.TaxID, in.Name, in.Address, in.Phone, in.Email, in.Active,
	)
	if err != nil {
		return 0, translateError(err, "failed to update debtor")
	}
	return rowsAffected(res, "failed to update debtor")
}

// Delete removes the debtor. Debtors that still own instruments are rejected
// with a conflict.
func (r *DebtorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM debtors WHERE id = $1`, id)
	if err != nil {
		return 0, translateDeleteError(err, "failed to delete debtor")
	}
	return rowsAffected(res, "failed to delete debtor")
}

func rowsAffected(res sql.Result, fallback string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, translateError(err, fallback)
	}
	return n, nil
}
