package repository

import (
	"context"
	"database/sql"

	"debtster-collections/internal/domain"

	"golang.org/x/sync/errgroup"
)

type StatisticsRepository struct {
	db *sql.DB
}

func NewStatisticsRepository(db *sql.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

const (
	countDebtorsQuery       = `SELECT COUNT(*) FROM debtors`
	countInstrumentsQuery   = `SELECT COUNT(*) FROM instruments`
	countPaymentsQuery      = `SELECT COUNT(*) FROM payments`
	countProcessStagesQuery = `SELECT COUNT(*) FROM process_stages`

	pendingDebtQuery = `
		SELECT COALESCE(SUM(amount + accrued_interest), 0)
		FROM instruments
		WHERE status = 'PENDING'
	`
	totalRecoveredQuery = `SELECT COALESCE(SUM(amount), 0) FROM payments`
	upcomingDueQuery    = `
		SELECT COUNT(*)
		FROM instruments
		WHERE status = 'PENDING' AND due_date >= $1 AND due_date <= $2
	`
	overdueQuery = `
		SELECT COUNT(*)
		FROM instruments
		WHERE status = 'PENDING' AND due_date < $1
	`
)

// Aggregates runs every statistics query concurrently. The queries are not
// wrapped in a transaction, so a concurrent write may produce a torn snapshot.
func (r *StatisticsRepository) Aggregates(ctx context.Context, today domain.Date, upcomingDays int) (domain.Aggregates, error) {
	var a domain.Aggregates

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.QueryRowContext(gctx, countDebtorsQuery).Scan(&a.TotalDebtors)
	})
	g.Go(func() error {
		return r.db.QueryRowContext(gctx, countInstrumentsQuery).Scan(&a.TotalInstruments)
	})
	g.Go(func() error {
		return r.db.QueryRowContext(gctx, pendingDebtQuery).Scan(&a.PendingDebt)
	})
	g.Go(func() error {
		return r.db.QueryRowContext(gctx, totalRecoveredQuery).Scan(&a.TotalRecovered)
	})
	g.Go(func() error {
		return r.db.QueryRowContext(gctx, upcomingDueQuery, today, today.AddDays(upcomingDays)).Scan(&a.UpcomingDue)
	})
	g.Go(func() error {
		return r.db.QueryRowContext(gctx, overdueQuery, today).Scan(&a.OverdueCount)
	})

	if err := g.Wait(); err != nil {
		return domain.Aggregates{}, translateError(err, "failed to compute statistics")
	}
	return a, nil
}

type TableCounts struct {
	Debtors       int64 `json:"debtors"`
	Instruments   int64 `json:"instruments"`
	Payments      int64 `json:"payments"`
	ProcessStages int64 `json:"process_stages"`
}

func (r *StatisticsRepository) Counts(ctx context.Context) (TableCounts, error) {
	var c TableCounts

	g, gctx := errgroup.WithContext(ctx)

	targets := []struct {
		query string
		dest  *int64
	}{
		{countDebtorsQuery, &c.Debtors},
		{countInstrumentsQuery, &c.Instruments},
		{countPaymentsQuery, &c.Payments},
		{countProcessStagesQuery, &c.ProcessStages},
	}

	for _, t := range targets {
		g.Go(func() error {
			return r.db.QueryRowContext(gctx, t.query).Scan(t.dest)
		})
	}

	if err := g.Wait(); err != nil {
		return TableCounts{}, translateError(err, "failed to count records")
	}
	return c, nil
}
