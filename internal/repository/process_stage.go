package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"debtster-collections/internal/domain"
)

type ProcessStagesFilter struct {
	InstrumentID *int64
}

type ProcessStageRepository struct {
	db *sql.DB
}

func NewProcessStageRepository(db *sql.DB) *ProcessStageRepository {
	return &ProcessStageRepository{db: db}
}

func (r *ProcessStageRepository) Create(ctx context.Context, in domain.ProcessStageInput) (int64, error) {
	const query = `
		INSERT INTO process_stages (
			instrument_id, stage, stage_date, observations, responsible, next_action_date
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		in.InstrumentID, in.Stage, in.StageDate, in.Observations, in.Responsible, in.NextActionDate,
	).Scan(&id)
	if err != nil {
		return 0, translateError(err, "failed to create process stage")
	}
	return id, nil
}

func (r *ProcessStageRepository) List(ctx context.Context, f ProcessStagesFilter) ([]domain.ProcessStage, error) {
	base := `
		SELECT ps.id, ps.instrument_id, ps.stage, ps.stage_date,
			ps.observations, ps.responsible, ps.next_action_date
		FROM process_stages ps
	`

	where := []string{"1=1"}
	args := []any{}
	i := 1

	if f.InstrumentID != nil {
		where = append(where, fmt.Sprintf("ps.instrument_id = $%d", i))
		args = append(args, *f.InstrumentID)
		i++
	}

	query := base + " WHERE " + strings.Join(where, " AND ") + " ORDER BY ps.stage_date DESC, ps.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list process stages")
	}
	defer rows.Close()

	out := []domain.ProcessStage{}
	for rows.Next() {
		var ps domain.ProcessStage
		if err := rows.Scan(
			&ps.ID,
			&ps.InstrumentID,
			&ps.Stage,
			&ps.StageDate,
			&ps.Observations,
			&ps.Responsible,
			&ps.NextActionDate,
		); err != nil {
			return nil, translateError(err, "failed to list process stages")
		}
		out = append(out, ps)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to list process stages")
	}
	return out, nil
}
