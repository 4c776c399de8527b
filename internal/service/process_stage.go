package service

import (
	"context"
	"strings"

	"debtster-collections/internal/domain"
	"debtster-collections/internal/repository"
)

type ProcessStageRepository interface {
	Create(ctx context.Context, in domain.ProcessStageInput) (int64, error)
	List(ctx context.Context, f repository.ProcessStagesFilter) ([]domain.ProcessStage, error)
}

type ProcessStageService struct {
	repo ProcessStageRepository
}

func NewProcessStageService(repo ProcessStageRepository) *ProcessStageService {
	return &ProcessStageService{repo: repo}
}

func (s *ProcessStageService) Create(ctx context.Context, in domain.ProcessStageInput) (int64, error) {
	in.Stage = strings.TrimSpace(in.Stage)
	in.Observations = trimOptional(in.Observations)
	in.Responsible = trimOptional(in.Responsible)
	if in.NextActionDate != nil && in.NextActionDate.IsZero() {
		in.NextActionDate = nil
	}

	if err := validateStruct(in); err != nil {
		return 0, err
	}
	if err := requireDate("stage_date", in.StageDate); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, in)
}

func (s *ProcessStageService) List(ctx context.Context, f repository.ProcessStagesFilter) ([]domain.ProcessStage, error) {
	return s.repo.List(ctx, f)
}
