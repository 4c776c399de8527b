package service

import (
	"context"
	"time"

	"debtster-collections/internal/domain"
	"debtster-collections/internal/repository"
)

type StatisticsRepository interface {
	Aggregates(ctx context.Context, today domain.Date, upcomingDays int) (domain.Aggregates, error)
	Counts(ctx context.Context) (repository.TableCounts, error)
}

type StatisticsService struct {
	repo         StatisticsRepository
	upcomingDays int
	now          func() time.Time
}

func NewStatisticsService(repo StatisticsRepository, upcomingDays int, now func() time.Time) *StatisticsService {
	if now == nil {
		now = time.Now
	}
	if upcomingDays <= 0 {
		upcomingDays = 7
	}
	return &StatisticsService{repo: repo, upcomingDays: upcomingDays, now: now}
}

// Statistics summarizes the portfolio as of today.
func (s *StatisticsService) Statistics(ctx context.Context) (domain.Statistics, error) {
	agg, err := s.repo.Aggregates(ctx, domain.DateOf(s.now()), s.upcomingDays)
	if err != nil {
		return domain.Statistics{}, err
	}
	return agg.Statistics(), nil
}

func (s *StatisticsService) Counts(ctx context.Context) (repository.TableCounts, error) {
	return s.repo.Counts(ctx)
}
