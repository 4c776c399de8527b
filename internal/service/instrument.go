package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"debtster-collections/internal/domain"
	"debtster-collections/internal/metrics"
)

type InstrumentRepository interface {
	Create(ctx context.Context, in domain.InstrumentInput) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Instrument, error)
	List(ctx context.Context) ([]domain.Instrument, error)
	Update(ctx context.Context, id int64, in domain.InstrumentInput) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	SetAccruedInterest(ctx context.Context, id int64, amount float64, today domain.Date) (int64, error)
}

type InstrumentConfig struct {
	Types       []string
	DefaultRate float64
}

type InstrumentService struct {
	repo        InstrumentRepository
	types       map[string]struct{}
	typeList    string
	defaultRate float64
	now         func() time.Time
}

func NewInstrumentService(repo InstrumentRepository, cfg InstrumentConfig, now func() time.Time) *InstrumentService {
	if now == nil {
		now = time.Now
	}

	types := make(map[string]struct{}, len(cfg.Types))
	names := make([]string, 0, len(cfg.Types))
	for _, t := range cfg.Types {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := types[t]; !dup {
			names = append(names, t)
		}
		types[t] = struct{}{}
	}
	sort.Strings(names)

	return &InstrumentService{
		repo:        repo,
		types:       types,
		typeList:    strings.Join(names, ", "),
		defaultRate: cfg.DefaultRate,
		now:         now,
	}
}

func (s *InstrumentService) validate(in domain.InstrumentInput) (domain.InstrumentInput, error) {
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	in.Number = strings.TrimSpace(in.Number)
	in.Status = domain.InstrumentStatus(strings.ToUpper(strings.TrimSpace(string(in.Status))))

	if err := validateStruct(in); err != nil {
		return in, err
	}
	if len(s.types) > 0 {
		if _, ok := s.types[in.Type]; !ok {
			return in, domain.ValidationError("type", fmt.Sprintf("type must be one of: %s", s.typeList))
		}
	}
	if err := requireDate("issue_date", in.IssueDate); err != nil {
		return in, err
	}
	if err := requireDate("due_date", in.DueDate); err != nil {
		return in, err
	}
	if in.DueDate.Before(in.IssueDate) {
		return in, domain.ValidationError("due_date", "due_date must not be before issue_date")
	}
	if in.Status != "" && !in.Status.Valid() {
		return in, domain.ValidationError("status", "status must be one of: PENDING, IN_PROCESS, PAID")
	}
	return in, nil
}

func (s *InstrumentService) Create(ctx context.Context, in domain.InstrumentInput) (int64, error) {
	in, err := s.validate(in)
	if err != nil {
		return 0, err
	}
	if in.InterestRate == nil {
		rate := s.defaultRate
		in.InterestRate = &rate
	}
	if in.Status == "" {
		in.Status = domain.StatusPending
	}
	return s.repo.Create(ctx, in)
}

func (s *InstrumentService) Get(ctx context.Context, id int64) (*domain.Instrument, error) {
	return s.repo.Get(ctx, id)
}

func (s *InstrumentService) List(ctx context.Context) ([]domain.Instrument, error) {
	return s.repo.List(ctx)
}

// Update returns the number of instruments changed; zero means id does not exist.
func (s *InstrumentService) Update(ctx context.Context, id int64, in domain.InstrumentInput) (int64, error) {
	in, err := s.validate(in)
	if err != nil {
		return 0, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *InstrumentService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.Delete(ctx, id)
}

// RecalculateInterest recomputes simple interest accrued since the due date
// and stores it. Instruments that are not overdue are returned untouched and
// changed is false.
func (s *InstrumentService) RecalculateInterest(ctx context.Context, id int64) (*domain.Instrument, bool, error) {
	inst, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	today := domain.DateOf(s.now())
	if domain.DaysOverdue(inst.DueDate, today) <= 0 {
		metrics.InterestRecalculated(false)
		return inst, false, nil
	}

	accrued := domain.AccruedInterest(inst.Amount, inst.InterestRate, inst.DueDate, today)
	n, err := s.repo.SetAccruedInterest(ctx, id, accrued, today)
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		// deleted or rescheduled between the read and the write
		current, err := s.repo.Get(ctx, id)
		return current, false, err
	}

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	metrics.InterestRecalculated(true)
	return updated, true, nil
}
