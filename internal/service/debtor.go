package service

import (
	"context"
	"strings"

	"debtster-collections/internal/domain"
)

type DebtorRepository interface {
	Create(ctx context.Context, in domain.DebtorInput) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Debtor, error)
	List(ctx context.Context) ([]domain.Debtor, error)
	Update(ctx context.Context, id int64, in domain.DebtorInput) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type DebtorService struct {
	repo DebtorRepository
}

func NewDebtorService(repo DebtorRepository) *DebtorService {
	return &DebtorService{repo: repo}
}

func normalizeDebtor(in domain.DebtorInput) domain.DebtorInput {
	in.TaxID = strings.TrimSpace(in.TaxID)
	in.Name = strings.TrimSpace(in.Name)
	in.Address = trimOptional(in.Address)
	in.Phone = trimOptional(in.Phone)
	in.Email = trimOptional(in.Email)
	return in
}

func (s *DebtorService) Create(ctx context.Context, in domain.DebtorInput) (int64, error) {
	in = normalizeDebtor(in)
	if err := validateStruct(in); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, in)
}

func (s *DebtorService) Get(ctx context.Context, id int64) (*domain.Debtor, error) {
	return s.repo.Get(ctx, id)
}

func (s *DebtorService) List(ctx context.Context) ([]domain.Debtor, error) {
	return s.repo.List(ctx)
}

// Update returns the number of debtors changed; zero means id does not exist.
func (s *DebtorService) Update(ctx context.Context, id int64, in domain.DebtorInput) (int64, error) {
	in = normalizeDebtor(in)
	if err := validateStruct(in); err != nil {
		return 0, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *DebtorService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.Delete(ctx, id)
}
