package service

import (
	"context"

	"debtster-collections/internal/domain"
	"debtster-collections/internal/repository"
)

type PaymentRepository interface {
	Create(ctx context.Context, in domain.PaymentInput) (int64, error)
	List(ctx context.Context, f repository.PaymentsFilter) ([]domain.Payment, error)
}

type PaymentService struct {
	repo PaymentRepository
}

func NewPaymentService(repo PaymentRepository) *PaymentService {
	return &PaymentService{repo: repo}
}

// Create records a payment. Payments are append-only and never touch the
// instrument's status.
func (s *PaymentService) Create(ctx context.Context, in domain.PaymentInput) (int64, error) {
	in.Method = trimOptional(in.Method)
	in.Receipt = trimOptional(in.Receipt)

	if err := validateStruct(in); err != nil {
		return 0, err
	}
	if err := requireDate("payment_date", in.PaymentDate); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, in)
}

func (s *PaymentService) List(ctx context.Context, f repository.PaymentsFilter) ([]domain.Payment, error) {
	return s.repo.List(ctx, f)
}
