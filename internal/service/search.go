package service

import (
	"context"
	"strings"

	"debtster-collections/internal/domain"
)

type debtorSearcher interface {
	Search(ctx context.Context, folded string) ([]domain.Debtor, error)
}

type instrumentSearcher interface {
	Search(ctx context.Context, folded string) ([]domain.Instrument, error)
}

type SearchService struct {
	debtors     debtorSearcher
	instruments instrumentSearcher
}

func NewSearchService(debtors debtorSearcher, instruments instrumentSearcher) *SearchService {
	return &SearchService{debtors: debtors, instruments: instruments}
}

// Search returns either []domain.Debtor or []domain.Instrument depending on
// target. The store matches on the folded query so accents and case are
// ignored; results keep its ordering.
func (s *SearchService) Search(ctx context.Context, q string, target domain.SearchTarget) (any, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, domain.ValidationError("q", "q is required")
	}
	folded := domain.Fold(q)

	switch target {
	case domain.SearchDebtors:
		return s.debtors.Search(ctx, folded)
	case domain.SearchInstruments:
		return s.instruments.Search(ctx, folded)
	}

	return nil, domain.ValidationError("type", "type must be one of: debtors, instruments")
}
