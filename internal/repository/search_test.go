package repository

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"debtster-collections/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFoldTable_AgreesWithDomainFold(t *testing.T) {
	from := []rune(accentedRunes)
	to := []rune(plainRunes)
	if len(from) != len(to) {
		t.Fatalf("translate table is unbalanced: %d vs %d runes", len(from), len(to))
	}
	for i := range from {
		if got, want := domain.Fold(string(from[i])), strings.ToLower(string(to[i])); got != want {
			t.Errorf("%q folds to %q in Go but %q in SQL", from[i], got, want)
		}
	}
}

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"lopez": "%lopez%",
		"50%":   `%50\%%`,
		"fa_1":  `%fa\_1%`,
		`a\b`:   `%a\\b%`,
	}
	for in, want := range cases {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDebtorRepository_Search(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDebtorRepository(db)

	created := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM debtors WHERE lower(translate(name,")).
		WithArgs("%lopez%").
		WillReturnRows(sqlmock.NewRows(debtorCols).
			AddRow(2, "20-98765432-1", "Comercio López Hnos.", nil, nil, nil, created, true))

	got, err := repo.Search(context.Background(), "lopez")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestInstrumentRepository_SearchMatchesDebtorName(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInstrumentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("lower(translate(COALESCE(d.name, ''),")).
		WithArgs("%ch-0001%").
		WillReturnRows(sqlmock.NewRows(instrumentCols))

	got, err := repo.Search(context.Background(), "ch-0001")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
