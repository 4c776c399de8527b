package repository

import (
	"errors"
	"fmt"
	"testing"

	"debtster-collections/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		kind  domain.Kind
		field string
	}{
		{
			name:  "unique tax id",
			err:   &pgconn.PgError{Code: sqlStateUniqueViolation, ConstraintName: constraintDebtorTaxID},
			kind:  domain.KindConflict,
			field: "",
		},
		{
			name:  "missing debtor",
			err:   &pgconn.PgError{Code: sqlStateForeignKeyViolation, ConstraintName: constraintInstrumentDebtor},
			kind:  domain.KindReference,
			field: "debtor_id",
		},
		{
			name:  "wrapped missing instrument",
			err:   fmt.Errorf("exec: %w", &pgconn.PgError{Code: sqlStateForeignKeyViolation, ConstraintName: constraintPaymentInstrument}),
			kind:  domain.KindReference,
			field: "instrument_id",
		},
		{
			name:  "not null",
			err:   &pgconn.PgError{Code: sqlStateNotNullViolation, ColumnName: "name"},
			kind:  domain.KindValidation,
			field: "name",
		},
		{
			name:  "check amount",
			err:   &pgconn.PgError{Code: sqlStateCheckViolation, ConstraintName: constraintPaymentAmount},
			kind:  domain.KindValidation,
			field: "amount",
		},
		{
			name: "connection refused",
			err:  errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			kind: domain.KindInternal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateError(tc.err, "operation failed")

			var de *domain.Error
			if !errors.As(got, &de) {
				t.Fatalf("expected *domain.Error, got %T", got)
			}
			if de.Kind != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, de.Kind)
			}
			if tc.field != "" && de.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, de.Field)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("cause must stay reachable through Unwrap")
			}
		})
	}
}

func TestTranslateError_InternalHidesRawText(t *testing.T) {
	got := translateError(errors.New(`relation "debtors" does not exist`), "failed to list debtors")
	if msg := domain.PublicMessage(got); msg != "failed to list debtors" {
		t.Fatalf("raw storage text leaked: %q", msg)
	}
}

func TestTranslateDeleteError_ForeignKeyIsConflict(t *testing.T) {
	err := translateDeleteError(&pgconn.PgError{Code: sqlStateForeignKeyViolation, ConstraintName: constraintInstrumentDebtor}, "failed to delete debtor")
	if domain.KindOf(err) != domain.KindConflict {
		t.Fatalf("expected conflict, got %s", domain.KindOf(err))
	}
}
