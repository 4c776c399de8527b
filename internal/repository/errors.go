package repository

import (
	"database/sql"
	"errors"

	"debtster-collections/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
	sqlStateInvalidText         = "22P02"
)

type constraintInfo struct {
	field   string
	message string
}

var constraintMessages = map[string]constraintInfo{
	constraintDebtorTaxID:        {field: "tax_id", message: "a debtor with this tax_id already exists"},
	constraintInstrumentDebtor:   {field: "debtor_id", message: "debtor does not exist"},
	constraintPaymentInstrument:  {field: "instrument_id", message: "instrument does not exist"},
	constraintStageInstrument:    {field: "instrument_id", message: "instrument does not exist"},
	constraintInstrumentAmount:   {field: "amount", message: "amount must be positive"},
	constraintPaymentAmount:      {field: "amount", message: "amount must be positive"},
	constraintInstrumentInterest: {field: "accrued_interest", message: "accrued interest cannot be negative"},
}

// translateError maps a storage error raised by an INSERT, UPDATE or SELECT
// into a domain error. fallback is the client message for unexpected failures.
func translateError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return domain.InternalError(fallback, err)
	}

	info, known := constraintMessages[pgErr.ConstraintName]

	switch pgErr.Code {
	case sqlStateUniqueViolation:
		if !known {
			info.message = "record already exists"
		}
		return domain.ConflictError(info.message, err)
	case sqlStateForeignKeyViolation:
		if !known {
			info.message = "referenced record does not exist"
		}
		return domain.ReferenceError(info.field, info.message, err)
	case sqlStateNotNullViolation:
		return &domain.Error{Kind: domain.KindValidation, Field: pgErr.ColumnName, Message: pgErr.ColumnName + " is required", Err: err}
	case sqlStateCheckViolation:
		if !known {
			info.message = "value violates a constraint"
		}
		return &domain.Error{Kind: domain.KindValidation, Field: info.field, Message: info.message, Err: err}
	case sqlStateInvalidText:
		return &domain.Error{Kind: domain.KindValidation, Message: "malformed value", Err: err}
	}

	return domain.InternalError(fallback, err)
}

// translateDeleteError treats a foreign key violation as a conflict: the row
// still has dependents and deletes never cascade.
func translateDeleteError(err error, fallback string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateForeignKeyViolation {
		return domain.ConflictError("record has dependent records and cannot be deleted", err)
	}
	return translateError(err, fallback)
}

func notFoundOr(err error, notFound, fallback string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError(notFound)
	}
	return translateError(err, fallback)
}
