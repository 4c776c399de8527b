package service

import (
	"errors"

	"debtster-collections/internal/domain"
)

func asDomainError(err error, target **domain.Error) bool {
	return errors.As(err, target)
}
