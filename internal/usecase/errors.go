package usecase

import (
	"errors"

	"kks-tracker/internal/repository"
)

var (
	ErrInternal            = errors.New("internal error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInUse               = errors.New("still referenced")
	ErrReferenceNotFound   = errors.New("referenced entity does not exist")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// ErrAggregationFailed means a derived view could not be computed. It is
	// never reported as an empty result.
	ErrAggregationFailed = errors.New("aggregation failed")
)

// storeError translates repository failures into usecase errors.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, repository.ErrReferenceMissing):
		return ErrReferenceNotFound
	case errors.Is(err, repository.ErrReferenced):
		return ErrInUse
	}
	return ErrInternal
}
