package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrReferenceMissing = errors.New("referenced record does not exist")
	ErrReferenced       = errors.New("record is still referenced")
)

// writeError maps constraint failures raised by INSERT or UPDATE.
func writeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicate, pgErr)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrReferenceMissing, pgErr)
		}
	}
	return err
}

// deleteError maps constraint failures raised by DELETE, where a foreign key
// violation means children still point at the row.
func deleteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
			return fmt.Errorf("%w: %w", ErrReferenced, pgErr)
		}
	}
	return err
}

// ConstraintName returns the violated constraint, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
