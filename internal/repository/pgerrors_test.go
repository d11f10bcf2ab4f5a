package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	assert.NoError(t, writeError(nil))
	assert.True(t, errors.Is(writeError(pgx.ErrNoRows), ErrNotFound))

	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "workers_login_key"}
	err := writeError(fmt.Errorf("insert: %w", dup))
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, "workers_login_key", ConstraintName(err))

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "documents_program_id_fkey"}
	assert.True(t, errors.Is(writeError(fk), ErrReferenceMissing))

	other := errors.New("connection reset")
	assert.Equal(t, other, writeError(other))
}

func TestDeleteError(t *testing.T) {
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "program_passports_kks_id_fkey"}
	err := deleteError(fk)
	assert.True(t, errors.Is(err, ErrReferenced))
	assert.False(t, errors.Is(err, ErrReferenceMissing))

	restrict := &pgconn.PgError{Code: pgerrcode.RestrictViolation}
	assert.True(t, errors.Is(deleteError(restrict), ErrReferenced))

	assert.Equal(t, "", ConstraintName(errors.New("plain")))
}
