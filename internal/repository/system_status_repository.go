package repository

import (
	"context"
	"time"

	"kks-tracker/internal/database"
)

type SystemTotals struct {
	Workers   int
	Documents int
	Programs  int
	Criteria  int
}

type SystemStatusRepository interface {
	GetTotals(ctx context.Context) (SystemTotals, error)
	CountDocumentsIssuedBetween(ctx context.Context, from, to time.Time) (int, error)
	Ping(ctx context.Context) error
}

type PostgresSystemStatusRepository struct {
	db database.DB
}

func NewPostgresSystemStatusRepository(db database.DB) *PostgresSystemStatusRepository {
	return &PostgresSystemStatusRepository{db: db}
}

func (r *PostgresSystemStatusRepository) GetTotals(ctx context.Context) (SystemTotals, error) {
	var out SystemTotals
	row := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(1) FROM workers),
			(SELECT COUNT(1) FROM documents),
			(SELECT COUNT(1) FROM programs),
			(SELECT COUNT(1) FROM kks)`,
	)
	if err := row.Scan(&out.Workers, &out.Documents, &out.Programs, &out.Criteria); err != nil {
		return SystemTotals{}, err
	}
	return out, nil
}

// CountDocumentsIssuedBetween counts documents issued in [from, to).
func (r *PostgresSystemStatusRepository) CountDocumentsIssuedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var c int
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(COUNT(1), 0) FROM documents WHERE issued_at >= $1 AND issued_at < $2`,
		from, to,
	)
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresSystemStatusRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
