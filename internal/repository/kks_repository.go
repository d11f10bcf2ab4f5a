package repository

import (
	"context"

	"kks-tracker/internal/database"
	"kks-tracker/internal/domain/catalog"
)

type KKSRepository interface {
	List(ctx context.Context) ([]catalog.KKS, error)
	GetByID(ctx context.Context, id int64) (catalog.KKS, error)
	Create(ctx context.Context, k catalog.KKS) (catalog.KKS, error)
	Update(ctx context.Context, k catalog.KKS) (catalog.KKS, error)
	Delete(ctx context.Context, id int64) error
}

type PostgresKKSRepository struct {
	db database.DB
}

func NewPostgresKKSRepository(db database.DB) *PostgresKKSRepository {
	return &PostgresKKSRepository{db: db}
}

func (r *PostgresKKSRepository) List(ctx context.Context) ([]catalog.KKS, error) {
	rows, err := r.db.Query(ctx, `SELECT id, full_name, short_name FROM kks ORDER BY full_name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.KKS, 0)
	for rows.Next() {
		var k catalog.KKS
		if err := rows.Scan(&k.ID, &k.FullName, &k.ShortName); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresKKSRepository) GetByID(ctx context.Context, id int64) (catalog.KKS, error) {
	var k catalog.KKS
	err := r.db.QueryRow(ctx, `SELECT id, full_name, short_name FROM kks WHERE id = $1`, id).
		Scan(&k.ID, &k.FullName, &k.ShortName)
	if err != nil {
		return catalog.KKS{}, writeError(err)
	}
	return k, nil
}

func (r *PostgresKKSRepository) Create(ctx context.Context, k catalog.KKS) (catalog.KKS, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO kks (full_name, short_name) VALUES ($1, $2) RETURNING id`,
		k.FullName, k.ShortName,
	).Scan(&k.ID)
	if err != nil {
		return catalog.KKS{}, writeError(err)
	}
	return k, nil
}

func (r *PostgresKKSRepository) Update(ctx context.Context, k catalog.KKS) (catalog.KKS, error) {
	err := r.db.QueryRow(ctx,
		`UPDATE kks SET full_name = $2, short_name = $3 WHERE id = $1 RETURNING id`,
		k.ID, k.FullName, k.ShortName,
	).Scan(&k.ID)
	if err != nil {
		return catalog.KKS{}, writeError(err)
	}
	return k, nil
}

func (r *PostgresKKSRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM kks WHERE id = $1`, id)
	if err != nil {
		return deleteError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
