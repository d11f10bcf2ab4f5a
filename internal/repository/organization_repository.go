package repository

import (
	"context"

	"kks-tracker/internal/database"
	"kks-tracker/internal/domain/catalog"
)

type OrganizationRepository interface {
	List(ctx context.Context) ([]catalog.Organization, error)
	Create(ctx context.Context, o catalog.Organization) (catalog.Organization, error)
	Update(ctx context.Context, o catalog.Organization) (catalog.Organization, error)
	Delete(ctx context.Context, id int64) error
}

type PostgresOrganizationRepository struct {
	db database.DB
}

func NewPostgresOrganizationRepository(db database.DB) *PostgresOrganizationRepository {
	return &PostgresOrganizationRepository{db: db}
}

func (r *PostgresOrganizationRepository) List(ctx context.Context) ([]catalog.Organization, error) {
	rows, err := r.db.Query(ctx, `SELECT id, full_name, short_name FROM organizations ORDER BY full_name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Organization, 0)
	for rows.Next() {
		var o catalog.Organization
		if err := rows.Scan(&o.ID, &o.FullName, &o.ShortName); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOrganizationRepository) Create(ctx context.Context, o catalog.Organization) (catalog.Organization, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO organizations (full_name, short_name) VALUES ($1, $2) RETURNING id`,
		o.FullName, o.ShortName,
	).Scan(&o.ID)
	if err != nil {
		return catalog.Organization{}, writeError(err)
	}
	return o, nil
}

func (r *PostgresOrganizationRepository) Update(ctx context.Context, o catalog.Organization) (catalog.Organization, error) {
	err := r.db.QueryRow(ctx,
		`UPDATE organizations SET full_name = $2, short_name = $3 WHERE id = $1 RETURNING id`,
		o.ID, o.FullName, o.ShortName,
	).Scan(&o.ID)
	if err != nil {
		return catalog.Organization{}, writeError(err)
	}
	return o, nil
}

func (r *PostgresOrganizationRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return deleteError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
