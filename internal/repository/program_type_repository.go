package repository

import (
	"context"

	"kks-tracker/internal/database"
	"kks-tracker/internal/domain/catalog"
)

type ProgramTypeRepository interface {
	List(ctx context.Context) ([]catalog.ProgramType, error)
	Create(ctx context.Context, name string) (catalog.ProgramType, error)
	Update(ctx context.Context, t catalog.ProgramType) (catalog.ProgramType, error)
	Delete(ctx context.Context, id int64) error
}

type PostgresProgramTypeRepository struct {
	db database.DB
}

func NewPostgresProgramTypeRepository(db database.DB) *PostgresProgramTypeRepository {
	return &PostgresProgramTypeRepository{db: db}
}

func (r *PostgresProgramTypeRepository) List(ctx context.Context) ([]catalog.ProgramType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM program_types ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.ProgramType, 0)
	for rows.Next() {
		var t catalog.ProgramType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProgramTypeRepository) Create(ctx context.Context, name string) (catalog.ProgramType, error) {
	t := catalog.ProgramType{Name: name}
	if err := r.db.QueryRow(ctx, `INSERT INTO program_types (name) VALUES ($1) RETURNING id`, name).Scan(&t.ID); err != nil {
		return catalog.ProgramType{}, writeError(err)
	}
	return t, nil
}

func (r *PostgresProgramTypeRepository) Update(ctx context.Context, t catalog.ProgramType) (catalog.ProgramType, error) {
	err := r.db.QueryRow(ctx, `UPDATE program_types SET name = $2 WHERE id = $1 RETURNING id`, t.ID, t.Name).Scan(&t.ID)
	if err != nil {
		return catalog.ProgramType{}, writeError(err)
	}
	return t, nil
}

func (r *PostgresProgramTypeRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM program_types WHERE id = $1`, id)
	if err != nil {
		return deleteError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
