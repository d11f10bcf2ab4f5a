package repository

import (
	"context"

	"kks-tracker/internal/database"
	"kks-tracker/internal/domain/catalog"
)

// ProgramPatch holds a partial update. Nil fields keep their stored value.
type ProgramPatch struct {
	Name           *string
	TypeID         *int64
	OrganizationID *int64
}

type ProgramRepository interface {
	List(ctx context.Context) ([]catalog.ProgramSummary, error)
	GetByID(ctx context.Context, id int64) (catalog.Program, error)
	Create(ctx context.Context, p catalog.Program) (catalog.Program, error)
	Update(ctx context.Context, id int64, patch ProgramPatch) error
	Delete(ctx context.Context, id int64) error
	SetPassport(ctx context.Context, programID int64, kksIDs []int64) error
	PassportsFor(ctx context.Context, programIDs []int64) (map[int64][]int64, error)
	Recommend(ctx context.Context, kksIDs []int64) ([]catalog.ProgramSummary, error)
}

type PostgresProgramRepository struct {
	db database.DB
}

func NewPostgresProgramRepository(db database.DB) *PostgresProgramRepository {
	return &PostgresProgramRepository{db: db}
}

func (r *PostgresProgramRepository) List(ctx context.Context) ([]catalog.ProgramSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name, t.name, o.full_name, o.short_name
		 FROM programs p
		 JOIN program_types t ON t.id = p.type_id
		 JOIN organizations o ON o.id = p.organization_id
		 ORDER BY p.name ASC, p.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	return scanProgramSummaries(rows)
}

func (r *PostgresProgramRepository) GetByID(ctx context.Context, id int64) (catalog.Program, error) {
	var p catalog.Program
	err := r.db.QueryRow(ctx,
		`SELECT p.id, p.name, p.type_id, t.name, p.organization_id, o.full_name, o.short_name
		 FROM programs p
		 JOIN program_types t ON t.id = p.type_id
		 JOIN organizations o ON o.id = p.organization_id
		 WHERE p.id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.TypeID, &p.TypeName, &p.OrganizationID, &p.OrgFullName, &p.OrgShortName)
	if err != nil {
		return catalog.Program{}, writeError(err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT k.id, k.full_name, k.short_name
		 FROM program_passports pp
		 JOIN kks k ON k.id = pp.kks_id
		 WHERE pp.program_id = $1
		 ORDER BY k.full_name ASC, k.id ASC`,
		id,
	)
	if err != nil {
		return catalog.Program{}, err
	}
	defer rows.Close()

	p.Passport = make([]catalog.KKS, 0)
	for rows.Next() {
		var k catalog.KKS
		if err := rows.Scan(&k.ID, &k.FullName, &k.ShortName); err != nil {
			return catalog.Program{}, err
		}
		p.Passport = append(p.Passport, k)
	}
	if err := rows.Err(); err != nil {
		return catalog.Program{}, err
	}
	return p, nil
}

func (r *PostgresProgramRepository) Create(ctx context.Context, p catalog.Program) (catalog.Program, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO programs (name, type_id, organization_id) VALUES ($1, $2, $3) RETURNING id`,
		p.Name, p.TypeID, p.OrganizationID,
	).Scan(&p.ID)
	if err != nil {
		return catalog.Program{}, writeError(err)
	}
	return p, nil
}

func (r *PostgresProgramRepository) Update(ctx context.Context, id int64, patch ProgramPatch) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE programs SET
			name = COALESCE($2, name),
			type_id = COALESCE($3, type_id),
			organization_id = COALESCE($4, organization_id)
		 WHERE id = $1`,
		id, patch.Name, patch.TypeID, patch.OrganizationID,
	)
	if err != nil {
		return writeError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProgramRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return deleteError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPassport replaces the program's criterion set atomically.
func (r *PostgresProgramRepository) SetPassport(ctx context.Context, programID int64, kksIDs []int64) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, `SELECT id FROM programs WHERE id = $1 FOR UPDATE`, programID).Scan(&id); err != nil {
			return writeError(err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM program_passports WHERE program_id = $1`, programID); err != nil {
			return err
		}
		if len(kksIDs) == 0 {
			return nil
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO program_passports (program_id, kks_id)
			 SELECT $1, k FROM unnest($2::bigint[]) AS k
			 ON CONFLICT DO NOTHING`,
			programID, kksIDs,
		)
		return writeError(err)
	})
}

// PassportsFor returns an entry for every existing program in programIDs,
// including programs whose passport is empty. Unknown ids are absent.
func (r *PostgresProgramRepository) PassportsFor(ctx context.Context, programIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(programIDs))
	if len(programIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT p.id, pp.kks_id
		 FROM programs p
		 LEFT JOIN program_passports pp ON pp.program_id = p.id
		 WHERE p.id = ANY($1)`,
		programIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pid int64
		var kid *int64
		if err := rows.Scan(&pid, &kid); err != nil {
			return nil, err
		}
		if _, ok := out[pid]; !ok {
			out[pid] = make([]int64, 0)
		}
		if kid != nil {
			out[pid] = append(out[pid], *kid)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProgramRepository) Recommend(ctx context.Context, kksIDs []int64) ([]catalog.ProgramSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT p.id, p.name, t.name, o.full_name, o.short_name
		 FROM programs p
		 JOIN program_passports pp ON pp.program_id = p.id
		 JOIN program_types t ON t.id = p.type_id
		 JOIN organizations o ON o.id = p.organization_id
		 WHERE pp.kks_id = ANY($1)
		 ORDER BY p.name ASC, p.id ASC`,
		kksIDs,
	)
	if err != nil {
		return nil, err
	}
	return scanProgramSummaries(rows)
}

func scanProgramSummaries(rows database.Rows) ([]catalog.ProgramSummary, error) {
	defer rows.Close()

	out := make([]catalog.ProgramSummary, 0)
	for rows.Next() {
		var p catalog.ProgramSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.TypeName, &p.OrgFullName, &p.OrgShortName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
