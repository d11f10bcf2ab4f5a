package repository

import (
	"context"

	"kks-tracker/internal/database"
)

type CriterionCount struct {
	CriterionID int64
	ShortName   string
	FullName    string
	Documents   int
}

type ProgramTypeCount struct {
	TypeID    int64
	Name      string
	Documents int
}

type AnalyticsRepository interface {
	CountByCriterion(ctx context.Context, f DocumentFilter) ([]CriterionCount, error)
	CountByProgramType(ctx context.Context, f DocumentFilter) ([]ProgramTypeCount, error)
}

type PostgresAnalyticsRepository struct {
	db database.DB
}

func NewPostgresAnalyticsRepository(db database.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

// CountByCriterion counts documents whose program passport covers each
// criterion. A document counts once per covered criterion.
func (r *PostgresAnalyticsRepository) CountByCriterion(ctx context.Context, f DocumentFilter) ([]CriterionCount, error) {
	where, args := documentWhere(f, 1)
	rows, err := r.db.Query(ctx,
		`SELECT k.id, k.short_name, k.full_name, COUNT(d.id)
		 FROM documents d
		 JOIN program_passports pp ON pp.program_id = d.program_id
		 JOIN kks k ON k.id = pp.kks_id`+where+`
		 GROUP BY k.id, k.short_name, k.full_name
		 ORDER BY k.short_name ASC, k.id ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CriterionCount, 0)
	for rows.Next() {
		var c CriterionCount
		if err := rows.Scan(&c.CriterionID, &c.ShortName, &c.FullName, &c.Documents); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByProgramType reports every program type, including those with no
// matching documents.
func (r *PostgresAnalyticsRepository) CountByProgramType(ctx context.Context, f DocumentFilter) ([]ProgramTypeCount, error) {
	where, args := documentWhere(f, 1)
	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.name, COUNT(x.id)
		 FROM program_types t
		 LEFT JOIN (
			SELECT d.id, p.type_id
			FROM documents d
			JOIN programs p ON p.id = d.program_id`+where+`
		 ) x ON x.type_id = t.id
		 GROUP BY t.id, t.name
		 ORDER BY t.name ASC, t.id ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProgramTypeCount, 0)
	for rows.Next() {
		var c ProgramTypeCount
		if err := rows.Scan(&c.TypeID, &c.Name, &c.Documents); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
