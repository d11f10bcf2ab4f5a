package repository

import (
	"context"
	"strconv"
	"strings"

	"kks-tracker/internal/database"
	"kks-tracker/internal/domain/document"
)

// DocumentFilter narrows document reads. WorkerID 0 means every worker.
type DocumentFilter struct {
	WorkerID int64
	document.Range
}

type DocumentRepository interface {
	List(ctx context.Context, f DocumentFilter) ([]document.Listing, error)
	ListRaw(ctx context.Context, f DocumentFilter) ([]document.Document, error)
	GetByID(ctx context.Context, id int64) (document.Document, error)
	Create(ctx context.Context, d document.Document) (document.Document, error)
	Update(ctx context.Context, d document.Document) (document.Document, error)
	Delete(ctx context.Context, id int64) error
}

type PostgresDocumentRepository struct {
	db database.DB
}

func NewPostgresDocumentRepository(db database.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

const documentColumns = `d.id, d.worker_id, d.program_id, d.reg_number, d.form_series, d.form_number, d.issued_at, d.valid_from, d.valid_to`

func (r *PostgresDocumentRepository) List(ctx context.Context, f DocumentFilter) ([]document.Listing, error) {
	where, args := documentWhere(f, 1)
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+`,
			p.name, o.full_name, o.short_name, w.full_name,
			COALESCE((
				SELECT array_agg(k.short_name ORDER BY k.short_name)
				FROM program_passports pp
				JOIN kks k ON k.id = pp.kks_id
				WHERE pp.program_id = d.program_id
			), '{}'::text[])
		 FROM documents d
		 JOIN programs p ON p.id = d.program_id
		 JOIN organizations o ON o.id = p.organization_id
		 JOIN workers w ON w.id = d.worker_id`+where+`
		 ORDER BY d.issued_at DESC NULLS LAST, d.id DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]document.Listing, 0)
	for rows.Next() {
		var l document.Listing
		if err := rows.Scan(
			&l.ID, &l.WorkerID, &l.ProgramID, &l.RegNumber, &l.FormSeries, &l.FormNumber,
			&l.IssuedAt, &l.ValidFrom, &l.ValidTo,
			&l.ProgramName, &l.OrgFullName, &l.OrgShortName, &l.WorkerName, &l.Criteria,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDocumentRepository) ListRaw(ctx context.Context, f DocumentFilter) ([]document.Document, error) {
	where, args := documentWhere(f, 1)
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+` FROM documents d`+where+` ORDER BY d.id ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]document.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id int64) (document.Document, error) {
	d, err := scanDocument(r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents d WHERE d.id = $1`, id))
	if err != nil {
		return document.Document{}, writeError(err)
	}
	return d, nil
}

func (r *PostgresDocumentRepository) Create(ctx context.Context, d document.Document) (document.Document, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO documents (worker_id, program_id, reg_number, form_series, form_number, issued_at, valid_from, valid_to)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		d.WorkerID, d.ProgramID, d.RegNumber, d.FormSeries, d.FormNumber, d.IssuedAt, d.ValidFrom, d.ValidTo,
	).Scan(&d.ID)
	if err != nil {
		return document.Document{}, writeError(err)
	}
	return d, nil
}

func (r *PostgresDocumentRepository) Update(ctx context.Context, d document.Document) (document.Document, error) {
	err := r.db.QueryRow(ctx,
		`UPDATE documents SET
			worker_id = $2, program_id = $3, reg_number = $4, form_series = $5, form_number = $6,
			issued_at = $7, valid_from = $8, valid_to = $9
		 WHERE id = $1
		 RETURNING id`,
		d.ID, d.WorkerID, d.ProgramID, d.RegNumber, d.FormSeries, d.FormNumber, d.IssuedAt, d.ValidFrom, d.ValidTo,
	).Scan(&d.ID)
	if err != nil {
		return document.Document{}, writeError(err)
	}
	return d, nil
}

func (r *PostgresDocumentRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return deleteError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocument(row database.Row) (document.Document, error) {
	var d document.Document
	err := row.Scan(&d.ID, &d.WorkerID, &d.ProgramID, &d.RegNumber, &d.FormSeries, &d.FormNumber, &d.IssuedAt, &d.ValidFrom, &d.ValidTo)
	return d, err
}

// documentWhere renders the filter against alias d with placeholders numbered
// from first.
func documentWhere(f DocumentFilter, first int) (string, []any) {
	var conds []string
	var args []any
	next := func(cond string, v any) {
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(first+len(args)), 1))
		args = append(args, v)
	}

	if f.WorkerID > 0 {
		next("d.worker_id = ?", f.WorkerID)
	}
	if f.From != nil {
		next("d.issued_at >= ?", *f.From)
	}
	if f.To != nil {
		next("d.issued_at <= ?", *f.To)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
