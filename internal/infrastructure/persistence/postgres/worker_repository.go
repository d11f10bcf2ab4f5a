package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"kks-tracker/internal/database"
	"kks-tracker/internal/domain/worker"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const workerColumns = `id, full_name, job_title, place_of_work, degree, rank, login, password_hash, role, created_at`

type WorkerRepository struct {
	db *sql.DB

	stmtCreate       *sql.Stmt
	stmtGetByID      *sql.Stmt
	stmtGetByLogin   *sql.Stmt
	stmtUpdate       *sql.Stmt
	stmtUpdateWithPw *sql.Stmt
	stmtDelete       *sql.Stmt
	stmtAssign       *sql.Stmt
	stmtUnassign     *sql.Stmt
	stmtAssigned     *sql.Stmt
}

func NewWorkerRepository(db database.DB) (*WorkerRepository, error) {
	r := &WorkerRepository{db: db.SQLDB()}
	if r.db == nil {
		return nil, errors.New("nil db")
	}

	prepare := func(dst **sql.Stmt, query string) error {
		s, err := r.db.PrepareContext(context.Background(), query)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}

	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.stmtCreate, `INSERT INTO workers (full_name, job_title, place_of_work, degree, rank, login, password_hash, role)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + workerColumns},
		{&r.stmtGetByID, `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`},
		{&r.stmtGetByLogin, `SELECT ` + workerColumns + ` FROM workers WHERE login = $1`},
		{&r.stmtUpdate, `UPDATE workers SET full_name = $2, job_title = $3, place_of_work = $4, degree = $5, rank = $6, login = $7, role = $8
			WHERE id = $1 RETURNING ` + workerColumns},
		{&r.stmtUpdateWithPw, `UPDATE workers SET full_name = $2, job_title = $3, place_of_work = $4, degree = $5, rank = $6, login = $7, role = $8, password_hash = $9
			WHERE id = $1 RETURNING ` + workerColumns},
		{&r.stmtDelete, `DELETE FROM workers WHERE id = $1`},
		{&r.stmtAssign, `INSERT INTO worker_kks (worker_id, kks_id) VALUES ($1, $2)`},
		{&r.stmtUnassign, `DELETE FROM worker_kks WHERE worker_id = $1 AND kks_id = $2`},
		{&r.stmtAssigned, `SELECT kks_id FROM worker_kks WHERE worker_id = $1 ORDER BY kks_id ASC`},
	}
	for _, s := range stmts {
		if err := prepare(s.dst, s.query); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *WorkerRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByLogin)
	closeStmt(r.stmtUpdate)
	closeStmt(r.stmtUpdateWithPw)
	closeStmt(r.stmtDelete)
	closeStmt(r.stmtAssign)
	closeStmt(r.stmtUnassign)
	closeStmt(r.stmtAssigned)

	return firstErr
}

func (r *WorkerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	row := r.stmtCreate.QueryRowContext(ctx, w.FullName, w.JobTitle, w.PlaceOfWork, w.Degree, w.Rank, w.Login, w.PasswordHash, int16(w.Role))
	created, err := scanWorker(row)
	if err != nil {
		return worker.Worker{}, mapWorkerWriteError(err)
	}
	return created, nil
}

// Update keeps the stored password hash unless updatePassword is set.
func (r *WorkerRepository) Update(ctx context.Context, w worker.Worker, updatePassword bool) (worker.Worker, error) {
	var row *sql.Row
	if updatePassword {
		row = r.stmtUpdateWithPw.QueryRowContext(ctx, w.ID, w.FullName, w.JobTitle, w.PlaceOfWork, w.Degree, w.Rank, w.Login, int16(w.Role), w.PasswordHash)
	} else {
		row = r.stmtUpdate.QueryRowContext(ctx, w.ID, w.FullName, w.JobTitle, w.PlaceOfWork, w.Degree, w.Rank, w.Login, int16(w.Role))
	}
	updated, err := scanWorker(row)
	if err != nil {
		return worker.Worker{}, mapWorkerWriteError(err)
	}
	return updated, nil
}

func (r *WorkerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.stmtDelete.ExecContext(ctx, id)
	if err != nil {
		if pgCode(err) == pgerrcode.ForeignKeyViolation {
			return worker.ErrHasDocuments
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return worker.ErrNotFound
	}
	return nil
}

func (r *WorkerRepository) GetByID(ctx context.Context, id int64) (worker.Worker, error) {
	return scanWorker(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *WorkerRepository) GetByLogin(ctx context.Context, login string) (worker.Worker, error) {
	return scanWorker(r.stmtGetByLogin.QueryRowContext(ctx, login))
}

func (r *WorkerRepository) ListStaff(ctx context.Context) ([]worker.Worker, error) {
	return r.list(ctx, `SELECT `+workerColumns+` FROM workers WHERE role = 0 ORDER BY full_name ASC, id ASC`)
}

func (r *WorkerRepository) ListAll(ctx context.Context) ([]worker.Worker, error) {
	return r.list(ctx, `SELECT `+workerColumns+` FROM workers ORDER BY full_name ASC, id ASC`)
}

func (r *WorkerRepository) list(ctx context.Context, query string) ([]worker.Worker, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]worker.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *WorkerRepository) AssignCriterion(ctx context.Context, a worker.Assignment) error {
	_, err := r.stmtAssign.ExecContext(ctx, a.WorkerID, a.CriterionID)
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case pgerrcode.UniqueViolation:
		return worker.ErrAlreadyAssigned
	case pgerrcode.ForeignKeyViolation:
		if strings.Contains(constraintName(err), "worker_id") {
			return worker.ErrNotFound
		}
		return worker.ErrUnknownCriterion
	}
	return err
}

func (r *WorkerRepository) UnassignCriterion(ctx context.Context, a worker.Assignment) error {
	res, err := r.stmtUnassign.ExecContext(ctx, a.WorkerID, a.CriterionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return worker.ErrUnknownCriterion
	}
	return nil
}

func (r *WorkerRepository) ListAssignedCriteria(ctx context.Context, workerID int64) ([]int64, error) {
	rows, err := r.stmtAssigned.QueryContext(ctx, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type workerRow interface {
	Scan(dest ...any) error
}

func scanWorker(row workerRow) (worker.Worker, error) {
	var w worker.Worker
	var role int16
	if err := row.Scan(&w.ID, &w.FullName, &w.JobTitle, &w.PlaceOfWork, &w.Degree, &w.Rank, &w.Login, &w.PasswordHash, &role, &w.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worker.Worker{}, worker.ErrNotFound
		}
		return worker.Worker{}, err
	}
	w.Role = worker.Role(role)
	return w, nil
}

func mapWorkerWriteError(err error) error {
	if pgCode(err) == pgerrcode.UniqueViolation {
		return worker.ErrLoginTaken
	}
	return err
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
