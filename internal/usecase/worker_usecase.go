package usecase

import (
	"context"
	"errors"
	"strings"

	"kks-tracker/internal/domain/worker"
	ucauth "kks-tracker/internal/usecase/auth"
)

type WorkerInput struct {
	FullName    string
	JobTitle    string
	PlaceOfWork string
	Degree      string
	Rank        string
	Login       string
	Password    string
	Role        worker.Role
}

type WorkerUsecase interface {
	ListStaff(ctx context.Context) ([]worker.Worker, error)
	ListAll(ctx context.Context) ([]worker.Worker, error)
	Get(ctx context.Context, id int64) (worker.Worker, error)
	Create(ctx context.Context, in WorkerInput) (worker.Worker, error)
	Update(ctx context.Context, id int64, in WorkerInput) (worker.Worker, error)
	Delete(ctx context.Context, id int64) error
	AssignCriterion(ctx context.Context, workerID, criterionID int64) error
	UnassignCriterion(ctx context.Context, workerID, criterionID int64) error
	ListAssignedCriteria(ctx context.Context, workerID int64) ([]int64, error)
}

type Worker struct {
	repo    worker.Repository
	lookups *Lookups
}

func NewWorkerUsecase(repo worker.Repository, lookups *Lookups) *Worker {
	return &Worker{repo: repo, lookups: lookups}
}

// ListStaff returns role 0 workers. Password hashes never reach the cache.
func (u *Worker) ListStaff(ctx context.Context) ([]worker.Worker, error) {
	items, err := cachedList(ctx, u.lookups, LookupKey(FamilyWorker), func(ctx context.Context) ([]worker.Worker, error) {
		ws, err := u.repo.ListStaff(ctx)
		if err != nil {
			return nil, err
		}
		return sanitizeWorkers(ws), nil
	})
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Worker) ListAll(ctx context.Context) ([]worker.Worker, error) {
	ws, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return sanitizeWorkers(ws), nil
}

func (u *Worker) Get(ctx context.Context, id int64) (worker.Worker, error) {
	if id <= 0 {
		return worker.Worker{}, ErrInvalidInput
	}
	w, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return worker.Worker{}, workerError(err)
	}
	return ucauth.Sanitize(w), nil
}

func (u *Worker) Create(ctx context.Context, in WorkerInput) (worker.Worker, error) {
	w, err := in.normalize()
	if err != nil {
		return worker.Worker{}, err
	}
	if in.Password == "" {
		return worker.Worker{}, ErrInvalidInput
	}
	hash, err := ucauth.HashPassword(in.Password)
	if err != nil {
		return worker.Worker{}, passwordError(err)
	}
	w.PasswordHash = hash

	created, err := u.repo.Create(ctx, w)
	if err != nil {
		return worker.Worker{}, workerError(err)
	}
	u.lookups.Invalidate(ctx, FamilyWorker)
	return ucauth.Sanitize(created), nil
}

// Update keeps the stored password when in.Password is empty.
func (u *Worker) Update(ctx context.Context, id int64, in WorkerInput) (worker.Worker, error) {
	if id <= 0 {
		return worker.Worker{}, ErrInvalidInput
	}
	w, err := in.normalize()
	if err != nil {
		return worker.Worker{}, err
	}
	w.ID = id

	withPassword := in.Password != ""
	if withPassword {
		hash, err := ucauth.HashPassword(in.Password)
		if err != nil {
			return worker.Worker{}, passwordError(err)
		}
		w.PasswordHash = hash
	}

	updated, err := u.repo.Update(ctx, w, withPassword)
	if err != nil {
		return worker.Worker{}, workerError(err)
	}
	u.lookups.Invalidate(ctx, FamilyWorker)
	return ucauth.Sanitize(updated), nil
}

func (u *Worker) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return workerError(err)
	}
	u.lookups.Invalidate(ctx, FamilyWorker)
	return nil
}

func (u *Worker) AssignCriterion(ctx context.Context, workerID, criterionID int64) error {
	if workerID <= 0 || criterionID <= 0 {
		return ErrInvalidInput
	}
	err := u.repo.AssignCriterion(ctx, worker.Assignment{WorkerID: workerID, CriterionID: criterionID})
	if errors.Is(err, worker.ErrUnknownCriterion) {
		return ErrReferenceNotFound
	}
	return workerError(err)
}

func (u *Worker) UnassignCriterion(ctx context.Context, workerID, criterionID int64) error {
	if workerID <= 0 || criterionID <= 0 {
		return ErrInvalidInput
	}
	err := u.repo.UnassignCriterion(ctx, worker.Assignment{WorkerID: workerID, CriterionID: criterionID})
	if errors.Is(err, worker.ErrUnknownCriterion) {
		return ErrNotFound
	}
	return workerError(err)
}

func (u *Worker) ListAssignedCriteria(ctx context.Context, workerID int64) ([]int64, error) {
	if workerID <= 0 {
		return nil, ErrInvalidInput
	}
	ids, err := u.repo.ListAssignedCriteria(ctx, workerID)
	if err != nil {
		return nil, ErrInternal
	}
	return ids, nil
}

func (in WorkerInput) normalize() (worker.Worker, error) {
	w := worker.Worker{
		FullName:    strings.TrimSpace(in.FullName),
		JobTitle:    strings.TrimSpace(in.JobTitle),
		PlaceOfWork: strings.TrimSpace(in.PlaceOfWork),
		Degree:      strings.TrimSpace(in.Degree),
		Rank:        strings.TrimSpace(in.Rank),
		Login:       ucauth.NormalizeLogin(in.Login),
		Role:        in.Role,
	}
	if w.FullName == "" || w.JobTitle == "" || w.PlaceOfWork == "" || w.Login == "" {
		return worker.Worker{}, ErrInvalidInput
	}
	if !w.Role.Valid() {
		return worker.Worker{}, ErrInvalidInput
	}
	return w, nil
}

func workerError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, worker.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, worker.ErrLoginTaken), errors.Is(err, worker.ErrAlreadyAssigned):
		return ErrConflict
	case errors.Is(err, worker.ErrHasDocuments):
		return ErrInUse
	}
	return ErrInternal
}

func passwordError(err error) error {
	if errors.Is(err, ucauth.ErrInvalidInput) {
		return ErrInvalidInput
	}
	return ErrInternal
}

func sanitizeWorkers(ws []worker.Worker) []worker.Worker {
	out := make([]worker.Worker, 0, len(ws))
	for _, w := range ws {
		out = append(out, ucauth.Sanitize(w))
	}
	return out
}
