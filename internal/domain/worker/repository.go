package worker

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("worker not found")
	ErrLoginTaken       = errors.New("login already taken")
	ErrHasDocuments     = errors.New("worker has documents")
	ErrAlreadyAssigned  = errors.New("criterion already assigned")
	ErrUnknownCriterion = errors.New("criterion not found")
)

type Repository interface {
	Create(ctx context.Context, w Worker) (Worker, error)
	Update(ctx context.Context, w Worker, updatePassword bool) (Worker, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Worker, error)
	GetByLogin(ctx context.Context, login string) (Worker, error)
	ListStaff(ctx context.Context) ([]Worker, error)
	ListAll(ctx context.Context) ([]Worker, error)
	AssignCriterion(ctx context.Context, a Assignment) error
	UnassignCriterion(ctx context.Context, a Assignment) error
	ListAssignedCriteria(ctx context.Context, workerID int64) ([]int64, error)
}
