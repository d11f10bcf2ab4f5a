package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/domain/document"
	"kks-tracker/internal/domain/training"
	"kks-tracker/internal/repository"
)

type TrainingStatusReport struct {
	WorkerID  int64
	Rows      []training.Status
	CheckedAt time.Time
}

type TrainingStatusUsecase interface {
	GetStatus(ctx context.Context, caller Caller, workerID int64) (TrainingStatusReport, error)
}

type criteriaLister interface {
	List(ctx context.Context) ([]catalog.KKS, error)
}

type passportReader interface {
	PassportsFor(ctx context.Context, programIDs []int64) (map[int64][]int64, error)
}

type TrainingStatus struct {
	criteria  criteriaLister
	docs      repository.DocumentRepository
	passports passportReader
	now       func() time.Time
	log       *log.Logger
}

func NewTrainingStatusUsecase(criteria criteriaLister, docs repository.DocumentRepository, passports passportReader, logger *log.Logger) *TrainingStatus {
	if logger == nil {
		logger = log.Default()
	}
	return &TrainingStatus{criteria: criteria, docs: docs, passports: passports, now: time.Now, log: logger}
}

// GetStatus reports every criterion with the worker's latest covering
// document. Admins must name a worker.
func (u *TrainingStatus) GetStatus(ctx context.Context, caller Caller, workerID int64) (TrainingStatusReport, error) {
	scope, err := caller.scope(workerID)
	if err != nil {
		return TrainingStatusReport{}, err
	}
	if scope.WorkerID <= 0 {
		return TrainingStatusReport{}, ErrInvalidInput
	}

	criteria, err := u.criteria.List(ctx)
	if err != nil {
		u.log.Printf("kks_status worker_id=%d step=criteria status=error err=%v", scope.WorkerID, err)
		return TrainingStatusReport{}, ErrAggregationFailed
	}
	docs, err := u.docs.ListRaw(ctx, repository.DocumentFilter{WorkerID: scope.WorkerID})
	if err != nil {
		u.log.Printf("kks_status worker_id=%d step=documents status=error err=%v", scope.WorkerID, err)
		return TrainingStatusReport{}, ErrAggregationFailed
	}
	passports, err := u.passports.PassportsFor(ctx, programIDs(docs))
	if err != nil {
		u.log.Printf("kks_status worker_id=%d step=passports status=error err=%v", scope.WorkerID, err)
		return TrainingStatusReport{}, ErrAggregationFailed
	}

	rows, err := training.ComputeKksStatus(scope.WorkerID, criteria, docs, passports)
	if err != nil {
		if errors.Is(err, training.ErrDanglingProgram) {
			u.log.Printf("kks_status worker_id=%d status=inconsistent err=%v", scope.WorkerID, err)
		}
		return TrainingStatusReport{}, ErrAggregationFailed
	}

	now := u.now()
	return TrainingStatusReport{
		WorkerID:  scope.WorkerID,
		Rows:      training.NewEvaluator(func() time.Time { return now }).Evaluate(rows),
		CheckedAt: now.UTC(),
	}, nil
}

func programIDs(docs []document.Document) []int64 {
	seen := make(map[int64]struct{}, len(docs))
	out := make([]int64, 0, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.ProgramID]; ok {
			continue
		}
		seen[d.ProgramID] = struct{}{}
		out = append(out, d.ProgramID)
	}
	return out
}
