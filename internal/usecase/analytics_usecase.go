package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"kks-tracker/internal/domain/dynamics"
	"kks-tracker/internal/repository"
)

type AnalyticsQuery struct {
	WorkerID int64
	From     string
	To       string
}

type DynamicsReport struct {
	WorkerID      int64
	Years         []int
	Counts        []int
	Cumulative    []int
	K             int
	Skipped       int
	ByCriterion   []repository.CriterionCount
	ByProgramType []repository.ProgramTypeCount
}

type AnalyticsUsecase interface {
	Dynamics(ctx context.Context, caller Caller, q AnalyticsQuery) (DynamicsReport, error)
}

type Analytics struct {
	docs  repository.DocumentRepository
	stats repository.AnalyticsRepository
	now   func() time.Time
	log   *log.Logger
}

func NewAnalyticsUsecase(docs repository.DocumentRepository, stats repository.AnalyticsRepository, logger *log.Logger) *Analytics {
	if logger == nil {
		logger = log.Default()
	}
	return &Analytics{docs: docs, stats: stats, now: time.Now, log: logger}
}

// Dynamics builds the yearly issuance histogram, its growth coefficient and
// the per-criterion and per-type breakdowns for the resolved scope.
func (u *Analytics) Dynamics(ctx context.Context, caller Caller, q AnalyticsQuery) (DynamicsReport, error) {
	scope, err := caller.scope(q.WorkerID)
	if err != nil {
		return DynamicsReport{}, err
	}
	rng, err := ParseRange(q.From, q.To)
	if err != nil {
		return DynamicsReport{}, err
	}
	filter := repository.DocumentFilter{WorkerID: scope.WorkerID, Range: rng}

	var (
		dated       []dynamics.DatedDocument
		byCriterion []repository.CriterionCount
		byType      []repository.ProgramTypeCount

		errDocs      error
		errCriterion error
		errType      error
	)

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		docs, err := u.docs.ListRaw(ctx, filter)
		if err != nil {
			errDocs = err
			u.log.Printf("dynamics worker_id=%d step=documents status=error err=%v", scope.WorkerID, err)
			return
		}
		dated = make([]dynamics.DatedDocument, 0, len(docs))
		for _, d := range docs {
			dated = append(dated, dynamics.DatedDocument{ID: d.ID, IssuedAt: d.IssuedAt})
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		byCriterion, errCriterion = u.stats.CountByCriterion(ctx, filter)
		if errCriterion != nil {
			u.log.Printf("dynamics worker_id=%d step=by_criterion status=error err=%v", scope.WorkerID, errCriterion)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		byType, errType = u.stats.CountByProgramType(ctx, filter)
		if errType != nil {
			u.log.Printf("dynamics worker_id=%d step=by_program_type status=error err=%v", scope.WorkerID, errType)
		}
	}()

	wg.Wait()

	if errDocs != nil || errCriterion != nil || errType != nil {
		return DynamicsReport{}, ErrAggregationFailed
	}

	yearly := dynamics.ComputeYearly(dated, u.now())
	if len(yearly.Skipped) > 0 {
		u.log.Printf("dynamics worker_id=%d status=skipped_undated count=%d document_ids=%v", scope.WorkerID, len(yearly.Skipped), yearly.Skipped)
	}

	return DynamicsReport{
		WorkerID:      scope.WorkerID,
		Years:         yearly.Years,
		Counts:        yearly.Counts,
		Cumulative:    yearly.Cumulative,
		K:             dynamics.ComputeK(yearly.Cumulative),
		Skipped:       len(yearly.Skipped),
		ByCriterion:   byCriterion,
		ByProgramType: byType,
	}, nil
}
