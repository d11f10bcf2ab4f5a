package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"kks-tracker/internal/database"
	"kks-tracker/internal/domain"
	"kks-tracker/internal/repository"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type clientCounter interface {
	ClientCount() int
}

type SystemStatusUsecase interface {
	GetStatus(ctx context.Context) (domain.SystemStatus, error)
}

type SystemStatus struct {
	repo  repository.SystemStatusRepository
	pool  database.StatsProvider
	cache pinger
	hub   clientCounter
	now   func() time.Time
	log   *log.Logger
}

// NewSystemStatusUsecase accepts a nil pool, cache or hub; their fields are
// then reported as zero.
func NewSystemStatusUsecase(repo repository.SystemStatusRepository, pool database.StatsProvider, cache pinger, hub clientCounter, logger *log.Logger) *SystemStatus {
	if logger == nil {
		logger = log.Default()
	}
	return &SystemStatus{repo: repo, pool: pool, cache: cache, hub: hub, now: time.Now, log: logger}
}

// GetStatus never fails: each probe that errors leaves its fields zeroed.
func (u *SystemStatus) GetStatus(ctx context.Context) (domain.SystemStatus, error) {
	if u == nil || u.repo == nil {
		return domain.SystemStatus{ServerTime: time.Now().UTC()}, nil
	}
	now := u.now()
	out := domain.SystemStatus{ServerTime: now.UTC()}

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	nextYear := yearStart.AddDate(1, 0, 0)

	var (
		totals    repository.SystemTotals
		thisYear  int
		errTotals error
		errYear   error
		errDB     error
		errCache  error
	)

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		totals, errTotals = u.repo.GetTotals(ctx)
		if errTotals != nil {
			u.log.Printf("system_status step=totals status=error err=%v", errTotals)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		thisYear, errYear = u.repo.CountDocumentsIssuedBetween(ctx, yearStart, nextYear)
		if errYear != nil {
			u.log.Printf("system_status step=documents_this_year status=error err=%v", errYear)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		errDB = u.repo.Ping(ctx)
		if errDB != nil {
			u.log.Printf("system_status step=database_ping status=error err=%v", errDB)
		}
	}()

	if u.cache != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCache = u.cache.Ping(ctx)
		}()
	}

	wg.Wait()

	if errTotals == nil {
		out.TotalWorkers = totals.Workers
		out.TotalDocuments = totals.Documents
		out.TotalPrograms = totals.Programs
		out.TotalCriteria = totals.Criteria
	}
	if errYear == nil {
		out.DocumentsThisYear = thisYear
	}
	out.DatabaseHealthy = errDB == nil
	out.RedisHealthy = u.cache != nil && errCache == nil
	if u.hub != nil {
		out.WSClients = u.hub.ClientCount()
	}
	if u.pool != nil {
		ps := u.pool.Stats()
		out.DBPool = domain.PoolUsage{Total: ps.TotalConns, Idle: ps.IdleConns, Acquired: ps.AcquiredConns, Max: ps.MaxConns}
	}
	return out, nil
}
