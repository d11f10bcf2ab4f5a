package usecase

import (
	"context"
	"log"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/repository"
)

type programRecommender interface {
	Recommend(ctx context.Context, kksIDs []int64) ([]catalog.ProgramSummary, error)
}

type RecommendationUsecase interface {
	RecommendPrograms(ctx context.Context, criterionIDs []int64) ([]catalog.ProgramSummary, error)
}

type Recommendation struct {
	store   programRecommender
	lookups *Lookups
	log     *log.Logger
}

var _ programRecommender = (repository.ProgramRepository)(nil)

func NewRecommendationUsecase(store programRecommender, lookups *Lookups, logger *log.Logger) *Recommendation {
	if logger == nil {
		logger = log.Default()
	}
	return &Recommendation{store: store, lookups: lookups, log: logger}
}

// RecommendPrograms lists programs whose passport shares at least one
// criterion with criterionIDs. An empty effective set never reaches the store.
func (u *Recommendation) RecommendPrograms(ctx context.Context, criterionIDs []int64) ([]catalog.ProgramSummary, error) {
	ids := NormalizeCriterionIDs(criterionIDs)
	if len(ids) == 0 {
		return []catalog.ProgramSummary{}, nil
	}

	items, err := cachedList(ctx, u.lookups, RecommendationKey(ids), func(ctx context.Context) ([]catalog.ProgramSummary, error) {
		rows, err := u.store.Recommend(ctx, ids)
		if err != nil {
			return nil, err
		}
		return dedupePrograms(rows), nil
	})
	if err != nil {
		u.log.Printf("recommendation kks_ids=%v status=error err=%v", ids, err)
		return nil, ErrAggregationFailed
	}
	return items, nil
}

func dedupePrograms(rows []catalog.ProgramSummary) []catalog.ProgramSummary {
	seen := make(map[int64]struct{}, len(rows))
	out := make([]catalog.ProgramSummary, 0, len(rows))
	for _, p := range rows {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	catalog.SortProgramSummaries(out)
	return out
}
