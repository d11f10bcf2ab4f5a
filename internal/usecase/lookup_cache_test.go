package usecase

import (
	"context"
	"errors"
	"testing"

	"kks-tracker/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCriterionIDs(t *testing.T) {
	assert.Equal(t, []int64{1, 3, 7}, NormalizeCriterionIDs([]int64{7, 3, 0, -2, 3, 1}))
	assert.Empty(t, NormalizeCriterionIDs(nil))
	assert.Empty(t, NormalizeCriterionIDs([]int64{0, -1}))
}

func TestRecommendationKey_IgnoresOrderAndDuplicates(t *testing.T) {
	a := RecommendationKey([]int64{3, 1})
	b := RecommendationKey([]int64{1, 3, 3, -5})
	c := RecommendationKey([]int64{1, 4})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "programs:recommended:")
}

func TestCachedList_MissThenHit(t *testing.T) {
	lookups, cache, _ := newTestLookups()
	repo := &fakeKKSRepo{items: []catalog.KKS{{ID: 1, FullName: "Сварка", ShortName: "СВ"}}}

	first, err := cachedList(context.Background(), lookups, LookupKey(FamilyKKS), repo.List)
	require.NoError(t, err)
	second, err := cachedList(context.Background(), lookups, LookupKey(FamilyKKS), repo.List)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
	assert.True(t, cache.has("lookup:kks"))
}

func TestCachedList_CacheErrorFallsThrough(t *testing.T) {
	lookups, cache, _ := newTestLookups()
	cache.getErr = errors.New("redis down")
	repo := &fakeKKSRepo{items: []catalog.KKS{{ID: 1, FullName: "A"}}}

	items, err := cachedList(context.Background(), lookups, LookupKey(FamilyKKS), repo.List)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCachedList_NilLookups(t *testing.T) {
	repo := &fakeKKSRepo{items: []catalog.KKS{{ID: 1, FullName: "A"}}}
	items, err := cachedList(context.Background(), nil, LookupKey(FamilyKKS), repo.List)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestInvalidate_DropsKeysAndNotifies(t *testing.T) {
	lookups, cache, notifier := newTestLookups()
	ctx := context.Background()
	require.NoError(t, cache.SetJSON(ctx, LookupKey(FamilyKKS), []int{1}, 0))
	require.NoError(t, cache.SetJSON(ctx, RecommendationKey([]int64{1}), []int{1}, 0))
	require.NoError(t, cache.SetJSON(ctx, LookupKey(FamilyWorker), []int{1}, 0))

	lookups.Invalidate(ctx, FamilyKKS)

	assert.False(t, cache.has(LookupKey(FamilyKKS)))
	assert.False(t, cache.has(RecommendationKey([]int64{1})))
	assert.True(t, cache.has(LookupKey(FamilyWorker)))
	require.Len(t, notifier.events, 1)
	assert.Equal(t, []string{"kks"}, notifier.events[0])
}

func TestInvalidate_DocumentsOnlyNotify(t *testing.T) {
	lookups, cache, notifier := newTestLookups()
	ctx := context.Background()
	require.NoError(t, cache.SetJSON(ctx, RecommendationKey([]int64{1}), []int{1}, 0))

	lookups.Invalidate(ctx, FamilyDocument)

	assert.True(t, cache.has(RecommendationKey([]int64{1})))
	assert.Equal(t, [][]string{{"documents"}}, notifier.events)
}
