package usecase

import (
	"context"
	"fmt"
	"testing"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKKS_CreateValidatesAndInvalidates(t *testing.T) {
	lookups, cache, notifier := newTestLookups()
	repo := &fakeKKSRepo{items: []catalog.KKS{{ID: 1, FullName: "A"}}}
	uc := NewKKSUsecase(repo, lookups)
	ctx := context.Background()

	_, err := uc.List(ctx)
	require.NoError(t, err)
	require.True(t, cache.has(LookupKey(FamilyKKS)))

	_, err = uc.Create(ctx, KKSInput{FullName: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, cache.has(LookupKey(FamilyKKS)))

	created, err := uc.Create(ctx, KKSInput{FullName: " Контроль металла ", ShortName: "КМ"})
	require.NoError(t, err)
	assert.Equal(t, "Контроль металла", created.FullName)
	assert.False(t, cache.has(LookupKey(FamilyKKS)))
	assert.Len(t, notifier.events, 1)
}

func TestKKS_DeleteReferenced(t *testing.T) {
	lookups, _, notifier := newTestLookups()
	repo := &fakeKKSRepo{deleteErr: fmt.Errorf("%w: fk", repository.ErrReferenced)}
	uc := NewKKSUsecase(repo, lookups)

	err := uc.Delete(context.Background(), 4)
	assert.ErrorIs(t, err, ErrInUse)
	assert.Empty(t, notifier.events)

	assert.ErrorIs(t, uc.Delete(context.Background(), 0), ErrInvalidInput)
}

func TestStoreError(t *testing.T) {
	assert.NoError(t, storeError(nil))
	assert.ErrorIs(t, storeError(repository.ErrNotFound), ErrNotFound)
	assert.ErrorIs(t, storeError(fmt.Errorf("%w: x", repository.ErrDuplicate)), ErrConflict)
	assert.ErrorIs(t, storeError(fmt.Errorf("%w: x", repository.ErrReferenceMissing)), ErrReferenceNotFound)
	assert.ErrorIs(t, storeError(fmt.Errorf("%w: x", repository.ErrReferenced)), ErrInUse)
	assert.ErrorIs(t, storeError(fmt.Errorf("boom")), ErrInternal)
}
