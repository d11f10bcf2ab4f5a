package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/domain/document"
	"kks-tracker/internal/domain/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newTrainingFixture() (*TrainingStatus, *fakeProgramRepo) {
	criteria := &fakeKKSRepo{items: []catalog.KKS{
		{ID: 1, FullName: "Сварка", ShortName: "СВ"},
		{ID: 2, FullName: "Арматура", ShortName: "АР"},
	}}
	docs := &fakeDocumentRepo{raw: []document.Document{
		{ID: 10, WorkerID: 7, ProgramID: 100, IssuedAt: day(2020, 1, 10)},
		{ID: 11, WorkerID: 7, ProgramID: 100, IssuedAt: day(2023, 3, 1)},
		{ID: 12, WorkerID: 8, ProgramID: 101, IssuedAt: day(2024, 1, 1)},
	}}
	programs := &fakeProgramRepo{passports: map[int64][]int64{100: {1}, 101: {2}}}

	logger, _ := testLogger()
	uc := NewTrainingStatusUsecase(criteria, docs, programs, logger)
	uc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return uc, programs
}

func TestTrainingStatus_StaffSelf(t *testing.T) {
	uc, _ := newTrainingFixture()

	rep, err := uc.GetStatus(context.Background(), Caller{WorkerID: 7, Role: worker.RoleStaff}, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(7), rep.WorkerID)
	require.Len(t, rep.Rows, 2)

	assert.Equal(t, "Арматура", rep.Rows[0].FullName)
	assert.Nil(t, rep.Rows[0].LastIssuedAt)
	assert.True(t, rep.Rows[0].TrainingNeeded)

	assert.Equal(t, "Сварка", rep.Rows[1].FullName)
	require.NotNil(t, rep.Rows[1].LastIssuedAt)
	assert.Equal(t, 2023, rep.Rows[1].LastIssuedAt.Year())
	assert.False(t, rep.Rows[1].TrainingNeeded)
}

func TestTrainingStatus_AdminMustNameWorker(t *testing.T) {
	uc, _ := newTrainingFixture()

	_, err := uc.GetStatus(context.Background(), Caller{WorkerID: 1, Role: worker.RoleAdmin}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	rep, err := uc.GetStatus(context.Background(), Caller{WorkerID: 1, Role: worker.RoleAdmin}, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(8), rep.WorkerID)
}

func TestTrainingStatus_DanglingProgram(t *testing.T) {
	uc, programs := newTrainingFixture()
	delete(programs.passports, 100)

	_, err := uc.GetStatus(context.Background(), Caller{WorkerID: 7, Role: worker.RoleStaff}, 0)
	assert.ErrorIs(t, err, ErrAggregationFailed)
}

func TestTrainingStatus_StoreFailure(t *testing.T) {
	uc, programs := newTrainingFixture()
	programs.passportsErr = errors.New("conn refused")

	_, err := uc.GetStatus(context.Background(), Caller{WorkerID: 7, Role: worker.RoleStaff}, 0)
	assert.ErrorIs(t, err, ErrAggregationFailed)
}
