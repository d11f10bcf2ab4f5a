package training

import (
	"errors"
	"testing"
	"time"

	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/domain/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 13, 45, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEvaluator_IsTrainingNeeded(t *testing.T) {
	e := NewEvaluator(fixedNow)

	assert.True(t, e.IsTrainingNeeded(nil))
	assert.False(t, e.IsTrainingNeeded(day(2024, time.June, 15)))
	assert.False(t, e.IsTrainingNeeded(day(2021, time.June, 15)))
	assert.True(t, e.IsTrainingNeeded(day(2021, time.June, 14)))
	assert.False(t, e.IsTrainingNeeded(day(2021, time.June, 16)))
	assert.True(t, e.IsTrainingNeeded(day(2015, time.January, 1)))
}

func TestEvaluator_IgnoresTimeOfDay(t *testing.T) {
	e := NewEvaluator(func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 1, 0, time.UTC) })
	late := time.Date(2021, time.June, 15, 23, 59, 0, 0, time.UTC)
	assert.False(t, e.IsTrainingNeeded(&late))
}

func TestEvaluator_IsTrainingNeededRaw(t *testing.T) {
	e := NewEvaluator(fixedNow)

	assert.True(t, e.IsTrainingNeededRaw(""))
	assert.True(t, e.IsTrainingNeededRaw("not a date"))
	assert.True(t, e.IsTrainingNeededRaw("2024-13-45"))
	assert.False(t, e.IsTrainingNeededRaw("2023-01-10"))
	assert.False(t, e.IsTrainingNeededRaw("10.01.2023"))
	assert.True(t, e.IsTrainingNeededRaw("2020-01-10T08:00:00Z"))
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate(" 2022-03-04 ")
	require.True(t, ok)
	assert.Equal(t, time.Date(2022, time.March, 4, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDate("04/03/2022")
	assert.False(t, ok)
}

func TestComputeKksStatus(t *testing.T) {
	criteria := []catalog.KKS{
		{ID: 3, FullName: "Welding", ShortName: "W"},
		{ID: 1, FullName: "Electrical safety", ShortName: "ES"},
		{ID: 2, FullName: "First aid", ShortName: "FA"},
	}
	passports := map[int64][]int64{
		10: {1},
		20: {1, 2},
		30: {3},
	}
	docs := []document.Document{
		{ID: 100, WorkerID: 7, ProgramID: 10, IssuedAt: day(2019, time.May, 1)},
		{ID: 101, WorkerID: 7, ProgramID: 20, IssuedAt: day(2023, time.February, 10)},
		{ID: 102, WorkerID: 8, ProgramID: 30, IssuedAt: day(2024, time.January, 1)},
		{ID: 103, WorkerID: 7, ProgramID: 10, IssuedAt: nil},
	}

	got, err := ComputeKksStatus(7, criteria, docs, passports)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Electrical safety", got[0].FullName)
	require.NotNil(t, got[0].LastIssuedAt)
	assert.Equal(t, *day(2023, time.February, 10), *got[0].LastIssuedAt)

	assert.Equal(t, "First aid", got[1].FullName)
	require.NotNil(t, got[1].LastIssuedAt)
	assert.Equal(t, *day(2023, time.February, 10), *got[1].LastIssuedAt)

	assert.Equal(t, "Welding", got[2].FullName)
	assert.Nil(t, got[2].LastIssuedAt)

	rows := NewEvaluator(fixedNow).Evaluate(got)
	assert.False(t, rows[0].TrainingNeeded)
	assert.False(t, rows[1].TrainingNeeded)
	assert.True(t, rows[2].TrainingNeeded)
}

func TestComputeKksStatus_OrderIsByteWiseWithIDTieBreak(t *testing.T) {
	criteria := []catalog.KKS{
		{ID: 5, FullName: "beta"},
		{ID: 4, FullName: "Beta"},
		{ID: 2, FullName: "Alpha"},
		{ID: 1, FullName: "Alpha"},
	}

	got, err := ComputeKksStatus(1, criteria, nil, nil)
	require.NoError(t, err)

	ids := make([]int64, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.CriterionID)
	}
	assert.Equal(t, []int64{1, 2, 4, 5}, ids)
}

func TestComputeKksStatus_EmptyCatalog(t *testing.T) {
	got, err := ComputeKksStatus(1, nil, []document.Document{{ID: 1, WorkerID: 1, ProgramID: 1, IssuedAt: day(2020, 1, 1)}}, map[int64][]int64{1: {9}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestComputeKksStatus_DanglingProgram(t *testing.T) {
	docs := []document.Document{{ID: 55, WorkerID: 1, ProgramID: 99, IssuedAt: day(2022, 1, 1)}}

	_, err := ComputeKksStatus(1, []catalog.KKS{{ID: 1, FullName: "A"}}, docs, map[int64][]int64{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDanglingProgram))
	assert.Contains(t, err.Error(), "document_id=55")
}
