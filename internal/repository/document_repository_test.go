package repository

import (
	"testing"
	"time"

	"kks-tracker/internal/domain/document"

	"github.com/stretchr/testify/assert"
)

func TestDocumentWhere(t *testing.T) {
	where, args := documentWhere(DocumentFilter{}, 1)
	assert.Equal(t, "", where)
	assert.Empty(t, args)

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)

	where, args = documentWhere(DocumentFilter{WorkerID: 7, Range: document.Range{From: &from, To: &to}}, 1)
	assert.Equal(t, " WHERE d.worker_id = $1 AND d.issued_at >= $2 AND d.issued_at <= $3", where)
	assert.Equal(t, []any{int64(7), from, to}, args)

	where, args = documentWhere(DocumentFilter{Range: document.Range{To: &to}}, 3)
	assert.Equal(t, " WHERE d.issued_at <= $3", where)
	assert.Equal(t, []any{to}, args)
}
