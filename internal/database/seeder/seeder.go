package seeder

import (
	"context"

	"kks-tracker/internal/database"
)

// Seeder inserts reference data. Implementations must be safe to rerun.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
