package seeder

import (
	"context"
	"fmt"

	"kks-tracker/internal/database"
)

// Advanced training and professional retraining are the two program kinds
// the analytics breakdown reports on.
var defaultProgramTypes = []string{
	"Повышение квалификации",
	"Профессиональная переподготовка",
}

type ProgramTypesSeeder struct{}

func (ProgramTypesSeeder) Name() string { return "program_types" }

func (ProgramTypesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "program_types", "id", "name"); err != nil {
		return err
	}

	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, name := range defaultProgramTypes {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO program_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
				name,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("program types: %w", err)
	}
	return nil
}
