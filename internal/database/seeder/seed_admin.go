package seeder

import (
	"context"
	"fmt"
	"strings"

	"kks-tracker/internal/database"

	"golang.org/x/crypto/bcrypt"
)

type AdminSeeder struct {
	Login    string
	Password string
	FullName string
}

func (AdminSeeder) Name() string { return "admin_worker" }

// Run creates the administrator once. An existing login is left untouched so
// a rotated password survives restarts.
func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	login := strings.TrimSpace(s.Login)
	if login == "" {
		return nil
	}
	if s.Password == "" {
		return fmt.Errorf("empty admin password")
	}
	if err := EnsureTableColumns(ctx, db, "workers", "id", "full_name", "login", "password_hash", "role"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(s.FullName)
	if name == "" {
		name = login
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO workers (full_name, login, password_hash, role) VALUES ($1, $2, $3, 1)
		 ON CONFLICT (login) DO NOTHING`,
		name,
		login,
		string(hash),
	)
	return err
}
