package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"kks-tracker/internal/config"
	"kks-tracker/internal/database/migration"
	dbpostgres "kks-tracker/internal/database/postgres"
	"kks-tracker/internal/database/seeder"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to MIGRATIONS_DIR, then migrations next to the binary)")
	status := flag.Bool("status", false, "list migrations and exit")
	seed := flag.Bool("seed", true, "run seeders after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	migDir := *dir
	if migDir == "" {
		migDir = cfg.Database.MigrationsDir
	}
	r := migration.Runner{Dir: migDir, Logger: logger}

	if *status {
		items, err := r.Status(ctx, db.SQLDB())
		if err != nil {
			log.Fatalf("migration status failed: %v", err)
		}
		for _, s := range items {
			logger.Printf("migration version=%d name=%s applied=%t", s.Version, s.Name, s.Applied)
		}
		return
	}

	n, err := r.Run(ctx, db.SQLDB())
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	logger.Printf("migrations applied=%d", n)

	if !*seed {
		return
	}
	sr := seeder.Runner{Seeders: seeder.Defaults(cfg.Admin), Logger: logger}
	if err := sr.Run(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
