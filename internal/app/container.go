package app

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"kks-tracker/internal/config"
	"kks-tracker/internal/database"
	"kks-tracker/internal/database/migration"
	dbpostgres "kks-tracker/internal/database/postgres"
	"kks-tracker/internal/database/seeder"
	"kks-tracker/internal/delivery/http/handler"
	v1 "kks-tracker/internal/delivery/http/routes/v1"
	"kks-tracker/internal/infrastructure/cache"
	"kks-tracker/internal/infrastructure/persistence/postgres"
	"kks-tracker/internal/pkg/jwt"
	"kks-tracker/internal/repository"
	"kks-tracker/internal/usecase"
	"kks-tracker/internal/ws"
)

// Container owns every long lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   jwt.Service

	workers *postgres.WorkerRepository

	Health   *handler.HealthHandler
	Handlers v1.Handlers
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	if err := c.prepareSchema(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Hub = ws.NewHub(logger)
	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	if err := c.wire(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) prepareSchema(ctx context.Context) error {
	if c.Config.Database.RunMigrations {
		r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: c.Logger}
		if _, err := r.Run(ctx, c.DB.SQLDB()); err != nil {
			return err
		}
	}
	if c.Config.Database.RunSeeders {
		r := seeder.Runner{Seeders: seeder.Defaults(c.Config.Admin), Logger: c.Logger}
		if err := r.Run(ctx, c.DB); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) wire() error {
	workerRepo, err := postgres.NewWorkerRepository(c.DB)
	if err != nil {
		return err
	}
	c.workers = workerRepo

	kksRepo := repository.NewPostgresKKSRepository(c.DB)
	orgRepo := repository.NewPostgresOrganizationRepository(c.DB)
	typeRepo := repository.NewPostgresProgramTypeRepository(c.DB)
	programRepo := repository.NewPostgresProgramRepository(c.DB)
	documentRepo := repository.NewPostgresDocumentRepository(c.DB)
	analyticsRepo := repository.NewPostgresAnalyticsRepository(c.DB)
	statusRepo := repository.NewPostgresSystemStatusRepository(c.DB)

	lookups := usecase.NewLookups(c.Cache, ws.NewNotifier(c.Hub), c.Cache.TTL(), c.Logger)

	authUC := usecase.NewAuthUsecase(workerRepo, c.JWT)
	kksUC := usecase.NewKKSUsecase(kksRepo, lookups)
	orgUC := usecase.NewOrganizationUsecase(orgRepo, lookups)
	typeUC := usecase.NewProgramTypeUsecase(typeRepo, lookups)
	programUC := usecase.NewProgramUsecase(programRepo, lookups)
	recommendUC := usecase.NewRecommendationUsecase(programRepo, lookups, c.Logger)
	workerUC := usecase.NewWorkerUsecase(workerRepo, lookups)
	documentUC := usecase.NewDocumentUsecase(documentRepo, lookups)
	trainingUC := usecase.NewTrainingStatusUsecase(kksRepo, documentRepo, programRepo, c.Logger)
	analyticsUC := usecase.NewAnalyticsUsecase(documentRepo, analyticsRepo, c.Logger)
	pool, _ := c.DB.(database.StatsProvider)
	statusUC := usecase.NewSystemStatusUsecase(statusRepo, pool, c.Cache, c.Hub, c.Logger)

	c.Health = handler.NewHealthHandler(c.DB)
	c.Handlers = v1.Handlers{
		Auth:          handler.NewAuthHandler(authUC),
		KKS:           handler.NewKKSHandler(kksUC),
		Organizations: handler.NewOrganizationHandler(orgUC),
		ProgramTypes:  handler.NewProgramTypeHandler(typeUC),
		Programs:      handler.NewProgramHandler(programUC, recommendUC),
		Workers:       handler.NewWorkerHandler(workerUC),
		Documents:     handler.NewDocumentHandler(documentUC),
		Analytics:     handler.NewAnalyticsHandler(trainingUC, analyticsUC),
		SystemStatus:  handler.NewSystemStatusHandler(statusUC, c.Logger),
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.workers != nil {
		errs = append(errs, c.workers.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
