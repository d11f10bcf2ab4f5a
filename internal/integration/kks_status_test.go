package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"kks-tracker/internal/config"
	"kks-tracker/internal/database"
	"kks-tracker/internal/database/migration"
	dbpostgres "kks-tracker/internal/database/postgres"
	"kks-tracker/internal/delivery/http/handler"
	"kks-tracker/internal/delivery/http/middleware"
	"kks-tracker/internal/delivery/http/routes"
	v1 "kks-tracker/internal/delivery/http/routes/v1"
	"kks-tracker/internal/infrastructure/persistence/postgres"
	"kks-tracker/internal/pkg/jwt"
	"kks-tracker/internal/repository"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type programItem struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	OrgShortName string `json:"organization_short_name"`
}

type statusRow struct {
	CriterionID    int64   `json:"kks_id"`
	LastIssuedAt   *string `json:"last_issued_at"`
	TrainingNeeded bool    `json:"training_needed"`
}

type seeded struct {
	suffix    string
	login     string
	workerID  int64
	orgID     int64
	typeID    int64
	covered   int64
	uncovered int64
	programID int64
}

func TestIntegration_RecommendationAndTrainingStatus(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedData(t, ctx, db)
	defer cleanupSeed(ctx, db, seed)

	app := newTestFiberApp(t, db)
	tok := login(t, app, seed.login, "password")

	var recs []programItem
	call(t, app, tok, fmt.Sprintf("/api/v1/programs/recommended?kks_ids=%d,%d,x", seed.uncovered, seed.covered), &recs)
	require.Len(t, recs, 1)
	assert.Equal(t, seed.programID, recs[0].ID)
	assert.Equal(t, "IT"+seed.suffix, recs[0].OrgShortName)

	var none []programItem
	call(t, app, tok, "/api/v1/programs/recommended?kks_ids=", &none)
	assert.Empty(t, none)

	var report struct {
		WorkerID int64       `json:"worker_id"`
		Rows     []statusRow `json:"rows"`
	}
	call(t, app, tok, "/api/v1/training/status", &report)
	assert.Equal(t, seed.workerID, report.WorkerID)

	byID := map[int64]statusRow{}
	for _, r := range report.Rows {
		byID[r.CriterionID] = r
	}
	require.Contains(t, byID, seed.covered)
	require.Contains(t, byID, seed.uncovered)
	assert.False(t, byID[seed.covered].TrainingNeeded)
	require.NotNil(t, byID[seed.covered].LastIssuedAt)
	assert.True(t, byID[seed.uncovered].TrainingNeeded)
	assert.Nil(t, byID[seed.uncovered].LastIssuedAt)

	// Staff may not read another worker's status.
	call(t, app, tok, fmt.Sprintf("/api/v1/training/status?worker_id=%d", seed.workerID+1000000), &report)
	assert.Equal(t, seed.workerID, report.WorkerID)
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := os.Getenv("KKS_TEST_DB_HOST")
	port := stringsOrDefault(os.Getenv("KKS_TEST_DB_PORT"), "5432")
	name := os.Getenv("KKS_TEST_DB_NAME")
	user := os.Getenv("KKS_TEST_DB_USER")
	pass := os.Getenv("KKS_TEST_DB_PASSWORD")
	ssl := stringsOrDefault(os.Getenv("KKS_TEST_DB_SSL_MODE"), "disable")

	if host == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set KKS_TEST_DB_HOST/NAME/USER (and optionally PORT/PASSWORD/SSL_MODE)")
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	require.NoError(t, err)
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	// this file lives in internal/integration
	dir := filepath.Join(filepath.Dir(file), "..", "..", "migrations")

	r := migration.Runner{Dir: filepath.Clean(dir)}
	_, err := r.Run(ctx, db.SQLDB())
	require.NoError(t, err)
}

func seedData(t *testing.T, ctx context.Context, db database.DB) seeded {
	t.Helper()

	s := seeded{suffix: fmt.Sprintf("-%d", time.Now().UnixNano())}
	s.login = "it-worker" + s.suffix

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	insert := func(query string, args ...any) int64 {
		var id int64
		require.NoError(t, db.QueryRow(ctx, query, args...).Scan(&id))
		return id
	}

	s.workerID = insert(`INSERT INTO workers (full_name, login, password_hash, role) VALUES ($1, $2, $3, 0) RETURNING id`,
		"Integration Worker"+s.suffix, s.login, string(hash))
	s.orgID = insert(`INSERT INTO organizations (full_name, short_name) VALUES ($1, $2) RETURNING id`,
		"Integration Training Centre"+s.suffix, "IT"+s.suffix)
	s.typeID = insert(`INSERT INTO program_types (name) VALUES ($1) RETURNING id`, "Integration type"+s.suffix)
	s.covered = insert(`INSERT INTO kks (full_name, short_name) VALUES ($1, $2) RETURNING id`, "Covered"+s.suffix, "CV"+s.suffix)
	s.uncovered = insert(`INSERT INTO kks (full_name, short_name) VALUES ($1, $2) RETURNING id`, "Uncovered"+s.suffix, "UC"+s.suffix)
	s.programID = insert(`INSERT INTO programs (name, type_id, organization_id) VALUES ($1, $2, $3) RETURNING id`,
		"Integration program"+s.suffix, s.typeID, s.orgID)

	_, err = db.Exec(ctx, `INSERT INTO program_passports (program_id, kks_id) VALUES ($1, $2)`, s.programID, s.covered)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO documents (worker_id, program_id, issued_at) VALUES ($1, $2, $3)`,
		s.workerID, s.programID, time.Now().AddDate(-1, 0, 0).Format("2006-01-02"))
	require.NoError(t, err)

	return s
}

func cleanupSeed(ctx context.Context, db database.DB, s seeded) {
	_, _ = db.Exec(ctx, `DELETE FROM documents WHERE worker_id = $1`, s.workerID)
	_, _ = db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, s.programID)
	_, _ = db.Exec(ctx, `DELETE FROM kks WHERE id = $1 OR id = $2`, s.covered, s.uncovered)
	_, _ = db.Exec(ctx, `DELETE FROM program_types WHERE id = $1`, s.typeID)
	_, _ = db.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, s.orgID)
	_, _ = db.Exec(ctx, `DELETE FROM workers WHERE id = $1`, s.workerID)
}

func newTestFiberApp(t *testing.T, db database.DB) *fiber.App {
	t.Helper()

	jwtSvc := jwt.NewHMACService("test-access-secret", "test-refresh-secret", 15*time.Minute, time.Hour)

	workers, err := postgres.NewWorkerRepository(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = workers.Close() })

	kksRepo := repository.NewPostgresKKSRepository(db)
	programRepo := repository.NewPostgresProgramRepository(db)
	documentRepo := repository.NewPostgresDocumentRepository(db)
	lookups := usecase.NewLookups(nil, nil, 0, nil)

	h := v1.Handlers{
		Auth: handler.NewAuthHandler(usecase.NewAuthUsecase(workers, jwtSvc)),
		Programs: handler.NewProgramHandler(
			usecase.NewProgramUsecase(programRepo, lookups),
			usecase.NewRecommendationUsecase(programRepo, lookups, nil),
		),
		Analytics: handler.NewAnalyticsHandler(
			usecase.NewTrainingStatusUsecase(kksRepo, documentRepo, programRepo, nil),
			usecase.NewAnalyticsUsecase(documentRepo, repository.NewPostgresAnalyticsRepository(db), nil),
		),
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	routes.NewRegistry(handler.NewHealthHandler(db), h, middleware.NewAuthMiddleware(jwtSvc).Middleware()).Register(app)
	return app
}

func login(t *testing.T, app *fiber.App, login, password string) string {
	t.Helper()

	b, _ := json.Marshal(map[string]string{"login": login, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	var data struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, app, req, &data)
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func call(t *testing.T, app *fiber.App, tok, target string, out any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	decode(t, app, req, out)
}

func decode(t *testing.T, app *fiber.App, req *http.Request, out any) {
	t.Helper()

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	var sr semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	require.Equal(t, http.StatusOK, sr.Status, "%s %s: %s", req.Method, req.URL, sr.Message)
	require.NoError(t, json.Unmarshal(sr.Data, out))
}

func stringsOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
