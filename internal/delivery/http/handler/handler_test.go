package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kks-tracker/internal/delivery/http/middleware"
	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/domain/document"
	"kks-tracker/internal/domain/worker"
	"kks-tracker/internal/pkg/response"
	"kks-tracker/internal/usecase"
	ucauth "kks-tracker/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(callerID int64, role worker.Role) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Use(func(c fiber.Ctx) error {
		if callerID > 0 {
			c.Locals(middleware.CtxWorkerIDKey, callerID)
			c.Locals(middleware.CtxRoleKey, role)
		}
		return c.Next()
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, response.SemanticResponse) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response.SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

type stubRecommender struct {
	got []int64
	out []catalog.ProgramSummary
	err error
}

func (s *stubRecommender) RecommendPrograms(_ context.Context, ids []int64) ([]catalog.ProgramSummary, error) {
	s.got = ids
	return s.out, s.err
}

func TestProgramHandler_Recommended(t *testing.T) {
	rec := &stubRecommender{out: []catalog.ProgramSummary{{ID: 3, Name: "Сварка", OrgShortName: "УЦ"}}}
	app := newTestApp(1, worker.RoleStaff)
	NewProgramHandler(nil, rec).RegisterRoutes(app.Group("/programs"), middleware.RequireAdmin())

	status, body := doRequest(t, app, http.MethodGet, "/programs/recommended?kks_ids=4,abc,2", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int64{4, 2}, rec.got)

	items, ok := body.Data.([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "УЦ", items[0].(map[string]any)["organization_short_name"])
}

func TestProgramHandler_RecommendedFailureIs500(t *testing.T) {
	rec := &stubRecommender{err: usecase.ErrAggregationFailed}
	app := newTestApp(1, worker.RoleStaff)
	NewProgramHandler(nil, rec).RegisterRoutes(app.Group("/programs"), middleware.RequireAdmin())

	status, body := doRequest(t, app, http.MethodGet, "/programs/recommended?kks_ids=1", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, response.MessageInternalServerError, body.Message)
	assert.Nil(t, body.Data)
}

type stubKKS struct {
	created usecase.KKSInput
	err     error
}

func (s *stubKKS) List(context.Context) ([]catalog.KKS, error) {
	return []catalog.KKS{{ID: 1, FullName: "Контроль", ShortName: "К"}}, nil
}
func (s *stubKKS) Create(_ context.Context, in usecase.KKSInput) (catalog.KKS, error) {
	s.created = in
	return catalog.KKS{ID: 2, FullName: in.FullName, ShortName: in.ShortName}, s.err
}
func (s *stubKKS) Update(_ context.Context, id int64, in usecase.KKSInput) (catalog.KKS, error) {
	return catalog.KKS{ID: id, FullName: in.FullName}, s.err
}
func (s *stubKKS) Delete(context.Context, int64) error { return s.err }

func TestKKSHandler_AdminGate(t *testing.T) {
	uc := &stubKKS{}

	staff := newTestApp(5, worker.RoleStaff)
	NewKKSHandler(uc).RegisterRoutes(staff.Group("/kks"), middleware.RequireAdmin())
	status, _ := doRequest(t, staff, http.MethodPost, "/kks", `{"full_name":"X"}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doRequest(t, staff, http.MethodGet, "/kks", "")
	assert.Equal(t, http.StatusOK, status)

	admin := newTestApp(1, worker.RoleAdmin)
	NewKKSHandler(uc).RegisterRoutes(admin.Group("/kks"), middleware.RequireAdmin())
	status, body := doRequest(t, admin, http.MethodPost, "/kks", `{"full_name":"Сварка","short_name":"СВ"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Сварка", uc.created.FullName)
	assert.Equal(t, "Сварка", body.Data.(map[string]any)["full_name"])
}

func TestKKSHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{usecase.ErrInUse, http.StatusConflict},
		{usecase.ErrNotFound, http.StatusNotFound},
		{usecase.ErrInvalidInput, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := newTestApp(1, worker.RoleAdmin)
		NewKKSHandler(&stubKKS{err: tc.err}).RegisterRoutes(app.Group("/kks"), middleware.RequireAdmin())
		status, _ := doRequest(t, app, http.MethodDelete, "/kks/3", "")
		assert.Equal(t, tc.status, status, tc.err.Error())
	}

	app := newTestApp(1, worker.RoleAdmin)
	NewKKSHandler(&stubKKS{}).RegisterRoutes(app.Group("/kks"), middleware.RequireAdmin())
	status, _ := doRequest(t, app, http.MethodDelete, "/kks/zero", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

type stubDocuments struct {
	caller usecase.Caller
	query  usecase.DocumentQuery
}

func (s *stubDocuments) List(_ context.Context, caller usecase.Caller, q usecase.DocumentQuery) (usecase.DocumentListing, error) {
	s.caller, s.query = caller, q
	items := []document.Listing{{Document: document.Document{ID: 1, WorkerID: caller.WorkerID}, ProgramName: "Сварка"}}
	if caller.Role == worker.RoleAdmin {
		items[0].WorkerName = "Иванов"
		return usecase.AllDocuments{WorkerID: q.WorkerID, Items: items}, nil
	}
	return usecase.OwnDocuments{WorkerID: caller.WorkerID, Items: items}, nil
}
func (s *stubDocuments) Create(context.Context, usecase.DocumentInput) (document.Document, error) {
	return document.Document{}, usecase.ErrReferenceNotFound
}
func (s *stubDocuments) Update(context.Context, int64, usecase.DocumentInput) (document.Document, error) {
	return document.Document{}, nil
}
func (s *stubDocuments) Delete(context.Context, int64) error { return nil }

func TestDocumentHandler_ListTagsVisibility(t *testing.T) {
	uc := &stubDocuments{}
	app := newTestApp(7, worker.RoleStaff)
	NewDocumentHandler(uc).RegisterRoutes(app.Group("/documents"), middleware.RequireAdmin())

	status, body := doRequest(t, app, http.MethodGet, "/documents?worker_id=9&from=2020-01-01", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(9), uc.query.WorkerID)
	assert.Equal(t, "2020-01-01", uc.query.From)

	data := body.Data.(map[string]any)
	assert.Equal(t, "own", data["visibility"])
	row := data["items"].([]any)[0].(map[string]any)
	_, hasName := row["worker_name"]
	assert.False(t, hasName)

	admin := newTestApp(1, worker.RoleAdmin)
	NewDocumentHandler(uc).RegisterRoutes(admin.Group("/documents"), middleware.RequireAdmin())
	_, body = doRequest(t, admin, http.MethodGet, "/documents", "")
	data = body.Data.(map[string]any)
	assert.Equal(t, "all", data["visibility"])
	assert.Equal(t, "Иванов", data["items"].([]any)[0].(map[string]any)["worker_name"])
}

func TestDocumentHandler_Unauthenticated(t *testing.T) {
	app := newTestApp(0, 0)
	NewDocumentHandler(&stubDocuments{}).RegisterRoutes(app.Group("/documents"), middleware.RequireAdmin())

	status, _ := doRequest(t, app, http.MethodGet, "/documents", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDocumentHandler_CreateMissingReference(t *testing.T) {
	app := newTestApp(1, worker.RoleAdmin)
	NewDocumentHandler(&stubDocuments{}).RegisterRoutes(app.Group("/documents"), middleware.RequireAdmin())

	status, _ := doRequest(t, app, http.MethodPost, "/documents", `{"worker_id":1,"program_id":99}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

type stubAuth struct {
	err error
}

func (s stubAuth) Login(_ context.Context, in ucauth.LoginInput) (worker.Worker, string, string, error) {
	if s.err != nil {
		return worker.Worker{}, "", "", s.err
	}
	return worker.Worker{ID: 3, FullName: "Петров", Login: in.Login, PasswordHash: "secret-hash"}, "access", "refresh", nil
}

func (s stubAuth) Refresh(context.Context, string) (string, string, error) {
	return "", "", usecase.ErrRefreshTokenExpired
}

func TestAuthHandler_Login(t *testing.T) {
	app := newTestApp(0, 0)
	NewAuthHandler(stubAuth{}).RegisterRoutes(app.Group("/auth"))

	status, body := doRequest(t, app, http.MethodPost, "/auth/login", `{"login":"petrov","password":"pw"}`)
	require.Equal(t, http.StatusOK, status)
	data := body.Data.(map[string]any)
	assert.Equal(t, "access", data["access_token"])
	assert.NotContains(t, data["worker"].(map[string]any), "password_hash")

	status, _ = doRequest(t, app, http.MethodPost, "/auth/login", `{"login":"petrov"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuthHandler_Failures(t *testing.T) {
	app := newTestApp(0, 0)
	NewAuthHandler(stubAuth{err: usecase.ErrUnauthorized}).RegisterRoutes(app.Group("/auth"))

	status, body := doRequest(t, app, http.MethodPost, "/auth/login", `{"login":"a","password":"b"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid login or password", body.Message)

	status, _ = doRequest(t, app, http.MethodPost, "/auth/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer old")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out response.SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Refresh token expired", out.Message)
}
