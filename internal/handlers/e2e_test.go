package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"portfolio_cms/internal/handlers"
	"portfolio_cms/internal/repository"
	"portfolio_cms/internal/repository/db"
	"portfolio_cms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const e2eSecret = "e2e-secret"

type e2eApp struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

// newE2EApp wires the whole stack on a throwaway sqlite file and logs in as admin.
func newE2EApp(t *testing.T) *e2eApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, driver, err := db.InitDB(db.Options{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "portfolio.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	svc := service.NewService(repository.NewRepository(conn, driver), service.AuthConfig{
		SigningKey: e2eSecret,
		BcryptCost: 4,
	}, nil)
	created, err := svc.EnsureAdmin(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	require.True(t, created)

	app := &e2eApp{t: t, router: handlers.NewHandler(svc, nil, handlers.Options{}).InitRoutes()}

	w := app.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"s3cret"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login service.LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	app.token = login.Token
	return app
}

func (a *e2eApp) do(method, target, body, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestE2E_SkillLifecycle(t *testing.T) {
	app := newE2EApp(t)
	const base = "/api/developer/skills"

	w := app.do(http.MethodPost, base, `{"category":"LANGUAGES","name":"Go","level":3,"xp":"1 Yr"}`, app.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeMap(t, w)
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Go", created["name"])
	assert.NotEmpty(t, created["createdAt"])

	w = app.do(http.MethodGet, base+"/"+id, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeMap(t, w))

	w = app.do(http.MethodPut, base+"/"+id, `{"xp":"2 Yrs"}`, app.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeMap(t, w)
	assert.Equal(t, "2 Yrs", updated["xp"])
	assert.Equal(t, "Go", updated["name"])
	assert.Equal(t, "LANGUAGES", updated["category"])
	assert.Equal(t, id, updated["_id"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])

	w = app.do(http.MethodGet, base+"/"+id, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2 Yrs", decodeMap(t, w)["xp"])

	w = app.do(http.MethodDelete, base+"/"+id, "", app.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Deleted successfully", decodeMap(t, w)["message"])

	w = app.do(http.MethodGet, base+"/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Document not found", decodeMap(t, w)["error"])

	// second delete is not idempotent-success
	w = app.do(http.MethodDelete, base+"/"+id, "", app.token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestE2E_MissingIDsAre404(t *testing.T) {
	app := newE2EApp(t)
	for _, id := range []string{"does-not-exist", "6f1c1f7e-1b9f-4e0a-9d43-1b8f9c1a2b3c"} {
		target := "/api/creator/books/" + id
		assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, target, "", "").Code, id)
		assert.Equal(t, http.StatusNotFound, app.do(http.MethodPut, target, `{"title":"x"}`, app.token).Code, id)
		assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, target, "", app.token).Code, id)
	}
}

func TestE2E_InvalidCreateIsNotPersisted(t *testing.T) {
	app := newE2EApp(t)
	const base = "/api/developer/skills"

	w := app.do(http.MethodPost, base, `{"category":"LANGUAGES","level":3}`, app.token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "skills validation failed: name is required", decodeMap(t, w)["error"])

	w = app.do(http.MethodPost, base, `{"category":"LANGUAGES","name":"Go","level":"high"}`, app.token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, base, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestE2E_NumericStringsFromForms(t *testing.T) {
	app := newE2EApp(t)
	const base = "/api/developer/skills"

	w := app.do(http.MethodPost, base, `{"category":"LANGUAGES","name":"Go","level":"4"}`, app.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeMap(t, w)
	assert.EqualValues(t, 4, created["level"])

	id := created["_id"].(string)
	w = app.do(http.MethodPut, base+"/"+id, `{"level":"5"}`, app.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 5, decodeMap(t, w)["level"])

	w = app.do(http.MethodPut, base+"/"+id, `{"level":"9"}`, app.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, base, `{"category":"LANGUAGES","name":"Rust","level":"high"}`, app.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPatch, "/api/profile", `{"sections":{"skills":{"items":[{"name":"Go","val":"85"}]}}}`, app.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeMap(t, w)["data"].(map[string]any)
	items := data["sections"].(map[string]any)["skills"].(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, 85, items[0].(map[string]any)["val"])
}

func TestE2E_AuthRules(t *testing.T) {
	app := newE2EApp(t)
	const body = `{"category":"LANGUAGES","name":"Go","level":3}`

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/api/developer/skills", body, "").Code)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "someone",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := foreign.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/api/developer/skills", body, signed).Code)

	wrongPass := app.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"nope"}`, "")
	unknownUser := app.do(http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"s3cret"}`, "")
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
}

func TestE2E_ProfileSingleton(t *testing.T) {
	app := newE2EApp(t)

	w := app.do(http.MethodGet, "/api/profile", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeMap(t, w)["data"])

	w = app.do(http.MethodPatch, "/api/profile", `{"header":{"name":"Ada"}}`, app.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decodeMap(t, w)["data"].(map[string]any)

	w = app.do(http.MethodPatch, "/api/profile", `{"header":{"role":"Engineer"}}`, app.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decodeMap(t, w)["data"].(map[string]any)
	assert.Equal(t, first["_id"], second["_id"])

	w = app.do(http.MethodGet, "/api/stats", "", app.token)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeMap(t, w)
	assert.EqualValues(t, 1, stats["collections"].(map[string]any)["profile"])
}

func TestE2E_ActivityRecordsMutations(t *testing.T) {
	app := newE2EApp(t)

	w := app.do(http.MethodPost, "/api/creator/thoughts", `{"date":"2025-01-01","text":"hello"}`, app.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(http.MethodGet, "/api/activity?collection=thoughts", "", app.token)
	require.Equal(t, http.StatusOK, w.Code)
	out := decodeMap(t, w)
	assert.EqualValues(t, 1, out["count"])

	w = app.do(http.MethodGet, "/api/activity?type=login", "", app.token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeMap(t, w)["count"])
}
