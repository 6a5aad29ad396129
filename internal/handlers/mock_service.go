package handlers

import (
	"context"
	"net/http"

	"portfolio_cms/internal/models"
	"portfolio_cms/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginRes service.LoginResult
	loginErr error
	parseID  string
	parseErr error

	lastLoginUsername string
	lastLoginPassword string
	lastParseToken    string
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (service.LoginResult, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginRes, m.loginErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	return false, nil
}

type mockResource[P any] struct {
	list []P
	doc  P
	err  error

	lastID   string
	lastBody string
	calls    []string
}

func (m *mockResource[P]) List(ctx context.Context) ([]P, error) {
	m.calls = append(m.calls, "list")
	return m.list, m.err
}
func (m *mockResource[P]) Get(ctx context.Context, id string) (P, error) {
	m.calls = append(m.calls, "get")
	m.lastID = id
	return m.doc, m.err
}
func (m *mockResource[P]) Create(ctx context.Context, body []byte) (P, error) {
	m.calls = append(m.calls, "create")
	m.lastBody = string(body)
	return m.doc, m.err
}
func (m *mockResource[P]) Update(ctx context.Context, id string, patch []byte) (P, error) {
	m.calls = append(m.calls, "update")
	m.lastID = id
	m.lastBody = string(patch)
	return m.doc, m.err
}
func (m *mockResource[P]) Delete(ctx context.Context, id string) error {
	m.calls = append(m.calls, "delete")
	m.lastID = id
	return m.err
}

type mockProfile struct {
	profile   *models.Profile
	err       error
	lastPatch string
}

func (m *mockProfile) GetSingleton(ctx context.Context) (*models.Profile, error) {
	return m.profile, m.err
}
func (m *mockProfile) UpsertSingleton(ctx context.Context, patch []byte) (*models.Profile, error) {
	m.lastPatch = string(patch)
	return m.profile, m.err
}

type mockMessages struct {
	msg    *models.Message
	list   []*models.Message
	err    error
	lastID string
}

func (m *mockMessages) Create(ctx context.Context, body []byte) (*models.Message, error) {
	return m.msg, m.err
}
func (m *mockMessages) List(ctx context.Context) ([]*models.Message, error) {
	return m.list, m.err
}
func (m *mockMessages) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return m.err
}

type mockEventLog struct {
	resp       []models.ContentEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ContentEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockStats struct {
	stats models.ContentStats
	err   error
}

func (m *mockStats) Snapshot(ctx context.Context) (models.ContentStats, error) {
	return m.stats, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWithOptions(s, Options{})
}

func newTestRouterWithOptions(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
