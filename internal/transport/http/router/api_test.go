package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"easy-matters/internal/core/auth"
	"easy-matters/internal/core/config"
	"easy-matters/internal/core/database"
	"easy-matters/internal/repo"
	"easy-matters/internal/service"
	"easy-matters/internal/testkit"
	"easy-matters/internal/transport/http/handler"
)

type apiClient struct {
	t     *testing.T
	h     http.Handler
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testkit.SQLite(t)
	require.NoError(t, repo.Migrate(db))

	l := zap.NewNop()
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "easy-matters", TTL: 24 * time.Hour, Leeway: time.Minute}
	users := repo.NewUserRepo(db)
	customers := repo.NewCachingCustomerRepo(repo.NewCustomerRepo(db), nil, time.Minute, l)
	matters := repo.NewMatterRepo(db)

	reg := NewRegistry(
		handler.NewUsers(service.NewUserService(users), l),
		handler.NewMatters(service.NewMatterService(customers, matters), l),
		handler.NewCustomers(service.NewCustomerService(customers), l),
		handler.NewAuth(service.NewAuthService(users, j), l),
	)
	engine := NewAPIEngine(Deps{
		Log:      l,
		HTTP:     config.HTTP{MaxBodyBytes: 1 << 20, RequestTimeoutSec: 5, MaxInFlight: 10},
		Origins:  []string{"http://localhost:5173"},
		JWT:      j,
		Ping:     func(ctx context.Context) error { return database.Ping(ctx, db) },
		Registry: reg,
	})
	return &apiClient{t: t, h: engine}
}

func (a *apiClient) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (a *apiClient) list(path string) []map[string]any {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+a.token)
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var out []map[string]any
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (a *apiClient) login() {
	a.t.Helper()
	w, body := a.do(http.MethodPost, "/api/auth/signup", gin.H{"email": "abby@dennis.law", "firmName": "Dennis Law", "password": "correct-horse"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	w, body = a.do(http.MethodPost, "/api/auth/login", gin.H{"email": "abby@dennis.law", "password": "correct-horse"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	a.token = body["access_token"].(string)
}

func idOf(m map[string]any) string { return strconv.Itoa(int(m["id"].(float64))) }

func TestHealth(t *testing.T) {
	a := newAPI(t)

	w, body := a.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Health check ok", body["message"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, body = a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["ok"])

	w, _ = a.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestHealth_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := NewAPIEngine(Deps{
		Log:      zap.NewNop(),
		JWT:      &auth.JWTer{Secret: []byte("x"), TTL: time.Hour},
		Ping:     func(context.Context) error { return errors.New("connection refused") },
		Registry: NewRegistry(),
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t)

	w, body := a.do(http.MethodPost, "/api/auth/signup", gin.H{"email": "Abby@Dennis.law", "firmName": "Dennis Law", "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "abby@dennis.law", body["email"])
	assert.Equal(t, "Dennis Law", body["firmName"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")

	w, body = a.do(http.MethodPost, "/api/auth/signup", gin.H{"email": "abby@dennis.law", "firmName": "Other", "password": "another-one"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", body["error"])

	w, body = a.do(http.MethodPost, "/api/auth/signup", gin.H{"email": "not-an-email", "firmName": "F", "password": "12345678"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email must be a valid email address", body["error"])

	w, body = a.do(http.MethodPost, "/api/auth/signup", gin.H{"email": "  gaba@dennis.law ", "firmName": "Dennis Law", "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "gaba@dennis.law", body["email"])

	wWrong, wrong := a.do(http.MethodPost, "/api/auth/login", gin.H{"email": "abby@dennis.law", "password": "nope-nope"})
	wUnknown, unknown := a.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ghost@dennis.law", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, wrong, unknown)
	assert.Equal(t, "Invalid credentials", wrong["error"])

	w, body = a.do(http.MethodPost, "/api/auth/login", gin.H{"email": "abby@dennis.law", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, w.Code)
	a.token = body["access_token"].(string)
	user := body["user"].(map[string]any)

	w, body = a.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user, body["user"])

	users := a.list("/api/users")
	require.Len(t, users, 2)
	assert.Equal(t, "abby@dennis.law", users[0]["email"])

	w, _ = a.do(http.MethodPost, "/api/auth/login", gin.H{"email": " Gaba@Dennis.law", "password": "correct-horse"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	a := newAPI(t)

	for _, path := range []string{"/api/auth/me", "/api/users", "/api/customers", "/api/customers/1/matters"} {
		w, body := a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "No token provided", body["error"], path)
	}

	a.token = "not.a.token"
	w, body := a.do(http.MethodGet, "/api/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", body["error"])
	assert.Equal(t, "invalid_token", body["code"])
}

func TestCustomersAndMatters(t *testing.T) {
	a := newAPI(t)
	a.login()

	w, body := a.do(http.MethodPost, "/api/customers", gin.H{"phoneNumber": "555"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name is required", body["error"])

	w, acme := a.do(http.MethodPost, "/api/customers", gin.H{"name": "Acme", "phoneNumber": "555-0100"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, acme["isActive"])
	acmeID := idOf(acme)

	w, body = a.do(http.MethodGet, "/api/customers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid customer ID", body["error"])
	w, body = a.do(http.MethodGet, "/api/customers/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Customer not found", body["error"])

	w, body = a.do(http.MethodPut, "/api/customers/"+acmeID, gin.H{"name": "Acme Ltd"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Ltd", body["name"])
	assert.Equal(t, "555-0100", body["phoneNumber"])

	w, body = a.do(http.MethodPut, "/api/customers/"+acmeID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No update data provided", body["error"])

	w, body = a.do(http.MethodPost, "/api/customers/"+acmeID+"/matters", gin.H{"name": "Lease"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Description is required", body["error"])

	w, matter := a.do(http.MethodPost, "/api/customers/"+acmeID+"/matters", gin.H{"name": "Lease", "description": "Office lease"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, acme["id"], matter["customerId"])
	assert.NotEmpty(t, matter["createdAt"])

	w, body = a.do(http.MethodPost, "/api/customers/999/matters", gin.H{"name": "Lease", "description": "d"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Customer not found", body["error"])

	w, globex := a.do(http.MethodPost, "/api/customers", gin.H{"name": "Globex"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, a.list("/api/customers/"+idOf(globex)+"/matters"))

	w, body = a.do(http.MethodGet, "/api/customers/"+idOf(globex)+"/matters/"+idOf(matter), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Matter not found", body["error"])
	w, body = a.do(http.MethodGet, "/api/customers/"+acmeID+"/matters/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid matter ID", body["error"])
	w, body = a.do(http.MethodGet, "/api/customers/"+acmeID+"/matters/"+idOf(matter), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Office lease", body["description"])

	// soft delete keeps the row and its matters
	w, body = a.do(http.MethodDelete, "/api/customers/"+acmeID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["isActive"])

	w, body = a.do(http.MethodGet, "/api/customers/"+acmeID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["isActive"])
	assert.Len(t, a.list("/api/customers/"+acmeID+"/matters"), 1)

	assert.Len(t, a.list("/api/customers"), 2)
	assert.Len(t, a.list("/api/customers?active=true"), 1)
	inactive := a.list("/api/customers?active=false")
	require.Len(t, inactive, 1)
	assert.Equal(t, acme["id"], inactive[0]["id"])

	w, _ = a.do(http.MethodDelete, "/api/customers/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type orderModule struct {
	name string
	prio int
	log  *[]string
}

func (m orderModule) MountAPI(_, _ *gin.RouterGroup) { *m.log = append(*m.log, m.name) }
func (m orderModule) Priority() int                  { return m.prio }

type plainModule struct{ log *[]string }

func (m plainModule) MountAPI(_, _ *gin.RouterGroup) { *m.log = append(*m.log, "plain") }

func TestRegistryOrder(t *testing.T) {
	var log []string
	reg := NewRegistry(plainModule{&log}, orderModule{"late", 200, &log}, orderModule{"first", 1, &log}, nil)
	reg.Register(orderModule{"second", 1, &log})

	g := gin.New().Group("/")
	reg.MountAll(g, g)
	assert.Equal(t, []string{"first", "second", "plain", "late"}, log)
}

func TestRejectedRequestsAreLoggedAndCounted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.WarnLevel)
	engine := NewAPIEngine(Deps{
		Log:      zap.New(core),
		HTTP:     config.HTTP{RateLimitRPS: 0.001, RateLimitBurst: 1},
		JWT:      &auth.JWTer{Secret: []byte("x"), TTL: time.Hour},
		Ping:     func(context.Context) error { return nil },
		Registry: NewRegistry(),
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.1.2.3:4000"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}
	require.Equal(t, http.StatusOK, get("/").Code)
	rejected := get("/")
	require.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.NotEmpty(t, rejected.Header().Get("X-Request-ID"))

	entries := logs.FilterMessage("HTTP").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, http.StatusTooManyRequests, entries[0].ContextMap()["status"])
	assert.Equal(t, rejected.Header().Get("X-Request-ID"), entries[0].ContextMap()["rid"])

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `status="429"`)
}
