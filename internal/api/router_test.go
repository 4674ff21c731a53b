package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/board-api/config"
	"github.com/d60-Lab/board-api/internal/api/handler"
	"github.com/d60-Lab/board-api/internal/api/middleware"
	"github.com/d60-Lab/board-api/internal/repository"
	"github.com/d60-Lab/board-api/internal/service"
	"github.com/d60-Lab/board-api/pkg/response"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "board-api", Version: "1.0.0", Env: "test"},
		Server:  config.ServerConfig{Port: 8080, Mode: gin.TestMode},
		Store:   config.StoreConfig{Driver: config.StoreMemory},
		CORS:    config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}},
		Swagger: config.SwaggerConfig{Enabled: true},
	}
}

func newTestRouter(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}
	store := repository.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	h := handler.NewHandler(service.NewUserService(store), service.NewPostService(store), cfg.App.Version)
	return SetupRouter(cfg, h)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestDemoEndpoints(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/api/hello", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, handler.MsgHello, body["message"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w = do(r, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	users := decode(t, w)["users"].([]any)
	require.Len(t, users, 2)
	assert.Equal(t, "사용자1", users[0].(map[string]any)["name"])

	w = do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = do(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/api-docs/index.html")
}

func TestMessage(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/message", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "hi", body["receivedMessage"])
	assert.NotEmpty(t, body["processedAt"])

	for _, in := range []string{"", `{}`, `{"message":""}`, `{"message":null}`, `{"message":0}`, `{"message":false}`} {
		w = do(r, http.MethodPost, "/api/message", in)
		assert.Equal(t, http.StatusBadRequest, w.Code, in)
		assert.Equal(t, handler.MsgMessageMissing, decode(t, w)["error"], in)
	}
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/auth/register", `{"username":"alice","email":"a@x.io","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, handler.MsgRegistered, body["message"])
	user := body["user"].(map[string]any)
	assert.EqualValues(t, 3, user["id"])
	assert.NotContains(t, user, "password")

	w = do(r, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "fake_token_3", body["token"])
	assert.Equal(t, handler.MsgLoggedIn, body["message"])
	loginUser := body["user"].(map[string]any)
	assert.EqualValues(t, 3, loginUser["id"])
	assert.Equal(t, "alice", loginUser["username"])
	assert.Equal(t, "a@x.io", loginUser["email"])
	assert.NotContains(t, loginUser, "createdAt")
	assert.NotContains(t, loginUser, "password")

	w = do(r, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong!!"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, service.MsgBadCredentials, decode(t, w)["error"])

	w = do(r, http.MethodGet, "/api/auth/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 3)
	assert.NotContains(t, w.Body.String(), "password")

	w = do(r, http.MethodGet, "/api/auth/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user1", decode(t, w)["username"])

	for _, path := range []string{"/api/auth/users/99", "/api/auth/users/abc"} {
		w = do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, service.MsgUserNotFound, decode(t, w)["error"], path)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(t, nil)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", service.MsgRegisterFieldsRequired},
		{"missing field", `{"username":"bob","email":"b@x.io"}`, service.MsgRegisterFieldsRequired},
		{"short username", `{"username":"ab","email":"b@x.io","password":"secret1"}`, service.MsgUsernameTooShort},
		{"short password", `{"username":"bob","email":"b@x.io","password":"12345"}`, service.MsgPasswordTooShort},
		{"bad email", `{"username":"bob","email":"bob","password":"secret1"}`, service.MsgInvalidEmail},
		{"taken username", `{"username":"user1","email":"new@x.io","password":"secret1"}`, service.MsgUsernameTaken},
		{"taken email", `{"username":"bobby","email":"user1@example.com","password":"secret1"}`, service.MsgEmailTaken},
		{"malformed json", `{"username":`, handler.MsgInvalidBody},
		{"wrong type", `{"username":123,"email":"b@x.io","password":"secret1"}`, handler.MsgInvalidBody},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/auth/register", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, decode(t, w)["error"])
		})
	}
}

func TestPostsCRUD(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/api/posts?page=2&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 2, page["total"])
	assert.EqualValues(t, 2, page["page"])
	assert.EqualValues(t, 2, page["pages"])
	posts := page["posts"].([]any)
	require.Len(t, posts, 1)
	assert.EqualValues(t, 2, posts[0].(map[string]any)["id"])

	w = do(r, http.MethodGet, "/api/posts?page=abc&limit=", "")
	require.Equal(t, http.StatusOK, w.Code)
	page = decode(t, w)
	assert.EqualValues(t, 1, page["page"])
	assert.Len(t, page["posts"], 2)

	w = do(r, http.MethodGet, "/api/posts/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	post := decode(t, w)
	assert.EqualValues(t, 11, post["views"])
	assert.NotContains(t, post, "updatedAt")

	w = do(r, http.MethodPost, "/api/posts", `{"title":"t","content":"c","author":"a"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	post = decode(t, w)
	assert.EqualValues(t, 3, post["id"])
	assert.EqualValues(t, 0, post["views"])

	w = do(r, http.MethodPost, "/api/posts", `{"title":"t","content":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.MsgPostFieldsRequired, decode(t, w)["error"])

	w = do(r, http.MethodPut, "/api/posts/3", `{"title":"edited","content":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	post = decode(t, w)
	assert.Equal(t, "edited", post["title"])
	assert.Equal(t, "c", post["content"])
	assert.NotEmpty(t, post["updatedAt"])

	w = do(r, http.MethodPut, "/api/posts/99", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/posts/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, handler.MsgPostDeleted, body["message"])
	assert.EqualValues(t, 3, body["post"].(map[string]any)["id"])

	for _, c := range []struct{ method, path string }{
		{http.MethodGet, "/api/posts/3"},
		{http.MethodDelete, "/api/posts/3"},
		{http.MethodGet, "/api/posts/abc"},
	} {
		w = do(r, c.method, c.path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, c.path)
		assert.Equal(t, service.MsgPostNotFound, decode(t, w)["error"], c.path)
	}

	// 删除后 id 不复用
	w = do(r, http.MethodPost, "/api/posts", `{"title":"t2","content":"c2","author":"a2"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 4, decode(t, w)["id"])
}

func TestListPostsHugeQueryValues(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/api/posts?limit=9223372036854775807", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 2, page["total"])
	assert.EqualValues(t, 1, page["pages"])
	assert.Len(t, page["posts"], 2)

	w = do(r, http.MethodGet, "/api/posts?page=3&limit=4611686018427387904", "")
	require.Equal(t, http.StatusOK, w.Code)
	page = decode(t, w)
	assert.EqualValues(t, 1, page["pages"])
	assert.Empty(t, page["posts"])
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, MsgRouteNotFound, decode(t, w)["error"])
}

func TestPanicRecovered(t *testing.T) {
	r := newTestRouter(t, nil)
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, response.MsgInternal, body["error"])
	assert.Equal(t, "boom", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}
	})
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "").Code)
	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, middleware.MsgTooManyRequests, decode(t, w)["error"])
}

func TestSwaggerDocs(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(r, http.MethodGet, "/api-docs/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/posts/{id}")
	assert.Contains(t, w.Body.String(), "handler.loginUser")

	off := newTestRouter(t, func(cfg *config.Config) { cfg.Swagger.Enabled = false })
	assert.Equal(t, http.StatusNotFound, do(off, http.MethodGet, "/api-docs/doc.json", "").Code)
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestGzip(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}
