package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorSaf/ainvestfeed/internal/cache"
	identityservice "github.com/VictorSaf/ainvestfeed/internal/identity/service"
	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	newsdomain "github.com/VictorSaf/ainvestfeed/internal/news/domain"
	newsservice "github.com/VictorSaf/ainvestfeed/internal/news/service"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
	"github.com/VictorSaf/ainvestfeed/internal/policy/engine"
	"github.com/VictorSaf/ainvestfeed/internal/security"
	"github.com/VictorSaf/ainvestfeed/internal/server/middleware"
	sessiondomain "github.com/VictorSaf/ainvestfeed/internal/session/domain"
	userdomain "github.com/VictorSaf/ainvestfeed/internal/user/domain"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*userdomain.User
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(ctx context.Context, u *userdomain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return userdomain.ErrEmailTaken
		}
	}
	if err := u.Validate(); err != nil {
		return err
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.users[id]; u != nil {
		u.LastLoginAt = &at
	}
	return nil
}

func (m *memUsers) UpdateProfile(ctx context.Context, id string, p userdomain.ProfileUpdate) (*userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	if u == nil {
		return nil, nil
	}
	if p.FirstName != nil {
		u.FirstName = p.FirstName
	}
	if p.Timezone != nil {
		u.Timezone = *p.Timezone
	}
	return u, nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*sessiondomain.Session
}

func (m *memSessions) Create(ctx context.Context, s *sessiondomain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.RefreshTokenHash] = s
	return nil
}

func (m *memSessions) GetByRefreshHash(ctx context.Context, hash string) (*sessiondomain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[hash], nil
}

func (m *memSessions) UpdateLastUsed(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (m *memSessions) DeleteByRefreshHash(ctx context.Context, hash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[hash]; !ok {
		return 0, nil
	}
	delete(m.sessions, hash)
	return 1, nil
}

type memNews struct {
	mu       sync.Mutex
	items    []*newsdomain.News
	getCalls int
}

func (m *memNews) GetByID(ctx context.Context, id string) (*newsdomain.News, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	for _, n := range m.items {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (m *memNews) GetByContentHash(ctx context.Context, hash string) (*newsdomain.News, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.items {
		if n.ContentHash == hash {
			return n, nil
		}
	}
	return nil, nil
}

func (m *memNews) Create(ctx context.Context, n *newsdomain.News) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, n)
	return nil
}

func (m *memNews) List(ctx context.Context, f newsdomain.ListFilter) ([]*newsdomain.News, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.Offset >= len(m.items) {
		return nil, nil
	}
	return m.items[f.Offset:min(f.Offset+f.Limit, len(m.items))], nil
}

func (m *memNews) Count(ctx context.Context, f newsdomain.ListFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

func (m *memNews) Search(ctx context.Context, f newsdomain.SearchFilter) ([]*newsdomain.News, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*newsdomain.News
	for _, n := range m.items {
		if strings.Contains(strings.ToLower(n.Title), strings.ToLower(f.Query)) {
			out = append(out, n)
		}
	}
	return out, nil
}

type testEnv struct {
	e      *echo.Echo
	tokens *security.TokenProvider
	news   *memNews
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	policy, err := engine.NewOPAEvaluator(context.Background(), "")
	require.NoError(t, err)

	tokens := security.NewTestTokenProvider()
	users := &memUsers{users: map[string]*userdomain.User{}}
	sessions := &memSessions{sessions: map[string]*sessiondomain.Session{}}
	news := &memNews{}

	e := New(Deps{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens:       tokens,
		Policy:       policy,
		Auth:         identityservice.NewAuthService(users, sessions, security.NewHasher(4), tokens, time.Hour),
		News:         newsservice.NewNewsService(news, cache.NewMemory(), 5*time.Second, 10*time.Second),
		Profiles:     users,
		Ingester:     ingestion.NewService(news, "api"),
		HealthPolicy: policy,
		Metrics:      true,
	})
	return &testEnv{e: e, tokens: tokens, news: news}
}

func (env *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) token(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := env.tokens.IssueAccess(role+"-id", role+"@example.com", role)
	require.NoError(t, err)
	return tok
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, into))
}

func TestServer_AuthFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", `{"email":"Flow@Example.com","password":"Password123!"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/auth/register", `{"email":"flow@example.com","password":"Password123!"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/login", `{"email":"flow@example.com","password":"wrong-password"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/login", `{"email":"flow@example.com","password":"Password123!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Tokens struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	decodeData(t, rec, &login)
	assert.Equal(t, "flow@example.com", login.User.Email)
	assert.Equal(t, "user", login.User.Role)
	require.NotEmpty(t, login.Tokens.AccessToken)
	require.NotEmpty(t, login.Tokens.RefreshToken)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/user/profile", "", "").Code)
	rec = env.do(t, http.MethodGet, "/user/profile", "", login.Tokens.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flow@example.com")

	refreshBody := `{"refreshToken":"` + login.Tokens.RefreshToken + `"}`
	rec = env.do(t, http.MethodPost, "/auth/refresh", refreshBody, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var refreshed struct {
		Tokens struct {
			AccessToken string `json:"accessToken"`
		} `json:"tokens"`
	}
	decodeData(t, rec, &refreshed)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/auth/logout", refreshBody, "").Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/auth/refresh", refreshBody, "").Code)
	// Logout is idempotent.
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/auth/logout", refreshBody, "").Code)
}

func TestServer_IngestThenReadThroughCache(t *testing.T) {
	env := newTestEnv(t)
	body := `{"sourceUrl":"https://wire.example.com/acme","title":"Acme beats estimates","contentRaw":"Record quarter"}`

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/admin/news", body, "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/admin/news", body, env.token(t, "user")).Code)

	rec := env.do(t, http.MethodPost, "/admin/news", body, env.token(t, "admin"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Created bool `json:"created"`
		News    struct {
			ID string `json:"id"`
		} `json:"news"`
	}
	decodeData(t, rec, &created)
	assert.True(t, created.Created)

	rec = env.do(t, http.MethodPost, "/admin/news", body, env.token(t, "power"))
	require.Equal(t, http.StatusOK, rec.Code)
	var dup struct {
		Created bool `json:"created"`
		News    struct {
			ID string `json:"id"`
		} `json:"news"`
	}
	decodeData(t, rec, &dup)
	assert.False(t, dup.Created)
	assert.Equal(t, created.News.ID, dup.News.ID)

	rec = env.do(t, http.MethodGet, "/news/"+created.News.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get(httpx.CacheHeader))
	var detail struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	decodeData(t, rec, &detail)
	assert.Equal(t, created.News.ID, detail.ID)
	assert.Equal(t, "Acme beats estimates", detail.Title)
	rec = env.do(t, http.MethodGet, "/news/"+created.News.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get(httpx.CacheHeader))
	assert.Equal(t, 1, env.news.getCalls)

	rec = env.do(t, http.MethodGet, "/search?q=acme", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme beats estimates")
}

func TestServer_PlatformRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/metrics", "", "").Code)

	rec = env.do(t, http.MethodGet, "/does-not-exist", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"RESOURCE_NOT_FOUND"`)

	// Seed is not mounted without a Seed dependency.
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/__seed/news", `{"title":"x"}`, "").Code)
}

func TestServer_RateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	e := New(Deps{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens:      security.NewTestTokenProvider(),
		RateLimiter: middleware.NewRateLimiter(ctx, 1, 2),
	})

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
