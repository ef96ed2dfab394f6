package handler

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

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	"github.com/VictorSaf/ainvestfeed/internal/news/domain"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
)

type memNewsRepo struct {
	mu     sync.Mutex
	byHash map[string]*domain.News
}

func newMemNewsRepo() *memNewsRepo {
	return &memNewsRepo{byHash: make(map[string]*domain.News)}
}

func (r *memNewsRepo) GetByContentHash(ctx context.Context, hash string) (*domain.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byHash[hash], nil
}

func (r *memNewsRepo) Create(ctx context.Context, n *domain.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byHash[n.ContentHash]; ok {
		return domain.ErrConflict
	}
	r.byHash[n.ContentHash] = n
	return nil
}

func newTestServer(repo *memNewsRepo) *echo.Echo {
	e := echo.New()
	e.Validator = httpx.NewValidator()
	e.HTTPErrorHandler = httpx.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	NewIngestHandler(ingestion.NewService(repo, "api")).Register(e.Group("/admin"))
	NewSeedHandler(repo).Register(e)
	return e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type ingestEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Created bool        `json:"created"`
		News    domain.News `json:"news"`
	} `json:"data"`
}

func TestIngestHandler_CreatedThenDuplicate(t *testing.T) {
	e := newTestServer(newMemNewsRepo())
	body := `{"sourceUrl":"https://example.com/a","title":"Hello","contentRaw":"World"}`

	rec := post(e, "/admin/news", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var first ingestEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.True(t, first.Data.Created)
	assert.Equal(t, "en", first.Data.News.Language)
	assert.Equal(t, ingestion.Fingerprint("Hello", strPtr("World")), first.Data.News.ContentHash)

	rec = post(e, "/admin/news", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var second ingestEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.False(t, second.Data.Created)
	assert.Equal(t, first.Data.News.ID, second.Data.News.ID)
}

func TestIngestHandler_Validation(t *testing.T) {
	e := newTestServer(newMemNewsRepo())
	rec := post(e, "/admin/news", `{"sourceUrl":"not a url","title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sourceUrl"`)
	assert.Contains(t, rec.Body.String(), `"title"`)
}

func TestSeedHandler(t *testing.T) {
	repo := newMemNewsRepo()
	e := newTestServer(repo)

	rec := post(e, "/__seed/news", `{"title":"Seeded"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = post(e, "/__seed/news", `{"title":"Seeded"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, "seed rows use unique synthetic fingerprints")
	assert.Len(t, repo.byHash, 2)
	for _, n := range repo.byHash {
		require.NotNil(t, n.Market)
		assert.Equal(t, "stocks", *n.Market)
	}

	assert.Equal(t, http.StatusBadRequest, post(e, "/__seed/news", `{}`).Code)
}

func strPtr(s string) *string { return &s }
