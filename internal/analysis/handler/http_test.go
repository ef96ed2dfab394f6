package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/VictorSaf/ainvestfeed/internal/analysis/domain"
	"github.com/VictorSaf/ainvestfeed/internal/analysis/service"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
)

const newsID = "3f1c6a2e-8b7d-4c1e-9a55-0d2f4e6b8a10"

type stubAnalysis struct{}

func (stubAnalysis) Analyze(ctx context.Context, id string) (*service.Result, error) {
	if id != newsID {
		return nil, service.ErrNewsNotFound
	}
	return &service.Result{
		Detail:  &domain.Detail{NewsID: id, Recommendation: domain.RecommendationHold, ConfidenceScore: 60},
		Summary: &domain.Summary{NewsID: id, SummaryText: "s"},
	}, nil
}

func (stubAnalysis) Get(ctx context.Context, id string) (*service.Overview, error) {
	if id != newsID {
		return nil, service.ErrNewsNotFound
	}
	return &service.Overview{Details: []*domain.Detail{}}, nil
}

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Validator = httpx.NewValidator()
	e.HTTPErrorHandler = httpx.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	g := e.Group("")
	NewAnalysisHandler(stubAnalysis{}).Register(g, g)
	return e
}

func do(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestAnalysisHandler(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/news/"+newsID+"/analyze")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recommendation":"HOLD"`)
	assert.Contains(t, rec.Body.String(), `"summaryText":"s"`)

	rec = do(e, http.MethodGet, "/news/"+newsID+"/analysis")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"details":[],"summary":null}}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPost, "/news/00000000-0000-4000-8000-000000000000/analyze").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/news/xyz/analysis").Code)
}
