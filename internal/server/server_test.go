package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/app"
	"github.com/claimsift/claimsift/internal/scrape"
	"github.com/claimsift/claimsift/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnalyzer struct {
	result types.AnalysisResult
	last   types.AnalyzeRequest
	calls  int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req types.AnalyzeRequest) types.AnalysisResult {
	f.calls++
	f.last = req
	return f.result
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	srv := New(&fakeAnalyzer{}, zap.NewNop())
	w := doRequest(t, srv, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Fact-checking pipeline is running.", body["message"])
}

func TestAnalyzePassesRequestThrough(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{result: types.AnalysisResult{
		Claims:  []types.Claim{{ClaimText: "a claim", Category: types.CategoryFabricated}},
		Summary: "done",
	}}
	srv := New(analyzer, zap.NewNop())

	w := doRequest(t, srv, http.MethodPost, "/analyze", `{"text":"hello","url":"https://x.com/u/status/1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, analyzer.calls)
	assert.Equal(t, "hello", analyzer.last.Text)
	assert.Equal(t, "https://x.com/u/status/1", analyzer.last.URL)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Claims, 1)
	assert.Equal(t, "done", result.Summary)
}

func TestAnalyzeRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{}
	srv := New(analyzer, zap.NewNop())

	w := doRequest(t, srv, http.MethodPost, "/analyze", `{"text": `)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, analyzer.calls)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Claims)
	assert.Empty(t, result.Claims)
	assert.Contains(t, result.Error, "Invalid request body")
}

// --- end-to-end through the real pipeline, classifier faked ---

type stubExtractor struct{ result types.AnalysisResult }

func (s stubExtractor) ExtractAndClassify(_ context.Context, _, _ string) types.AnalysisResult {
	return s.result
}

type unreachableRetriever struct{ t *testing.T }

func (u unreachableRetriever) Scrape(_ context.Context, _ string) types.ScrapeResult {
	u.t.Fatal("retriever should not be called")
	return types.ScrapeResult{}
}

type unreachablePlatformRetriever struct{ t *testing.T }

func (u unreachablePlatformRetriever) Scrape(_ context.Context, _ string, _ types.Platform) types.ScrapeResult {
	u.t.Fatal("browser retriever should not be called")
	return types.ScrapeResult{}
}

func newPipelineServer(t *testing.T) *gin.Engine {
	t.Helper()
	dispatcher := scrape.NewDispatcher(
		unreachableRetriever{t},
		unreachableRetriever{t},
		unreachablePlatformRetriever{t},
		zap.NewNop(),
	)
	pipeline := app.New(dispatcher, stubExtractor{}, zap.NewNop())
	return New(pipeline, zap.NewNop())
}

func TestAnalyzeUnknownHostURL(t *testing.T) {
	t.Parallel()

	srv := newPipelineServer(t)
	w := doRequest(t, srv, http.MethodPost, "/analyze", `{"url":"https://example.com/some/post"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Contains(t, result.Error, "Unrecognized URL")
	require.NotNil(t, result.Claims)
	assert.Empty(t, result.Claims)
	require.NotNil(t, result.Scraped)
	assert.Equal(t, types.PlatformUnknown, result.Scraped.Platform)
}

func TestAnalyzeWhitespaceOnlyText(t *testing.T) {
	t.Parallel()

	srv := newPipelineServer(t)
	w := doRequest(t, srv, http.MethodPost, "/analyze", `{"text":"   \n  "}`)

	require.Equal(t, http.StatusOK, w.Code)
	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "No text content could be extracted from this post.", result.Error)
	assert.Nil(t, result.Scraped)
}
