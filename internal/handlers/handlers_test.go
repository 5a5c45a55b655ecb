package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/services"
)

type stubInspector struct {
	err error
}

func (s stubInspector) Inspect(data []byte) (*services.PDFInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.PDFInfo{PageCount: 2, Size: int64(len(data))}, nil
}

type stubAnalyzer struct {
	result *models.BatchResult
	err    error
	job    string
	policy services.EmptyStorePolicy
}

func (s *stubAnalyzer) AnalyzeBatch(context.Context, []models.Document, string) (*models.BatchResult, error) {
	return s.result, s.err
}

func (s *stubAnalyzer) AnalyzeStore(_ context.Context, _ services.ObjectStore, job string, policy services.EmptyStorePolicy) (*models.BatchResult, error) {
	s.job = job
	s.policy = policy
	return s.result, s.err
}

func newStore(t *testing.T) services.ObjectStore {
	t.Helper()
	store, err := services.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func multipartBody(t *testing.T, field string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func newUploadApp(store services.ObjectStore, inspector services.PDFInspector) *fiber.App {
	handler := NewUploadHandler(store, inspector, 1024, 2)
	handler.now = func() time.Time { return time.UnixMilli(1700000000000) }

	app := fiber.New()
	app.Post("/upload-profiles", handler.HandleUpload)
	return app
}

func TestUploadHandler_StoresPDFs(t *testing.T) {
	store := newStore(t)
	app := newUploadApp(store, stubInspector{})

	body, contentType := multipartBody(t, "profiles", map[string]string{"Jane Doe CV.pdf": "%PDF-1.4 jane"})
	req := httptest.NewRequest(http.MethodPost, "/upload-profiles", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var payload struct {
		Profiles []models.UploadResponse `json:"profiles"`
	}
	decode(t, resp, &payload)
	require.Len(t, payload.Profiles, 1)
	assert.Equal(t, "1700000000000-Jane_Doe_CV.pdf", payload.Profiles[0].Filename)
	assert.Equal(t, "Jane Doe CV.pdf", payload.Profiles[0].OriginalName)
	assert.Equal(t, 2, payload.Profiles[0].PageCount)

	data, err := store.Get(context.Background(), "1700000000000-Jane_Doe_CV.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 jane"), data)
}

func TestUploadHandler_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		files     map[string]string
		inspector stubInspector
	}{
		{name: "wrong field", field: "cv", files: map[string]string{"a.pdf": "x"}},
		{name: "not a pdf name", field: "profiles", files: map[string]string{"a.docx": "x"}},
		{name: "too large", field: "profiles", files: map[string]string{"a.pdf": strings.Repeat("x", 2048)}},
		{name: "too many files", field: "profiles", files: map[string]string{"a.pdf": "x", "b.pdf": "x", "c.pdf": "x"}},
		{name: "unreadable pdf", field: "profiles", files: map[string]string{"a.pdf": "x"}, inspector: stubInspector{err: services.ErrInvalidPDF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			app := newUploadApp(store, tt.inspector)

			body, contentType := multipartBody(t, tt.field, tt.files)
			req := httptest.NewRequest(http.MethodPost, "/upload-profiles", body)
			req.Header.Set("Content-Type", contentType)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			profiles, err := store.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, profiles)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_cv_2024_.pdf", sanitizeFilename("my cv (2024).pdf"))
	assert.Equal(t, "passwd", sanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "hidden.pdf", sanitizeFilename(".hidden.pdf"))
	assert.Equal(t, "profile.pdf", sanitizeFilename("..."))
}

func newAnalyzeApp(analyzer services.BatchAnalyzer) *fiber.App {
	handler := NewAnalyzeHandler(analyzer, nil, services.EmptyStoreReject)
	app := fiber.New()
	app.Post("/analyze-profiles", handler.HandleAnalyze)
	return app
}

func analyzeRequest(body, query string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/analyze-profiles"+query, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sampleResult() *models.BatchResult {
	candidate := models.CandidateAnalysis{
		Filename:       "a.pdf",
		CandidateName:  "Sarah Chen",
		OverallScore:   88,
		DetailedScores: models.UniformScores(88, "ok"),
		Recommendation: models.RecommendationRecommended,
	}
	return &models.BatchResult{
		RunID:         "run-1",
		TotalAnalyzed: 1,
		TopCandidates: []models.CandidateAnalysis{candidate},
		AllCandidates: []models.CandidateAnalysis{candidate},
	}
}

func TestAnalyzeHandler_ReturnsRanking(t *testing.T) {
	analyzer := &stubAnalyzer{result: sampleResult()}
	app := newAnalyzeApp(analyzer)

	resp, err := app.Test(analyzeRequest(`{"job_description":"Go developer","empty_store_policy":"mock"}`, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result models.BatchResult
	decode(t, resp, &result)
	assert.Equal(t, 1, result.TotalAnalyzed)
	assert.Equal(t, "Sarah Chen", result.TopCandidates[0].CandidateName)
	assert.Equal(t, "Go developer", analyzer.job)
	assert.Equal(t, services.EmptyStoreMock, analyzer.policy)
}

func TestAnalyzeHandler_DefaultPolicy(t *testing.T) {
	analyzer := &stubAnalyzer{result: sampleResult()}
	app := newAnalyzeApp(analyzer)

	resp, err := app.Test(analyzeRequest(`{"job_description":"Go developer"}`, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, services.EmptyStoreReject, analyzer.policy)
}

func TestAnalyzeHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed body", body: `{`, wantStatus: fiber.StatusBadRequest},
		{name: "missing job description", body: `{}`, wantStatus: fiber.StatusBadRequest},
		{name: "unknown policy", body: `{"job_description":"x","empty_store_policy":"skip"}`, wantStatus: fiber.StatusBadRequest},
		{name: "empty store", body: `{"job_description":"x"}`, err: services.ErrNoDocuments, wantStatus: fiber.StatusBadRequest},
		{name: "missing credentials", body: `{"job_description":"x"}`, err: services.ErrMissingCredentials, wantStatus: fiber.StatusBadRequest},
		{name: "store failure", body: `{"job_description":"x"}`, err: errors.New("bucket unreachable"), wantStatus: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAnalyzeApp(&stubAnalyzer{err: tt.err})

			resp, err := app.Test(analyzeRequest(tt.body, ""))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var payload map[string]any
			decode(t, resp, &payload)
			assert.NotEmpty(t, payload["error"])
		})
	}
}

func TestAnalyzeHandler_XLSX(t *testing.T) {
	app := newAnalyzeApp(&stubAnalyzer{result: sampleResult()})

	resp, err := app.Test(analyzeRequest(`{"job_description":"Go developer"}`, "?format=xlsx"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "ranking-run-1.xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func newProfileApp(store services.ObjectStore) *fiber.App {
	handler := NewProfileHandler(store)
	app := fiber.New()
	app.Get("/profiles", handler.HandleList)
	app.Delete("/profiles/:filename", handler.HandleDelete)
	return app
}

func TestProfileHandler_ListAndDelete(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Put(context.Background(), "a.pdf", []byte("a")))
	app := newProfileApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/profiles", nil))
	require.NoError(t, err)
	var list models.ProfileListResponse
	decode(t, resp, &list)
	require.Len(t, list.Profiles, 1)
	assert.Equal(t, "a.pdf", list.Profiles[0].Name)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/profiles/a.pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/profiles/a.pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProfileHandler_EmptyList(t *testing.T) {
	app := newProfileApp(newStore(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/profiles", nil))
	require.NoError(t, err)

	var payload map[string]any
	decode(t, resp, &payload)
	assert.Equal(t, []any{}, payload["profiles"])
}
