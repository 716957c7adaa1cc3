package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService подменяет слой сервиса в тестах обработчиков
type stubService struct {
	result   *entity.Result
	err      error
	artifact string
	lastOpts entity.ToolOptions
}

func (s *stubService) ProcessTool(ctx context.Context, toolID string, files []*multipart.FileHeader, opts entity.ToolOptions) (*entity.Result, error) {
	s.lastOpts = opts
	return s.result, s.err
}

func (s *stubService) GetResult(id string) (*entity.Result, error) {
	if s.result == nil || s.result.ID != id {
		return nil, entity.ErrResultNotFound
	}
	return s.result, nil
}

func (s *stubService) OpenArtifact(id, name string) (io.ReadCloser, string, error) {
	if s.artifact == "" {
		return nil, "", entity.ErrResultNotFound
	}
	return io.NopCloser(strings.NewReader(s.artifact)), "result.bin", nil
}

func (s *stubService) DeleteResult(id string) error {
	if s.result == nil || s.result.ID != id {
		return entity.ErrResultNotFound
	}
	return nil
}

func (s *stubService) CleanupExpired(retention time.Duration) (int, error) { return 0, nil }

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return InitRoutes(NewToolHandler(svc))
}

// TestCatalogEndpoints тестирует маршруты каталога
func TestCatalogEndpoints(t *testing.T) {
	router := newTestRouter(&stubService{})

	t.Run("all categories", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var categories []entity.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
		assert.Len(t, categories, 6)
	})

	t.Run("category with tools", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories/pdf", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var response entity.CategoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "pdf", response.Category.ID)
		assert.NotEmpty(t, response.Tools)
	})

	t.Run("unknown category", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories/nothing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("popular tools only", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tools?popular=true", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var tools []entity.Tool
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
		require.NotEmpty(t, tools)
		for _, tool := range tools {
			assert.True(t, tool.Popular)
		}
	})

	t.Run("single tool", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tools/merge-pdf", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown tool", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tools/nothing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestProcessToolEndpoint тестирует вызов инструмента через HTTP
func TestProcessToolEndpoint(t *testing.T) {
	svc := &stubService{
		result: &entity.Result{
			ID:     "job-1",
			ToolID: "text-case",
			Status: entity.StatusCompleted,
			Outputs: []entity.ProcessResult{
				{Success: true, Type: entity.TypeText, Text: "HELLO"},
			},
		},
	}
	router := newTestRouter(svc)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", "note.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("caseMode", "upper"))
	require.NoError(t, writer.WriteField("targetSizeKB", "500"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/tools/text-case/process", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result entity.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "job-1", result.ID)

	// Опции формы разобраны в типизированную структуру
	assert.Equal(t, "upper", svc.lastOpts.CaseMode)
	assert.Equal(t, 500, svc.lastOpts.TargetSizeKB)
}

// TestProcessValidationFailure проверяет коды ошибок валидации
func TestProcessValidationFailure(t *testing.T) {
	svc := &stubService{err: entity.ErrTooManyFiles}
	router := newTestRouter(svc)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("caseMode", "upper"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/tools/text-case/process", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestResultEndpoints тестирует чтение, скачивание и удаление результата
func TestResultEndpoints(t *testing.T) {
	svc := &stubService{
		result:   &entity.Result{ID: "job-2", ToolID: "create-zip", Status: entity.StatusCompleted},
		artifact: "binary artifact",
	}
	router := newTestRouter(svc)

	t.Run("get result", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/results/job-2", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown result", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/results/nothing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("download artifact", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/results/job-2/download", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "binary artifact", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Disposition"), "result.bin")
	})

	t.Run("delete result", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/results/job-2", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// TestHealthEndpoint тестирует проверку живости
func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
