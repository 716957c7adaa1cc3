package worker

import (
	"context"
	"io"
	"mime/multipart"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/stretchr/testify/assert"
)

// countingService считает вызовы очистки
type countingService struct {
	calls int64
}

func (s *countingService) ProcessTool(ctx context.Context, toolID string, files []*multipart.FileHeader, opts entity.ToolOptions) (*entity.Result, error) {
	return nil, nil
}

func (s *countingService) GetResult(id string) (*entity.Result, error) { return nil, nil }

func (s *countingService) OpenArtifact(id, name string) (io.ReadCloser, string, error) {
	return nil, "", nil
}

func (s *countingService) DeleteResult(id string) error { return nil }

func (s *countingService) CleanupExpired(retention time.Duration) (int, error) {
	atomic.AddInt64(&s.calls, 1)
	return 0, nil
}

// TestWorkerRunsCleanupAndStops проверяет периодический запуск
// очистки и остановку по отмене контекста
func TestWorkerRunsCleanupAndStops(t *testing.T) {
	svc := &countingService{}
	w := NewResultCleanupWorker(svc, 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	assert.GreaterOrEqual(t, atomic.LoadInt64(&svc.calls), int64(1))
}
