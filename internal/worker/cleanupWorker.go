package worker

import (
	"context"
	"time"

	"github.com/ds124wfegd/file-tools/internal/service"

	"github.com/sirupsen/logrus"
)

// ResultCleanupWorker периодически удаляет манифесты и артефакты,
// пережившие срок хранения
type ResultCleanupWorker struct {
	toolService service.ToolService
	interval    time.Duration
	retention   time.Duration
}

func NewResultCleanupWorker(toolService service.ToolService, interval, retention time.Duration) *ResultCleanupWorker {
	return &ResultCleanupWorker{
		toolService: toolService,
		interval:    interval,
		retention:   retention,
	}
}

func (w *ResultCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Result cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Result cleanup worker stopped")
			return
		case <-ticker.C:
			w.cleanupExpiredResults()
		}
	}
}

// cleanupExpiredResults выполняет один проход очистки
func (w *ResultCleanupWorker) cleanupExpiredResults() {
	logrus.Info("Starting expired results cleanup")

	deleted, err := w.toolService.CleanupExpired(w.retention)
	if err != nil {
		logrus.Errorf("Failed to cleanup expired results: %v", err)
		return
	}

	if deleted == 0 {
		logrus.Info("No expired results found for cleanup")
		return
	}

	logrus.Infof("Expired results cleanup completed: %d deleted", deleted)
}
