package service

import (
	"context"
	"io"
	"mime/multipart"
	"time"

	"github.com/ds124wfegd/file-tools/internal/database"
	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/ds124wfegd/file-tools/internal/pkg/kafka"
	"github.com/ds124wfegd/file-tools/internal/pkg/processor"
)

type ToolService interface {
	ProcessTool(ctx context.Context, toolID string, files []*multipart.FileHeader, opts entity.ToolOptions) (*entity.Result, error)
	GetResult(id string) (*entity.Result, error)
	OpenArtifact(id, name string) (io.ReadCloser, string, error)
	DeleteResult(id string) error
	CleanupExpired(retention time.Duration) (int, error)
}

type toolService struct {
	repo     database.ResultRepository
	engine   processor.Engine
	producer kafka.Producer
	topic    string

	baseURL        string
	maxUploadBytes int64
	maxBatchFiles  int
}

func NewToolService(repo database.ResultRepository, engine processor.Engine, producer kafka.Producer, topic, baseURL string, maxUploadSizeMB int64, maxBatchFiles int) ToolService {
	return &toolService{
		repo:           repo,
		engine:         engine,
		producer:       producer,
		topic:          topic,
		baseURL:        baseURL,
		maxUploadBytes: maxUploadSizeMB << 20,
		maxBatchFiles:  maxBatchFiles,
	}
}
