package database

import (
	"io"
	"time"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/ds124wfegd/file-tools/internal/pkg/storage"
)

type ResultRepository interface {
	Save(result *entity.Result) error
	FindByID(id string) (*entity.Result, error)
	Delete(id string) error
	SaveUpload(id string, name string, file io.Reader) (string, error)
	OutputDir(id string) (string, error)
	OpenOutput(id string, name string) (io.ReadCloser, error)
	ListExpired(cutoff time.Time) ([]string, error)
}

type fileResultRepository struct {
	storage storage.FileStorage
}
