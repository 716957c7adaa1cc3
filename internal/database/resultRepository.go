package database

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/ds124wfegd/file-tools/internal/pkg/storage"
)

func NewResultRepository(storage storage.FileStorage) ResultRepository {
	return &fileResultRepository{storage: storage}
}

func (r *fileResultRepository) Save(result *entity.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return r.storage.Save(r.manifestPath(result.ID), bytes.NewReader(data))
}

func (r *fileResultRepository) FindByID(id string) (*entity.Result, error) {
	reader, err := r.storage.Get(r.manifestPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrResultNotFound
		}
		return nil, err
	}
	defer reader.Close()

	var result entity.Result
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Delete удаляет манифест вместе с исходниками и артефактами
func (r *fileResultRepository) Delete(id string) error {
	if err := r.storage.Delete(r.manifestPath(id)); err != nil {
		return err
	}
	if err := r.storage.Delete(filepath.Join("uploads", id)); err != nil {
		return err
	}
	return r.storage.Delete(filepath.Join("results", id))
}

// SaveUpload сохраняет входной файл и возвращает его полный путь на диске
func (r *fileResultRepository) SaveUpload(id string, name string, file io.Reader) (string, error) {
	// Только базовое имя, без путей из запроса
	relPath := filepath.Join("uploads", id, filepath.Base(name))
	if err := r.storage.Save(relPath, file); err != nil {
		return "", err
	}
	return r.storage.FullPath(relPath), nil
}

// OutputDir создает директорию артефактов задания и возвращает её полный путь
func (r *fileResultRepository) OutputDir(id string) (string, error) {
	relPath := filepath.Join("results", id)
	if err := r.storage.MkdirAll(relPath); err != nil {
		return "", err
	}
	return r.storage.FullPath(relPath), nil
}

func (r *fileResultRepository) OpenOutput(id string, name string) (io.ReadCloser, error) {
	reader, err := r.storage.Get(filepath.Join("results", id, filepath.Base(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrResultNotFound
		}
		return nil, err
	}
	return reader, nil
}

// ListExpired возвращает идентификаторы заданий старше cutoff
func (r *fileResultRepository) ListExpired(cutoff time.Time) ([]string, error) {
	names, err := r.storage.List("manifests")
	if err != nil {
		return nil, err
	}

	var expired []string
	for _, name := range names {
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")

		result, err := r.FindByID(id)
		if err != nil {
			continue
		}
		if result.CreatedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	return expired, nil
}

func (r *fileResultRepository) manifestPath(id string) string {
	return filepath.Join("manifests", id+".json")
}
