package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/ds124wfegd/file-tools/internal/catalog"
	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProcessTool выполняет один вызов инструмента: валидация, сохранение
// входных файлов, обработка, манифест результата, событие в Kafka
func (s *toolService) ProcessTool(ctx context.Context, toolID string, files []*multipart.FileHeader, opts entity.ToolOptions) (*entity.Result, error) {
	start := time.Now()
	id := uuid.New().String()

	// Неизвестный инструмент — штатный неуспешный результат, не ошибка
	if _, ok := catalog.ToolByID(toolID); !ok {
		result := &entity.Result{
			ID:        id,
			ToolID:    toolID,
			Status:    entity.StatusFailed,
			CreatedAt: time.Now().UTC(),
			Outputs:   []entity.ProcessResult{{Success: false, Message: entity.ErrToolNotFound.Error()}},
		}
		if err := s.repo.Save(result); err != nil {
			return nil, err
		}
		return result, nil
	}

	if len(files) > s.maxBatchFiles {
		return nil, fmt.Errorf("%w: limit is %d", entity.ErrTooManyFiles, s.maxBatchFiles)
	}

	inputs, err := s.saveUploads(id, toolID, files)
	if err != nil {
		return nil, err
	}

	outDir, err := s.repo.OutputDir(id)
	if err != nil {
		return nil, err
	}

	outputs, archive := s.engine.Process(ctx, toolID, inputs, opts, outDir)

	status := entity.StatusCompleted
	for _, out := range outputs {
		if !out.Success {
			status = entity.StatusFailed
			break
		}
	}

	result := &entity.Result{
		ID:        id,
		ToolID:    toolID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		Outputs:   s.fillURLs(id, outputs),
		Archive:   archive,
	}

	if err := s.repo.Save(result); err != nil {
		return nil, err
	}

	s.publishEvent(result, inputs, time.Since(start))
	return result, nil
}

// saveUploads сохраняет входные файлы, проверяя размер и тип содержимого
func (s *toolService) saveUploads(id, toolID string, files []*multipart.FileHeader) ([]entity.InputFile, error) {
	inputs := make([]entity.InputFile, 0, len(files))

	for _, header := range files {
		if header.Size > s.maxUploadBytes {
			return nil, fmt.Errorf("%w: %s is %d bytes", entity.ErrFileTooLarge, header.Filename, header.Size)
		}

		src, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}

		path, err := s.repo.SaveUpload(id, header.Filename, src)
		src.Close()
		if err != nil {
			return nil, err
		}

		if err := validateContentType(toolID, path); err != nil {
			return nil, err
		}

		inputs = append(inputs, entity.InputFile{
			Name: header.Filename,
			Path: path,
			Size: header.Size,
		})
	}
	return inputs, nil
}

// validateContentType сверяет реальный тип содержимого с ожиданием
// инструмента. Тип определяется по магическим байтам, не по расширению.
func validateContentType(toolID, path string) error {
	required := requiredMIME(toolID)
	if required == "" {
		return nil
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	if !strings.HasPrefix(detected.String(), required) {
		return fmt.Errorf("%w: expected %s*, got %s", entity.ErrUnsupportedFormat, required, detected.String())
	}
	return nil
}

// requiredMIME возвращает обязательный префикс типа содержимого
// для входных файлов инструмента; пусто — без проверки
func requiredMIME(toolID string) string {
	switch toolID {
	case "merge-pdf", "split-pdf", "compress-pdf", "rotate-pdf", "protect-pdf",
		"unlock-pdf", "watermark-pdf", "extract-pdf-images", "pdf-page-count",
		"pdf-to-text", "pdf-to-word":
		return "application/pdf"
	case "compress-image", "resize-image", "convert-image", "rotate-image",
		"flip-image", "grayscale-image", "image-to-text", "jpg-to-pdf":
		return "image/"
	case "convert-audio", "compress-audio":
		return "audio/"
	case "extract-zip":
		return "application/zip"
	default:
		return ""
	}
}

// fillURLs проставляет ссылки на скачивание файловых результатов
func (s *toolService) fillURLs(id string, outputs []entity.ProcessResult) []entity.ProcessResult {
	for i, out := range outputs {
		if out.Success && out.Filename != "" {
			outputs[i].URL = fmt.Sprintf("%s/api/results/%s/download?file=%s", s.baseURL, id, url.QueryEscape(out.Filename))
		}
	}
	return outputs
}

// publishEvent отправляет событие обработки, ошибки только логируются
func (s *toolService) publishEvent(result *entity.Result, inputs []entity.InputFile, duration time.Duration) {
	var originalSize, newSize int64
	for _, in := range inputs {
		originalSize += in.Size
	}
	for _, out := range result.Outputs {
		newSize += out.NewSize
	}

	event := entity.ProcessingEvent{
		JobID:        result.ID,
		ToolID:       result.ToolID,
		Status:       result.Status,
		Files:        len(inputs),
		DurationMs:   duration.Milliseconds(),
		OriginalSize: originalSize,
		NewSize:      newSize,
	}

	if err := s.producer.SendMessage(s.topic, event); err != nil {
		logrus.Errorf("Failed to publish processing event: %v", err)
	}
}

func (s *toolService) GetResult(id string) (*entity.Result, error) {
	return s.repo.FindByID(id)
}

// OpenArtifact открывает артефакт задания. Пустое имя означает
// "основной" артефакт: архив пакета или единственный файл результата.
func (s *toolService) OpenArtifact(id, name string) (io.ReadCloser, string, error) {
	result, err := s.repo.FindByID(id)
	if err != nil {
		return nil, "", err
	}

	if name == "" {
		name = defaultArtifact(result)
		if name == "" {
			return nil, "", entity.ErrResultNotFound
		}
	}

	reader, err := s.repo.OpenOutput(id, name)
	if err != nil {
		return nil, "", err
	}
	return reader, name, nil
}

func defaultArtifact(result *entity.Result) string {
	if result.Archive != "" {
		return result.Archive
	}
	for _, out := range result.Outputs {
		if out.Success && out.Filename != "" {
			return out.Filename
		}
	}
	return ""
}

func (s *toolService) DeleteResult(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// CleanupExpired удаляет задания старше retention, возвращает число удалённых
func (s *toolService) CleanupExpired(retention time.Duration) (int, error) {
	expired, err := s.repo.ListExpired(time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, id := range expired {
		if err := s.repo.Delete(id); err != nil {
			logrus.Errorf("Failed to delete expired result %s: %v", id, err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
