// Dispatching tool calls to domain processors
package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/ds124wfegd/file-tools/internal/pkg/office"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Предел одновременных конвертаций внутри одного задания
const batchConcurrency = 4

type Engine interface {
	Process(ctx context.Context, toolID string, inputs []entity.InputFile, opts entity.ToolOptions, outDir string) ([]entity.ProcessResult, string)
}

type engine struct {
	images   *imageTools
	ocr      *ocrTools
	pdfs     *pdfTools
	docs     *documentTools
	media    *mediaTools
	texts    *textTools
	archives *archiveTools
}

func NewEngine(officeClient office.Converter) Engine {
	return &engine{
		images:   newImageTools(),
		ocr:      newOCRTools(),
		pdfs:     newPDFTools(),
		docs:     newDocumentTools(officeClient),
		media:    newMediaTools(),
		texts:    newTextTools(),
		archives: newArchiveTools(),
	}
}

// Process выполняет один вызов инструмента. Любая ошибка любой ветки
// гасится здесь и превращается в ProcessResult{Success: false} —
// наружу не уходит ни ошибка, ни паника. Повторных попыток нет.
func (e *engine) Process(ctx context.Context, toolID string, inputs []entity.InputFile, opts entity.ToolOptions, outDir string) ([]entity.ProcessResult, string) {
	names := newNameAllocator()

	var results []entity.ProcessResult

	switch toolID {
	case "merge-pdf", "jpg-to-pdf", "create-zip":
		// Инструменты, собирающие все входные файлы в один результат
		if len(inputs) == 0 {
			results = []entity.ProcessResult{failure(entity.ErrNoFiles)}
			break
		}
		results = []entity.ProcessResult{e.processAll(ctx, toolID, inputs, opts, outDir, names)}
	case "qr-generator", "text-case":
		// Могут работать вообще без входных файлов, только с опциями
		if len(inputs) == 0 {
			results = []entity.ProcessResult{e.processOne(ctx, toolID, entity.InputFile{}, opts, outDir, names)}
			break
		}
		fallthrough
	default:
		if len(inputs) == 0 {
			results = []entity.ProcessResult{failure(entity.ErrNoFiles)}
			break
		}
		results = e.fanOut(ctx, toolID, inputs, opts, outDir, names)
	}

	// Архив собирается по числу файловых результатов, не входов:
	// собирающие инструменты выдают один файл, который оборачивать не нужно
	archive := ""
	if len(results) > 1 && allFileResults(results) {
		name, err := e.archives.BuildBatchArchive(results, outDir)
		if err != nil {
			logrus.WithField("tool_id", toolID).Errorf("Failed to build batch archive: %v", err)
		} else {
			archive = name
		}
	}

	return results, archive
}

// fanOut обрабатывает файлы параллельно, порядок результатов
// совпадает с порядком входных файлов
func (e *engine) fanOut(ctx context.Context, toolID string, inputs []entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) []entity.ProcessResult {
	perInput := make([][]entity.ProcessResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, in := range inputs {
		g.Go(func() error {
			perInput[i] = e.processFile(gctx, toolID, in, opts, outDir, names)
			return nil
		})
	}
	_ = g.Wait()

	var results []entity.ProcessResult
	for _, r := range perInput {
		results = append(results, r...)
	}
	return results
}

// processFile нормализует исход обработки одного файла
func (e *engine) processFile(ctx context.Context, toolID string, in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (results []entity.ProcessResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithFields(logrus.Fields{"tool_id": toolID, "file": in.Name}).Errorf("Panic during processing: %v", rec)
			results = []entity.ProcessResult{failure(entity.ErrProcessingFailed)}
		}
	}()

	res, err := e.dispatch(ctx, toolID, in, opts, outDir, names)
	if err != nil {
		logrus.WithFields(logrus.Fields{"tool_id": toolID, "file": in.Name}).Errorf("Processing failed: %v", err)
		return []entity.ProcessResult{failure(err)}
	}
	return res
}

func (e *engine) processOne(ctx context.Context, toolID string, in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) entity.ProcessResult {
	results := e.processFile(ctx, toolID, in, opts, outDir, names)
	return results[0]
}

// processAll выполняет инструмент сразу над всеми входными файлами
func (e *engine) processAll(ctx context.Context, toolID string, inputs []entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (result entity.ProcessResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithField("tool_id", toolID).Errorf("Panic during processing: %v", rec)
			result = failure(entity.ErrProcessingFailed)
		}
	}()

	var err error
	switch toolID {
	case "merge-pdf":
		result, err = e.pdfs.Merge(inputs, outDir, names)
	case "jpg-to-pdf":
		result, err = e.pdfs.ImagesToPDF(inputs, outDir, names)
	case "create-zip":
		result, err = e.archives.CreateZip(inputs, outDir, names)
	}
	if err != nil {
		logrus.WithField("tool_id", toolID).Errorf("Processing failed: %v", err)
		return failure(err)
	}
	return result
}

// dispatch — таблица соответствия идентификатора инструмента и операции
func (e *engine) dispatch(ctx context.Context, toolID string, in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) ([]entity.ProcessResult, error) {
	switch toolID {
	// PDF
	case "split-pdf":
		return single(e.pdfs.Split(in, opts, outDir, names))
	case "compress-pdf":
		return single(e.pdfs.Compress(in, outDir, names))
	case "rotate-pdf":
		return single(e.pdfs.Rotate(in, opts, outDir, names))
	case "protect-pdf":
		return single(e.pdfs.Protect(in, opts, outDir, names))
	case "unlock-pdf":
		return single(e.pdfs.Unlock(in, opts, outDir, names))
	case "watermark-pdf":
		return single(e.pdfs.Watermark(in, opts, outDir, names))
	case "extract-pdf-images":
		return single(e.pdfs.ExtractImages(in, outDir, names))
	case "pdf-page-count":
		return single(e.pdfs.PageCount(in))
	case "pdf-to-text":
		return single(e.pdfs.ToText(in))
	case "pdf-to-word":
		return single(e.docs.PDFToWord(ctx, in, outDir, names))
	case "word-to-pdf", "excel-to-pdf", "powerpoint-to-pdf":
		return single(e.docs.OfficeToPDF(ctx, in, outDir, names))
	case "text-to-pdf":
		return single(e.docs.TextToPDF(in, outDir, names))
	case "markdown-to-pdf":
		return single(e.docs.MarkdownToPDF(in, outDir, names))

	// Image
	case "compress-image":
		return single(e.images.Compress(in, opts, outDir, names))
	case "resize-image":
		return single(e.images.Resize(in, opts, outDir, names))
	case "convert-image":
		return single(e.images.Convert(in, opts, outDir, names))
	case "rotate-image":
		return single(e.images.Rotate(in, opts, outDir, names))
	case "flip-image":
		return single(e.images.Flip(in, opts, outDir, names))
	case "grayscale-image":
		return single(e.images.Grayscale(in, outDir, names))
	case "image-to-text":
		return single(e.ocr.ImageToText(ctx, in))

	// Audio
	case "convert-audio":
		return single(e.media.ConvertAudio(ctx, in, opts, outDir, names))
	case "compress-audio":
		return single(e.media.CompressAudio(ctx, in, opts, outDir, names))

	// Video
	case "convert-video":
		return single(e.media.ConvertVideo(ctx, in, opts, outDir, names))
	case "compress-video":
		return single(e.media.CompressVideo(ctx, in, outDir, names))
	case "extract-audio":
		return single(e.media.ExtractAudio(ctx, in, outDir, names))
	case "mute-video":
		return single(e.media.MuteVideo(ctx, in, outDir, names))

	// Archive
	case "extract-zip":
		return e.archives.ExtractZip(in, outDir, names)

	// Text
	case "markdown-to-html":
		return single(e.texts.MarkdownToHTML(in))
	case "html-to-text":
		return single(e.texts.HTMLToText(in))
	case "qr-generator":
		return single(e.texts.QRGenerate(in, opts, outDir, names))
	case "word-to-text":
		return single(e.docs.WordToText(in))
	case "text-case":
		return single(e.texts.TextCase(in, opts))

	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrToolNotImplemented, toolID)
	}
}

func single(r entity.ProcessResult, err error) ([]entity.ProcessResult, error) {
	if err != nil {
		return nil, err
	}
	return []entity.ProcessResult{r}, nil
}

func failure(err error) entity.ProcessResult {
	return entity.ProcessResult{Success: false, Message: err.Error()}
}

func fileResult(name string, originalSize, newSize int64) entity.ProcessResult {
	return entity.ProcessResult{
		Success:      true,
		Type:         entity.TypeFile,
		Filename:     name,
		OriginalSize: originalSize,
		NewSize:      newSize,
	}
}

func textResult(text string, originalSize int64) entity.ProcessResult {
	return entity.ProcessResult{
		Success:      true,
		Type:         entity.TypeText,
		Text:         text,
		OriginalSize: originalSize,
	}
}

func imageResult(name string, newSize int64) entity.ProcessResult {
	return entity.ProcessResult{
		Success:  true,
		Type:     entity.TypeImage,
		Filename: name,
		NewSize:  newSize,
	}
}

func allFileResults(results []entity.ProcessResult) bool {
	for _, r := range results {
		if !r.Success || r.Type != entity.TypeFile {
			return false
		}
	}
	return len(results) > 0
}

// nameAllocator выдаёт уникальные имена артефактов: при коллизии
// к имени добавляется счётчик перед расширением
type nameAllocator struct {
	mu   sync.Mutex
	used map[string]bool
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{used: make(map[string]bool)}
}

func (a *nameAllocator) claim(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.used[name] {
		a.used[name] = true
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if !a.used[candidate] {
			a.used[candidate] = true
			return candidate
		}
	}
}

// baseName возвращает имя файла без расширения
func baseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
