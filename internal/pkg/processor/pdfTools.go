package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Вид текстового водяного знака: полупрозрачный, по диагонали
const watermarkDescription = "scale:0.5, op:0.35, rot:45"

type pdfTools struct{}

func newPDFTools() *pdfTools {
	return &pdfTools{}
}

// Merge склеивает все входные PDF в один документ в порядке загрузки
func (t *pdfTools) Merge(inputs []entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	if len(inputs) < 2 {
		return entity.ProcessResult{}, fmt.Errorf("%w: merge needs at least two files", entity.ErrInvalidInput)
	}

	paths := make([]string, 0, len(inputs))
	var totalSize int64
	for _, in := range inputs {
		paths = append(paths, in.Path)
		totalSize += in.Size
	}

	name := names.claim("merged.pdf")
	outPath := filepath.Join(outDir, name)

	if err := api.MergeCreateFile(paths, outPath, false, nil); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}
	return t.finish(outPath, name, totalSize)
}

// ImagesToPDF собирает изображения в один PDF, по странице на файл
func (t *pdfTools) ImagesToPDF(inputs []entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	paths := make([]string, 0, len(inputs))
	var totalSize int64
	for _, in := range inputs {
		paths = append(paths, in.Path)
		totalSize += in.Size
	}

	name := names.claim("images.pdf")
	outPath := filepath.Join(outDir, name)

	if err := api.ImportImagesFile(paths, outPath, nil, nil); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}
	return t.finish(outPath, name, totalSize)
}

// Split режет PDF на части по span страниц и отдаёт их одним архивом
func (t *pdfTools) Split(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	span := opts.Span
	if span <= 0 {
		span = 1
	}

	pagesDir, err := os.MkdirTemp(outDir, "split")
	if err != nil {
		return entity.ProcessResult{}, err
	}
	defer os.RemoveAll(pagesDir)

	if err := api.SplitFile(in.Path, pagesDir, span, nil); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}

	name := names.claim(baseName(in.Name) + "_split.zip")
	outPath := filepath.Join(outDir, name)
	if err := zipDirectory(pagesDir, outPath); err != nil {
		return entity.ProcessResult{}, err
	}
	return t.finish(outPath, name, in.Size)
}

// Compress пересобирает PDF, убирая избыточные объекты
func (t *pdfTools) Compress(in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	name := names.claim(baseName(in.Name) + "_compressed.pdf")
	outPath := filepath.Join(outDir, name)

	if err := api.OptimizeFile(in.Path, outPath, nil); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}
	return t.finish(outPath, name, in.Size)
}

// Rotate поворачивает все страницы документа
func (t *pdfTools) Rotate(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	switch opts.Angle {
	case 90, 180, 270:
	default:
		return entity.ProcessResult{}, fmt.Errorf("%w: angle must be 90, 180 or 270", entity.ErrInvalidInput)
	}

	name := names.claim(baseName(in.Name) + "_rotated.pdf")
	outPath := filepath.Join(outDir, name)

	if err := api.RotateFile(in.Path, outPath, opts.Angle, nil, nil); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}
	return t.finish(outPath, name, in.Size)
}

// Protect ставит пароль на открытие документа
func (t *pdfTools) Protect(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	if opts.Password == "" {
		return entity.ProcessResult{}, entity.ErrPasswordRequired
	}

	conf := model.NewDefaultConfiguration()
	conf.UserPW = opts.Password
	conf.OwnerPW = opts.Password

	name := names.claim(baseName(in.Name) + "_protected.pdf")
	outPath := filepath.Join(outDir, name)

	if err := api.EncryptFile(in.Path, outPath, conf); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}
	return t.finish(outPath, name, in.Size)
}

// Unlock снимает парольную защиту
func (t *pdfTools) Unlock(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	if opts.Password == "" {
		return entity.ProcessResult{}, entity.ErrPasswordRequired
	}

	conf := model.NewDefaultConfiguration()
	conf.UserPW = opts.Password
	conf.OwnerPW = opts.Password

	name := names.claim(baseName(in.Name) + "_unlocked.pdf")
	outPath := filepath.Join(outDir, name)

	if err := api.DecryptFile(in.Path, outPath, conf); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}
	return t.finish(outPath, name, in.Size)
}

// Watermark штампует текстовый водяной знак на каждой странице
func (t *pdfTools) Watermark(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	if opts.WatermarkText == "" {
		return entity.ProcessResult{}, fmt.Errorf("%w: watermark text", entity.ErrTextRequired)
	}

	name := names.claim(baseName(in.Name) + "_watermarked.pdf")
	outPath := filepath.Join(outDir, name)

	if err := api.AddTextWatermarksFile(in.Path, outPath, nil, true, opts.WatermarkText, watermarkDescription, nil); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}
	return t.finish(outPath, name, in.Size)
}

// ExtractImages вытаскивает встроенные изображения и отдаёт их архивом
func (t *pdfTools) ExtractImages(in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	imagesDir, err := os.MkdirTemp(outDir, "images")
	if err != nil {
		return entity.ProcessResult{}, err
	}
	defer os.RemoveAll(imagesDir)

	if err := api.ExtractImagesFile(in.Path, imagesDir, nil, nil); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}

	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	if len(entries) == 0 {
		return entity.ProcessResult{}, fmt.Errorf("%w: document contains no images", entity.ErrInvalidInput)
	}

	name := names.claim(baseName(in.Name) + "_images.zip")
	outPath := filepath.Join(outDir, name)
	if err := zipDirectory(imagesDir, outPath); err != nil {
		return entity.ProcessResult{}, err
	}
	return t.finish(outPath, name, in.Size)
}

// PageCount возвращает число страниц текстом
func (t *pdfTools) PageCount(in entity.InputFile) (entity.ProcessResult, error) {
	count, err := api.PageCountFile(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	return textResult(fmt.Sprintf("%d", count), in.Size), nil
}

// ToText достаёт текстовый слой документа
func (t *pdfTools) ToText(in entity.InputFile) (entity.ProcessResult, error) {
	text, err := extractPDFText(in.Path)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	return textResult(text, in.Size), nil
}

// extractPDFText читает текстовый слой постранично
func extractPDFText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	defer file.Close()

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", entity.ErrProcessingFailed, pageIndex, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// finish снимает размер готового артефакта
func (t *pdfTools) finish(outPath, name string, originalSize int64) (entity.ProcessResult, error) {
	info, err := os.Stat(outPath)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	return fileResult(name, originalSize, info.Size()), nil
}
