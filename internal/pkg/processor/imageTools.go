package processor

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/file-tools/internal/entity"
)

// Параметры подбора качества под целевой размер
const (
	searchIterations = 7    // ширина интервала после поиска: 1/128
	minQuality       = 0.01 // запасное качество, если цель недостижима
)

// encodeFunc кодирует изображение в JPEG с качеством из [0, 1].
// Подменяется в тестах, чтобы проверять сам поиск, а не кодек.
type encodeFunc func(img image.Image, quality float64) ([]byte, error)

type imageTools struct {
	encode encodeFunc
}

func newImageTools() *imageTools {
	return &imageTools{encode: encodeJPEG}
}

func encodeJPEG(img image.Image, quality float64) ([]byte, error) {
	q := int(math.Round(quality * 100))
	if q < 1 {
		q = 1
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Compress сжимает изображение под целевой размер в килобайтах.
// Всегда возвращает какой-то результат: если даже минимальное качество
// не укладывается в лимит, отдаём минимальное без ошибки.
func (t *imageTools) Compress(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	if opts.TargetSizeKB <= 0 {
		return entity.ProcessResult{}, fmt.Errorf("%w: targetSizeKB must be positive", entity.ErrInvalidInput)
	}

	img, err := imaging.Open(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	data, err := t.fitToTarget(img, opts.TargetSizeKB*1024)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}

	name := names.claim(baseName(in.Name) + "_compressed.jpg")
	if err := os.WriteFile(filepath.Join(outDir, name), data, 0644); err != nil {
		return entity.ProcessResult{}, err
	}
	return fileResult(name, in.Size, int64(len(data))), nil
}

// fitToTarget ищет максимальное качество, при котором размер не превышает
// targetBytes. Сначала пробуем качество 1.0 — если уложились, поиск не
// нужен. Иначе двоичный поиск по интервалу качества с фиксированным
// числом итераций: середина уложилась — поднимаем нижнюю границу и
// запоминаем кандидата, не уложилась — опускаем верхнюю.
func (t *imageTools) fitToTarget(img image.Image, targetBytes int) ([]byte, error) {
	data, err := t.encode(img, 1.0)
	if err != nil {
		return nil, err
	}
	if len(data) <= targetBytes {
		return data, nil
	}

	var best []byte
	low, high := 0.0, 1.0

	for i := 0; i < searchIterations; i++ {
		mid := (low + high) / 2

		data, err = t.encode(img, mid)
		if err != nil {
			return nil, err
		}

		if len(data) <= targetBytes {
			best = data
			low = mid
		} else {
			high = mid
		}
	}

	if best != nil {
		return best, nil
	}
	return t.encode(img, minQuality)
}

// Resize меняет размеры изображения; нулевая сторона сохраняет пропорции
func (t *imageTools) Resize(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	if opts.Width <= 0 && opts.Height <= 0 {
		return entity.ProcessResult{}, fmt.Errorf("%w: width or height is required", entity.ErrInvalidInput)
	}

	img, err := imaging.Open(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	resized := imaging.Resize(img, opts.Width, opts.Height, imaging.Lanczos)

	name := names.claim(baseName(in.Name) + "_resized" + outputExt(in.Name))
	return t.save(resized, outDir, name, in.Size)
}

// Convert сохраняет изображение в другом формате
func (t *imageTools) Convert(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	format := strings.ToLower(opts.Format)
	switch format {
	case "jpg", "jpeg", "png", "gif", "bmp", "tiff", "tif":
	default:
		return entity.ProcessResult{}, fmt.Errorf("%w: %q", entity.ErrUnsupportedFormat, opts.Format)
	}

	img, err := imaging.Open(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	// Качество применимо только к JPEG; для остальных форматов игнорируем
	var encodeOpts []imaging.EncodeOption
	if (format == "jpg" || format == "jpeg") && opts.Quality > 0 {
		q := int(math.Round(opts.Quality * 100))
		if q < 1 {
			q = 1
		}
		if q > 100 {
			q = 100
		}
		encodeOpts = append(encodeOpts, imaging.JPEGQuality(q))
	}

	name := names.claim(baseName(in.Name) + "." + format)
	return t.save(img, outDir, name, in.Size, encodeOpts...)
}

// Rotate поворачивает изображение по часовой стрелке
func (t *imageTools) Rotate(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	img, err := imaging.Open(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	var rotated image.Image
	switch opts.Angle {
	case 90:
		rotated = imaging.Rotate270(img)
	case 180:
		rotated = imaging.Rotate180(img)
	case 270:
		rotated = imaging.Rotate90(img)
	default:
		return entity.ProcessResult{}, fmt.Errorf("%w: angle must be 90, 180 or 270", entity.ErrInvalidInput)
	}

	name := names.claim(baseName(in.Name) + "_rotated" + outputExt(in.Name))
	return t.save(rotated, outDir, name, in.Size)
}

// Flip зеркально отражает изображение
func (t *imageTools) Flip(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	img, err := imaging.Open(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	var flipped image.Image
	switch opts.Direction {
	case "", "horizontal":
		flipped = imaging.FlipH(img)
	case "vertical":
		flipped = imaging.FlipV(img)
	default:
		return entity.ProcessResult{}, fmt.Errorf("%w: direction must be horizontal or vertical", entity.ErrInvalidInput)
	}

	name := names.claim(baseName(in.Name) + "_flipped" + outputExt(in.Name))
	return t.save(flipped, outDir, name, in.Size)
}

// Grayscale переводит изображение в оттенки серого
func (t *imageTools) Grayscale(in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	img, err := imaging.Open(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	name := names.claim(baseName(in.Name) + "_grayscale" + outputExt(in.Name))
	return t.save(imaging.Grayscale(img), outDir, name, in.Size)
}

func (t *imageTools) save(img image.Image, outDir, name string, originalSize int64, encodeOpts ...imaging.EncodeOption) (entity.ProcessResult, error) {
	outPath := filepath.Join(outDir, name)
	if err := imaging.Save(img, outPath, encodeOpts...); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	return fileResult(name, originalSize, info.Size()), nil
}

// outputExt возвращает расширение для результата, нормализуя его
// до поддерживаемого imaging.Save
func outputExt(name string) string {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff":
		return ext
	default:
		return ".png"
	}
}
