package processor

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makePDF собирает тестовый PDF с заданным числом страниц
func makePDF(t *testing.T, name string, pages int, text string) entity.InputFile {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Cell(40, 10, text)
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, pdf.OutputFileAndClose(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	return entity.InputFile{Name: name, Path: path, Size: info.Size()}
}

// TestPageCount тестирует подсчёт страниц
func TestPageCount(t *testing.T) {
	tools := newPDFTools()
	in := makePDF(t, "three.pdf", 3, "page body")

	result, err := tools.PageCount(in)
	require.NoError(t, err)

	assert.Equal(t, entity.TypeText, result.Type)
	assert.Equal(t, "3", result.Text)
}

// TestMergeCombinesAllPages проверяет склейку документов в порядке загрузки
func TestMergeCombinesAllPages(t *testing.T) {
	tools := newPDFTools()
	outDir := t.TempDir()

	inputs := []entity.InputFile{
		makePDF(t, "one.pdf", 1, "first"),
		makePDF(t, "two.pdf", 2, "second"),
	}

	result, err := tools.Merge(inputs, outDir, newNameAllocator())
	require.NoError(t, err)
	assert.Equal(t, "merged.pdf", result.Filename)

	count, err := api.PageCountFile(filepath.Join(outDir, result.Filename))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

// TestMergeRequiresTwoFiles проверяет валидацию склейки
func TestMergeRequiresTwoFiles(t *testing.T) {
	tools := newPDFTools()

	_, err := tools.Merge([]entity.InputFile{makePDF(t, "one.pdf", 1, "alone")}, t.TempDir(), newNameAllocator())
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

// TestRotateProducesValidPDF проверяет поворот страниц
func TestRotateProducesValidPDF(t *testing.T) {
	tools := newPDFTools()
	outDir := t.TempDir()
	in := makePDF(t, "doc.pdf", 2, "rotate me")

	result, err := tools.Rotate(in, entity.ToolOptions{Angle: 90}, outDir, newNameAllocator())
	require.NoError(t, err)

	count, err := api.PageCountFile(filepath.Join(outDir, result.Filename))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = tools.Rotate(in, entity.ToolOptions{Angle: 45}, outDir, newNameAllocator())
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

// TestSplitProducesArchive проверяет нарезку постранично в архив
func TestSplitProducesArchive(t *testing.T) {
	tools := newPDFTools()
	outDir := t.TempDir()
	in := makePDF(t, "doc.pdf", 3, "split me")

	result, err := tools.Split(in, entity.ToolOptions{Span: 1}, outDir, newNameAllocator())
	require.NoError(t, err)
	assert.Equal(t, "doc_split.zip", result.Filename)

	reader, err := zip.OpenReader(filepath.Join(outDir, result.Filename))
	require.NoError(t, err)
	defer reader.Close()
	assert.Len(t, reader.File, 3)
}

// TestProtectRequiresPassword проверяет валидацию защиты паролем
func TestProtectRequiresPassword(t *testing.T) {
	tools := newPDFTools()
	in := makePDF(t, "doc.pdf", 1, "secret")

	_, err := tools.Protect(in, entity.ToolOptions{}, t.TempDir(), newNameAllocator())
	assert.ErrorIs(t, err, entity.ErrPasswordRequired)

	_, err = tools.Unlock(in, entity.ToolOptions{}, t.TempDir(), newNameAllocator())
	assert.ErrorIs(t, err, entity.ErrPasswordRequired)
}

// TestWatermarkRequiresText проверяет валидацию водяного знака
func TestWatermarkRequiresText(t *testing.T) {
	tools := newPDFTools()
	in := makePDF(t, "doc.pdf", 1, "body")

	_, err := tools.Watermark(in, entity.ToolOptions{}, t.TempDir(), newNameAllocator())
	assert.ErrorIs(t, err, entity.ErrTextRequired)
}

// TestExtractImagesFromTextOnlyPDF проверяет случай документа без изображений
func TestExtractImagesFromTextOnlyPDF(t *testing.T) {
	tools := newPDFTools()
	in := makePDF(t, "doc.pdf", 1, "text only")

	_, err := tools.ExtractImages(in, t.TempDir(), newNameAllocator())
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

// TestCompressKeepsDocumentReadable проверяет пересборку документа
func TestCompressKeepsDocumentReadable(t *testing.T) {
	tools := newPDFTools()
	outDir := t.TempDir()
	in := makePDF(t, "doc.pdf", 2, "optimize me")

	result, err := tools.Compress(in, outDir, newNameAllocator())
	require.NoError(t, err)

	count, err := api.PageCountFile(filepath.Join(outDir, result.Filename))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
