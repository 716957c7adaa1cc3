package processor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUnknownToolNeverPanics проверяет, что нераспознанный инструмент
// даёт штатный неуспешный результат, а не панику или ошибку наружу
func TestUnknownToolNeverPanics(t *testing.T) {
	tests := []struct {
		name   string
		toolID string
	}{
		{name: "unknown id", toolID: "teleport-file"},
		{name: "empty id", toolID: ""},
		{name: "case mismatch", toolID: "Merge-PDF"},
	}

	engine := NewEngine(nil)
	input := writeInput(t, "sample.txt", "hello")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, archive := engine.Process(context.Background(), tt.toolID, []entity.InputFile{input}, entity.ToolOptions{}, t.TempDir())

			require.Len(t, results, 1)
			assert.False(t, results[0].Success)
			assert.Contains(t, results[0].Message, "not implemented")
			assert.Empty(t, archive)
		})
	}
}

// TestProcessWithoutFiles проверяет ошибку пустого запроса
func TestProcessWithoutFiles(t *testing.T) {
	engine := NewEngine(nil)

	results, _ := engine.Process(context.Background(), "compress-image", nil, entity.ToolOptions{}, t.TempDir())

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, entity.ErrNoFiles.Error(), results[0].Message)
}

// TestToolsWithoutInputFiles проверяет инструменты, работающие без файлов
func TestToolsWithoutInputFiles(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("text-case from options", func(t *testing.T) {
		results, _ := engine.Process(context.Background(), "text-case", nil,
			entity.ToolOptions{Text: "hello world", CaseMode: "upper"}, t.TempDir())

		require.Len(t, results, 1)
		assert.True(t, results[0].Success)
		assert.Equal(t, "HELLO WORLD", results[0].Text)
	})

	t.Run("qr-generator from options", func(t *testing.T) {
		outDir := t.TempDir()
		results, _ := engine.Process(context.Background(), "qr-generator", nil,
			entity.ToolOptions{Text: "https://example.com"}, outDir)

		require.Len(t, results, 1)
		assert.True(t, results[0].Success)
		assert.Equal(t, entity.TypeImage, results[0].Type)

		_, err := os.Stat(filepath.Join(outDir, results[0].Filename))
		assert.NoError(t, err)
	})
}

// TestBatchPreservesInputOrder проверяет, что результаты пакета
// идут в порядке входных файлов, несмотря на параллельную обработку
func TestBatchPreservesInputOrder(t *testing.T) {
	engine := NewEngine(nil)

	inputs := []entity.InputFile{
		writeInput(t, "first.txt", "aaa"),
		writeInput(t, "second.txt", "bbb"),
		writeInput(t, "third.txt", "ccc"),
	}

	results, _ := engine.Process(context.Background(), "text-case", inputs,
		entity.ToolOptions{CaseMode: "upper"}, t.TempDir())

	require.Len(t, results, 3)
	assert.Equal(t, "AAA", results[0].Text)
	assert.Equal(t, "BBB", results[1].Text)
	assert.Equal(t, "CCC", results[2].Text)
}

// TestBatchArchiveOnlyForMultipleOutputs проверяет, что пакетный архив
// собирается по числу выходных файлов: собирающие инструменты выдают
// один файл и не должны получать обёртку поверх него
func TestBatchArchiveOnlyForMultipleOutputs(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("create-zip over many inputs stays single", func(t *testing.T) {
		inputs := []entity.InputFile{
			writeInput(t, "first.txt", "aaa"),
			writeInput(t, "second.txt", "bbb"),
		}

		results, archive := engine.Process(context.Background(), "create-zip", inputs, entity.ToolOptions{}, t.TempDir())

		require.Len(t, results, 1)
		assert.True(t, results[0].Success)
		assert.Equal(t, "archive.zip", results[0].Filename)
		assert.Empty(t, archive, "single-output tool must not be wrapped in a batch archive")
	})

	t.Run("per-file tool over many inputs gets archive", func(t *testing.T) {
		inputs := []entity.InputFile{
			writeInput(t, "first.txt", "aaa"),
			writeInput(t, "second.txt", "bbb"),
		}
		outDir := t.TempDir()

		results, archive := engine.Process(context.Background(), "text-to-pdf", inputs, entity.ToolOptions{}, outDir)

		require.Len(t, results, 2)
		assert.Equal(t, "processed_files.zip", archive)

		_, err := os.Stat(filepath.Join(outDir, archive))
		assert.NoError(t, err)
	})

	t.Run("single input produces no archive", func(t *testing.T) {
		results, archive := engine.Process(context.Background(), "text-to-pdf",
			[]entity.InputFile{writeInput(t, "only.txt", "aaa")}, entity.ToolOptions{}, t.TempDir())

		require.Len(t, results, 1)
		assert.Empty(t, archive)
	})
}

// TestNameAllocatorDeduplicates проверяет разрешение коллизий имён счётчиком
func TestNameAllocatorDeduplicates(t *testing.T) {
	names := newNameAllocator()

	assert.Equal(t, "report.pdf", names.claim("report.pdf"))
	assert.Equal(t, "report_1.pdf", names.claim("report.pdf"))
	assert.Equal(t, "report_2.pdf", names.claim("report.pdf"))
	assert.Equal(t, "other.pdf", names.claim("other.pdf"))
}

// writeInput сохраняет временный входной файл
func writeInput(t *testing.T, name, content string) entity.InputFile {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return entity.InputFile{Name: name, Path: path, Size: int64(len(content))}
}
