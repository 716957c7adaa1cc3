package processor

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ds124wfegd/file-tools/internal/entity"
)

type archiveTools struct{}

func newArchiveTools() *archiveTools {
	return &archiveTools{}
}

// CreateZip упаковывает все входные файлы в один архив
func (t *archiveTools) CreateZip(inputs []entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	name := names.claim("archive.zip")
	outPath := filepath.Join(outDir, name)

	out, err := os.Create(outPath)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	entryNames := newNameAllocator()

	var totalSize int64
	for _, in := range inputs {
		totalSize += in.Size
		if err := addZipEntry(writer, in.Path, entryNames.claim(filepath.Base(in.Name))); err != nil {
			return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
		}
	}

	if err := writer.Close(); err != nil {
		return entity.ProcessResult{}, err
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	return fileResult(name, totalSize, info.Size()), nil
}

// ExtractZip распаковывает архив, по одному результату на запись
func (t *archiveTools) ExtractZip(in entity.InputFile, outDir string, names *nameAllocator) ([]entity.ProcessResult, error) {
	reader, err := zip.OpenReader(in.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	defer reader.Close()

	var results []entity.ProcessResult
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		// Берём только базовое имя: пути внутри архива не
		// должны выводить запись за пределы outDir
		name := names.claim(filepath.Base(entry.Name))

		size, err := extractZipEntry(entry, filepath.Join(outDir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
		}
		results = append(results, fileResult(name, int64(entry.UncompressedSize64), size))
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: archive is empty", entity.ErrInvalidInput)
	}
	return results, nil
}

// BuildBatchArchive собирает файловые результаты пакета в один архив.
// Записи называются processed_1, processed_2, ... в порядке входных
// файлов, с расширением соответствующего артефакта.
func (t *archiveTools) BuildBatchArchive(results []entity.ProcessResult, outDir string) (string, error) {
	archiveName := "processed_files.zip"
	outPath := filepath.Join(outDir, archiveName)

	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	entryNames := newNameAllocator()

	for i, r := range results {
		entryName := entryNames.claim(fmt.Sprintf("processed_%d%s", i+1, strings.ToLower(filepath.Ext(r.Filename))))
		if err := addZipEntry(writer, filepath.Join(outDir, r.Filename), entryName); err != nil {
			return "", err
		}
	}

	if err := writer.Close(); err != nil {
		return "", err
	}
	return archiveName, nil
}

// zipDirectory упаковывает все файлы директории без рекурсии
func zipDirectory(srcDir, outPath string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addZipEntry(writer, filepath.Join(srcDir, entry.Name()), entry.Name()); err != nil {
			return err
		}
	}
	return writer.Close()
}

func addZipEntry(writer *zip.Writer, path, entryName string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	entry, err := writer.Create(entryName)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, file)
	return err
}

func extractZipEntry(entry *zip.File, outPath string) (int64, error) {
	src, err := entry.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	return io.Copy(out, src)
}
