package processor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/sirupsen/logrus"
)

// ocrTools распознаёт текст на изображениях через бинарник tesseract.
// Наличие движка проверяется лениво один раз на процесс.
type ocrTools struct {
	once       sync.Once
	binaryPath string
	probeErr   error

	lookPath func(string) (string, error)
	run      func(ctx context.Context, binary, inputPath string) ([]byte, error)
}

func newOCRTools() *ocrTools {
	return &ocrTools{
		lookPath: exec.LookPath,
		run:      runTesseract,
	}
}

func runTesseract(ctx context.Context, binary, inputPath string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, inputPath, "stdout").Output()
}

// probe ищет tesseract в PATH; результат кэшируется
func (t *ocrTools) probe() error {
	t.once.Do(func() {
		path, err := t.lookPath("tesseract")
		if err != nil {
			t.probeErr = fmt.Errorf("%w: tesseract", entity.ErrEngineNotFound)
			logrus.Warn("tesseract binary not found, OCR tools are unavailable")
			return
		}
		t.binaryPath = path
		logrus.Infof("OCR engine found: %s", path)
	})
	return t.probeErr
}

// ImageToText распознаёт текст на изображении
func (t *ocrTools) ImageToText(ctx context.Context, in entity.InputFile) (entity.ProcessResult, error) {
	if err := t.probe(); err != nil {
		return entity.ProcessResult{}, err
	}

	output, err := t.run(ctx, t.binaryPath, in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: tesseract: %v", entity.ErrProcessingFailed, err)
	}

	return textResult(strings.TrimSpace(string(output)), in.Size), nil
}
