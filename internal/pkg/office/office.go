// Conversion of office documents through an external engine
package office

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/sirupsen/logrus"
)

// Таймаут одного запроса к серверу конвертации
const requestTimeout = 60 * time.Second

// lookPath подменяется в тестах для имитации отсутствия soffice
var lookPath = exec.LookPath

type Converter interface {
	// ConvertToPDF конвертирует офисный документ в PDF и возвращает
	// путь к результату внутри outDir
	ConvertToPDF(ctx context.Context, inputPath, outDir string) (string, error)
}

// NewConverter выбирает способ конвертации: внешний сервер, если адрес
// задан в конфигурации, иначе локальный LibreOffice
func NewConverter(serverURL string) Converter {
	if serverURL != "" {
		logrus.Infof("Office conversion via remote server: %s", serverURL)
		return &remoteConverter{serverURL: serverURL, client: &http.Client{}}
	}

	logrus.Info("Office conversion via local soffice binary")
	return &localConverter{}
}

// remoteConverter отправляет документ на POST {serverURL}/convert
type remoteConverter struct {
	serverURL string
	client    *http.Client
}

func (c *remoteConverter) ConvertToPDF(ctx context.Context, inputPath, outDir string) (string, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(inputPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/convert", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", entity.ErrConversionTimeout
		}
		return "", fmt.Errorf("%w: %v", entity.ErrConversionServer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", entity.ErrConversionServer, resp.StatusCode)
	}

	outPath := filepath.Join(outDir, pdfName(inputPath))
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", err
	}
	return outPath, nil
}

// localConverter запускает soffice --headless на этой же машине
type localConverter struct{}

func (c *localConverter) ConvertToPDF(ctx context.Context, inputPath, outDir string) (string, error) {
	binary, err := lookPath("soffice")
	if err != nil {
		return "", fmt.Errorf("%w: soffice", entity.ErrEngineNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, "--headless", "--convert-to", "pdf", inputPath, "--outdir", outDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		logrus.WithField("file", filepath.Base(inputPath)).Errorf("soffice failed: %v: %s", err, output)
		return "", fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}

	outPath := filepath.Join(outDir, pdfName(inputPath))
	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("%w: soffice produced no output", entity.ErrProcessingFailed)
	}
	return outPath, nil
}

// pdfName возвращает имя результата: исходное имя с расширением .pdf
func pdfName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}
