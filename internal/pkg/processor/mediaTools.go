package processor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/sirupsen/logrus"
)

const defaultAudioBitrate = "128k"

// Степень сжатия видео: чем выше crf, тем меньше файл
const videoCompressionCRF = "28"

var (
	audioFormats = map[string]bool{"mp3": true, "wav": true, "ogg": true, "flac": true}
	videoFormats = map[string]bool{"mp4": true, "webm": true, "avi": true, "mov": true, "mkv": true}
)

// mediaTools конвертирует аудио и видео через бинарник ffmpeg.
// Движок ищется в PATH лениво один раз; каждая конвертация — отдельный
// процесс, поэтому параллельные вызовы не делят никакого состояния.
type mediaTools struct {
	once       sync.Once
	binaryPath string
	probeErr   error

	lookPath func(string) (string, error)
	run      func(ctx context.Context, binary string, args []string) error
}

func newMediaTools() *mediaTools {
	return &mediaTools{
		lookPath: exec.LookPath,
		run:      runFFmpeg,
	}
}

func runFFmpeg(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		logrus.Errorf("ffmpeg failed: %v: %s", err, tail(output))
		return fmt.Errorf("%w: ffmpeg: %v", entity.ErrProcessingFailed, err)
	}
	return nil
}

func (t *mediaTools) probe() error {
	t.once.Do(func() {
		path, err := t.lookPath("ffmpeg")
		if err != nil {
			t.probeErr = fmt.Errorf("%w: ffmpeg", entity.ErrEngineNotFound)
			logrus.Warn("ffmpeg binary not found, audio and video tools are unavailable")
			return
		}
		t.binaryPath = path
		logrus.Infof("Media engine found: %s", path)
	})
	return t.probeErr
}

// ConvertAudio перекодирует аудио в другой формат
func (t *mediaTools) ConvertAudio(ctx context.Context, in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = "mp3"
	}
	if !audioFormats[format] {
		return entity.ProcessResult{}, fmt.Errorf("%w: %q", entity.ErrUnsupportedFormat, opts.Format)
	}

	name := names.claim(baseName(in.Name) + "." + format)
	return t.transcode(ctx, in, outDir, name, []string{"-i", in.Path, "-y"})
}

// CompressAudio понижает битрейт аудиодорожки
func (t *mediaTools) CompressAudio(ctx context.Context, in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	bitrate := opts.Bitrate
	if bitrate == "" {
		bitrate = defaultAudioBitrate
	}

	name := names.claim(baseName(in.Name) + "_compressed.mp3")
	return t.transcode(ctx, in, outDir, name, []string{"-i", in.Path, "-b:a", bitrate, "-y"})
}

// ConvertVideo перекодирует видео в другой контейнер
func (t *mediaTools) ConvertVideo(ctx context.Context, in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = "mp4"
	}
	if !videoFormats[format] {
		return entity.ProcessResult{}, fmt.Errorf("%w: %q", entity.ErrUnsupportedFormat, opts.Format)
	}

	name := names.claim(baseName(in.Name) + "." + format)
	return t.transcode(ctx, in, outDir, name, []string{"-i", in.Path, "-y"})
}

// CompressVideo пережимает видео с повышенным коэффициентом сжатия
func (t *mediaTools) CompressVideo(ctx context.Context, in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	name := names.claim(baseName(in.Name) + "_compressed.mp4")
	return t.transcode(ctx, in, outDir, name, []string{"-i", in.Path, "-vcodec", "libx264", "-crf", videoCompressionCRF, "-y"})
}

// ExtractAudio сохраняет звуковую дорожку видео в MP3
func (t *mediaTools) ExtractAudio(ctx context.Context, in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	name := names.claim(baseName(in.Name) + ".mp3")
	return t.transcode(ctx, in, outDir, name, []string{"-i", in.Path, "-vn", "-acodec", "libmp3lame", "-y"})
}

// MuteVideo убирает звуковую дорожку, не перекодируя видео
func (t *mediaTools) MuteVideo(ctx context.Context, in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	name := names.claim(baseName(in.Name) + "_muted" + strings.ToLower(filepath.Ext(in.Name)))
	return t.transcode(ctx, in, outDir, name, []string{"-i", in.Path, "-an", "-c:v", "copy", "-y"})
}

// transcode запускает ffmpeg с готовыми аргументами и путём результата
func (t *mediaTools) transcode(ctx context.Context, in entity.InputFile, outDir, name string, args []string) (entity.ProcessResult, error) {
	if err := t.probe(); err != nil {
		return entity.ProcessResult{}, err
	}

	outPath := filepath.Join(outDir, name)
	if err := t.run(ctx, t.binaryPath, append(args, outPath)); err != nil {
		return entity.ProcessResult{}, err
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: no output produced", entity.ErrProcessingFailed)
	}
	return fileResult(name, in.Size, info.Size()), nil
}

// tail обрезает вывод ffmpeg до последних строк для лога
func tail(output []byte) string {
	const limit = 400
	s := strings.TrimSpace(string(output))
	if len(s) <= limit {
		return s
	}
	return "..." + s[len(s)-limit:]
}
