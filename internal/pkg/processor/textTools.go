package processor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ds124wfegd/file-tools/internal/entity"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultQRSize = 256

type textTools struct {
	markdown goldmark.Markdown
}

func newTextTools() *textTools {
	return &textTools{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// MarkdownToHTML рендерит Markdown в HTML
func (t *textTools) MarkdownToHTML(in entity.InputFile) (entity.ProcessResult, error) {
	source, err := os.ReadFile(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	var buf bytes.Buffer
	if err := t.markdown.Convert(source, &buf); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}
	return textResult(buf.String(), in.Size), nil
}

// HTMLToText убирает разметку, оставляя только текстовые узлы
func (t *textTools) HTMLToText(in entity.InputFile) (entity.ProcessResult, error) {
	file, err := os.Open(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	defer file.Close()

	doc, err := html.Parse(file)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	var sb strings.Builder
	collectText(doc, &sb)

	return textResult(normalizeWhitespace(sb.String()), in.Size), nil
}

// QRGenerate строит QR-код из текста опций или содержимого файла
func (t *textTools) QRGenerate(in entity.InputFile, opts entity.ToolOptions, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	text := opts.Text
	if text == "" && in.Path != "" {
		data, err := os.ReadFile(in.Path)
		if err != nil {
			return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		return entity.ProcessResult{}, entity.ErrTextRequired
	}

	size := opts.QRSize
	if size <= 0 {
		size = defaultQRSize
	}

	name := names.claim("qrcode.png")
	outPath := filepath.Join(outDir, name)
	if err := qrcode.WriteFile(text, qrcode.Medium, size, outPath); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	return imageResult(name, info.Size()), nil
}

// TextCase меняет регистр текста из опций или входного файла
func (t *textTools) TextCase(in entity.InputFile, opts entity.ToolOptions) (entity.ProcessResult, error) {
	text := opts.Text
	var originalSize int64
	if text == "" && in.Path != "" {
		data, err := os.ReadFile(in.Path)
		if err != nil {
			return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}
		text = string(data)
		originalSize = in.Size
	}
	if text == "" {
		return entity.ProcessResult{}, entity.ErrTextRequired
	}

	switch opts.CaseMode {
	case "upper":
		text = strings.ToUpper(text)
	case "lower":
		text = strings.ToLower(text)
	case "title":
		text = cases.Title(language.Und).String(text)
	default:
		return entity.ProcessResult{}, fmt.Errorf("%w: caseMode must be upper, lower or title", entity.ErrInvalidInput)
	}

	return textResult(text, originalSize), nil
}

// collectText обходит дерево HTML, пропуская script и style
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

// normalizeWhitespace схлопывает последовательности пробельных символов
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
