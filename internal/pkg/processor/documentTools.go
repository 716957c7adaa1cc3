package processor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/ds124wfegd/file-tools/internal/pkg/office"
	"github.com/jung-kurt/gofpdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Размеры шрифта заголовков Markdown по уровням, дальше шестого — обычный текст
var headingSizes = []float64{20, 17, 15, 13, 12, 11}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

type documentTools struct {
	office   office.Converter
	markdown goldmark.Markdown
}

func newDocumentTools(officeClient office.Converter) *documentTools {
	return &documentTools{
		office:   officeClient,
		markdown: goldmark.New(),
	}
}

// OfficeToPDF конвертирует word/excel/powerpoint через внешний движок
func (t *documentTools) OfficeToPDF(ctx context.Context, in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	converted, err := t.office.ConvertToPDF(ctx, in.Path, outDir)
	if err != nil {
		return entity.ProcessResult{}, err
	}

	// Конвертер пишет под своим именем, закрепляем уникальное
	name := names.claim(filepath.Base(converted))
	outPath := filepath.Join(outDir, name)
	if outPath != converted {
		if err := os.Rename(converted, outPath); err != nil {
			return entity.ProcessResult{}, err
		}
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	return fileResult(name, in.Size, info.Size()), nil
}

// PDFToWord переносит текстовый слой PDF в документ Word
func (t *documentTools) PDFToWord(ctx context.Context, in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	text, err := extractPDFText(in.Path)
	if err != nil {
		return entity.ProcessResult{}, err
	}

	name := names.claim(baseName(in.Name) + ".docx")
	outPath := filepath.Join(outDir, name)
	if err := writeDocx(outPath, strings.Split(text, "\n")); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	return fileResult(name, in.Size, info.Size()), nil
}

// TextToPDF верстает текстовый файл в PDF с переносом строк
func (t *documentTools) TextToPDF(in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	data, err := os.ReadFile(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 11)

	for _, line := range strings.Split(string(data), "\n") {
		pdf.MultiCell(0, 5, translate(strings.TrimRight(line, "\r")), "", "L", false)
	}

	name := names.claim(baseName(in.Name) + ".pdf")
	return t.savePDF(pdf, outDir, name, in.Size)
}

// MarkdownToPDF верстает Markdown в PDF: заголовки крупнее, абзацы обычным шрифтом
func (t *documentTools) MarkdownToPDF(in entity.InputFile, outDir string, names *nameAllocator) (entity.ProcessResult, error) {
	source, err := os.ReadFile(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	doc := t.markdown.Parser().Parse(gmtext.NewReader(source))

	pdf := gofpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			size := headingSizes[len(headingSizes)-1]
			if node.Level <= len(headingSizes) {
				size = headingSizes[node.Level-1]
			}
			pdf.SetFont("Arial", "B", size)
			pdf.MultiCell(0, size/2, translate(blockText(source, n)), "", "L", false)
			pdf.Ln(2)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 5, translate(blockText(source, n)), "", "L", false)
			pdf.Ln(2)
			return ast.WalkSkipChildren, nil
		case *ast.TextBlock:
			// Пункты списков и прочие простые блоки
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 5, translate("- "+blockText(source, n)), "", "L", false)
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			pdf.SetFont("Courier", "", 10)
			pdf.MultiCell(0, 5, translate(blockText(source, n)), "", "L", false)
			pdf.Ln(2)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}

	name := names.claim(baseName(in.Name) + ".pdf")
	return t.savePDF(pdf, outDir, name, in.Size)
}

// WordToText достаёт текст из документа Word
func (t *documentTools) WordToText(in entity.InputFile) (entity.ProcessResult, error) {
	reader, err := docx.ReadDocxFile(in.Path)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	defer reader.Close()

	content := reader.Editable().GetContent()

	// Абзацы превращаем в строки, остальную разметку убираем
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	return textResult(strings.TrimSpace(content), in.Size), nil
}

func (t *documentTools) savePDF(pdf *gofpdf.Fpdf, outDir, name string, originalSize int64) (entity.ProcessResult, error) {
	outPath := filepath.Join(outDir, name)
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("%w: %v", entity.ErrProcessingFailed, err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return entity.ProcessResult{}, err
	}
	return fileResult(name, originalSize, info.Size()), nil
}

// blockText собирает исходный текст блочного узла Markdown
func blockText(source []byte, n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return strings.TrimSpace(sb.String())
}

// writeDocx собирает минимальный документ WordprocessingML:
// манифест типов, связи пакета и тело с абзацем на строку
func writeDocx(outPath string, lines []string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	writer := zip.NewWriter(out)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`,
		"word/document.xml": buildDocumentXML(lines),
	}

	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/document.xml"} {
		entry, err := writer.Create(name)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(entry, files[name]); err != nil {
			return err
		}
	}
	return writer.Close()
}

func buildDocumentXML(lines []string) string {
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, line := range lines {
		var escaped bytes.Buffer
		_ = xml.EscapeText(&escaped, []byte(line))
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		body.Write(escaped.Bytes())
		body.WriteString(`</w:t></w:r></w:p>`)
	}

	body.WriteString(`</w:body></w:document>`)
	return body.String()
}
