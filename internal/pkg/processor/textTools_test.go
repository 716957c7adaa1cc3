package processor

import (
	"testing"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarkdownToHTML тестирует рендеринг Markdown
func TestMarkdownToHTML(t *testing.T) {
	tools := newTextTools()
	in := writeInput(t, "doc.md", "# Title\n\nSome *emphasis* here.\n\n- item one\n- item two\n")

	result, err := tools.MarkdownToHTML(in)
	require.NoError(t, err)

	assert.Equal(t, entity.TypeText, result.Type)
	assert.Contains(t, result.Text, "<h1>Title</h1>")
	assert.Contains(t, result.Text, "<em>emphasis</em>")
	assert.Contains(t, result.Text, "<li>item one</li>")
}

// TestHTMLToText проверяет вычищение разметки, включая script и style
func TestHTMLToText(t *testing.T) {
	tools := newTextTools()
	in := writeInput(t, "page.html", `<html><head><style>p{color:red}</style></head>
<body><p>Visible  text</p><script>alert("hidden")</script><div>more text</div></body></html>`)

	result, err := tools.HTMLToText(in)
	require.NoError(t, err)

	assert.Equal(t, "Visible text more text", result.Text)
	assert.NotContains(t, result.Text, "alert")
	assert.NotContains(t, result.Text, "color")
}

// TestTextCase тестирует режимы смены регистра
func TestTextCase(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "upper", mode: "upper", input: "hello world", expected: "HELLO WORLD"},
		{name: "lower", mode: "lower", input: "HELLO World", expected: "hello world"},
		{name: "title", mode: "title", input: "hello world", expected: "Hello World"},
		{name: "unknown mode", mode: "camel", input: "hello", wantErr: true},
		{name: "missing text", mode: "upper", input: "", wantErr: true},
	}

	tools := newTextTools()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tools.TextCase(entity.InputFile{}, entity.ToolOptions{Text: tt.input, CaseMode: tt.mode})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Text)
		})
	}
}

// TestTextCaseFromFile проверяет чтение текста из входного файла
func TestTextCaseFromFile(t *testing.T) {
	tools := newTextTools()
	in := writeInput(t, "note.txt", "quiet words")

	result, err := tools.TextCase(in, entity.ToolOptions{CaseMode: "upper"})
	require.NoError(t, err)
	assert.Equal(t, "QUIET WORDS", result.Text)
}

// TestQRGenerate тестирует генерацию QR-кода
func TestQRGenerate(t *testing.T) {
	tools := newTextTools()

	t.Run("from text option", func(t *testing.T) {
		outDir := t.TempDir()
		result, err := tools.QRGenerate(entity.InputFile{}, entity.ToolOptions{Text: "https://example.com", QRSize: 128}, outDir, newNameAllocator())
		require.NoError(t, err)

		assert.Equal(t, entity.TypeImage, result.Type)
		assert.Equal(t, "qrcode.png", result.Filename)
		assert.Greater(t, result.NewSize, int64(0))
	})

	t.Run("from input file", func(t *testing.T) {
		in := writeInput(t, "link.txt", "https://example.com/page")
		result, err := tools.QRGenerate(in, entity.ToolOptions{}, t.TempDir(), newNameAllocator())
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("no text at all", func(t *testing.T) {
		_, err := tools.QRGenerate(entity.InputFile{}, entity.ToolOptions{}, t.TempDir(), newNameAllocator())
		assert.ErrorIs(t, err, entity.ErrTextRequired)
	})
}
