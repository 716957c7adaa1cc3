// Static tool and category catalog
package catalog

import (
	"github.com/ds124wfegd/file-tools/internal/entity"
)

var categories = []entity.Category{
	{ID: "pdf", Title: "PDF Tools", Description: "Merge, split, compress, convert and protect PDF documents", Icon: "file-pdf", Color: "#E5484D"},
	{ID: "image", Title: "Image Tools", Description: "Compress, resize, convert and transform images", Icon: "image", Color: "#3E63DD"},
	{ID: "audio", Title: "Audio Tools", Description: "Convert and compress audio files", Icon: "music", Color: "#30A46C"},
	{ID: "video", Title: "Video Tools", Description: "Convert, compress and edit video files", Icon: "video", Color: "#8E4EC6"},
	{ID: "archive", Title: "Archive Tools", Description: "Create and extract ZIP archives", Icon: "archive", Color: "#F76B15"},
	{ID: "text", Title: "Text Tools", Description: "Markdown, QR codes and text utilities", Icon: "text", Color: "#00A2C7"},
}

var tools = []entity.Tool{
	// PDF
	{ID: "merge-pdf", Title: "Merge PDF", Description: "Combine multiple PDF files into one document", CategoryID: "pdf", Icon: "git-merge", Popular: true},
	{ID: "split-pdf", Title: "Split PDF", Description: "Split a PDF into separate pages or page ranges", CategoryID: "pdf", Icon: "scissors"},
	{ID: "compress-pdf", Title: "Compress PDF", Description: "Reduce PDF file size without losing quality", CategoryID: "pdf", Icon: "minimize", Popular: true},
	{ID: "rotate-pdf", Title: "Rotate PDF", Description: "Rotate all pages of a PDF by 90, 180 or 270 degrees", CategoryID: "pdf", Icon: "rotate-cw"},
	{ID: "protect-pdf", Title: "Protect PDF", Description: "Add password protection to a PDF document", CategoryID: "pdf", Icon: "lock"},
	{ID: "unlock-pdf", Title: "Unlock PDF", Description: "Remove password protection from a PDF document", CategoryID: "pdf", Icon: "unlock"},
	{ID: "watermark-pdf", Title: "Watermark PDF", Description: "Stamp a text watermark on every page", CategoryID: "pdf", Icon: "droplet"},
	{ID: "extract-pdf-images", Title: "Extract PDF Images", Description: "Extract all embedded images from a PDF", CategoryID: "pdf", Icon: "images"},
	{ID: "pdf-page-count", Title: "PDF Page Count", Description: "Count the pages of a PDF document", CategoryID: "pdf", Icon: "hash"},
	{ID: "pdf-to-text", Title: "PDF to Text", Description: "Extract the text layer from a PDF", CategoryID: "pdf", Icon: "file-text"},
	{ID: "pdf-to-word", Title: "PDF to Word", Description: "Convert a PDF into an editable Word document", CategoryID: "pdf", Icon: "file-word", Popular: true},
	{ID: "jpg-to-pdf", Title: "JPG to PDF", Description: "Combine images into a single PDF document", CategoryID: "pdf", Icon: "file-image", Popular: true},
	{ID: "word-to-pdf", Title: "Word to PDF", Description: "Convert Word documents to PDF", CategoryID: "pdf", Icon: "file-word", Popular: true},
	{ID: "excel-to-pdf", Title: "Excel to PDF", Description: "Convert Excel spreadsheets to PDF", CategoryID: "pdf", Icon: "file-spreadsheet"},
	{ID: "powerpoint-to-pdf", Title: "PowerPoint to PDF", Description: "Convert PowerPoint presentations to PDF", CategoryID: "pdf", Icon: "file-presentation"},
	{ID: "text-to-pdf", Title: "Text to PDF", Description: "Turn a plain text file into a PDF", CategoryID: "pdf", Icon: "file-type"},
	{ID: "markdown-to-pdf", Title: "Markdown to PDF", Description: "Render a Markdown file as a PDF", CategoryID: "pdf", Icon: "file-code"},

	// Image
	{ID: "compress-image", Title: "Compress Image", Description: "Shrink an image to a target file size", CategoryID: "image", Icon: "minimize", Popular: true},
	{ID: "resize-image", Title: "Resize Image", Description: "Change image dimensions in pixels", CategoryID: "image", Icon: "maximize", Popular: true},
	{ID: "convert-image", Title: "Convert Image", Description: "Convert between JPG, PNG, GIF, TIFF and BMP", CategoryID: "image", Icon: "refresh-cw"},
	{ID: "rotate-image", Title: "Rotate Image", Description: "Rotate an image by 90, 180 or 270 degrees", CategoryID: "image", Icon: "rotate-cw"},
	{ID: "flip-image", Title: "Flip Image", Description: "Mirror an image horizontally or vertically", CategoryID: "image", Icon: "flip-horizontal"},
	{ID: "grayscale-image", Title: "Grayscale Image", Description: "Convert an image to black and white", CategoryID: "image", Icon: "contrast"},
	{ID: "image-to-text", Title: "Image to Text (OCR)", Description: "Recognize text on an image", CategoryID: "image", Icon: "scan-text"},

	// Audio
	{ID: "convert-audio", Title: "Convert Audio", Description: "Convert between MP3, WAV, OGG and FLAC", CategoryID: "audio", Icon: "refresh-cw"},
	{ID: "compress-audio", Title: "Compress Audio", Description: "Reduce audio bitrate to shrink file size", CategoryID: "audio", Icon: "minimize"},

	// Video
	{ID: "convert-video", Title: "Convert Video", Description: "Convert between MP4, WebM, AVI, MOV and MKV", CategoryID: "video", Icon: "refresh-cw", Popular: true},
	{ID: "compress-video", Title: "Compress Video", Description: "Re-encode a video to reduce its size", CategoryID: "video", Icon: "minimize"},
	{ID: "extract-audio", Title: "Extract Audio", Description: "Save the audio track of a video as MP3", CategoryID: "video", Icon: "music"},
	{ID: "mute-video", Title: "Mute Video", Description: "Remove the audio track from a video", CategoryID: "video", Icon: "volume-x"},

	// Archive
	{ID: "create-zip", Title: "Create ZIP", Description: "Pack files into a ZIP archive", CategoryID: "archive", Icon: "package"},
	{ID: "extract-zip", Title: "Extract ZIP", Description: "Unpack a ZIP archive", CategoryID: "archive", Icon: "package-open"},

	// Text
	{ID: "markdown-to-html", Title: "Markdown to HTML", Description: "Render Markdown as HTML", CategoryID: "text", Icon: "code"},
	{ID: "html-to-text", Title: "HTML to Text", Description: "Strip tags from an HTML document", CategoryID: "text", Icon: "file-text"},
	{ID: "qr-generator", Title: "QR Generator", Description: "Generate a QR code from text or a link", CategoryID: "text", Icon: "qr-code", Popular: true},
	{ID: "word-to-text", Title: "Word to Text", Description: "Extract plain text from a Word document", CategoryID: "text", Icon: "file-word"},
	{ID: "text-case", Title: "Text Case", Description: "Convert text to upper, lower or title case", CategoryID: "text", Icon: "case-sensitive"},
}

var (
	toolIndex     = make(map[string]entity.Tool, len(tools))
	categoryIndex = make(map[string]entity.Category, len(categories))
)

func init() {
	for _, t := range tools {
		toolIndex[t.ID] = t
	}
	for _, c := range categories {
		categoryIndex[c.ID] = c
	}
}

func Categories() []entity.Category {
	out := make([]entity.Category, len(categories))
	copy(out, categories)
	return out
}

func CategoryByID(id string) (entity.Category, bool) {
	c, ok := categoryIndex[id]
	return c, ok
}

func Tools() []entity.Tool {
	out := make([]entity.Tool, len(tools))
	copy(out, tools)
	return out
}

func ToolByID(id string) (entity.Tool, bool) {
	t, ok := toolIndex[id]
	return t, ok
}

func ToolsByCategory(categoryID string) []entity.Tool {
	var out []entity.Tool
	for _, t := range tools {
		if t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out
}

func PopularTools() []entity.Tool {
	var out []entity.Tool
	for _, t := range tools {
		if t.Popular {
			out = append(out, t)
		}
	}
	return out
}
