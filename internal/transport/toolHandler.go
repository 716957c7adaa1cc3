package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/gin-gonic/gin"
)

// ProcessTool принимает multipart-форму: файлы в поле files,
// настройки инструмента в остальных полях
func (h *ToolHandler) ProcessTool(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	opts := parseOptions(c)

	result, err := h.service.ProcessTool(c.Request.Context(), c.Param("id"), files, opts)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ToolHandler) GetResult(c *gin.Context) {
	result, err := h.service.GetResult(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// DownloadResult отдаёт артефакт задания: конкретный файл из запроса
// или основной артефакт (архив пакета либо единственный результат)
func (h *ToolHandler) DownloadResult(c *gin.Context) {
	reader, name, err := h.service.OpenArtifact(c.Param("id"), c.Query("file"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)

	_, _ = io.Copy(c.Writer, reader)
}

func (h *ToolHandler) DeleteResult(c *gin.Context) {
	if err := h.service.DeleteResult(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Result deleted successfully"})
}

// parseOptions читает настройки инструмента из полей формы
func parseOptions(c *gin.Context) entity.ToolOptions {
	return entity.ToolOptions{
		TargetSizeKB:  formInt(c, "targetSizeKB"),
		Quality:       formFloat(c, "quality"),
		Width:         formInt(c, "width"),
		Height:        formInt(c, "height"),
		Angle:         formInt(c, "angle"),
		Direction:     c.PostForm("direction"),
		Format:        c.PostForm("format"),
		Password:      c.PostForm("password"),
		Span:          formInt(c, "span"),
		WatermarkText: c.PostForm("watermarkText"),
		Text:          c.PostForm("text"),
		QRSize:        formInt(c, "qrSize"),
		Bitrate:       c.PostForm("bitrate"),
		CaseMode:      c.PostForm("caseMode"),
	}
}

func formInt(c *gin.Context, key string) int {
	value, _ := strconv.Atoi(c.PostForm(key))
	return value
}

func formFloat(c *gin.Context, key string) float64 {
	value, _ := strconv.ParseFloat(c.PostForm(key), 64)
	return value
}

// statusForError сводит ошибки валидации к 400, остальные к 500
func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrNoFiles),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrTooManyFiles),
		errors.Is(err, entity.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
