package entity

import "time"

// Типы результата, которые клиент умеет отображать
const (
	TypeFile  = "file"
	TypeText  = "text"
	TypeImage = "image"
)

// Статусы задания
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ProcessResult — единый контракт ответа любого инструмента:
// либо файл по ссылке, либо текст, либо сообщение об ошибке.
type ProcessResult struct {
	Success      bool   `json:"success"`
	Type         string `json:"type,omitempty"`
	URL          string `json:"url,omitempty"`
	Text         string `json:"text,omitempty"`
	Filename     string `json:"filename,omitempty"`
	Message      string `json:"message,omitempty"`
	OriginalSize int64  `json:"originalSize,omitempty"`
	NewSize      int64  `json:"newSize,omitempty"`
}

// Result — манифест одного вызова инструмента: по одному
// ProcessResult на входной файл, в исходном порядке.
type Result struct {
	ID        string          `json:"id"`
	ToolID    string          `json:"toolId"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Outputs   []ProcessResult `json:"outputs"`
	Archive   string          `json:"archive,omitempty"`
}

// InputFile — входной файл, уже сохранённый на диск.
type InputFile struct {
	Name string
	Path string
	Size int64
}

// ProcessingEvent уходит в Kafka после каждой обработки.
type ProcessingEvent struct {
	JobID        string `json:"job_id"`
	ToolID       string `json:"tool_id"`
	Status       string `json:"status"`
	Files        int    `json:"files"`
	DurationMs   int64  `json:"duration_ms"`
	OriginalSize int64  `json:"original_size"`
	NewSize      int64  `json:"new_size"`
}
