package entity

// ToolOptions — настройки инструмента из формы запроса.
// Каждый инструмент читает только свои поля, остальные игнорирует.
type ToolOptions struct {
	TargetSizeKB  int     `json:"targetSizeKB,omitempty"`
	Quality       float64 `json:"quality,omitempty"`
	Width         int     `json:"width,omitempty"`
	Height        int     `json:"height,omitempty"`
	Angle         int     `json:"angle,omitempty"`
	Direction     string  `json:"direction,omitempty"`
	Format        string  `json:"format,omitempty"`
	Password      string  `json:"password,omitempty"`
	Span          int     `json:"span,omitempty"`
	WatermarkText string  `json:"watermarkText,omitempty"`
	Text          string  `json:"text,omitempty"`
	QRSize        int     `json:"qrSize,omitempty"`
	Bitrate       string  `json:"bitrate,omitempty"`
	CaseMode      string  `json:"caseMode,omitempty"`
}
