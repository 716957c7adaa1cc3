package entity

// Tool описывает один инструмент каталога. Каталог статический,
// собирается на этапе компиляции и не изменяется во время работы.
type Tool struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	Icon        string `json:"icon"`
	Popular     bool   `json:"popular,omitempty"`
}

// Category группирует инструменты в навигации.
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type CategoryResponse struct {
	Category Category `json:"category"`
	Tools    []Tool   `json:"tools"`
}
