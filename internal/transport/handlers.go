package transport

import (
	"github.com/ds124wfegd/file-tools/internal/service"
)

type ToolHandler struct {
	service service.ToolService
}

func NewToolHandler(service service.ToolService) *ToolHandler {
	return &ToolHandler{service: service}
}
