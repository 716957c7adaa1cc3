package transport

import (
	"net/http"

	"github.com/ds124wfegd/file-tools/internal/catalog"
	"github.com/ds124wfegd/file-tools/internal/entity"
	"github.com/gin-gonic/gin"
)

func (h *ToolHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Categories())
}

func (h *ToolHandler) GetCategory(c *gin.Context) {
	id := c.Param("id")

	category, ok := catalog.CategoryByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, entity.CategoryResponse{
		Category: category,
		Tools:    catalog.ToolsByCategory(id),
	})
}

func (h *ToolHandler) GetTools(c *gin.Context) {
	if c.Query("popular") == "true" {
		c.JSON(http.StatusOK, catalog.PopularTools())
		return
	}
	c.JSON(http.StatusOK, catalog.Tools())
}

func (h *ToolHandler) GetTool(c *gin.Context) {
	tool, ok := catalog.ToolByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		return
	}
	c.JSON(http.StatusOK, tool)
}
