package transport

import (
	"github.com/ds124wfegd/file-tools/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(toolHandler *ToolHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(120))

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := router.Group("/api")
	{
		api.GET("/categories", toolHandler.GetCategories)
		api.GET("/categories/:id", toolHandler.GetCategory)
		api.GET("/tools", toolHandler.GetTools)
		api.GET("/tools/:id", toolHandler.GetTool)
		api.POST("/tools/:id/process", toolHandler.ProcessTool)

		api.GET("/results/:id", toolHandler.GetResult)
		api.GET("/results/:id/download", toolHandler.DownloadResult)
		api.DELETE("/results/:id", toolHandler.DeleteResult)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "file-tools-service",
		})
	})
	return router
}
