package router

import (
	"github.com/gin-gonic/gin"

	"docreader/api/handler"
)

func RegisterRoutes(r *gin.Engine, docH *handler.DocumentHandler) {
	r.GET("/health", docH.Health)

	api := r.Group("/api/v1")
	{
		document := api.Group("/document")
		{
			document.POST("/upload", docH.Upload)
			document.POST("/extract", docH.ExtractText)
			document.POST("/import", docH.ImportLocal)
			document.POST("/search", docH.Search)
			document.GET("/:doc_id", docH.GetDocument)
		}
	}
}
