package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	group.Use(authMiddleware)
	{
		group.GET("/availability", h.SearchAvailability)
		group.GET("/:id", h.Get)

		// === Staff Routes ===
		group.POST("", staffMiddleware, h.Create)
		group.PATCH("/:id/status", staffMiddleware, h.UpdateStatus)
	}
}
