package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.POST("/:id/cancel", h.Cancel)

		// === Staff Routes ===
		group.POST("/:id/check-in", staffMiddleware, h.CheckIn)
		group.POST("/:id/check-out", staffMiddleware, h.CheckOut)
	}
}
