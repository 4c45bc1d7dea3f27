package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/payments")

	// Gateway-facing endpoints carry no session; identity comes from the
	// merchant reference in the request itself.
	group.GET("/callback", h.Callback)
	group.GET("/ipn", h.IPN)
	group.POST("/ipn", h.IPN)

	group.POST("/init", authMiddleware, h.Initiate)
	group.GET("/:id", authMiddleware, h.Get)
	group.GET("/:id/logs", authMiddleware, staffMiddleware, h.ListLogs)
}
