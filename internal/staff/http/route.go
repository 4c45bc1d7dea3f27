package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/staff")

	group.Use(authMiddleware, staffMiddleware)
	{
		group.POST("", h.CreateStaff)
		group.POST("/tasks", h.AssignTask)
		group.PATCH("/tasks/:id/status", h.UpdateTaskStatus)
		group.GET("/:id/tasks", h.ListTasks)
	}
}
