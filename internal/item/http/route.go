package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, sharerMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	// Search carries no sharer header in the gateway contract.
	group.GET("/search", h.Search)
	group.DELETE("/:itemId", h.Delete)

	authed := group.Group("")
	authed.Use(sharerMiddleware)
	{
		authed.POST("", h.Create)
		authed.GET("", h.GetAll)
		authed.GET("/:itemId", h.Get)
		authed.PATCH("/:itemId", h.Update)
		authed.POST("/:itemId/comment", h.AddComment)
	}
}
