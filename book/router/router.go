package router

import (
	"github.com/YOHANNES7766/AmenApp/book/handler"
	"github.com/YOHANNES7766/AmenApp/common"

	"github.com/gin-gonic/gin"
)

func SetBookRouter(r *gin.RouterGroup, h *handler.BookHandler) {
	r.GET("/books", h.List)
	r.GET("/books/:id", h.Get)
	r.POST("/books", h.Upload)
	r.GET("/books/:id/comments", h.ListComments)
	r.POST("/books/:id/comments", h.AddComment)

	admin := r.Group("/admin", common.AdminOnly())
	admin.PUT("/books/:id/approve", h.Approve)
}
