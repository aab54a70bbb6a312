package router

import (
	"github.com/YOHANNES7766/AmenApp/common"
	"github.com/YOHANNES7766/AmenApp/user/handler"

	"github.com/gin-gonic/gin"
)

func SetUserRouter(r *gin.RouterGroup, h *handler.UserHandler) {
	r.GET("/account/profile", h.GetProfile)
	r.PUT("/account/profile", h.UpdateProfile)

	admin := r.Group("/admin", common.AdminOnly())
	admin.GET("/users/pending", h.ListPending)
	admin.PUT("/users/:id/approve", h.Approve)
	admin.PUT("/users/:id/decline", h.Decline)
}
