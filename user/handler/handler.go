package handler

import (
	"net/http"
	"strconv"

	"github.com/YOHANNES7766/AmenApp/common"
	"github.com/YOHANNES7766/AmenApp/user/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), common.CurrentUserID(c))
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "get profile ok", "detail": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var input struct {
		Name           string `json:"name"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": err.Error()})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), common.CurrentUserID(c), input.Name, input.ProfilePicture)
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "update profile ok", "detail": user})
}

func (h *UserHandler) ListPending(c *gin.Context) {
	users, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "list pending ok", "detail": users})
}

func (h *UserHandler) Approve(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": "invalid user id"})
		return
	}
	if err := h.service.Approve(c.Request.Context(), userID); err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "approve ok"})
}

func (h *UserHandler) Decline(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": "invalid user id"})
		return
	}
	if err := h.service.Decline(c.Request.Context(), userID); err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "decline ok"})
}
