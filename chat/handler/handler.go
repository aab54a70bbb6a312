package handler

import (
	"net/http"
	"strconv"

	"github.com/YOHANNES7766/AmenApp/chat/service"
	"github.com/YOHANNES7766/AmenApp/common"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *service.ChatService
}

func NewChatHandler(s *service.ChatService) *ChatHandler {
	return &ChatHandler{service: s}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var input struct {
		ReceiverID int64  `json:"receiver_id" binding:"required"`
		Message    string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": err.Error()})
		return
	}

	sent, err := h.service.SendMessage(c.Request.Context(), common.CurrentUserID(c), input.ReceiverID, input.Message)
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "send message ok", "detail": sent})
}

func (h *ChatHandler) GetConversations(c *gin.Context) {
	conversations, err := h.service.GetConversations(c.Request.Context(), common.CurrentUserID(c))
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "get conversations ok", "detail": conversations})
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": "invalid conversation id"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	history, err := h.service.GetMessages(c.Request.Context(), common.CurrentUserID(c), conversationID, limit)
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "load messages ok", "detail": history})
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": "invalid message id"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), common.CurrentUserID(c), messageID); err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "mark read ok"})
}

func (h *ChatHandler) GetSavedMessages(c *gin.Context) {
	history, err := h.service.GetSavedMessages(c.Request.Context(), common.CurrentUserID(c))
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "load saved messages ok", "detail": history})
}

func (h *ChatHandler) GetChatUsers(c *gin.Context) {
	users, err := h.service.ListChatUsers(c.Request.Context(), common.CurrentUserID(c))
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "get chat users ok", "detail": users})
}
