package router

import (
	"github.com/YOHANNES7766/AmenApp/chat/handler"
	"github.com/YOHANNES7766/AmenApp/realtime"

	"github.com/gin-gonic/gin"
)

func SetChatRouter(r *gin.RouterGroup, h *handler.ChatHandler, ws *realtime.Handler) {
	r.POST("/chat/messages", h.SendMessage)
	r.GET("/chat/conversations", h.GetConversations)
	r.GET("/chat/conversations/:id/messages", h.GetMessages)
	r.PUT("/chat/messages/:id/read", h.MarkRead)
	r.GET("/chat/saved-messages", h.GetSavedMessages)
	r.GET("/chat/users", h.GetChatUsers)
	r.GET("/ws", ws.Serve)
}
