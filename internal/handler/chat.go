package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inmobot/internal/model"
)

// Replier produces the assistant's next message
type Replier interface {
	Reply(ctx context.Context, messages []model.ChatMessage) (string, error)
}

// ChatHandler relays conversations to the chat model
type ChatHandler struct {
	chat   Replier
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat Replier, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: logger,
	}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Messages == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgMessagesRequired})
		return
	}

	reply, err := h.chat.Reply(c.Request.Context(), req.Messages)
	if err != nil {
		h.logger.Error("chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Response: reply})
}
