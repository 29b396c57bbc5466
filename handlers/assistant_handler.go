package handlers

import (
	"net/http"

	"TodoAPI/middlewares"
	"TodoAPI/models"
	"TodoAPI/services"

	"github.com/gin-gonic/gin"
)

// AssistantHandler serves /ai.
type AssistantHandler struct {
	svc services.AssistantService
}

func NewAssistantHandler(svc services.AssistantService) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// Chat handles POST /ai/chat/conversation.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// a missing message gets the same answer as a blank one
		respondError(c, services.ErrEmptyMessage)
		return
	}
	out, err := h.svc.Chat(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListConversations handles GET /ai/conversations?page=&limit=.
func (h *AssistantHandler) ListConversations(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", services.DefaultConversationLimit)
	out, err := h.svc.ListConversations(c.Request.Context(), middlewares.UserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListMessages handles GET /ai/conversations/:id/messages?limit=.
func (h *AssistantHandler) ListMessages(c *gin.Context) {
	limit := queryInt(c, "limit", services.DefaultMessageLimit)
	items, err := h.svc.ListMessages(c.Request.Context(), middlewares.UserID(c), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Health handles GET /ai/health.
func (h *AssistantHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "AI assistant service is healthy"})
}
