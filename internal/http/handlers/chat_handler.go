package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/http/middleware"
	"github.com/tbourn/sidus-backend/internal/llm"
)

// ChatRequest is the conversation so far; the last turn is the user's.
type ChatRequest struct {
	Messages []llm.Message `json:"messages"`
	ChatType string        `json:"chatType" example:"relationship"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Venus favors honest conversations this week."`
}

// ChatHistoryResponse is a page of stored turns, oldest first.
type ChatHistoryResponse struct {
	Success    bool                 `json:"success" example:"true"`
	Data       []domain.ChatMessage `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// Chat godoc
// @ID          chat
// @Summary     Talk to the guide
// @Description Themed astrology chat (general, relationship, career, friendship, family). Provider hiccups return a canned reply instead of an error.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.ChatRequest  true  "Conversation"
// @Success     200  {object}  handlers.ChatResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     503  {object}  handlers.ErrorResponse  "Misconfigured"
// @Router      /chat [post]
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	reply, err := h.chat.Reply(c.Request.Context(), middleware.UserID(c), req.ChatType, req.Messages)
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, ChatResponse{Success: true, Message: reply})
}

// ChatHistory godoc
// @ID          chatHistory
// @Summary     Chat history
// @Tags        Chat
// @Produce     json
// @Security    BearerAuth
// @Param       chatType   query  string  false  "Chat type"  default(general)
// @Param       page       query  int     false  "Page (1-based)"  minimum(1) default(1)
// @Param       page_size  query  int     false  "Page size"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ChatHistoryResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chat/history [get]
func (h *Handlers) ChatHistory(c *gin.Context) {
	page, size := clampPagination(c)
	chatType := strings.TrimSpace(c.Query("chatType"))

	items, total, err := h.chat.History(c.Request.Context(), middleware.UserID(c), chatType, page, size)
	if err != nil {
		failFor(c, err)
		return
	}
	if items == nil {
		items = []domain.ChatMessage{}
	}
	ok(c, http.StatusOK, ChatHistoryResponse{
		Success:    true,
		Data:       items,
		Pagination: pagination(page, size, total),
	})
}
