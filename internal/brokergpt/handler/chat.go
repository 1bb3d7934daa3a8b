package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/internal/brokergpt/biz"
	"github.com/kart-io/brokergpt/pkg/errors"
	"github.com/kart-io/brokergpt/pkg/response"
)

// ChatHandler handles assistant HTTP requests.
type ChatHandler struct {
	svc *biz.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(svc *biz.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// SendRequest is the request body for sending a chat message.
type SendRequest struct {
	ClientID *uint64 `json:"clientId"`
	Message  string  `json:"message"`
}

// Send appends a user message and returns the assistant reply.
func (h *ChatHandler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	if req.Message == "" {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("message is required"))
		return
	}
	response.OK(c, h.svc.Send(c.Request.Context(), req.ClientID, req.Message))
}

// Transcript returns a conversation in order. clientId is optional; absent
// it selects the global conversation.
func (h *ChatHandler) Transcript(c *gin.Context) {
	clientID, ok := queryClientID(c)
	if !ok {
		return
	}
	response.OK(c, h.svc.Transcript(c.Request.Context(), clientID))
}

// ExtractRequest is the request body for profile extraction.
type ExtractRequest struct {
	Text string `json:"text"`
}

// Extract turns free text into a draft client profile.
func (h *ChatHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	if req.Text == "" {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("text is required"))
		return
	}

	client, err := h.svc.ExtractProfile(c.Request.Context(), req.Text)
	if err != nil {
		response.Fail(c, errors.ErrAssistantUnavailable.WithCause(err))
		return
	}
	response.OK(c, client)
}
