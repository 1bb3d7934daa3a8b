package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/internal/brokergpt/biz"
	"github.com/kart-io/brokergpt/internal/model"
	"github.com/kart-io/brokergpt/pkg/errors"
	"github.com/kart-io/brokergpt/pkg/response"
)

// ClientHandler handles client HTTP requests.
type ClientHandler struct {
	svc *biz.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(svc *biz.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// List returns all clients. With a name query it finds the first match
// instead.
func (h *ClientHandler) List(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		client := h.svc.FindByName(c.Request.Context(), name)
		if client == nil {
			response.Fail(c, errors.ErrNotFound.WithMessage("no client matching %q", name))
			return
		}
		response.OK(c, client)
		return
	}
	response.OK(c, h.svc.List(c.Request.Context()))
}

// Get returns one client.
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client := h.svc.Get(c.Request.Context(), id)
	if client == nil {
		response.Fail(c, errors.ErrNotFound)
		return
	}
	response.OK(c, client)
}

// Create creates a client.
func (h *ClientHandler) Create(c *gin.Context) {
	var client model.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	if client.Name == "" {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("name is required"))
		return
	}
	client.ID = 0
	response.OK(c, h.svc.Create(c.Request.Context(), &client))
}

// Update patches a client.
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch model.Client
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	updated := h.svc.Update(c.Request.Context(), id, &patch)
	if updated == nil {
		response.Fail(c, errors.ErrNotFound)
		return
	}
	response.OK(c, updated)
}

// Delete deletes a client.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.svc.Delete(c.Request.Context(), id) {
		response.Fail(c, errors.ErrNotFound)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
