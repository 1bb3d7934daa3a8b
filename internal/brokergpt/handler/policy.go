package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/internal/brokergpt/biz"
	"github.com/kart-io/brokergpt/internal/model"
	"github.com/kart-io/brokergpt/pkg/errors"
	"github.com/kart-io/brokergpt/pkg/response"
)

// PolicyHandler handles policy HTTP requests.
type PolicyHandler struct {
	svc *biz.PolicyService
}

// NewPolicyHandler creates a new PolicyHandler.
func NewPolicyHandler(svc *biz.PolicyService) *PolicyHandler {
	return &PolicyHandler{svc: svc}
}

// List returns all policies, or a client's policies with a clientId query.
func (h *PolicyHandler) List(c *gin.Context) {
	clientID, ok := queryClientID(c)
	if !ok {
		return
	}
	if clientID != nil {
		response.OK(c, h.svc.ListByClient(c.Request.Context(), *clientID))
		return
	}
	response.OK(c, h.svc.List(c.Request.Context()))
}

// Get returns one policy.
func (h *PolicyHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	policy := h.svc.Get(c.Request.Context(), id)
	if policy == nil {
		response.Fail(c, errors.ErrNotFound)
		return
	}
	response.OK(c, policy)
}

// Create creates a policy.
func (h *PolicyHandler) Create(c *gin.Context) {
	var policy model.Policy
	if err := c.ShouldBindJSON(&policy); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	if policy.ClientID == 0 {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("clientId is required"))
		return
	}
	policy.ID = 0
	response.OK(c, h.svc.Create(c.Request.Context(), &policy))
}

// Update patches a policy.
func (h *PolicyHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch model.Policy
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

// Delete deletes a policy.
func (h *PolicyHandler) Delete(c *gin.Context) {
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
