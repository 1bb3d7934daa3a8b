package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/internal/brokergpt/biz"
	"github.com/kart-io/brokergpt/internal/brokergpt/store"
	"github.com/kart-io/brokergpt/internal/model"
	"github.com/kart-io/brokergpt/pkg/errors"
	"github.com/kart-io/brokergpt/pkg/response"
)

// CarrierHandler handles carrier HTTP requests.
type CarrierHandler struct {
	svc *biz.CarrierService
}

// NewCarrierHandler creates a new CarrierHandler.
func NewCarrierHandler(svc *biz.CarrierService) *CarrierHandler {
	return &CarrierHandler{svc: svc}
}

// List returns all carriers.
func (h *CarrierHandler) List(c *gin.Context) {
	response.OK(c, h.svc.List(c.Request.Context()))
}

// Get returns one carrier.
func (h *CarrierHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	carrier := h.svc.Get(c.Request.Context(), id)
	if carrier == nil {
		response.Fail(c, errors.ErrNotFound)
		return
	}
	response.OK(c, carrier)
}

// Create creates a carrier.
func (h *CarrierHandler) Create(c *gin.Context) {
	var carrier model.Carrier
	if err := c.ShouldBindJSON(&carrier); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	if carrier.Name == "" {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("name is required"))
		return
	}
	carrier.ID = 0
	response.OK(c, h.svc.Create(c.Request.Context(), &carrier))
}

// Update patches a carrier.
func (h *CarrierHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch model.Carrier
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

// Delete deletes a carrier.
func (h *CarrierHandler) Delete(c *gin.Context) {
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

// Match returns the carriers whose appetite admits a risk profile.
func (h *CarrierHandler) Match(c *gin.Context) {
	var q store.RiskProfileQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	response.OK(c, h.svc.Match(c.Request.Context(), q))
}

// Recommend returns ranked carrier recommendations for a client.
func (h *CarrierHandler) Recommend(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	recommended := h.svc.Recommend(c.Request.Context(), clientID)
	if recommended == nil {
		response.Fail(c, errors.ErrNotFound.WithMessage("client %d not found", clientID))
		return
	}
	response.OK(c, recommended)
}
