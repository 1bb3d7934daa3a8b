package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/internal/brokergpt/biz"
	"github.com/kart-io/brokergpt/internal/model"
	"github.com/kart-io/brokergpt/pkg/errors"
	"github.com/kart-io/brokergpt/pkg/response"
)

// RecordHandler handles record type and client record HTTP requests.
type RecordHandler struct {
	svc *biz.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(svc *biz.RecordService) *RecordHandler {
	return &RecordHandler{svc: svc}
}

// ListTypes returns the record type vocabulary.
func (h *RecordHandler) ListTypes(c *gin.Context) {
	response.OK(c, h.svc.ListTypes(c.Request.Context()))
}

// GetType returns one record type.
func (h *RecordHandler) GetType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rt := h.svc.GetType(c.Request.Context(), id)
	if rt == nil {
		response.Fail(c, errors.ErrNotFound)
		return
	}
	response.OK(c, rt)
}

// CreateType adds a record type.
func (h *RecordHandler) CreateType(c *gin.Context) {
	var rt model.RecordType
	if err := c.ShouldBindJSON(&rt); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	if rt.Name == "" {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("name is required"))
		return
	}
	rt.ID = 0
	response.OK(c, h.svc.CreateType(c.Request.Context(), &rt))
}

// ListByClient returns a client's detail records.
func (h *RecordHandler) ListByClient(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	response.OK(c, h.svc.ListByClient(c.Request.Context(), clientID))
}

// Get returns one client record.
func (h *RecordHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record := h.svc.Get(c.Request.Context(), id)
	if record == nil {
		response.Fail(c, errors.ErrNotFound)
		return
	}
	response.OK(c, record)
}

// Create attaches a record to a client.
func (h *RecordHandler) Create(c *gin.Context) {
	var record model.ClientRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	if record.ClientID == 0 {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("clientId is required"))
		return
	}
	record.ID = 0
	response.OK(c, h.svc.Create(c.Request.Context(), &record))
}

// Update patches a client record.
func (h *RecordHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch model.ClientRecord
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

// Delete deletes a client record.
func (h *RecordHandler) Delete(c *gin.Context) {
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
