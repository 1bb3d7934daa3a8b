package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/internal/brokergpt/biz"
	"github.com/kart-io/brokergpt/pkg/errors"
	"github.com/kart-io/brokergpt/pkg/response"
)

// ResearchHandler handles company research HTTP requests.
type ResearchHandler struct {
	svc *biz.ResearchService
}

// NewResearchHandler creates a new ResearchHandler.
func NewResearchHandler(svc *biz.ResearchService) *ResearchHandler {
	return &ResearchHandler{svc: svc}
}

// ResearchRequest is the request body for a company lookup.
type ResearchRequest struct {
	Company string `json:"company"`
}

// Research builds a draft client profile from public web data.
func (h *ResearchHandler) Research(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("%s", err.Error()))
		return
	}
	if req.Company == "" {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("company is required"))
		return
	}

	client, err := h.svc.Research(c.Request.Context(), req.Company)
	if err != nil {
		response.Fail(c, errors.ErrUpstreamTimeout.WithCause(err))
		return
	}
	response.OK(c, client)
}
