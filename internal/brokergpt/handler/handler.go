// Package handler exposes the BrokerGPT HTTP API.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/pkg/errors"
	"github.com/kart-io/brokergpt/pkg/response"
)

// pathID parses a numeric path parameter, replying 400 itself on garbage.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("invalid %s", name))
		return 0, false
	}
	return id, true
}

// queryClientID parses an optional clientId query parameter.
func queryClientID(c *gin.Context) (*uint64, bool) {
	raw := c.Query("clientId")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.Fail(c, errors.ErrInvalidParam.WithMessage("invalid clientId"))
		return nil, false
	}
	return &id, true
}
