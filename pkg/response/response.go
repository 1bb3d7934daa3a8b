// Package response provides the unified HTTP response envelope.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/pkg/errors"
)

// Response is the envelope every HTTP endpoint returns.
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`

	httpStatus int
}

// PageData wraps a paginated list result.
type PageData struct {
	List     interface{} `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// HTTPStatus returns the HTTP status code for the response.
func (r *Response) HTTPStatus() int {
	if r.httpStatus == 0 {
		return http.StatusOK
	}
	return r.httpStatus
}

// Success builds a successful response with data.
func Success(data interface{}) *Response {
	return &Response{
		Code:       errors.OK.Code,
		Message:    errors.OK.Message,
		Data:       data,
		httpStatus: http.StatusOK,
	}
}

// Err builds an error response from an Errno.
func Err(e *errors.Errno) *Response {
	return &Response{
		Code:       e.Code,
		Message:    e.Message,
		httpStatus: e.HTTPStatus(),
	}
}

// Page builds a successful paginated response.
func Page(list interface{}, total int64, page, pageSize int) *Response {
	return Success(&PageData{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func write(c *gin.Context, r *Response) {
	if id := c.GetString("request_id"); id != "" {
		r.RequestID = id
	}
	c.JSON(r.HTTPStatus(), r)
}

// OK sends a successful response with data.
func OK(c *gin.Context, data interface{}) {
	write(c, Success(data))
}

// PageOK sends a paginated response.
func PageOK(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	write(c, Page(list, total, page, pageSize))
}

// Fail sends an error response using an Errno.
func Fail(c *gin.Context, e *errors.Errno) {
	write(c, Err(e))
}

// FailWithError converts a standard error and sends it. Errno values are
// used directly, anything else is reported as an internal error.
func FailWithError(c *gin.Context, err error) {
	Fail(c, errors.FromError(err))
}
