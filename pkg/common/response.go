package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every handler returns
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SuccessResponse sends a 200 response with data
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// ErrorResponse sends an error response with the given status code
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{Success: false, Error: message})
}

// AppErrorResponse sends an error response from an AppError
func AppErrorResponse(c *gin.Context, err *AppError) {
	c.JSON(err.Status, APIResponse{Success: false, Error: err.Message})
}
