package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-admin/internal/domain"
)

// ErrorBody 统一错误响应：{"statusCode":409,"message":"..."}
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func Error(status int, msg string) ErrorBody {
	return ErrorBody{StatusCode: status, Message: msg}
}

// WriteError 领域错误到 HTTP 状态码的唯一出口
func WriteError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, Error(http.StatusNotFound, err.Error()))
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, Error(http.StatusConflict, err.Error()))
	case domain.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, err.Error()))
	case domain.IsStorageError(err):
		c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, err.Error()))
	default:
		// 内部细节不出网
		c.JSON(http.StatusInternalServerError, Error(http.StatusInternalServerError, "Internal server error"))
	}
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, msg))
}
