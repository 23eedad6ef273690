package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vaultdash/internal/consts"
	"vaultdash/pkg/errors"
	"vaultdash/pkg/errors/ecode"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据
}

// JSON 发送json格式数据，code != 0 时返回 http 400
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	httpStatus := http.StatusOK
	switch code {
	case ecode.Success:
	case ecode.NotFoundErr:
		httpStatus = http.StatusNotFound
	case ecode.VaultUnavailable, ecode.TradesUnavailable:
		httpStatus = http.StatusServiceUnavailable
	default:
		httpStatus = http.StatusBadRequest
	}
	c.JSON(httpStatus, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// TooManyRequests 请求频繁，返回429
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.TooManyRequests,
		Message:   "The request is too frequent. Please try again later.",
	})
}
