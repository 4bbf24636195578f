package handler

import (
	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// DeniedResponse 业务拒绝响应
// 不是系统错误，返回200和结构化的拒绝原因与补救提示
func DeniedResponse(c *gin.Context, reason, hint string) {
	c.JSON(200, gin.H{
		"success": false,
		"denied":  true,
		"reason":  reason,
		"hint":    hint,
	})
}
