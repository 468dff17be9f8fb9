package httpx

import "github.com/gin-gonic/gin"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK writes the success envelope.
func OK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// Fail writes the failure envelope with a stable machine-readable code.
func Fail(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   errorBody{Code: code, Message: message},
	})
}

// Abort writes the failure envelope and stops the handler chain.
func Abort(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   errorBody{Code: code, Message: message},
	})
}
