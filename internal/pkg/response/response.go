// Package response renders the JSON envelope every handler replies with:
// {"success": true, "data": ...} on the happy path, or
// {"success": false, "error": {"code": ..., "message": ...}} otherwise.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails adds the field-to-rule map produced by request
// validation under error.details.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details map[string]string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
