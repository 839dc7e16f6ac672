package response

import (
	"github.com/gin-gonic/gin"
)

// Success writes data as the bare JSON body.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Message writes a plain-text body, used for confirmations.
func Message(c *gin.Context, status int, message string) {
	c.String(status, message)
}

// Error writes the message as a plain-text body and stops the handler chain.
// The machine-readable code travels in the X-Error-Code header.
func Error(c *gin.Context, status int, code string, message string) {
	c.Header("X-Error-Code", code)
	c.String(status, message)
	c.Abort()
}
