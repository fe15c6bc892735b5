package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"ok": 0, "code": http.StatusBadRequest, "message": message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"ok": 0, "code": http.StatusNotFound, "message": "Not Found"})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"ok": 0, "code": http.StatusMethodNotAllowed, "message": "Method Not Allowed"})
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": 0, "code": http.StatusInternalServerError, "message": err.Error()})
}

// BadGateway sends a 502 error response for upstream failures.
func BadGateway(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"ok": 0, "code": http.StatusBadGateway, "message": err.Error()})
}
