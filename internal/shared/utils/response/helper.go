package response

import "github.com/gin-gonic/gin"

// RespondJSON writes the uniform API envelope. Every handler in the service
// replies through this helper so clients can rely on one response shape.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
