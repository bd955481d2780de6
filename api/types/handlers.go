package types

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Handler utility functions to reduce duplication across handlers

// VideoKeyParam extracts the video key URL parameter. Keys may contain
// slashes, so clients path-escape them and we unescape here.
// Returns the key and sends error response if it is missing or malformed.
func VideoKeyParam(c *gin.Context) (string, bool) {
	raw := c.Param("key")
	key, err := url.PathUnescape(raw)
	if err != nil || key == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid video key",
		})
		return "", false
	}
	return key, true
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
