package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-commerce-api/internal/apperr"
)

// respondError maps an error to its HTTP status and writes the response body.
// Internal causes are logged with detail but never leak into the response.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": apperr.MessageOf(err)})
}
