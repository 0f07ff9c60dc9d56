package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollplus-admin/pkg/logger"
)

// sessionIDFromContext returns the caller's admin panel session, if any.
func sessionIDFromContext(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(logger.SessionHeader))
}
