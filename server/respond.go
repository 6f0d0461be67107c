package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/logger"
)

// writeError maps an application error to its HTTP status and JSON body.
// Unknown error types are wrapped as internal errors so no raw message
// leaks to clients.
func (s *Server) writeError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Internal(err)
	}

	fields := logger.Fields(
		"code", string(appErr.Code),
		"path", c.Request.URL.Path,
	)
	if appErr.HTTPStatus >= 500 {
		s.log.WithError(err).Error("Request failed", fields)
	} else {
		s.log.Warn("Request rejected", fields)
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
